package repository

import (
	"context"

	"invoice-dashboard-backend/internal/models"

	"gorm.io/gorm"
)

type InvoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

// Create inserts a single invoice row.
func (r *InvoiceRepository) Create(ctx context.Context, invoice *models.Invoice) error {
	return r.db.WithContext(ctx).Create(invoice).Error
}

// UpdateFields overwrites the mutable columns of one invoice. id and date are never written.
func (r *InvoiceRepository) UpdateFields(ctx context.Context, id, customerID string, amount int64, status models.InvoiceStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.Invoice{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"customer_id": customerID,
			"amount":      amount,
			"status":      status,
		}).Error
}

func (r *InvoiceRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.Invoice{}, "id = ?", id).Error
}

// GetByID fetch a single invoice by ID
func (r *InvoiceRepository) GetByID(ctx context.Context, id string) (*models.Invoice, error) {
	var invoice models.Invoice
	err := r.db.WithContext(ctx).First(&invoice, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

// ListLatest returns every invoice joined with its customer, newest first.
func (r *InvoiceRepository) ListLatest(ctx context.Context) ([]models.InvoiceListItem, error) {
	var items []models.InvoiceListItem
	err := r.db.WithContext(ctx).
		Table("invoices").
		Select("invoices.id, invoices.amount, invoices.date, invoices.status, customers.name, customers.email, customers.image_url").
		Joins("JOIN customers ON invoices.customer_id = customers.id").
		Order("invoices.date DESC").
		Scan(&items).Error
	return items, err
}

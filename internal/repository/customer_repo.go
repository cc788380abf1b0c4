package repository

import (
	"context"

	"invoice-dashboard-backend/internal/models"

	"gorm.io/gorm"
)

type CustomerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// Create inserts name and email only; image_url is left to the column default.
func (r *CustomerRepository) Create(ctx context.Context, customer *models.Customer) error {
	return r.db.WithContext(ctx).
		Select("ID", "Name", "Email").
		Create(customer).Error
}

func (r *CustomerRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.Customer{}, "id = ?", id).Error
}

// ListWithTotals returns every customer with invoice counts and pending/paid sums.
func (r *CustomerRepository) ListWithTotals(ctx context.Context) ([]models.CustomerListItem, error) {
	var items []models.CustomerListItem
	err := r.db.WithContext(ctx).
		Table("customers").
		Select("customers.id, customers.name, customers.email, customers.image_url, " +
			"COUNT(invoices.id) AS total_invoices, " +
			"COALESCE(SUM(CASE WHEN invoices.status = 'pending' THEN invoices.amount ELSE 0 END), 0) AS total_pending, " +
			"COALESCE(SUM(CASE WHEN invoices.status = 'paid' THEN invoices.amount ELSE 0 END), 0) AS total_paid").
		Joins("LEFT JOIN invoices ON customers.id = invoices.customer_id").
		Group("customers.id, customers.name, customers.email, customers.image_url").
		Order("customers.name ASC").
		Scan(&items).Error
	return items, err
}

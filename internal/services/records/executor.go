package records

import (
	"context"
	"time"

	"invoice-dashboard-backend/internal/models"
	"invoice-dashboard-backend/internal/services/validation"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

type InvoiceStore interface {
	Create(ctx context.Context, invoice *models.Invoice) error
	UpdateFields(ctx context.Context, id, customerID string, amount int64, status models.InvoiceStatus) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*models.Invoice, error)
	ListLatest(ctx context.Context) ([]models.InvoiceListItem, error)
}

type CustomerStore interface {
	Create(ctx context.Context, customer *models.Customer) error
	Delete(ctx context.Context, id string) error
	ListWithTotals(ctx context.Context) ([]models.CustomerListItem, error)
}

var centsPerDollar = decimal.NewFromInt(100)

// Executor issues exactly one write per call. It never retries; any store
// error comes back as a *StorageError.
type Executor struct {
	invoices  InvoiceStore
	customers CustomerStore
	logger    *zap.Logger
	now       func() time.Time
}

func NewExecutor(invoices InvoiceStore, customers CustomerStore, logger *zap.Logger) *Executor {
	return &Executor{
		invoices:  invoices,
		customers: customers,
		logger:    logger.Named("executor"),
		now:       time.Now,
	}
}

func (e *Executor) CreateInvoice(ctx context.Context, rec *validation.InvoiceRecord) error {
	invoice := &models.Invoice{
		ID:         uuid.New(),
		CustomerID: rec.CustomerID,
		Amount:     toCents(rec.Amount),
		Status:     rec.Status,
		Date:       datatypes.Date(e.now().UTC()),
	}
	if err := e.invoices.Create(ctx, invoice); err != nil {
		return e.fail(OpCreate, EntityInvoice, "", err)
	}
	return nil
}

func (e *Executor) UpdateInvoice(ctx context.Context, id string, rec *validation.InvoiceRecord) error {
	if err := e.invoices.UpdateFields(ctx, id, rec.CustomerID, toCents(rec.Amount), rec.Status); err != nil {
		return e.fail(OpUpdate, EntityInvoice, id, err)
	}
	return nil
}

func (e *Executor) DeleteInvoice(ctx context.Context, id string) error {
	if err := e.invoices.Delete(ctx, id); err != nil {
		return e.fail(OpDelete, EntityInvoice, id, err)
	}
	return nil
}

func (e *Executor) CreateCustomer(ctx context.Context, rec *validation.CustomerRecord) error {
	customer := &models.Customer{
		ID:    uuid.New(),
		Name:  rec.Name,
		Email: rec.Email,
	}
	if err := e.customers.Create(ctx, customer); err != nil {
		return e.fail(OpCreate, EntityCustomer, "", err)
	}
	return nil
}

func (e *Executor) DeleteCustomer(ctx context.Context, id string) error {
	if err := e.customers.Delete(ctx, id); err != nil {
		return e.fail(OpDelete, EntityCustomer, id, err)
	}
	return nil
}

func (e *Executor) fail(op Operation, entity Entity, id string, err error) error {
	e.logger.Error("storage write failed",
		zap.String("op", string(op)),
		zap.String("entity", string(entity)),
		zap.String("id", id),
		zap.Error(err),
	)
	return &StorageError{Op: op, Entity: entity, Err: err}
}

// toCents expects an amount rounded to two places and within the int64 cents
// range, both guaranteed by the validator.
func toCents(amount decimal.Decimal) int64 {
	return amount.Mul(centsPerDollar).IntPart()
}

package records

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"invoice-dashboard-backend/internal/cache"
	"invoice-dashboard-backend/internal/models"
	"invoice-dashboard-backend/internal/services/validation"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("record not found")

// Service runs submitted forms through validate, write, then invalidate.
// A failing stage ends the pipeline with a rejected result.
type Service struct {
	validator *validation.Validator
	executor  *Executor
	navigator *Navigator
	invoices  InvoiceStore
	customers CustomerStore
	views     cache.ListingCache
	logger    *zap.Logger
}

func NewService(
	v *validation.Validator,
	invoices InvoiceStore,
	customers CustomerStore,
	views cache.ListingCache,
	logger *zap.Logger,
) *Service {
	return &Service{
		validator: v,
		executor:  NewExecutor(invoices, customers, logger),
		navigator: NewNavigator(views),
		invoices:  invoices,
		customers: customers,
		views:     views,
		logger:    logger,
	}
}

func (s *Service) CreateInvoice(ctx context.Context, fields url.Values) MutationResult {
	rec, errs := s.validator.Invoice(fields)
	if errs != nil {
		return missingFields(OpCreate, EntityInvoice, errs)
	}
	if err := s.executor.CreateInvoice(ctx, rec); err != nil {
		return storageFailed(err)
	}
	return s.navigator.Committed(ctx, EntityInvoice)
}

func (s *Service) UpdateInvoice(ctx context.Context, id string, fields url.Values) MutationResult {
	rec, errs := s.validator.Invoice(fields)
	if errs != nil {
		return missingFields(OpUpdate, EntityInvoice, errs)
	}
	if err := s.executor.UpdateInvoice(ctx, id, rec); err != nil {
		return storageFailed(err)
	}
	return s.navigator.Committed(ctx, EntityInvoice)
}

func (s *Service) CreateCustomer(ctx context.Context, fields url.Values) MutationResult {
	rec, errs := s.validator.Customer(fields)
	if errs != nil {
		return missingFields(OpCreate, EntityCustomer, errs)
	}
	if err := s.executor.CreateCustomer(ctx, rec); err != nil {
		return storageFailed(err)
	}
	return s.navigator.Committed(ctx, EntityCustomer)
}

// DeleteInvoice reports success even when no row matched id.
func (s *Service) DeleteInvoice(ctx context.Context, id string) DeleteResult {
	if err := s.executor.DeleteInvoice(ctx, id); err != nil {
		return DeleteResult{Message: err.Error()}
	}
	return s.navigator.Deleted(ctx, EntityInvoice)
}

func (s *Service) DeleteCustomer(ctx context.Context, id string) DeleteResult {
	if err := s.executor.DeleteCustomer(ctx, id); err != nil {
		return DeleteResult{Message: err.Error()}
	}
	return s.navigator.Deleted(ctx, EntityCustomer)
}

func (s *Service) GetInvoice(ctx context.Context, id string) (*models.Invoice, error) {
	invoice, err := s.invoices.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return invoice, err
}

func (s *Service) ListInvoices(ctx context.Context) ([]models.InvoiceListItem, error) {
	return readThrough(ctx, s, cache.ViewInvoices, s.invoices.ListLatest)
}

func (s *Service) ListCustomers(ctx context.Context) ([]models.CustomerListItem, error) {
	return readThrough(ctx, s, cache.ViewCustomers, s.customers.ListWithTotals)
}

// readThrough serves a listing from the cache, recomputing it from the store
// after a miss or an unreadable entry. The recomputed payload is only cached if
// no commit invalidated the view while it was loading.
func readThrough[T any](ctx context.Context, s *Service, view string, load func(context.Context) ([]T, error)) ([]T, error) {
	gen := s.views.Generation(ctx, view)

	if payload, ok := s.views.Get(ctx, view); ok {
		var items []T
		if err := json.Unmarshal(payload, &items); err == nil {
			return items, nil
		}
		s.logger.Warn("discarding unreadable listing cache entry", zap.String("view", view))
	}

	items, err := load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s listing: %w", view, err)
	}

	if payload, err := json.Marshal(items); err == nil {
		s.views.Set(ctx, view, gen, payload)
	}
	return items, nil
}

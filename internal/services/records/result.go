package records

import (
	"fmt"

	"invoice-dashboard-backend/internal/cache"
	"invoice-dashboard-backend/internal/services/validation"
)

type Entity string

const (
	EntityInvoice  Entity = "Invoice"
	EntityCustomer Entity = "Customer"
)

// ListingPath is where a client goes after a committed create or update.
func (e Entity) ListingPath() string {
	if e == EntityCustomer {
		return "/dashboard/customers"
	}
	return "/dashboard/invoices"
}

// View names the cached listing that a write to this entity makes stale.
func (e Entity) View() string {
	if e == EntityCustomer {
		return cache.ViewCustomers
	}
	return cache.ViewInvoices
}

type Operation string

const (
	OpCreate Operation = "Create"
	OpUpdate Operation = "Update"
	OpDelete Operation = "Delete"
)

type Status string

const (
	StatusCommitted Status = "committed"
	StatusRejected  Status = "rejected"
)

// MutationResult is what a create or update hands back. Location is set only
// on commit and is acted on by the caller.
type MutationResult struct {
	Status   Status                 `json:"status"`
	Errors   validation.FieldErrors `json:"errors,omitempty"`
	Message  string                 `json:"message,omitempty"`
	Location string                 `json:"-"`
}

func (r MutationResult) Committed() bool {
	return r.Status == StatusCommitted
}

// DeleteResult always carries a message, for success and failure alike.
type DeleteResult struct {
	Message string `json:"message"`
}

// StorageError hides the underlying fault behind a fixed message. The cause is
// kept for errors.Is/As and logging only.
type StorageError struct {
	Op     Operation
	Entity Entity
	Err    error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("Database Error: Failed to %s %s.", e.Op, e.Entity)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// missingFields names the customer entity in lowercase, unlike StorageError.
func missingFields(op Operation, entity Entity, errs validation.FieldErrors) MutationResult {
	name := string(entity)
	if entity == EntityCustomer {
		name = "customer"
	}
	return MutationResult{
		Status:  StatusRejected,
		Errors:  errs,
		Message: fmt.Sprintf("Missing Fields. Failed to %s %s.", op, name),
	}
}

func storageFailed(err error) MutationResult {
	return MutationResult{
		Status:  StatusRejected,
		Message: err.Error(),
	}
}

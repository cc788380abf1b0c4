package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type InvoiceStatus string

const (
	InvoiceStatusPending InvoiceStatus = "pending"
	InvoiceStatusPaid    InvoiceStatus = "paid"
)

// Invoice amounts are stored in cents. ID and Date are written once at insert.
type Invoice struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CustomerID string         `gorm:"type:uuid;index;not null" json:"customer_id"`
	Amount     int64          `gorm:"not null" json:"amount"`
	Status     InvoiceStatus  `gorm:"type:varchar(16);index;not null" json:"status"`
	Date       datatypes.Date `gorm:"not null" json:"date"`
}

// InvoiceListItem is one row of the invoices listing view.
type InvoiceListItem struct {
	ID       uuid.UUID     `json:"id"`
	Amount   int64         `json:"amount"`
	Date     time.Time     `json:"date"`
	Status   InvoiceStatus `json:"status"`
	Name     string        `json:"name"`
	Email    string        `json:"email"`
	ImageURL string        `json:"image_url"`
}

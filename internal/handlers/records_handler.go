package handler

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"invoice-dashboard-backend/internal/logger"
	"invoice-dashboard-backend/internal/models"
	"invoice-dashboard-backend/internal/services/records"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const maxFormMemory = 1 << 20

type RecordsService interface {
	CreateInvoice(ctx context.Context, fields url.Values) records.MutationResult
	UpdateInvoice(ctx context.Context, id string, fields url.Values) records.MutationResult
	DeleteInvoice(ctx context.Context, id string) records.DeleteResult
	GetInvoice(ctx context.Context, id string) (*models.Invoice, error)
	ListInvoices(ctx context.Context) ([]models.InvoiceListItem, error)
	CreateCustomer(ctx context.Context, fields url.Values) records.MutationResult
	DeleteCustomer(ctx context.Context, id string) records.DeleteResult
	ListCustomers(ctx context.Context) ([]models.CustomerListItem, error)
}

type RecordsHandler struct {
	service RecordsService
}

func NewRecordsHandler(s RecordsService) *RecordsHandler {
	return &RecordsHandler{service: s}
}

func (h *RecordsHandler) ListInvoices(c *gin.Context) {
	items, err := h.service.ListInvoices(c.Request.Context())
	if err != nil {
		logger.FromGin(c).Error("list invoices failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Database Error: Failed to Fetch Invoices."})
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *RecordsHandler) GetInvoice(c *gin.Context) {
	invoice, err := h.service.GetInvoice(c.Request.Context(), c.Param("id"))
	if errors.Is(err, records.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Invoice not found."})
		return
	}
	if err != nil {
		logger.FromGin(c).Error("get invoice failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Database Error: Failed to Fetch Invoice."})
		return
	}
	c.JSON(http.StatusOK, invoice)
}

func (h *RecordsHandler) CreateInvoice(c *gin.Context) {
	fields, ok := formFields(c)
	if !ok {
		return
	}
	respondMutation(c, h.service.CreateInvoice(c.Request.Context(), fields))
}

func (h *RecordsHandler) UpdateInvoice(c *gin.Context) {
	fields, ok := formFields(c)
	if !ok {
		return
	}
	respondMutation(c, h.service.UpdateInvoice(c.Request.Context(), c.Param("id"), fields))
}

func (h *RecordsHandler) DeleteInvoice(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.DeleteInvoice(c.Request.Context(), c.Param("id")))
}

func (h *RecordsHandler) ListCustomers(c *gin.Context) {
	items, err := h.service.ListCustomers(c.Request.Context())
	if err != nil {
		logger.FromGin(c).Error("list customers failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Database Error: Failed to Fetch Customers."})
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *RecordsHandler) CreateCustomer(c *gin.Context) {
	fields, ok := formFields(c)
	if !ok {
		return
	}
	respondMutation(c, h.service.CreateCustomer(c.Request.Context(), fields))
}

func (h *RecordsHandler) DeleteCustomer(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.DeleteCustomer(c.Request.Context(), c.Param("id")))
}

// respondMutation performs the redirect for a committed result; a rejected
// one goes back to the form as JSON.
func respondMutation(c *gin.Context, res records.MutationResult) {
	if res.Committed() {
		c.Redirect(http.StatusSeeOther, res.Location)
		return
	}
	c.JSON(http.StatusUnprocessableEntity, res)
}

// formFields accepts urlencoded and multipart bodies.
func formFields(c *gin.Context) (url.Values, bool) {
	err := c.Request.ParseMultipartForm(maxFormMemory)
	if err != nil && !errors.Is(err, http.ErrNotMultipart) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid form submission"})
		return nil, false
	}
	return c.Request.PostForm, true
}

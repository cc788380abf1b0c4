package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"invoice-dashboard-backend/internal/cache"
	handler "invoice-dashboard-backend/internal/handlers"
	"invoice-dashboard-backend/internal/repository"
	"invoice-dashboard-backend/internal/services/auth"
	"invoice-dashboard-backend/internal/services/records"
	"invoice-dashboard-backend/internal/services/validation"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, views cache.ListingCache, zl *zap.Logger) {
	invoiceRepo := repository.NewInvoiceRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	userRepo := repository.NewUserRepository(db)

	v := validation.New()
	recordsService := records.NewService(v, invoiceRepo, customerRepo, views, zl)
	verifier := auth.NewVerifier(auth.NewPasswordProvider(v, userRepo), zl)

	recordsHandler := handler.NewRecordsHandler(recordsService)
	authHandler := handler.NewAuthHandler(verifier)

	api := r.Group("/api")

	// Health check
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.POST("/login", authHandler.Login)

	dashboard := r.Group("/dashboard")

	invoices := dashboard.Group("/invoices")
	{
		invoices.GET("", recordsHandler.ListInvoices)
		invoices.POST("", recordsHandler.CreateInvoice)
		invoices.GET("/:id", recordsHandler.GetInvoice)
		invoices.PUT("/:id", recordsHandler.UpdateInvoice)
		invoices.DELETE("/:id", recordsHandler.DeleteInvoice)
	}

	customers := dashboard.Group("/customers")
	{
		customers.GET("", recordsHandler.ListCustomers)
		customers.POST("", recordsHandler.CreateCustomer)
		customers.DELETE("/:id", recordsHandler.DeleteCustomer)
	}
}

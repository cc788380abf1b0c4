package handler

import (
	"context"
	"net/http"
	"net/url"

	"invoice-dashboard-backend/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const dashboardPath = "/dashboard"

type Authenticator interface {
	Authenticate(ctx context.Context, fields url.Values) (string, error)
}

type AuthHandler struct {
	auth Authenticator
}

func NewAuthHandler(a Authenticator) *AuthHandler {
	return &AuthHandler{auth: a}
}

func (h *AuthHandler) Login(c *gin.Context) {
	fields, ok := formFields(c)
	if !ok {
		return
	}

	msg, err := h.auth.Authenticate(c.Request.Context(), fields)
	if err != nil {
		logger.FromGin(c).Error("unclassified sign-in fault", zap.Error(err))
		_ = c.Error(err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	if msg != "" {
		c.JSON(http.StatusUnauthorized, gin.H{"message": msg})
		return
	}
	c.Redirect(http.StatusSeeOther, dashboardPath)
}

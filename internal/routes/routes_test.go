package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"invoice-dashboard-backend/internal/cache"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setup(t *testing.T) (*gin.Engine, sqlmock.Sqlmock, cache.ListingCache) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: mockDB, DriverName: "postgres"}), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	views := cache.NewInMemoryListingCache()
	r := gin.New()
	RegisterRoutes(r, db, views, zap.NewNop())
	return r, mock, views
}

func submit(r http.Handler, method, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	r, _, _ := setup(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestCreateInvoice_EndToEnd(t *testing.T) {
	t.Run("commit writes one row, drops the listing and redirects", func(t *testing.T) {
		r, mock, views := setup(t)
		ctx := context.Background()
		views.Set(ctx, cache.ViewInvoices, views.Generation(ctx, cache.ViewInvoices), []byte(`[]`))

		mock.ExpectExec(`INSERT INTO "invoices" \("id","customer_id","amount","status","date"\)`).
			WithArgs(sqlmock.AnyArg(), "3958dc9e-712f-4377-85e9-fec4b6a6442a", int64(5000), "paid", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		w := submit(r, http.MethodPost, "/dashboard/invoices", url.Values{
			"customerId": {"3958dc9e-712f-4377-85e9-fec4b6a6442a"},
			"amount":     {"50"},
			"status":     {"paid"},
		})

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/dashboard/invoices", w.Header().Get("Location"))
		_, cached := views.Get(ctx, cache.ViewInvoices)
		assert.False(t, cached)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("invalid amount never touches the database", func(t *testing.T) {
		r, mock, _ := setup(t)

		w := submit(r, http.MethodPost, "/dashboard/invoices", url.Values{
			"customerId": {"c1"},
			"amount":     {"0"},
			"status":     {"pending"},
		})

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "Missing Fields. Failed to Create Invoice.")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestLogin_UnknownUser(t *testing.T) {
	r, mock, _ := setup(t)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password"}))

	w := submit(r, http.MethodPost, "/login", url.Values{"email": {"a@b.com"}, "password": {"wrong-password"}})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"message":"Invalid credentials."}`, w.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

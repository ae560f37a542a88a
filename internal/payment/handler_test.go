// AngelaMos | 2026
// handler_test.go

package payment

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/apartment-api/internal/core"
)

func passthrough(next http.Handler) http.Handler { return next }

func TestHandlerCreate_RejectsBadInput(t *testing.T) {
	db, mock := setupMockDB(t)
	r := chi.NewRouter()
	NewHandler(NewService(db, nil)).RegisterRoutes(r, passthrough, passthrough)

	tests := []struct {
		name string
		body string
		code string
	}{
		{"missing tenant", `{"amount":100}`, "MISSING_FIELD"},
		{"missing amount", `{"tenant_id":1}`, "MISSING_FIELD"},
		{"bad date", `{"amount":100,"tenant_id":1,"date":"01/02/2025"}`, "VALIDATION_ERROR"},
		{"non-numeric amount", `{"amount":"many","tenant_id":1}`, "VALIDATION_ERROR"},
		{"zero amount", `{"amount":0,"tenant_id":1}`, "VALIDATION_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/payments", strings.NewReader(tt.body)))

			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var resp core.Response
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
		})
	}

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandlerGet_UnknownPayment(t *testing.T) {
	db, mock := setupMockDB(t)
	r := chi.NewRouter()
	NewHandler(NewService(db, nil)).RegisterRoutes(r, passthrough, passthrough)

	mock.ExpectQuery(`FROM payments WHERE id`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/payments/3", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

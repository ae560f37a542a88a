// AngelaMos | 2026
// service_test.go

package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/apartment-api/internal/core"
)

var roomCols = []string{
	"id", "room_code", "status", "type", "rent_amount", "tenant_id",
	"created_at", "updated_at",
}

func setupMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })

	return sqlx.NewDb(mockDB, "sqlmock"), mock
}

func requireAppError(t *testing.T, err error, status int, code string) {
	t.Helper()

	appErr, ok := core.AsAppError(err)
	require.True(t, ok, "expected AppError, got %v", err)
	assert.Equal(t, status, appErr.StatusCode)
	assert.Equal(t, code, appErr.Code)
}

var paymentCols = []string{
	"id", "payment_date", "payment_price", "tenant_id", "room_id",
	"mpesa_receipt", "phone_number", "created_at",
}

func existsRow(v bool) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"exists"}).AddRow(v)
}

func TestCreate_UnknownTenantWritesNothing(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewService(db, nil)

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM tenants WHERE id`).
		WithArgs(int64(77)).
		WillReturnRows(existsRow(false))
	mock.ExpectRollback()

	_, err := svc.Create(context.Background(), CreateInput{
		Amount:   decimal.NewFromInt(5000),
		TenantID: 77,
	})

	requireAppError(t, err, http.StatusNotFound, "NOT_FOUND")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_UnknownExplicitRoom(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewService(db, nil)
	roomID := int64(12)

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM tenants WHERE id`).
		WithArgs(int64(5)).
		WillReturnRows(existsRow(true))
	mock.ExpectQuery(`FROM rooms WHERE id`).
		WithArgs(roomID).
		WillReturnRows(sqlmock.NewRows(roomCols))
	mock.ExpectRollback()

	_, err := svc.Create(context.Background(), CreateInput{
		Amount:   decimal.NewFromInt(5000),
		TenantID: 5,
		RoomID:   &roomID,
	})

	requireAppError(t, err, http.StatusNotFound, "NOT_FOUND")
	assert.Contains(t, err.Error(), "room")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DerivesRoomFromTenant(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewService(db, nil)
	svc.now = func() time.Time {
		return time.Date(2025, time.April, 2, 13, 0, 0, 0, time.UTC)
	}
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM tenants WHERE id`).
		WithArgs(int64(5)).
		WillReturnRows(existsRow(true))
	mock.ExpectQuery(`FROM rooms WHERE tenant_id`).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(roomCols).
			AddRow(int64(3), "B-3", "occupied", "single", "6000", int64(5), now, now).
			AddRow(int64(8), "C-8", "occupied", "double", "9000", int64(5), now, now))
	mock.ExpectQuery(`INSERT INTO payments`).
		WithArgs(
			time.Date(2025, time.April, 2, 0, 0, 0, 0, time.UTC),
			sqlmock.AnyArg(),
			int64(5),
			int64(3),
			nil,
			nil,
		).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).
			AddRow(int64(21), now))
	mock.ExpectCommit()

	p, err := svc.Create(context.Background(), CreateInput{
		Amount:   decimal.RequireFromString("6000.50"),
		TenantID: 5,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(21), p.ID)
	require.NotNil(t, p.RoomID)
	assert.Equal(t, int64(3), *p.RoomID)
	assert.Equal(t, SourceManual, p.Source())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_TenantWithoutRoom(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewService(db, nil)
	day := time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM tenants WHERE id`).
		WillReturnRows(existsRow(true))
	mock.ExpectQuery(`FROM rooms WHERE tenant_id`).
		WillReturnRows(sqlmock.NewRows(roomCols))
	mock.ExpectQuery(`INSERT INTO payments`).
		WithArgs(day, sqlmock.AnyArg(), int64(5), nil, nil, nil).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).
			AddRow(int64(22), time.Now()))
	mock.ExpectCommit()

	p, err := svc.Create(context.Background(), CreateInput{
		Amount:   decimal.NewFromInt(100),
		TenantID: 5,
		Date:     &day,
	})

	require.NoError(t, err)
	assert.Nil(t, p.RoomID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_RejectsNonPositiveAmount(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewService(db, nil)

	_, err := svc.Create(context.Background(), CreateInput{
		Amount:   decimal.NewFromInt(-1),
		TenantID: 5,
	})

	requireAppError(t, err, http.StatusBadRequest, "VALIDATION_ERROR")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateAmount_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewService(db, nil)

	mock.ExpectQuery(`UPDATE payments`).
		WithArgs(int64(9), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(paymentCols))

	_, err := svc.UpdateAmount(context.Background(), 9, decimal.NewFromInt(10))

	requireAppError(t, err, http.StatusNotFound, "NOT_FOUND")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateAmount_ReturnsUpdatedRow(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewService(db, nil)
	paid := time.Date(2025, time.June, 3, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`UPDATE payments SET payment_price = \$2 WHERE id = \$1 RETURNING`).
		WithArgs(int64(9), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(paymentCols).
			AddRow(int64(9), paid, "4200.50", int64(5), int64(3), nil, nil, time.Now()))

	p, err := svc.UpdateAmount(context.Background(), 9, decimal.RequireFromString("4200.50"))

	require.NoError(t, err)
	assert.Equal(t, int64(9), p.ID)
	assert.True(t, p.Amount.Equal(decimal.RequireFromString("4200.5")))
	assert.Equal(t, int64(5), p.TenantID)
	require.NotNil(t, p.RoomID)
	assert.Equal(t, int64(3), *p.RoomID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateAmount_RejectsNonPositive(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewService(db, nil)

	_, err := svc.UpdateAmount(context.Background(), 9, decimal.Zero)

	requireAppError(t, err, http.StatusBadRequest, "VALIDATION_ERROR")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestList_KeepsNullGatewayFields(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewService(db, nil)
	paid := time.Date(2025, time.June, 3, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`FROM payments ORDER BY id`).
		WillReturnRows(sqlmock.NewRows(paymentCols).
			AddRow(int64(1), paid, "1500.00", int64(5), int64(3), nil, nil, time.Now()).
			AddRow(int64(2), paid, "800", int64(5), nil, "NLJ7RT61SV", "254708374149", time.Now()))

	payments, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, payments, 2)
	assert.NoError(t, mock.ExpectationsWereMet())

	raw, err := json.Marshal(ToPaymentResponseList(payments))
	require.NoError(t, err)

	var body []map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))

	manual := body[0]
	assert.Contains(t, manual, "mpesa_receipt")
	assert.Nil(t, manual["mpesa_receipt"])
	assert.Contains(t, manual, "phone_number")
	assert.Nil(t, manual["phone_number"])
	assert.Equal(t, 3.0, manual["room_id"])
	assert.Equal(t, SourceManual, manual["source"])

	gateway := body[1]
	assert.Equal(t, "NLJ7RT61SV", gateway["mpesa_receipt"])
	assert.Equal(t, "254708374149", gateway["phone_number"])
	assert.Nil(t, gateway["room_id"])
	assert.Equal(t, SourceMpesa, gateway["source"])
	assert.Equal(t, 800.0, gateway["amount"])
}

func TestList_Empty(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewService(db, nil)

	mock.ExpectQuery(`FROM payments ORDER BY id`).
		WillReturnRows(sqlmock.NewRows(paymentCols))

	payments, err := svc.List(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, payments)
	assert.Empty(t, payments)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentResponse_KeepsNullGatewayFields(t *testing.T) {
	p := &Payment{
		ID:          1,
		PaymentDate: time.Date(2025, time.May, 5, 0, 0, 0, 0, time.UTC),
		Amount:      decimal.NewFromInt(2500),
		TenantID:    4,
	}

	raw, err := json.Marshal(ToPaymentResponse(p))
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))

	for _, key := range []string{"mpesa_receipt", "phone_number", "room_id"} {
		v, ok := body[key]
		assert.True(t, ok, "missing key %s", key)
		assert.Nil(t, v)
	}
	assert.Equal(t, "2025-05-05", body["date"])
	assert.Equal(t, 2500.0, body["amount"])
	assert.Equal(t, SourceManual, body["source"])
}

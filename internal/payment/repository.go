// AngelaMos | 2026
// repository.go

package payment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/carterperez-dev/apartment-api/internal/core"
)

type Repository interface {
	List(ctx context.Context) ([]Payment, error)
	GetByID(ctx context.Context, id int64) (*Payment, error)
	Create(ctx context.Context, payment *Payment) error
	UpdateAmount(
		ctx context.Context,
		id int64,
		amount decimal.Decimal,
	) (*Payment, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const paymentColumns = `id, payment_date, payment_price, tenant_id, room_id,
	mpesa_receipt, phone_number, created_at`

func (r *repository) List(ctx context.Context) ([]Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments ORDER BY id`

	payments := make([]Payment, 0)
	if err := r.db.SelectContext(ctx, &payments, query); err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}

	return payments, nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`

	var payment Payment
	err := r.db.GetContext(ctx, &payment, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get payment: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get payment: %w", err)
	}

	return &payment, nil
}

func (r *repository) Create(ctx context.Context, payment *Payment) error {
	query := `
		INSERT INTO payments (payment_date, payment_price, tenant_id, room_id,
			mpesa_receipt, phone_number)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	err := r.db.QueryRowxContext(ctx, query,
		payment.PaymentDate,
		payment.Amount,
		payment.TenantID,
		payment.RoomID,
		payment.MpesaReceipt,
		payment.PhoneNumber,
	).Scan(&payment.ID, &payment.CreatedAt)
	if err != nil {
		if core.IsUniqueViolation(err) {
			return fmt.Errorf("create payment: %w", core.ErrDuplicateKey)
		}
		if core.IsForeignKeyViolation(err) {
			return fmt.Errorf("create payment: %w", core.ErrNotFound)
		}
		return fmt.Errorf("create payment: %w", err)
	}

	return nil
}

func (r *repository) UpdateAmount(
	ctx context.Context,
	id int64,
	amount decimal.Decimal,
) (*Payment, error) {
	query := `
		UPDATE payments
		SET payment_price = $2
		WHERE id = $1
		RETURNING ` + paymentColumns

	var payment Payment
	err := r.db.GetContext(ctx, &payment, query, id, amount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("update payment: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("update payment: %w", err)
	}

	return &payment, nil
}

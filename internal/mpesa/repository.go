// AngelaMos | 2026
// repository.go

package mpesa

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/carterperez-dev/apartment-api/internal/core"
)

type Repository interface {
	CreatePending(ctx context.Context, txn *Transaction) error
	Get(ctx context.Context, checkoutRequestID string) (*Transaction, error)
	GetForUpdate(
		ctx context.Context,
		checkoutRequestID string,
	) (*Transaction, error)
	Settle(ctx context.Context, txn *Transaction) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const transactionColumns = `checkout_request_id, merchant_request_id,
	tenant_id, amount, phone_number, status, result_code, result_desc,
	payment_id, created_at, updated_at`

func (r *repository) CreatePending(
	ctx context.Context,
	txn *Transaction,
) error {
	query := `
		INSERT INTO mpesa_transactions (checkout_request_id,
			merchant_request_id, tenant_id, amount, phone_number, status)
		VALUES ($1, $2, $3, $4, $5, 'pending')
		RETURNING status, created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		txn.CheckoutRequestID,
		txn.MerchantRequestID,
		txn.TenantID,
		txn.Amount,
		txn.PhoneNumber,
	).Scan(&txn.Status, &txn.CreatedAt, &txn.UpdatedAt)
	if err != nil {
		if core.IsUniqueViolation(err) {
			return fmt.Errorf("create transaction: %w", core.ErrDuplicateKey)
		}
		if core.IsForeignKeyViolation(err) {
			return fmt.Errorf("create transaction: %w", core.ErrNotFound)
		}
		return fmt.Errorf("create transaction: %w", err)
	}

	return nil
}

func (r *repository) Get(
	ctx context.Context,
	checkoutRequestID string,
) (*Transaction, error) {
	query := `SELECT ` + transactionColumns + `
		FROM mpesa_transactions
		WHERE checkout_request_id = $1`
	return r.get(ctx, query, checkoutRequestID)
}

func (r *repository) GetForUpdate(
	ctx context.Context,
	checkoutRequestID string,
) (*Transaction, error) {
	query := `SELECT ` + transactionColumns + `
		FROM mpesa_transactions
		WHERE checkout_request_id = $1
		FOR UPDATE`
	return r.get(ctx, query, checkoutRequestID)
}

func (r *repository) get(
	ctx context.Context,
	query, checkoutRequestID string,
) (*Transaction, error) {
	var txn Transaction
	err := r.db.GetContext(ctx, &txn, query, checkoutRequestID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get transaction: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get transaction: %w", err)
	}

	return &txn, nil
}

// Settle stores the final status of a pending transaction.
func (r *repository) Settle(ctx context.Context, txn *Transaction) error {
	query := `
		UPDATE mpesa_transactions
		SET status = $2, result_code = $3, result_desc = $4, payment_id = $5,
			updated_at = NOW()
		WHERE checkout_request_id = $1 AND status = 'pending'`

	result, err := r.db.ExecContext(ctx, query,
		txn.CheckoutRequestID,
		txn.Status,
		txn.ResultCode,
		txn.ResultDesc,
		txn.PaymentID,
	)
	if err != nil {
		return fmt.Errorf("settle transaction: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("settle transaction: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("settle transaction: %w", core.ErrConflict)
	}

	return nil
}

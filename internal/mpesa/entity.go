// AngelaMos | 2026
// entity.go

package mpesa

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Transaction correlates a push request with the tenant it was made for.
type Transaction struct {
	CheckoutRequestID string          `db:"checkout_request_id"`
	MerchantRequestID string          `db:"merchant_request_id"`
	TenantID          int64           `db:"tenant_id"`
	Amount            decimal.Decimal `db:"amount"`
	PhoneNumber       string          `db:"phone_number"`
	Status            string          `db:"status"`
	ResultCode        *int            `db:"result_code"`
	ResultDesc        *string         `db:"result_desc"`
	PaymentID         *int64          `db:"payment_id"`
	CreatedAt         time.Time       `db:"created_at"`
	UpdatedAt         time.Time       `db:"updated_at"`
}

func (t *Transaction) IsPending() bool {
	return t.Status == StatusPending
}

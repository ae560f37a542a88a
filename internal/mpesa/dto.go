// AngelaMos | 2026
// dto.go

package mpesa

import (
	"time"

	"github.com/shopspring/decimal"
)

type STKPushRequest struct {
	PhoneNumber string           `json:"phone_number" validate:"required,max=20"`
	Amount      *decimal.Decimal `json:"amount"       validate:"required"`
	TenantID    *int64           `json:"tenant_id"    validate:"required"`
}

type PushAck struct {
	Message           string  `json:"message"`
	CheckoutRequestID string  `json:"checkout_request_id"`
	MerchantRequestID string  `json:"merchant_request_id"`
	CustomerMessage   string  `json:"customer_message"`
	PhoneNumber       string  `json:"phone_number"`
	Amount            float64 `json:"amount"`
	TenantID          int64   `json:"tenant_id"`
}

// CallbackAck is returned to the gateway for every callback it delivers.
type CallbackAck struct {
	ResultCode int    `json:"ResultCode"`
	ResultDesc string `json:"ResultDesc"`
	Outcome    string `json:"outcome"`
	Message    string `json:"-"`
	PaymentID  *int64 `json:"payment_id,omitempty"`
}

type TransactionResponse struct {
	CheckoutRequestID string    `json:"checkout_request_id"`
	MerchantRequestID string    `json:"merchant_request_id"`
	TenantID          int64     `json:"tenant_id"`
	Amount            float64   `json:"amount"`
	PhoneNumber       string    `json:"phone_number"`
	Status            string    `json:"status"`
	ResultCode        *int      `json:"result_code"`
	ResultDesc        *string   `json:"result_desc"`
	PaymentID         *int64    `json:"payment_id"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func ToTransactionResponse(t *Transaction) TransactionResponse {
	return TransactionResponse{
		CheckoutRequestID: t.CheckoutRequestID,
		MerchantRequestID: t.MerchantRequestID,
		TenantID:          t.TenantID,
		Amount:            t.Amount.InexactFloat64(),
		PhoneNumber:       t.PhoneNumber,
		Status:            t.Status,
		ResultCode:        t.ResultCode,
		ResultDesc:        t.ResultDesc,
		PaymentID:         t.PaymentID,
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         t.UpdatedAt,
	}
}

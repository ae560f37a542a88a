// AngelaMos | 2026
// dto.go

package payment

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreatePaymentRequest struct {
	Amount   *decimal.Decimal `json:"amount"    validate:"required"`
	TenantID *int64           `json:"tenant_id" validate:"required"`
	RoomID   *int64           `json:"room_id"`
	Date     *string          `json:"date"`
}

type UpdatePaymentRequest struct {
	Amount *decimal.Decimal `json:"amount" validate:"required"`
}

// PaymentResponse always carries the mobile-money fields, null when unset.
type PaymentResponse struct {
	ID           int64   `json:"id"`
	Amount       float64 `json:"amount"`
	Date         string  `json:"date"`
	TenantID     int64   `json:"tenant_id"`
	RoomID       *int64  `json:"room_id"`
	MpesaReceipt *string `json:"mpesa_receipt"`
	PhoneNumber  *string `json:"phone_number"`
	Source       string  `json:"source"`
}

func ToPaymentResponse(p *Payment) PaymentResponse {
	return PaymentResponse{
		ID:           p.ID,
		Amount:       p.Amount.InexactFloat64(),
		Date:         p.PaymentDate.Format(time.DateOnly),
		TenantID:     p.TenantID,
		RoomID:       p.RoomID,
		MpesaReceipt: p.MpesaReceipt,
		PhoneNumber:  p.PhoneNumber,
		Source:       p.Source(),
	}
}

func ToPaymentResponseList(payments []Payment) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(payments))
	for i := range payments {
		out = append(out, ToPaymentResponse(&payments[i]))
	}
	return out
}

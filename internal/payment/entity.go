// AngelaMos | 2026
// entity.go

package payment

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	SourceManual = "manual"
	SourceMpesa  = "mpesa"
)

// Payment is a rent payment. MpesaReceipt and PhoneNumber are set only
// for payments confirmed by the mobile-money gateway.
type Payment struct {
	ID           int64           `db:"id"`
	PaymentDate  time.Time       `db:"payment_date"`
	Amount       decimal.Decimal `db:"payment_price"`
	TenantID     int64           `db:"tenant_id"`
	RoomID       *int64          `db:"room_id"`
	MpesaReceipt *string         `db:"mpesa_receipt"`
	PhoneNumber  *string         `db:"phone_number"`
	CreatedAt    time.Time       `db:"created_at"`
}

func (p *Payment) Source() string {
	if p.MpesaReceipt != nil {
		return SourceMpesa
	}
	return SourceManual
}

// AngelaMos | 2026
// callback.go

package mpesa

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type CallbackPayload struct {
	Body CallbackBody `json:"Body"`
}

type CallbackBody struct {
	StkCallback StkCallback `json:"stkCallback"`
}

type StkCallback struct {
	MerchantRequestID string            `json:"MerchantRequestID"`
	CheckoutRequestID string            `json:"CheckoutRequestID"`
	ResultCode        *int              `json:"ResultCode"`
	ResultDesc        string            `json:"ResultDesc"`
	CallbackMetadata  *CallbackMetadata `json:"CallbackMetadata"`
}

type CallbackMetadata struct {
	Item []MetadataItem `json:"Item"`
}

// MetadataItem values are numbers or strings depending on the key.
type MetadataItem struct {
	Name  string          `json:"Name"`
	Value json.RawMessage `json:"Value"`
}

func (c *StkCallback) Succeeded() bool {
	return c.ResultCode != nil && *c.ResultCode == 0
}

// Column bounds of the payments table.
const (
	maxReceiptLen = 50
	maxPhoneLen   = 50
)

// maxAmount is the first value NUMERIC(12, 2) cannot hold.
var maxAmount = decimal.New(1, 10)

type callbackDetails struct {
	Amount       decimal.Decimal
	HasAmount    bool
	MpesaReceipt string
	PhoneNumber  string
}

func (c *StkCallback) details() (*callbackDetails, error) {
	d := &callbackDetails{}
	if c.CallbackMetadata == nil {
		return nil, fmt.Errorf("callback metadata missing")
	}

	for _, item := range c.CallbackMetadata.Item {
		raw := rawScalar(item.Value)

		switch item.Name {
		case "Amount":
			amount, err := decimal.NewFromString(raw)
			if err != nil {
				return nil, fmt.Errorf("callback amount %q: %w", raw, err)
			}
			if !amount.IsPositive() || amount.GreaterThanOrEqual(maxAmount) {
				return nil, fmt.Errorf("callback amount %s out of range", amount)
			}
			d.Amount = amount
			d.HasAmount = true
		case "MpesaReceiptNumber":
			d.MpesaReceipt = raw
		case "PhoneNumber":
			d.PhoneNumber = raw
		}
	}

	if d.MpesaReceipt == "" {
		return nil, fmt.Errorf("callback receipt number missing")
	}
	if len(d.MpesaReceipt) > maxReceiptLen {
		return nil, fmt.Errorf("callback receipt number longer than %d", maxReceiptLen)
	}
	if len(d.PhoneNumber) > maxPhoneLen {
		return nil, fmt.Errorf("callback phone number longer than %d", maxPhoneLen)
	}

	return d, nil
}

// rawScalar renders a JSON number or string without quotes.
func rawScalar(v json.RawMessage) string {
	s := strings.TrimSpace(string(v))
	if s == "null" {
		return ""
	}

	var str string
	if err := json.Unmarshal(v, &str); err == nil {
		return strings.TrimSpace(str)
	}

	return s
}

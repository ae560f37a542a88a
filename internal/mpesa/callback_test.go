// AngelaMos | 2026
// callback_test.go

package mpesa

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/apartment-api/internal/config"
)

func TestCallbackDetails(t *testing.T) {
	p := decodePayload(t, successCallback)
	cb := p.Body.StkCallback

	require.True(t, cb.Succeeded())

	d, err := cb.details()
	require.NoError(t, err)
	assert.True(t, d.HasAmount)
	assert.True(t, d.Amount.Equal(decimal.NewFromInt(1500)))
	assert.Equal(t, "NLJ7RT61SV", d.MpesaReceipt)
	assert.Equal(t, "254708374149", d.PhoneNumber)
}

func TestCallbackDetails_StringValues(t *testing.T) {
	cb := StkCallback{
		CallbackMetadata: &CallbackMetadata{Item: []MetadataItem{
			{Name: "Amount", Value: []byte(`"250.50"`)},
			{Name: "MpesaReceiptNumber", Value: []byte(`" QK12ABC "`)},
		}},
	}

	d, err := cb.details()
	require.NoError(t, err)
	assert.Equal(t, "250.5", d.Amount.String())
	assert.Equal(t, "QK12ABC", d.MpesaReceipt)
	assert.Empty(t, d.PhoneNumber)
}

func TestCallbackDetails_Rejects(t *testing.T) {
	tests := []struct {
		name string
		cb   StkCallback
	}{
		{name: "no metadata", cb: StkCallback{}},
		{
			name: "no receipt",
			cb: StkCallback{CallbackMetadata: &CallbackMetadata{Item: []MetadataItem{
				{Name: "Amount", Value: []byte(`10`)},
			}}},
		},
		{
			name: "bad amount",
			cb: StkCallback{CallbackMetadata: &CallbackMetadata{Item: []MetadataItem{
				{Name: "Amount", Value: []byte(`"ten"`)},
				{Name: "MpesaReceiptNumber", Value: []byte(`"X1"`)},
			}}},
		},
		{name: "zero amount", cb: withAmount(`0`)},
		{name: "negative amount", cb: withAmount(`-250`)},
		{name: "amount overflows column", cb: withAmount(`1e20`)},
		{name: "amount at column limit", cb: withAmount(`10000000000`)},
		{
			name: "receipt too long",
			cb: StkCallback{CallbackMetadata: &CallbackMetadata{Item: []MetadataItem{
				{Name: "Amount", Value: []byte(`10`)},
				{Name: "MpesaReceiptNumber", Value: []byte(`"` + strings.Repeat("R", 51) + `"`)},
			}}},
		},
		{
			name: "phone too long",
			cb: StkCallback{CallbackMetadata: &CallbackMetadata{Item: []MetadataItem{
				{Name: "Amount", Value: []byte(`10`)},
				{Name: "MpesaReceiptNumber", Value: []byte(`"X1"`)},
				{Name: "PhoneNumber", Value: []byte(strings.Repeat("7", 51))},
			}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.cb.details()
			assert.Error(t, err)
		})
	}
}

func withAmount(raw string) StkCallback {
	return StkCallback{CallbackMetadata: &CallbackMetadata{Item: []MetadataItem{
		{Name: "Amount", Value: []byte(raw)},
		{Name: "MpesaReceiptNumber", Value: []byte(`"X1"`)},
	}}}
}

func TestCallbackDetails_LargestAmount(t *testing.T) {
	cb := withAmount(`9999999999.99`)
	d, err := cb.details()
	require.NoError(t, err)
	assert.Equal(t, "9999999999.99", d.Amount.String())
}

func TestSucceeded_RequiresZeroResultCode(t *testing.T) {
	assert.False(t, (&StkCallback{}).Succeeded())

	code := 1
	assert.False(t, (&StkCallback{ResultCode: &code}).Succeeded())
}

func TestStubGateway(t *testing.T) {
	gw := NewStubGateway(config.MpesaConfig{ShortCode: "174379"})

	res, err := gw.STKPush(context.Background(), PushRequest{
		PhoneNumber: "254712345678",
		Amount:      decimal.NewFromInt(10),
	})

	require.NoError(t, err)
	assert.Equal(t, "0", res.ResponseCode)
	assert.True(t, strings.HasPrefix(res.CheckoutRequestID, "ws_CO_"))
	assert.Len(t, res.CheckoutRequestID, len("ws_CO_")+32)
	assert.True(t, strings.HasPrefix(res.MerchantRequestID, "174379-"))

	other, err := gw.STKPush(context.Background(), PushRequest{})
	require.NoError(t, err)
	assert.NotEqual(t, res.CheckoutRequestID, other.CheckoutRequestID)
}

func TestStubGateway_CancelledContext(t *testing.T) {
	gw := NewStubGateway(config.MpesaConfig{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := gw.STKPush(ctx, PushRequest{})
	assert.ErrorIs(t, err, context.Canceled)
}

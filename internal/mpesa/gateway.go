// AngelaMos | 2026
// gateway.go

package mpesa

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/carterperez-dev/apartment-api/internal/config"
)

type PushRequest struct {
	PhoneNumber      string
	Amount           decimal.Decimal
	AccountReference string
	Description      string
	CallbackURL      string
}

type PushResult struct {
	MerchantRequestID   string
	CheckoutRequestID   string
	ResponseCode        string
	ResponseDescription string
	CustomerMessage     string
}

// Gateway sends a push payment prompt to the payer's phone. The outcome
// arrives later on the callback endpoint, keyed by CheckoutRequestID.
type Gateway interface {
	STKPush(ctx context.Context, req PushRequest) (*PushResult, error)
}

// StubGateway accepts every request without contacting a provider.
type StubGateway struct {
	shortCode string
}

func NewStubGateway(cfg config.MpesaConfig) *StubGateway {
	return &StubGateway{shortCode: cfg.ShortCode}
}

func (g *StubGateway) STKPush(
	ctx context.Context,
	req PushRequest,
) (*PushResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	id := strings.ReplaceAll(uuid.New().String(), "-", "")

	return &PushResult{
		MerchantRequestID:   fmt.Sprintf("%s-%s", g.shortCode, id[:12]),
		CheckoutRequestID:   "ws_CO_" + id,
		ResponseCode:        "0",
		ResponseDescription: "Success. Request accepted for processing",
		CustomerMessage:     "Success. Request accepted for processing",
	}, nil
}

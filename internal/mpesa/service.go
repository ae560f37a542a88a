// AngelaMos | 2026
// service.go

package mpesa

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"

	"github.com/carterperez-dev/apartment-api/internal/config"
	"github.com/carterperez-dev/apartment-api/internal/core"
	"github.com/carterperez-dev/apartment-api/internal/metrics"
	"github.com/carterperez-dev/apartment-api/internal/payment"
	"github.com/carterperez-dev/apartment-api/internal/tenant"
)

const (
	OutcomeRecorded  = "recorded"
	OutcomeFailed    = "failed"
	OutcomeUnmatched = "unmatched"
	OutcomeDuplicate = "duplicate"
	OutcomeInvalid   = "invalid"
)

var errReceiptRecorded = errors.New("receipt already recorded")

type PushInput struct {
	PhoneNumber string
	Amount      decimal.Decimal
	TenantID    int64
}

type Service struct {
	db      *sqlx.DB
	gateway Gateway
	cfg     config.MpesaConfig
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewService(
	db *sqlx.DB,
	gateway Gateway,
	cfg config.MpesaConfig,
	m *metrics.Metrics,
) *Service {
	return &Service{
		db:      db,
		gateway: gateway,
		cfg:     cfg,
		metrics: m,
		now:     time.Now,
	}
}

// InitiatePush asks the gateway to prompt the payer and stores a pending
// transaction so the callback can be matched to the tenant.
func (s *Service) InitiatePush(
	ctx context.Context,
	in PushInput,
) (*PushAck, error) {
	ctx, span := core.StartSpan(ctx, "mpesa.InitiatePush",
		attribute.Int64("tenant.id", in.TenantID),
	)
	defer span.End()

	phone, err := NormalizePhone(in.PhoneNumber)
	if err != nil {
		return nil, err
	}
	if !in.Amount.IsPositive() {
		return nil, core.ValidationError("amount must be a positive number")
	}

	exists, err := tenant.NewRepository(s.db).Exists(ctx, in.TenantID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, core.NotFoundError("tenant")
	}

	result, err := s.gateway.STKPush(ctx, PushRequest{
		PhoneNumber:      phone,
		Amount:           in.Amount,
		AccountReference: s.cfg.AccountRef,
		Description:      fmt.Sprintf("Rent payment for tenant %d", in.TenantID),
		CallbackURL:      s.cfg.CallbackURL,
	})
	if err != nil {
		s.metrics.MpesaPush("error")
		core.SetSpanError(ctx, err)
		return nil, core.NewAppError(
			err,
			"payment gateway unavailable",
			http.StatusBadGateway,
			"GATEWAY_ERROR",
		)
	}

	txn := &Transaction{
		CheckoutRequestID: result.CheckoutRequestID,
		MerchantRequestID: result.MerchantRequestID,
		TenantID:          in.TenantID,
		Amount:            in.Amount,
		PhoneNumber:       phone,
	}

	if err := NewRepository(s.db).CreatePending(ctx, txn); err != nil {
		s.metrics.MpesaPush("error")
		if errors.Is(err, core.ErrNotFound) {
			return nil, core.NotFoundError("tenant")
		}
		return nil, err
	}

	s.metrics.MpesaPush("sent")
	slog.InfoContext(ctx, "stk push sent",
		"checkout_request_id", txn.CheckoutRequestID,
		"tenant_id", txn.TenantID,
	)

	return &PushAck{
		Message:           "STK Push sent. Check your phone.",
		CheckoutRequestID: result.CheckoutRequestID,
		MerchantRequestID: result.MerchantRequestID,
		CustomerMessage:   result.CustomerMessage,
		PhoneNumber:       phone,
		Amount:            in.Amount.InexactFloat64(),
		TenantID:          in.TenantID,
	}, nil
}

func (s *Service) GetTransaction(
	ctx context.Context,
	checkoutRequestID string,
) (*Transaction, error) {
	txn, err := NewRepository(s.db).Get(ctx, checkoutRequestID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, core.NotFoundError("transaction")
		}
		return nil, err
	}
	return txn, nil
}

// HandleCallback settles the pending transaction named in the payload. A
// successful result records the payment for the correlated tenant in the
// same transaction. Unknown or already settled transactions are
// acknowledged without writes.
func (s *Service) HandleCallback(
	ctx context.Context,
	payload CallbackPayload,
) (*CallbackAck, error) {
	cb := payload.Body.StkCallback

	ctx, span := core.StartSpan(ctx, "mpesa.HandleCallback",
		attribute.String("mpesa.checkout_request_id", cb.CheckoutRequestID),
	)
	defer span.End()

	if cb.CheckoutRequestID == "" {
		return s.ack(ctx, OutcomeUnmatched, nil), nil
	}

	var (
		outcome  string
		recorded *payment.Payment
	)

	err := core.InTx(ctx, s.db, func(tx *sqlx.Tx) error {
		repo := NewRepository(tx)

		txn, err := repo.GetForUpdate(ctx, cb.CheckoutRequestID)
		if err != nil {
			if errors.Is(err, core.ErrNotFound) {
				outcome = OutcomeUnmatched
				return nil
			}
			return err
		}

		if !txn.IsPending() {
			outcome = OutcomeDuplicate
			return nil
		}

		txn.ResultCode = cb.ResultCode
		txn.ResultDesc = optionalString(cb.ResultDesc)

		if !cb.Succeeded() {
			txn.Status = StatusFailed
			outcome = OutcomeFailed
			return repo.Settle(ctx, txn)
		}

		details, err := cb.details()
		if err != nil {
			slog.WarnContext(ctx, "malformed callback metadata",
				"checkout_request_id", txn.CheckoutRequestID,
				"error", err,
			)
			txn.Status = StatusFailed
			desc := "malformed callback metadata"
			txn.ResultDesc = &desc
			outcome = OutcomeInvalid
			return repo.Settle(ctx, txn)
		}

		in := payment.RecordInput{
			TenantID:     txn.TenantID,
			Amount:       txn.Amount,
			MpesaReceipt: details.MpesaReceipt,
			PhoneNumber:  txn.PhoneNumber,
			Date:         s.now(),
		}
		if details.HasAmount {
			in.Amount = details.Amount
		}
		if details.PhoneNumber != "" {
			in.PhoneNumber = details.PhoneNumber
		}

		p, err := payment.Record(ctx, tx, in)
		if err != nil {
			if errors.Is(err, core.ErrDuplicateKey) {
				return errReceiptRecorded
			}
			return err
		}

		txn.Status = StatusCompleted
		txn.PaymentID = &p.ID
		if err := repo.Settle(ctx, txn); err != nil {
			return err
		}

		recorded = p
		outcome = OutcomeRecorded
		return nil
	})
	if err != nil {
		if errors.Is(err, errReceiptRecorded) {
			return s.ack(ctx, OutcomeDuplicate, nil), nil
		}
		s.metrics.MpesaCallback("error")
		core.SetSpanError(ctx, err)
		return nil, err
	}

	if recorded != nil {
		s.metrics.PaymentRecorded(recorded.Source(), recorded.Amount.InexactFloat64())
		return s.ack(ctx, outcome, &recorded.ID), nil
	}

	return s.ack(ctx, outcome, nil), nil
}

func (s *Service) ack(
	ctx context.Context,
	outcome string,
	paymentID *int64,
) *CallbackAck {
	s.metrics.MpesaCallback(outcome)
	core.AddSpanEvent(ctx, "mpesa.callback.acknowledged",
		attribute.String("mpesa.outcome", outcome),
	)

	msg := callbackMessages[outcome]
	slog.InfoContext(ctx, "mpesa callback handled",
		"outcome", outcome,
		"payment_id", paymentID,
	)

	return &CallbackAck{
		ResultCode: 0,
		ResultDesc: "Accepted",
		Outcome:    outcome,
		Message:    msg,
		PaymentID:  paymentID,
	}
}

var callbackMessages = map[string]string{
	OutcomeRecorded:  "Payment recorded successfully",
	OutcomeFailed:    "Payment failed or cancelled",
	OutcomeInvalid:   "Payment failed or cancelled",
	OutcomeUnmatched: "Callback ignored: unknown transaction",
	OutcomeDuplicate: "Callback already processed",
}

// NormalizePhone converts local 07XX/01XX numbers to the 254 form the
// gateway expects and rejects anything that is not a digit string.
func NormalizePhone(raw string) (string, error) {
	phone := strings.TrimSpace(raw)
	phone = strings.TrimPrefix(phone, "+")
	phone = strings.ReplaceAll(phone, " ", "")

	if phone == "" {
		return "", core.MissingFieldError("phone_number is required")
	}

	for _, r := range phone {
		if r < '0' || r > '9' {
			return "", core.ValidationError("phone_number must contain digits only")
		}
	}

	if strings.HasPrefix(phone, "0") && len(phone) == 10 {
		phone = "254" + phone[1:]
	}

	if len(phone) < 9 || len(phone) > 15 {
		return "", core.ValidationError("phone_number has an invalid length")
	}

	return phone, nil
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

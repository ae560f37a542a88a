// AngelaMos | 2026
// service.go

package payment

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/carterperez-dev/apartment-api/internal/core"
	"github.com/carterperez-dev/apartment-api/internal/metrics"
	"github.com/carterperez-dev/apartment-api/internal/room"
	"github.com/carterperez-dev/apartment-api/internal/tenant"
)

type CreateInput struct {
	Amount   decimal.Decimal
	TenantID int64
	RoomID   *int64
	Date     *time.Time
}

// RecordInput describes a payment confirmed by the mobile-money gateway.
type RecordInput struct {
	TenantID     int64
	Amount       decimal.Decimal
	MpesaReceipt string
	PhoneNumber  string
	Date         time.Time
}

type Service struct {
	db      *sqlx.DB
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewService(db *sqlx.DB, m *metrics.Metrics) *Service {
	return &Service{
		db:      db,
		metrics: m,
		now:     time.Now,
	}
}

func (s *Service) List(ctx context.Context) ([]Payment, error) {
	return NewRepository(s.db).List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*Payment, error) {
	payment, err := NewRepository(s.db).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, core.NotFoundError("payment")
		}
		return nil, err
	}
	return payment, nil
}

// Create records a manual payment. Nothing is written when the tenant or
// an explicit room does not exist.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Payment, error) {
	if !in.Amount.IsPositive() {
		return nil, core.ValidationError("amount must be a positive number")
	}

	date := dateOf(s.now())
	if in.Date != nil {
		date = dateOf(*in.Date)
	}

	payment := &Payment{
		PaymentDate: date,
		Amount:      in.Amount,
		TenantID:    in.TenantID,
	}

	err := core.InTx(ctx, s.db, func(tx *sqlx.Tx) error {
		exists, err := tenant.NewRepository(tx).Exists(ctx, in.TenantID)
		if err != nil {
			return err
		}
		if !exists {
			return core.NotFoundError("tenant")
		}

		payment.RoomID, err = resolveRoom(ctx, tx, in.TenantID, in.RoomID)
		if err != nil {
			return err
		}

		return NewRepository(tx).Create(ctx, payment)
	})
	if err != nil {
		return nil, err
	}

	s.metrics.PaymentRecorded(payment.Source(), payment.Amount.InexactFloat64())
	slog.InfoContext(ctx, "payment recorded",
		"payment_id", payment.ID,
		"tenant_id", payment.TenantID,
		"source", payment.Source(),
	)

	return payment, nil
}

func (s *Service) UpdateAmount(
	ctx context.Context,
	id int64,
	amount decimal.Decimal,
) (*Payment, error) {
	if !amount.IsPositive() {
		return nil, core.ValidationError("amount must be a positive number")
	}

	payment, err := NewRepository(s.db).UpdateAmount(ctx, id, amount)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, core.NotFoundError("payment")
		}
		return nil, err
	}

	return payment, nil
}

// Record writes a gateway-confirmed payment using the caller's transaction.
// The caller has already resolved the tenant.
func Record(
	ctx context.Context,
	db core.DBTX,
	in RecordInput,
) (*Payment, error) {
	roomID, err := resolveRoom(ctx, db, in.TenantID, nil)
	if err != nil {
		return nil, err
	}

	payment := &Payment{
		PaymentDate:  dateOf(in.Date),
		Amount:       in.Amount,
		TenantID:     in.TenantID,
		RoomID:       roomID,
		MpesaReceipt: &in.MpesaReceipt,
		PhoneNumber:  &in.PhoneNumber,
	}

	if err := NewRepository(db).Create(ctx, payment); err != nil {
		return nil, err
	}

	return payment, nil
}

// resolveRoom validates an explicit room or falls back to the lowest-id room
// the tenant currently holds. A tenant without a room yields nil.
func resolveRoom(
	ctx context.Context,
	db core.DBTX,
	tenantID int64,
	explicit *int64,
) (*int64, error) {
	rooms := room.NewRepository(db)

	if explicit != nil {
		if _, err := rooms.GetByID(ctx, *explicit); err != nil {
			if errors.Is(err, core.ErrNotFound) {
				return nil, core.NotFoundError("room")
			}
			return nil, err
		}
		return explicit, nil
	}

	held, err := rooms.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if len(held) == 0 {
		return nil, nil
	}

	id := held[0].ID
	return &id, nil
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

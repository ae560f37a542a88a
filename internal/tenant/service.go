// AngelaMos | 2026
// service.go

package tenant

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"

	"github.com/carterperez-dev/apartment-api/internal/core"
	"github.com/carterperez-dev/apartment-api/internal/metrics"
	"github.com/carterperez-dev/apartment-api/internal/room"
)

type CreateInput struct {
	Name       string
	Phone      string
	Email      string
	NationalID string
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

func (s *Service) List(ctx context.Context) ([]Tenant, error) {
	return NewRepository(s.db).List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*Tenant, error) {
	tenant, err := NewRepository(s.db).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, core.NotFoundError("tenant")
		}
		return nil, err
	}
	return tenant, nil
}

// Create registers a tenant with today's move-in date and no room.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Tenant, error) {
	name := strings.TrimSpace(in.Name)
	phone := strings.TrimSpace(in.Phone)
	email := strings.TrimSpace(in.Email)

	switch {
	case name == "":
		return nil, core.MissingFieldError("name is required")
	case phone == "":
		return nil, core.MissingFieldError("phone is required")
	case email == "":
		return nil, core.MissingFieldError("email is required")
	}

	tenant := &Tenant{
		Name:         name,
		Email:        email,
		Phone:        &phone,
		NationalID:   optionalString(in.NationalID),
		MovingInDate: dateOf(s.now()),
	}

	if err := NewRepository(s.db).Create(ctx, tenant); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "tenant created", "tenant_id", tenant.ID)
	return tenant, nil
}

func (s *Service) Update(
	ctx context.Context,
	id int64,
	req UpdateTenantRequest,
) (*Tenant, error) {
	var updated *Tenant

	err := core.InTx(ctx, s.db, func(tx *sqlx.Tx) error {
		repo := NewRepository(tx)

		tenant, err := repo.GetByIDForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, core.ErrNotFound) {
				return core.NotFoundError("tenant")
			}
			return err
		}

		if req.Name != nil {
			tenant.Name = *req.Name
		}
		if req.Phone != nil {
			tenant.Phone = req.Phone
		}
		if req.Email != nil {
			tenant.Email = *req.Email
		}
		if req.NationalID.Set {
			tenant.NationalID = req.NationalID.Value
		}
		if req.MovingOutDate.Set {
			out, err := parseMoveOut(req.MovingOutDate.Value, tenant.MovingInDate)
			if err != nil {
				return err
			}
			tenant.MovingOutDate = out
		}

		if err := repo.Update(ctx, tenant); err != nil {
			return err
		}

		updated = tenant
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// Delete vacates every room the tenant holds and removes the tenant in one
// transaction. Payments and pending mobile-money transactions of the tenant
// go with it.
func (s *Service) Delete(ctx context.Context, id int64) error {
	ctx, span := core.StartSpan(ctx, "tenant.Delete",
		attribute.Int64("tenant.id", id),
	)
	defer span.End()

	var released int64

	err := core.InTx(ctx, s.db, func(tx *sqlx.Tx) error {
		repo := NewRepository(tx)

		if _, err := repo.GetByIDForUpdate(ctx, id); err != nil {
			if errors.Is(err, core.ErrNotFound) {
				return core.NotFoundError("tenant")
			}
			return err
		}

		n, err := room.NewRepository(tx).ReleaseByTenant(ctx, id)
		if err != nil {
			return err
		}
		released = n

		return repo.Delete(ctx, id)
	})
	if err != nil {
		if !core.IsAppError(err) {
			core.SetSpanError(ctx, err)
		}
		return err
	}

	s.metrics.RoomsReleased(int(released))
	span.SetAttributes(attribute.Int64("rooms.released", released))

	slog.InfoContext(ctx, "tenant deleted",
		"tenant_id", id,
		"rooms_released", released,
	)

	return nil
}

func (s *Service) Balance(ctx context.Context, id int64) (*Statement, error) {
	var stmt *Statement

	opts := &sql.TxOptions{ReadOnly: true, Isolation: sql.LevelRepeatableRead}
	err := core.InTxWithOptions(ctx, s.db, opts, func(tx *sqlx.Tx) error {
		repo := NewRepository(tx)

		tenant, err := repo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, core.ErrNotFound) {
				return core.NotFoundError("tenant")
			}
			return err
		}

		rooms, err := room.NewRepository(tx).ListByTenant(ctx, id)
		if err != nil {
			return err
		}

		rent := decimal.Zero
		for i := range rooms {
			rent = rent.Add(rooms[i].RentAmount)
		}

		paid, err := repo.TotalPaid(ctx, id)
		if err != nil {
			return err
		}

		stmt = BuildStatement(tenant, rent, paid, s.now())
		return nil
	})
	if err != nil {
		return nil, err
	}

	return stmt, nil
}

func parseMoveOut(raw *string, movingIn time.Time) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}

	out, err := time.Parse(time.DateOnly, *raw)
	if err != nil {
		return nil, core.ValidationError("moving_out_date must be a YYYY-MM-DD date")
	}

	if out.Before(dateOf(movingIn)) {
		return nil, core.ValidationError(
			fmt.Sprintf(
				"moving_out_date cannot be before moving_in_date %s",
				movingIn.Format(time.DateOnly),
			),
		)
	}

	return &out, nil
}

func optionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// AngelaMos | 2026
// service.go

package room

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/carterperez-dev/apartment-api/internal/core"
)

const (
	CodeDuplicateRoom = "DUPLICATE_ROOM_CODE"
	CodeRoomOccupied  = "ROOM_OCCUPIED"
)

type CreateInput struct {
	RoomCode   string
	Type       string
	RentAmount decimal.Decimal
	Status     string
}

type Service struct {
	db *sqlx.DB
}

func NewService(db *sqlx.DB) *Service {
	return &Service{db: db}
}

func (s *Service) List(ctx context.Context) ([]Room, error) {
	return NewRepository(s.db).List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*Room, error) {
	room, err := NewRepository(s.db).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, core.NotFoundError("room")
		}
		return nil, err
	}
	return room, nil
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*Room, error) {
	in.RoomCode = strings.TrimSpace(in.RoomCode)
	if in.RoomCode == "" {
		return nil, core.MissingFieldError("room_number is required")
	}
	if strings.TrimSpace(in.Type) == "" {
		return nil, core.MissingFieldError("room_type is required")
	}
	if !in.RentAmount.IsPositive() {
		return nil, core.ValidationError("rent_amount must be a positive number")
	}
	if in.Status == "" {
		in.Status = StatusVacant
	}
	if !ValidStatus(in.Status) {
		return nil, core.ValidationError("status must be one of: vacant occupied")
	}
	if in.Status != StatusVacant {
		return nil, core.ValidationError(
			"a new room has no tenant and must be vacant",
		)
	}

	room := &Room{
		RoomCode:   in.RoomCode,
		Status:     in.Status,
		Type:       in.Type,
		RentAmount: in.RentAmount,
	}

	err := core.InTx(ctx, s.db, func(tx *sqlx.Tx) error {
		repo := NewRepository(tx)

		exists, err := repo.ExistsByCode(ctx, room.RoomCode)
		if err != nil {
			return err
		}
		if exists {
			return duplicateCode()
		}

		if err := repo.Create(ctx, room); err != nil {
			if errors.Is(err, core.ErrDuplicateKey) {
				return duplicateCode()
			}
			return err
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "room created",
		"room_id", room.ID,
		"room_code", room.RoomCode,
	)

	return room, nil
}

// UpdateAssignment applies tenant_id and status. Status always follows the
// resulting tenant reference, so a contradicting status is rejected.
func (s *Service) UpdateAssignment(
	ctx context.Context,
	id int64,
	req UpdateRoomRequest,
) (*Room, error) {
	var updated *Room

	err := core.InTx(ctx, s.db, func(tx *sqlx.Tx) error {
		repo := NewRepository(tx)

		current, err := repo.GetByIDForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, core.ErrNotFound) {
				return core.NotFoundError("room")
			}
			return err
		}

		tenantID := current.TenantID
		if req.TenantID.Set {
			tenantID = req.TenantID.Value
		}

		if tenantID != nil && (current.TenantID == nil || *current.TenantID != *tenantID) {
			exists, err := repo.TenantExists(ctx, *tenantID)
			if err != nil {
				return err
			}
			if !exists {
				return core.NotFoundError("tenant")
			}
		}

		status := StatusFor(tenantID)
		if req.Status.Set {
			if req.Status.Value == nil || !ValidStatus(*req.Status.Value) {
				return core.ValidationError("status must be one of: vacant occupied")
			}
			if *req.Status.Value != status {
				return statusMismatch(status)
			}
		}

		updated, err = repo.UpdateAssignment(ctx, id, tenantID, status)
		if err != nil {
			if errors.Is(err, core.ErrNotFound) {
				return core.NotFoundError("tenant")
			}
			return err
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// Delete removes a vacant room. An occupied room is left untouched.
func (s *Service) Delete(ctx context.Context, id int64) error {
	err := core.InTx(ctx, s.db, func(tx *sqlx.Tx) error {
		repo := NewRepository(tx)

		current, err := repo.GetByIDForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, core.ErrNotFound) {
				return core.NotFoundError("room")
			}
			return err
		}

		if current.IsOccupied() {
			return core.ConflictError(
				"cannot delete room with active tenant",
				CodeRoomOccupied,
			)
		}

		return repo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	slog.InfoContext(ctx, "room deleted", "room_id", id)
	return nil
}

func duplicateCode() error {
	return core.ConflictError("room number already exists", CodeDuplicateRoom)
}

func statusMismatch(want string) error {
	if want == StatusOccupied {
		return core.ValidationError("a room with a tenant must be occupied")
	}
	return core.ValidationError(
		fmt.Sprintf("a room without a tenant must be %s", StatusVacant),
	)
}

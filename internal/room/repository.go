// AngelaMos | 2026
// repository.go

package room

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/carterperez-dev/apartment-api/internal/core"
)

type Repository interface {
	List(ctx context.Context) ([]Room, error)
	ListByTenant(ctx context.Context, tenantID int64) ([]Room, error)
	GetByID(ctx context.Context, id int64) (*Room, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*Room, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	TenantExists(ctx context.Context, tenantID int64) (bool, error)
	Create(ctx context.Context, room *Room) error
	UpdateAssignment(
		ctx context.Context,
		id int64,
		tenantID *int64,
		status string,
	) (*Room, error)
	Delete(ctx context.Context, id int64) error
	ReleaseByTenant(ctx context.Context, tenantID int64) (int64, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const roomColumns = `id, room_code, status, type, rent_amount, tenant_id,
	created_at, updated_at`

func (r *repository) List(ctx context.Context) ([]Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms ORDER BY id`

	rooms := make([]Room, 0)
	if err := r.db.SelectContext(ctx, &rooms, query); err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}

	return rooms, nil
}

func (r *repository) ListByTenant(
	ctx context.Context,
	tenantID int64,
) ([]Room, error) {
	query := `SELECT ` + roomColumns + `
		FROM rooms
		WHERE tenant_id = $1
		ORDER BY id`

	rooms := make([]Room, 0)
	if err := r.db.SelectContext(ctx, &rooms, query, tenantID); err != nil {
		return nil, fmt.Errorf("list rooms by tenant: %w", err)
	}

	return rooms, nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms WHERE id = $1`
	return r.get(ctx, query, id)
}

func (r *repository) GetByIDForUpdate(
	ctx context.Context,
	id int64,
) (*Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms WHERE id = $1 FOR UPDATE`
	return r.get(ctx, query, id)
}

func (r *repository) get(
	ctx context.Context,
	query string,
	id int64,
) (*Room, error) {
	var room Room
	err := r.db.GetContext(ctx, &room, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get room: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get room: %w", err)
	}

	return &room, nil
}

func (r *repository) ExistsByCode(
	ctx context.Context,
	code string,
) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM rooms WHERE room_code = $1)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, code); err != nil {
		return false, fmt.Errorf("check room code: %w", err)
	}

	return exists, nil
}

func (r *repository) TenantExists(
	ctx context.Context,
	tenantID int64,
) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM tenants WHERE id = $1)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, tenantID); err != nil {
		return false, fmt.Errorf("check tenant: %w", err)
	}

	return exists, nil
}

func (r *repository) Create(ctx context.Context, room *Room) error {
	query := `
		INSERT INTO rooms (room_code, status, type, rent_amount, tenant_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		room.RoomCode,
		room.Status,
		room.Type,
		room.RentAmount,
		room.TenantID,
	).Scan(&room.ID, &room.CreatedAt, &room.UpdatedAt)
	if err != nil {
		if core.IsUniqueViolation(err) {
			return fmt.Errorf("create room: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create room: %w", err)
	}

	return nil
}

func (r *repository) UpdateAssignment(
	ctx context.Context,
	id int64,
	tenantID *int64,
	status string,
) (*Room, error) {
	query := `
		UPDATE rooms
		SET tenant_id = $2, status = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + roomColumns

	var room Room
	err := r.db.GetContext(ctx, &room, query, id, tenantID, status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("update room: %w", core.ErrNotFound)
	}
	if err != nil {
		if core.IsForeignKeyViolation(err) {
			return nil, fmt.Errorf("update room: tenant: %w", core.ErrNotFound)
		}
		return nil, fmt.Errorf("update room: %w", err)
	}

	return &room, nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM rooms WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete room: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete room: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete room: %w", core.ErrNotFound)
	}

	return nil
}

// ReleaseByTenant vacates every room referencing the tenant and reports
// how many were freed.
func (r *repository) ReleaseByTenant(
	ctx context.Context,
	tenantID int64,
) (int64, error) {
	query := `
		UPDATE rooms
		SET tenant_id = NULL, status = 'vacant', updated_at = NOW()
		WHERE tenant_id = $1`

	result, err := r.db.ExecContext(ctx, query, tenantID)
	if err != nil {
		return 0, fmt.Errorf("release rooms: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("release rooms: %w", err)
	}

	return rows, nil
}

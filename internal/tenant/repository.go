// AngelaMos | 2026
// repository.go

package tenant

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/carterperez-dev/apartment-api/internal/core"
)

type Repository interface {
	List(ctx context.Context) ([]Tenant, error)
	GetByID(ctx context.Context, id int64) (*Tenant, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*Tenant, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Create(ctx context.Context, tenant *Tenant) error
	Update(ctx context.Context, tenant *Tenant) error
	Delete(ctx context.Context, id int64) error
	TotalPaid(ctx context.Context, id int64) (decimal.Decimal, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const tenantSelect = `
	SELECT t.id, t.tenant_name, t.tenant_email, t.phone_number, t.national_id,
		t.moving_in_date, t.moving_out_date, t.created_at, t.updated_at,
		(SELECT MIN(r.id) FROM rooms r WHERE r.tenant_id = t.id) AS room_id
	FROM tenants t`

func (r *repository) List(ctx context.Context) ([]Tenant, error) {
	query := tenantSelect + ` ORDER BY t.id`

	tenants := make([]Tenant, 0)
	if err := r.db.SelectContext(ctx, &tenants, query); err != nil {
		return nil, fmt.Errorf("list tenants: %w", err)
	}

	return tenants, nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Tenant, error) {
	return r.get(ctx, tenantSelect+` WHERE t.id = $1`, id)
}

func (r *repository) GetByIDForUpdate(
	ctx context.Context,
	id int64,
) (*Tenant, error) {
	return r.get(ctx, tenantSelect+` WHERE t.id = $1 FOR UPDATE OF t`, id)
}

func (r *repository) get(
	ctx context.Context,
	query string,
	id int64,
) (*Tenant, error) {
	var tenant Tenant
	err := r.db.GetContext(ctx, &tenant, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get tenant: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get tenant: %w", err)
	}

	return &tenant, nil
}

func (r *repository) Exists(ctx context.Context, id int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM tenants WHERE id = $1)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, id); err != nil {
		return false, fmt.Errorf("check tenant: %w", err)
	}

	return exists, nil
}

func (r *repository) Create(ctx context.Context, tenant *Tenant) error {
	query := `
		INSERT INTO tenants (tenant_name, tenant_email, phone_number,
			national_id, moving_in_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		tenant.Name,
		tenant.Email,
		tenant.Phone,
		tenant.NationalID,
		tenant.MovingInDate,
	).Scan(&tenant.ID, &tenant.CreatedAt, &tenant.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create tenant: %w", err)
	}

	return nil
}

func (r *repository) Update(ctx context.Context, tenant *Tenant) error {
	query := `
		UPDATE tenants
		SET tenant_name = $2, tenant_email = $3, phone_number = $4,
			national_id = $5, moving_out_date = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		tenant.ID,
		tenant.Name,
		tenant.Email,
		tenant.Phone,
		tenant.NationalID,
		tenant.MovingOutDate,
	).Scan(&tenant.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update tenant: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update tenant: %w", err)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM tenants WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete tenant: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete tenant: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete tenant: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) TotalPaid(
	ctx context.Context,
	id int64,
) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(payment_price), 0)
		FROM payments
		WHERE tenant_id = $1`

	var total decimal.Decimal
	if err := r.db.GetContext(ctx, &total, query, id); err != nil {
		return decimal.Zero, fmt.Errorf("sum payments: %w", err)
	}

	return total, nil
}

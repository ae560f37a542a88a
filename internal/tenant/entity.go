// AngelaMos | 2026
// entity.go

package tenant

import (
	"time"
)

type Tenant struct {
	ID            int64      `db:"id"`
	Name          string     `db:"tenant_name"`
	Email         string     `db:"tenant_email"`
	Phone         *string    `db:"phone_number"`
	NationalID    *string    `db:"national_id"`
	MovingInDate  time.Time  `db:"moving_in_date"`
	MovingOutDate *time.Time `db:"moving_out_date"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`

	// RoomID is the lowest-id room currently referencing the tenant. Read only.
	RoomID *int64 `db:"room_id"`
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

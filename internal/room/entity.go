// AngelaMos | 2026
// entity.go

package room

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatusVacant   = "vacant"
	StatusOccupied = "occupied"
)

type Room struct {
	ID         int64           `db:"id"`
	RoomCode   string          `db:"room_code"`
	Status     string          `db:"status"`
	Type       string          `db:"type"`
	RentAmount decimal.Decimal `db:"rent_amount"`
	TenantID   *int64          `db:"tenant_id"`
	CreatedAt  time.Time       `db:"created_at"`
	UpdatedAt  time.Time       `db:"updated_at"`
}

func (r *Room) IsOccupied() bool {
	return r.TenantID != nil
}

// StatusFor is the only status a room may hold for a given tenant reference.
func StatusFor(tenantID *int64) string {
	if tenantID != nil {
		return StatusOccupied
	}
	return StatusVacant
}

func ValidStatus(status string) bool {
	return status == StatusVacant || status == StatusOccupied
}

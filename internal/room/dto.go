// AngelaMos | 2026
// dto.go

package room

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/carterperez-dev/apartment-api/internal/core"
)

type CreateRoomRequest struct {
	RoomNumber string           `json:"room_number" validate:"required,max=100"`
	RoomType   string           `json:"room_type"   validate:"required,max=50"`
	RentAmount *decimal.Decimal `json:"rent_amount" validate:"required"`
	Status     string           `json:"status"      validate:"omitempty,max=50"`
}

// UpdateRoomRequest carries the occupancy fields. An omitted field is left
// unchanged; an explicit null tenant_id vacates the room.
type UpdateRoomRequest struct {
	TenantID core.Optional[int64]  `json:"tenant_id"`
	Status   core.Optional[string] `json:"status"`
}

type RoomResponse struct {
	ID         int64     `json:"id"`
	RoomNumber string    `json:"room_number"`
	RoomType   string    `json:"room_type"`
	RentAmount float64   `json:"rent_amount"`
	Status     string    `json:"status"`
	TenantID   *int64    `json:"tenant_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func ToRoomResponse(r *Room) RoomResponse {
	return RoomResponse{
		ID:         r.ID,
		RoomNumber: r.RoomCode,
		RoomType:   r.Type,
		RentAmount: r.RentAmount.InexactFloat64(),
		Status:     r.Status,
		TenantID:   r.TenantID,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

func ToRoomResponseList(rooms []Room) []RoomResponse {
	out := make([]RoomResponse, 0, len(rooms))
	for i := range rooms {
		out = append(out, ToRoomResponse(&rooms[i]))
	}
	return out
}

// AngelaMos | 2026
// dto.go

package tenant

import (
	"time"

	"github.com/carterperez-dev/apartment-api/internal/core"
)

type CreateTenantRequest struct {
	Name       string `json:"name"        validate:"required,max=255"`
	Phone      string `json:"phone"       validate:"required,max=50"`
	Email      string `json:"email"       validate:"required,email,max=255"`
	NationalID string `json:"national_id" validate:"omitempty,max=100"`
}

type UpdateTenantRequest struct {
	Name          *string               `json:"name"            validate:"omitempty,min=1,max=255"`
	Phone         *string               `json:"phone"           validate:"omitempty,min=1,max=50"`
	Email         *string               `json:"email"           validate:"omitempty,email,max=255"`
	NationalID    core.Optional[string] `json:"national_id"`
	MovingOutDate core.Optional[string] `json:"moving_out_date"`
}

type TenantResponse struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Phone         *string `json:"phone"`
	Email         string  `json:"email"`
	NationalID    *string `json:"national_id"`
	RoomID        *int64  `json:"room_id"`
	MovingInDate  string  `json:"moving_in_date"`
	MovingOutDate *string `json:"moving_out_date"`
}

func ToTenantResponse(t *Tenant) TenantResponse {
	resp := TenantResponse{
		ID:           t.ID,
		Name:         t.Name,
		Phone:        t.Phone,
		Email:        t.Email,
		NationalID:   t.NationalID,
		RoomID:       t.RoomID,
		MovingInDate: t.MovingInDate.Format(time.DateOnly),
	}

	if t.MovingOutDate != nil {
		out := t.MovingOutDate.Format(time.DateOnly)
		resp.MovingOutDate = &out
	}

	return resp
}

func ToTenantResponseList(tenants []Tenant) []TenantResponse {
	out := make([]TenantResponse, 0, len(tenants))
	for i := range tenants {
		out = append(out, ToTenantResponse(&tenants[i]))
	}
	return out
}

type BalanceResponse struct {
	TenantID      int64   `json:"tenant_id"`
	MovingInDate  string  `json:"moving_in_date"`
	AsOf          string  `json:"as_of"`
	MonthsBilled  int     `json:"months_billed"`
	MonthlyRent   float64 `json:"monthly_rent"`
	ExpectedTotal float64 `json:"expected_total"`
	TotalPaid     float64 `json:"total_paid"`
	Balance       float64 `json:"balance"`
	Arrears       float64 `json:"arrears"`
	Credit        float64 `json:"credit"`
}

func ToBalanceResponse(s *Statement) BalanceResponse {
	return BalanceResponse{
		TenantID:      s.TenantID,
		MovingInDate:  s.MovingInDate.Format(time.DateOnly),
		AsOf:          s.AsOf.Format(time.DateOnly),
		MonthsBilled:  s.MonthsBilled,
		MonthlyRent:   s.MonthlyRent.InexactFloat64(),
		ExpectedTotal: s.ExpectedTotal.InexactFloat64(),
		TotalPaid:     s.TotalPaid.InexactFloat64(),
		Balance:       s.Balance.InexactFloat64(),
		Arrears:       s.Arrears().InexactFloat64(),
		Credit:        s.Credit().InexactFloat64(),
	}
}

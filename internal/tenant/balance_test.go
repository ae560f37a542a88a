// AngelaMos | 2026
// balance_test.go

package tenant

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMonthsBilled(t *testing.T) {
	tests := []struct {
		name     string
		movingIn time.Time
		asOf     time.Time
		want     int
	}{
		{"same day", date(2025, 3, 1), date(2025, 3, 1), 1},
		{"end of same month", date(2025, 3, 1), date(2025, 3, 31), 1},
		{"next month", date(2025, 3, 31), date(2025, 4, 1), 2},
		{"across year", date(2024, 11, 15), date(2025, 2, 3), 4},
		{"as-of before move-in", date(2025, 5, 1), date(2025, 4, 1), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MonthsBilled(tt.movingIn, tt.asOf))
		})
	}
}

func TestBuildStatement_CreditWhenOverpaid(t *testing.T) {
	tenant := &Tenant{ID: 2, MovingInDate: date(2025, 1, 5)}

	stmt := BuildStatement(
		tenant,
		decimal.NewFromInt(4000),
		decimal.NewFromInt(10000),
		time.Date(2025, 2, 20, 18, 0, 0, 0, time.UTC),
	)

	assert.Equal(t, 2, stmt.MonthsBilled)
	assert.Equal(t, "8000", stmt.ExpectedTotal.String())
	assert.Equal(t, "-2000", stmt.Balance.String())
	assert.True(t, stmt.Arrears().IsZero())
	assert.Equal(t, "2000", stmt.Credit().String())
	assert.Equal(t, date(2025, 2, 20), stmt.AsOf)
}

func TestBuildStatement_StopsAtMoveOut(t *testing.T) {
	out := date(2025, 3, 15)
	tenant := &Tenant{ID: 3, MovingInDate: date(2025, 1, 1), MovingOutDate: &out}

	stmt := BuildStatement(
		tenant,
		decimal.NewFromInt(1000),
		decimal.Zero,
		date(2025, 9, 1),
	)

	assert.Equal(t, out, stmt.AsOf)
	assert.Equal(t, 3, stmt.MonthsBilled)
	assert.Equal(t, "3000", stmt.Balance.String())
}

func TestBuildStatement_NoRoomOwesNothing(t *testing.T) {
	tenant := &Tenant{ID: 4, MovingInDate: date(2025, 1, 1)}

	stmt := BuildStatement(tenant, decimal.Zero, decimal.NewFromInt(500), date(2025, 6, 1))

	assert.True(t, stmt.ExpectedTotal.IsZero())
	assert.Equal(t, "500", stmt.Credit().String())
}

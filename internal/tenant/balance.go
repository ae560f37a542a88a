// AngelaMos | 2026
// balance.go

package tenant

import (
	"time"

	"github.com/shopspring/decimal"
)

// Statement compares the rent owed since moving in with what was paid.
// Balance is positive when the tenant owes money.
type Statement struct {
	TenantID      int64
	MovingInDate  time.Time
	AsOf          time.Time
	MonthsBilled  int
	MonthlyRent   decimal.Decimal
	ExpectedTotal decimal.Decimal
	TotalPaid     decimal.Decimal
	Balance       decimal.Decimal
}

func (s *Statement) Arrears() decimal.Decimal {
	if s.Balance.IsPositive() {
		return s.Balance
	}
	return decimal.Zero
}

func (s *Statement) Credit() decimal.Decimal {
	if s.Balance.IsNegative() {
		return s.Balance.Neg()
	}
	return decimal.Zero
}

// MonthsBilled counts calendar months from the move-in month through the
// as-of month, both inclusive. It is never less than one.
func MonthsBilled(movingIn, asOf time.Time) int {
	months := (asOf.Year()-movingIn.Year())*12 +
		int(asOf.Month()) - int(movingIn.Month()) + 1
	if months < 1 {
		return 1
	}
	return months
}

func BuildStatement(
	t *Tenant,
	monthlyRent, totalPaid decimal.Decimal,
	now time.Time,
) *Statement {
	asOf := dateOf(now)
	if t.MovingOutDate != nil && t.MovingOutDate.Before(asOf) {
		asOf = dateOf(*t.MovingOutDate)
	}

	months := MonthsBilled(t.MovingInDate, asOf)
	expected := monthlyRent.Mul(decimal.NewFromInt(int64(months)))

	return &Statement{
		TenantID:      t.ID,
		MovingInDate:  dateOf(t.MovingInDate),
		AsOf:          asOf,
		MonthsBilled:  months,
		MonthlyRent:   monthlyRent,
		ExpectedTotal: expected,
		TotalPaid:     totalPaid,
		Balance:       expected.Sub(totalPaid),
	}
}

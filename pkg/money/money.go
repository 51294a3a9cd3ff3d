package money

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Round2 rounds to 2 decimal places, half-up. Every calculator in the
// engine must round through here so that line items sum exactly to the
// totals they are reported under.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// SimpleInterest computes principal * (annualRatePct/100) * days / dayBasis,
// rounded with Round2. annualRatePct is a percentage (12 means 12% p.a.),
// dayBasis is 360 or 365.
func SimpleInterest(principal, annualRatePct decimal.Decimal, days int, dayBasis int) decimal.Decimal {
	if days <= 0 {
		return decimal.Zero.Round(2)
	}
	raw := principal.
		Mul(annualRatePct).
		Mul(decimal.NewFromInt(int64(days))).
		Div(hundred.Mul(decimal.NewFromInt(int64(dayBasis))))
	return Round2(raw)
}

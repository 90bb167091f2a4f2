package calculator

import (
	"errors"

	"github.com/shopspring/decimal"

	"GolfPassport/internal/model"
)

// CalculatePackageMetrics returns the price per credit and the effective
// price of one round in each category for the given package.
func CalculatePackageMetrics(pkg model.MembershipPackage, categories []model.CategoryConfig) (model.PackageMetrics, error) {
	if pkg.Credits <= 0 {
		return model.PackageMetrics{}, errors.New("package credits must be positive")
	}
	perCredit := pkg.Price.Div(decimal.NewFromInt(int64(pkg.Credits)))
	perRound := make(map[model.Category]decimal.Decimal, len(categories))
	for _, c := range categories {
		perRound[c.Category] = perCredit.Mul(decimal.NewFromInt(int64(c.CreditCost)))
	}
	return model.PackageMetrics{PerCredit: perCredit, PerRound: perRound}, nil
}

// SumPrices adds up a list of add-on prices.
func SumPrices(addOns []model.AddOn) decimal.Decimal {
	total := decimal.Zero
	for _, a := range addOns {
		total = total.Add(a.Price)
	}
	return total
}

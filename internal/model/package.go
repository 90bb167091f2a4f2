package model

import "github.com/shopspring/decimal"

// MembershipPackage is a purchasable credit bundle.
type MembershipPackage struct {
	ID          string
	Name        string
	Title       string // audience label, e.g. "Regular golfer"
	Credits     int
	Price       decimal.Decimal
	Recommended bool
}

// AddOn is an optional extra sold alongside a package.
type AddOn struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal
}

// PackageMetrics breaks a package price down per credit and per round.
type PackageMetrics struct {
	PerCredit decimal.Decimal
	PerRound  map[Category]decimal.Decimal
}

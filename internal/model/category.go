package model

// Category is one of the three course tiers.
type Category string

const (
	CategorySignature Category = "Signature"
	CategorySelect    Category = "Select"
	CategoryClassic   Category = "Classic"
)

// Categories lists every tier in rank order (premium first).
var Categories = []Category{CategorySignature, CategorySelect, CategoryClassic}

// Rank orders categories: Signature < Select < Classic. Unknown values sort last.
func (c Category) Rank() int {
	switch c {
	case CategorySignature:
		return 0
	case CategorySelect:
		return 1
	case CategoryClassic:
		return 2
	default:
		return len(Categories)
	}
}

// Valid reports whether c is one of the three known tiers.
func (c Category) Valid() bool {
	return c.Rank() < len(Categories)
}

// CategoryConfig is the per-tier booking policy.
type CategoryConfig struct {
	Category   Category
	CreditCost int    // credits charged per round
	Cap        int    // max rounds per course in this tier
	Color      string // display colour, hex
}

// CategoryCredits holds one credit figure per tier. It is used for bank
// sizes as well as for spent and remaining balances.
type CategoryCredits struct {
	Signature int `json:"signature"`
	Select    int `json:"select"`
	Classic   int `json:"classic"`
}

// Of returns the figure for the given tier; unknown tiers yield 0.
func (cc CategoryCredits) Of(c Category) int {
	switch c {
	case CategorySignature:
		return cc.Signature
	case CategorySelect:
		return cc.Select
	case CategoryClassic:
		return cc.Classic
	}
	return 0
}

// With returns a copy with the figure for c replaced.
func (cc CategoryCredits) With(c Category, n int) CategoryCredits {
	switch c {
	case CategorySignature:
		cc.Signature = n
	case CategorySelect:
		cc.Select = n
	case CategoryClassic:
		cc.Classic = n
	}
	return cc
}

// Total sums all three tiers.
func (cc CategoryCredits) Total() int {
	return cc.Signature + cc.Select + cc.Classic
}

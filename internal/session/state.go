package session

import (
	"github.com/shopspring/decimal"

	"GolfPassport/internal/model"
)

// Profile is what the member told us at signup.
type Profile struct {
	Name     string
	Email    string `validate:"omitempty,email"`
	Postcode string
	Handicap int `validate:"gte=0,lte=54"`
	Area     model.SearchArea
}

// State is one authoritative snapshot of a member session. A Session never
// edits a State in place; each change builds a new one and swaps it in.
type State struct {
	Profile    Profile
	Package    model.MembershipPackage
	TopUps     int // credits bought on top of the package
	Banks      model.CategoryCredits
	Allocation model.Allocation
	AddOns     []string // selected add-on IDs, in catalog order
	Bookings   []model.Booking
}

// TotalCredits is the package balance plus any top-ups.
func (s State) TotalCredits() int {
	return s.Package.Credits + s.TopUps
}

// View is a State plus the balances derived from that same State.
type View struct {
	State
	Spent      model.CategoryCredits
	Remaining  model.CategoryCredits
	AddOnTotal decimal.Decimal
}

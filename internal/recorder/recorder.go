package recorder

import "GolfPassport/internal/model"

// Allocation actions.
const (
	ActionIncrement = "INCREMENT"
	ActionDecrement = "DECREMENT"
	ActionRefused   = "REFUSED"
	ActionBooked    = "BOOKED" // a round consumed by a booking
)

// PackageEvent records a package selection and the banks it produced.
type PackageEvent struct {
	SessionID    string
	PackageID    string
	TotalCredits int
	Banks        model.CategoryCredits
}

// AllocationEvent records one attempted change to the allocation.
type AllocationEvent struct {
	SessionID   string
	CourseID    int
	Category    model.Category
	Action      string // one of the Action* constants
	RoundsAfter int
	Remaining   int // category balance after the change
	Reason      string
}

// TopUpEvent records extra credits bought on top of the package.
type TopUpEvent struct {
	SessionID  string
	Credits    int
	TotalAfter int
	Banks      model.CategoryCredits
}

// Recorder keeps a history of session activity for later analysis.
// It never stores bookings themselves.
type Recorder interface {
	RecordPackage(evt *PackageEvent) error
	RecordAllocation(evt *AllocationEvent) error
	RecordTopUp(evt *TopUpEvent) error
	Close() error
}

package session

import (
	"fmt"
	"iter"
	"math"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"GolfPassport/internal/bank"
	"GolfPassport/internal/calculator"
	"GolfPassport/internal/catalog"
	"GolfPassport/internal/model"
	"GolfPassport/internal/recorder"
)

// ballsLeadTime is how far ahead a round must be for the dashboard to offer
// ordering balls for it.
const ballsLeadTime = 48

// Session owns a member's in-memory state: package, banks, allocation,
// add-ons and bookings. All changes go through its methods, which hold the
// lock and replace the whole State value.
type Session struct {
	mu      sync.Mutex
	id      uuid.UUID
	catalog *catalog.Catalog
	rec     recorder.Recorder
	log     zerolog.Logger
	state   State
}

// New starts a session for profile on the given package.
func New(cat *catalog.Catalog, profile Profile, packageID string, rec recorder.Recorder, log zerolog.Logger) (*Session, error) {
	if err := model.Validate(profile); err != nil {
		return nil, fmt.Errorf("profile: %w", err)
	}
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	id := uuid.New()
	s := &Session{
		id:      id,
		catalog: cat,
		rec:     rec,
		log:     log.With().Str("session_id", id.String()).Logger(),
		state:   State{Profile: profile},
	}
	if err := s.SelectPackage(packageID); err != nil {
		return nil, err
	}
	return s, nil
}

// ID identifies the session in logs and recorded history.
func (s *Session) ID() string { return s.id.String() }

// Snapshot returns the current state with spent and remaining balances
// derived from it.
func (s *Session) Snapshot() View {
	s.mu.Lock()
	st := s.state
	s.mu.Unlock()
	st.AddOns = slices.Clone(st.AddOns)
	st.Bookings = slices.Clone(st.Bookings)
	return s.view(st)
}

func (s *Session) view(st State) View {
	spent := bank.ComputeSpent(st.Allocation, s.catalog)
	var addOns []model.AddOn
	for _, id := range st.AddOns {
		if a, ok := s.catalog.AddOn(id); ok {
			addOns = append(addOns, a)
		}
	}
	return View{
		State:      st,
		Spent:      spent,
		Remaining:  bank.Remaining(st.Banks, spent),
		AddOnTotal: calculator.SumPrices(addOns),
	}
}

// SelectPackage switches the membership package and re-partitions the banks.
// The allocation is kept; rounds that no longer fit simply leave the bank
// at zero remaining until they are given back.
func (s *Session) SelectPackage(packageID string) error {
	pkg, ok := s.catalog.Package(packageID)
	if !ok {
		return fmt.Errorf("%w: %q", model.ErrUnknownPackage, packageID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state
	if pkg.Credits > math.MaxInt-next.TopUps {
		return fmt.Errorf("%w: package %s plus %d top-up credits overflows", model.ErrInvalidArgument, pkg.ID, next.TopUps)
	}
	next.Package = pkg
	banks, err := bank.PartitionBanks(next.TotalCredits())
	if err != nil {
		return err
	}
	next.Banks = banks
	s.state = next

	s.log.Info().Str("package", pkg.ID).Int("credits", next.TotalCredits()).
		Int("signature", banks.Signature).Int("select", banks.Select).Int("classic", banks.Classic).
		Msg("package selected")
	if err := s.rec.RecordPackage(&recorder.PackageEvent{
		SessionID:    s.ID(),
		PackageID:    pkg.ID,
		TotalCredits: next.TotalCredits(),
		Banks:        banks,
	}); err != nil {
		s.log.Error().Err(err).Msg("record package event")
	}
	return nil
}

// TopUp buys extra credits and re-partitions the banks over the new total.
func (s *Session) TopUp(credits int) error {
	if credits <= 0 {
		return fmt.Errorf("%w: top-up of %d credits", model.ErrInvalidArgument, credits)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state
	if credits > math.MaxInt-next.TotalCredits() {
		return fmt.Errorf("%w: top-up of %d credits overflows the balance", model.ErrInvalidArgument, credits)
	}
	next.TopUps += credits
	banks, err := bank.PartitionBanks(next.TotalCredits())
	if err != nil {
		return err
	}
	next.Banks = banks
	s.state = next

	s.log.Info().Int("credits", credits).Int("total", next.TotalCredits()).Msg("credits topped up")
	if err := s.rec.RecordTopUp(&recorder.TopUpEvent{
		SessionID:  s.ID(),
		Credits:    credits,
		TotalAfter: next.TotalCredits(),
		Banks:      banks,
	}); err != nil {
		s.log.Error().Err(err).Msg("record top-up event")
	}
	return nil
}

// SetArea changes the home point and search radius.
func (s *Session) SetArea(area model.SearchArea) error {
	if err := model.Validate(area); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.state
	next.Profile.Area = area
	s.state = next
	return nil
}

// Courses lists catalog courses inside the member's radius, best category first.
func (s *Session) Courses() (iter.Seq[model.RankedCourse], error) {
	s.mu.Lock()
	area := s.state.Profile.Area
	s.mu.Unlock()
	return s.catalog.RankedWithinRadius(area)
}

// Increment adds one round at courseID if the category cap and bank allow
// it. A refused increment leaves the state untouched and returns the reason
// (model.ErrCapReached, model.ErrInsufficientCredits or model.ErrUnknownCourse).
func (s *Session) Increment(courseID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.state
	spent := bank.ComputeSpent(cur.Allocation, s.catalog)
	if err := bank.Check(s.catalog, courseID, cur.Allocation, cur.Banks, spent); err != nil {
		s.log.Debug().Int("course_id", courseID).Err(err).Msg("increment refused")
		s.record(courseID, recorder.ActionRefused, cur, err.Error())
		return err
	}

	next := cur
	next.Allocation = bank.Increment(cur.Allocation, courseID)
	s.state = next
	s.record(courseID, recorder.ActionIncrement, next, "")
	return nil
}

// Decrement gives one round at courseID back. It is never refused by the
// banks and stops at zero.
func (s *Session) Decrement(courseID int) error {
	if _, ok := s.catalog.Course(courseID); !ok {
		return fmt.Errorf("%w: %d", model.ErrUnknownCourse, courseID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state
	next.Allocation = bank.Decrement(next.Allocation, courseID)
	s.state = next
	s.record(courseID, recorder.ActionDecrement, next, "")
	return nil
}

// ToggleAddOn selects the add-on if it is not selected and deselects it otherwise.
func (s *Session) ToggleAddOn(id string) error {
	if _, ok := s.catalog.AddOn(id); !ok {
		return fmt.Errorf("%w: %q", model.ErrUnknownAddOn, id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state
	selected := make(map[string]bool, len(next.AddOns)+1)
	for _, a := range next.AddOns {
		selected[a] = true
	}
	selected[id] = !selected[id]

	next.AddOns = nil
	for _, a := range s.catalog.AddOns() {
		if selected[a.ID] {
			next.AddOns = append(next.AddOns, a.ID)
		}
	}
	s.state = next
	return nil
}

// Book confirms a tee time at courseID, using up one of its allocated rounds.
func (s *Session) Book(courseID int, when time.Time, extras model.BookingExtras) (model.Booking, error) {
	if _, ok := s.catalog.Course(courseID); !ok {
		return model.Booking{}, fmt.Errorf("%w: %d", model.ErrUnknownCourse, courseID)
	}
	if when.IsZero() {
		return model.Booking{}, fmt.Errorf("%w: booking needs a date and time", model.ErrInvalidArgument)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.state
	if cur.Allocation.Rounds(courseID) == 0 {
		return model.Booking{}, fmt.Errorf("%w: %d", model.ErrNoRoundsAllocated, courseID)
	}

	b := model.Booking{ID: uuid.New(), CourseID: courseID, When: when, Extras: extras}
	next := cur
	next.Allocation = bank.Decrement(cur.Allocation, courseID)
	next.Bookings = append(slices.Clone(cur.Bookings), b)
	s.state = next

	s.log.Info().Str("booking_id", b.ID.String()).Int("course_id", courseID).Time("when", when).Msg("round booked")
	s.record(courseID, recorder.ActionBooked, next, "")
	return b, nil
}

// NextRound returns the soonest booking after now, if any.
func (s *Session) NextRound(now time.Time) (model.NextRound, bool) {
	s.mu.Lock()
	bookings := s.state.Bookings
	s.mu.Unlock()

	var (
		next  model.Booking
		found bool
	)
	for _, b := range bookings {
		if !b.When.After(now) {
			continue
		}
		if !found || b.When.Before(next.When) {
			next, found = b, true
		}
	}
	if !found {
		return model.NextRound{}, false
	}

	until := next.When.Sub(now)
	hours := int(until / time.Hour)
	minutes := int((until % time.Hour) / time.Minute)
	return model.NextRound{
		Booking:    next,
		Hours:      hours,
		Minutes:    minutes,
		OfferBalls: hours > ballsLeadTime,
	}, true
}

// DefaultBookingTime proposes tomorrow at 09:00 in now's location.
func DefaultBookingTime(now time.Time) time.Time {
	y, m, d := now.AddDate(0, 0, 1).Date()
	return time.Date(y, m, d, 9, 0, 0, 0, now.Location())
}

// record must be called with s.mu held.
func (s *Session) record(courseID int, action string, st State, reason string) {
	evt := &recorder.AllocationEvent{
		SessionID:   s.ID(),
		CourseID:    courseID,
		Action:      action,
		RoundsAfter: st.Allocation.Rounds(courseID),
		Reason:      reason,
	}
	if course, ok := s.catalog.Course(courseID); ok {
		evt.Category = course.Category
		spent := bank.ComputeSpent(st.Allocation, s.catalog)
		evt.Remaining = bank.Remaining(st.Banks, spent).Of(course.Category)
	}
	if err := s.rec.RecordAllocation(evt); err != nil {
		s.log.Error().Err(err).Msg("record allocation event")
	}
}

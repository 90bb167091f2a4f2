package session

import (
	"math"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"GolfPassport/internal/catalog"
	"GolfPassport/internal/model"
	"GolfPassport/internal/recorder"
)

const (
	ganton     = 1
	alwoodley  = 2
	headingley = 16
	drax       = 100
)

type memRecorder struct {
	mu          sync.Mutex
	packages    []recorder.PackageEvent
	allocations []recorder.AllocationEvent
	topUps      []recorder.TopUpEvent
}

func (m *memRecorder) RecordPackage(evt *recorder.PackageEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.packages = append(m.packages, *evt)
	return nil
}

func (m *memRecorder) RecordAllocation(evt *recorder.AllocationEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.allocations = append(m.allocations, *evt)
	return nil
}

func (m *memRecorder) RecordTopUp(evt *recorder.TopUpEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.topUps = append(m.topUps, *evt)
	return nil
}

func (m *memRecorder) Close() error { return nil }

func leedsProfile() Profile {
	return Profile{
		Name: "Sam",
		Area: model.SearchArea{Home: model.Point{Lat: 53.8008, Lon: -1.5491}, RadiusMiles: 20},
	}
}

func newTestSession(t *testing.T, packageID string) (*Session, *memRecorder) {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)
	rec := &memRecorder{}
	s, err := New(cat, leedsProfile(), packageID, rec, zerolog.Nop())
	require.NoError(t, err)
	return s, rec
}

func TestNew_PartitionsPackage(t *testing.T) {
	s, rec := newTestSession(t, "core")

	v := s.Snapshot()
	assert.Equal(t, "core", v.Package.ID)
	assert.Equal(t, model.CategoryCredits{Signature: 15, Select: 21, Classic: 14}, v.Banks)
	assert.Equal(t, v.Banks, v.Remaining)
	assert.Equal(t, model.CategoryCredits{}, v.Spent)
	assert.NotEmpty(t, s.ID())

	require.Len(t, rec.packages, 1)
	assert.Equal(t, s.ID(), rec.packages[0].SessionID)
	assert.Equal(t, 50, rec.packages[0].TotalCredits)
}

func TestNew_Errors(t *testing.T) {
	cat, err := catalog.Default()
	require.NoError(t, err)

	_, err = New(cat, leedsProfile(), "platinum", nil, zerolog.Nop())
	assert.ErrorIs(t, err, model.ErrUnknownPackage)

	p := leedsProfile()
	p.Area.RadiusMiles = -1
	_, err = New(cat, p, "core", nil, zerolog.Nop())
	assert.ErrorIs(t, err, model.ErrInvalidArgument)

	for _, bad := range []func(*Profile){
		func(p *Profile) { p.Handicap = 55 },
		func(p *Profile) { p.Handicap = -1 },
		func(p *Profile) { p.Email = "not-an-email" },
	} {
		p := leedsProfile()
		bad(&p)
		_, err = New(cat, p, "core", nil, zerolog.Nop())
		assert.ErrorIs(t, err, model.ErrInvalidArgument, "%+v", p)
	}

	p = leedsProfile()
	p.Email = "sam@example.com"
	p.Handicap = 54
	_, err = New(cat, p, "core", nil, zerolog.Nop())
	assert.NoError(t, err)
}

func TestIncrement_RefusedWhenBankEmpty(t *testing.T) {
	s, rec := newTestSession(t, "core")

	for i := 0; i < 3; i++ {
		require.NoError(t, s.Increment(alwoodley))
	}
	before := s.Snapshot()
	assert.Equal(t, 15, before.Spent.Signature)
	assert.Equal(t, 0, before.Remaining.Signature)

	err := s.Increment(ganton)
	assert.ErrorIs(t, err, model.ErrInsufficientCredits)
	assert.Equal(t, before.Allocation, s.Snapshot().Allocation)

	last := rec.allocations[len(rec.allocations)-1]
	assert.Equal(t, recorder.ActionRefused, last.Action)
	assert.Equal(t, ganton, last.CourseID)
	assert.Equal(t, model.CategorySignature, last.Category)
	assert.NotEmpty(t, last.Reason)
}

func TestIncrement_RefusedAtCap(t *testing.T) {
	s, _ := newTestSession(t, "elite")
	require.NoError(t, s.TopUp(100)) // 250 credits: Signature bank 75, room for 15 rounds

	for i := 0; i < 10; i++ {
		require.NoError(t, s.Increment(ganton))
	}
	err := s.Increment(ganton)
	assert.ErrorIs(t, err, model.ErrCapReached)

	v := s.Snapshot()
	assert.Equal(t, 10, v.Allocation.Rounds(ganton))
	assert.Equal(t, 25, v.Remaining.Signature, "credits remain but the cap still applies")
	assert.NoError(t, s.Increment(alwoodley), "cap is per course")
}

func TestIncrement_UnknownCourse(t *testing.T) {
	s, _ := newTestSession(t, "core")
	assert.ErrorIs(t, s.Increment(4242), model.ErrUnknownCourse)
	assert.ErrorIs(t, s.Decrement(4242), model.ErrUnknownCourse)
}

func TestDecrement_AlwaysAllowedAndFloors(t *testing.T) {
	s, _ := newTestSession(t, "starter")

	require.NoError(t, s.Decrement(drax))
	assert.Equal(t, 0, s.Snapshot().Allocation.Rounds(drax))

	require.NoError(t, s.Increment(drax))
	require.NoError(t, s.Increment(drax))
	require.NoError(t, s.SelectPackage("starter"))
	require.NoError(t, s.Decrement(drax))
	assert.Equal(t, 1, s.Snapshot().Allocation.Rounds(drax))
}

func TestSnapshot_IsStable(t *testing.T) {
	s, _ := newTestSession(t, "core")
	require.NoError(t, s.Increment(headingley))
	old := s.Snapshot()

	require.NoError(t, s.Increment(headingley))
	require.NoError(t, s.ToggleAddOn("guest_pass"))

	assert.Equal(t, 1, old.Allocation.Rounds(headingley))
	assert.Equal(t, 3, old.Spent.Select)
	assert.Empty(t, old.AddOns)
	assert.Equal(t, 2, s.Snapshot().Allocation.Rounds(headingley))

	_, err := s.Book(headingley, time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC), model.BookingExtras{})
	require.NoError(t, err)
	v := s.Snapshot()
	v.Bookings[0].CourseID = 4242
	v.AddOns[0] = "bogus"

	fresh := s.Snapshot()
	assert.Equal(t, headingley, fresh.Bookings[0].CourseID)
	assert.Equal(t, []string{"guest_pass"}, fresh.AddOns)
}

func TestSelectPackage_KeepsAllocationAndClamps(t *testing.T) {
	s, _ := newTestSession(t, "elite")
	for i := 0; i < 8; i++ {
		require.NoError(t, s.Increment(alwoodley))
	}
	require.NoError(t, s.SelectPackage("starter")) // Signature bank 6

	v := s.Snapshot()
	assert.Equal(t, 8, v.Allocation.Rounds(alwoodley))
	assert.Equal(t, 40, v.Spent.Signature)
	assert.Equal(t, 0, v.Remaining.Signature)
	assert.ErrorIs(t, s.Increment(alwoodley), model.ErrInsufficientCredits)

	assert.ErrorIs(t, s.SelectPackage("nope"), model.ErrUnknownPackage)
}

func TestTopUp(t *testing.T) {
	s, rec := newTestSession(t, "core")
	require.NoError(t, s.TopUp(50))

	v := s.Snapshot()
	assert.Equal(t, 100, v.TotalCredits())
	assert.Equal(t, model.CategoryCredits{Signature: 30, Select: 41, Classic: 29}, v.Banks)
	require.Len(t, rec.topUps, 1)
	assert.Equal(t, 100, rec.topUps[0].TotalAfter)

	assert.ErrorIs(t, s.TopUp(0), model.ErrInvalidArgument)
	assert.ErrorIs(t, s.TopUp(-10), model.ErrInvalidArgument)

	// Top-ups survive a package change.
	require.NoError(t, s.SelectPackage("starter"))
	assert.Equal(t, 70, s.Snapshot().TotalCredits())
}

func TestTopUp_RefusesOverflow(t *testing.T) {
	s, _ := newTestSession(t, "core")
	require.NoError(t, s.TopUp(math.MaxInt-50))
	before := s.Snapshot()
	assert.Equal(t, math.MaxInt, before.TotalCredits())
	assert.Equal(t, before.TotalCredits(), before.Banks.Total())

	assert.ErrorIs(t, s.TopUp(1), model.ErrInvalidArgument)
	assert.ErrorIs(t, s.SelectPackage("elite"), model.ErrInvalidArgument)

	after := s.Snapshot()
	assert.Equal(t, before.Banks, after.Banks)
	assert.Equal(t, "core", after.Package.ID)
}

func TestToggleAddOn(t *testing.T) {
	s, _ := newTestSession(t, "core")

	require.NoError(t, s.ToggleAddOn("range_bundle"))
	require.NoError(t, s.ToggleAddOn("guest_pass"))
	v := s.Snapshot()
	assert.Equal(t, []string{"guest_pass", "range_bundle"}, v.AddOns)
	assert.Equal(t, "78", v.AddOnTotal.String())

	require.NoError(t, s.ToggleAddOn("guest_pass"))
	v = s.Snapshot()
	assert.Equal(t, []string{"range_bundle"}, v.AddOns)
	assert.Equal(t, "29", v.AddOnTotal.String())

	assert.ErrorIs(t, s.ToggleAddOn("caddie"), model.ErrUnknownAddOn)
}

func TestBook_ConsumesRound(t *testing.T) {
	s, rec := newTestSession(t, "core")
	require.NoError(t, s.Increment(headingley))
	require.NoError(t, s.Increment(headingley))

	when := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	b, err := s.Book(headingley, when, model.BookingExtras{Cart: true})
	require.NoError(t, err)
	assert.Equal(t, headingley, b.CourseID)
	assert.True(t, b.Extras.Cart)

	v := s.Snapshot()
	assert.Equal(t, 1, v.Allocation.Rounds(headingley))
	require.Len(t, v.Bookings, 1)
	assert.Equal(t, b.ID, v.Bookings[0].ID)
	assert.Equal(t, recorder.ActionBooked, rec.allocations[len(rec.allocations)-1].Action)
}

func TestBook_Errors(t *testing.T) {
	s, _ := newTestSession(t, "core")
	when := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)

	_, err := s.Book(headingley, when, model.BookingExtras{})
	assert.ErrorIs(t, err, model.ErrNoRoundsAllocated)

	_, err = s.Book(4242, when, model.BookingExtras{})
	assert.ErrorIs(t, err, model.ErrUnknownCourse)

	require.NoError(t, s.Increment(headingley))
	_, err = s.Book(headingley, time.Time{}, model.BookingExtras{})
	assert.ErrorIs(t, err, model.ErrInvalidArgument)
	assert.Equal(t, 1, s.Snapshot().Allocation.Rounds(headingley))
}

func TestNextRound(t *testing.T) {
	s, _ := newTestSession(t, "core")
	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

	_, ok := s.NextRound(now)
	assert.False(t, ok)

	for i := 0; i < 3; i++ {
		require.NoError(t, s.Increment(drax))
	}
	_, err := s.Book(drax, now.Add(-2*time.Hour), model.BookingExtras{})
	require.NoError(t, err)
	far, err := s.Book(drax, now.Add(72*time.Hour+30*time.Minute), model.BookingExtras{})
	require.NoError(t, err)

	nr, ok := s.NextRound(now)
	require.True(t, ok)
	assert.Equal(t, far.ID, nr.Booking.ID)
	assert.Equal(t, 72, nr.Hours)
	assert.Equal(t, 30, nr.Minutes)
	assert.True(t, nr.OfferBalls)

	soon, err := s.Book(drax, now.Add(3*time.Hour+5*time.Minute), model.BookingExtras{})
	require.NoError(t, err)
	nr, ok = s.NextRound(now)
	require.True(t, ok)
	assert.Equal(t, soon.ID, nr.Booking.ID)
	assert.Equal(t, 3, nr.Hours)
	assert.Equal(t, 5, nr.Minutes)
	assert.False(t, nr.OfferBalls)
}

func TestDefaultBookingTime(t *testing.T) {
	now := time.Date(2026, 12, 31, 22, 15, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2027, 1, 1, 9, 0, 0, 0, time.UTC), DefaultBookingTime(now))
}

func TestCourses_UsesProfileArea(t *testing.T) {
	s, _ := newTestSession(t, "core")

	seq, err := s.Courses()
	require.NoError(t, err)
	n := 0
	for range seq {
		n++
	}
	assert.Equal(t, 4, n)

	require.NoError(t, s.SetArea(model.SearchArea{Home: model.Point{Lat: 53.8008, Lon: -1.5491}, RadiusMiles: 0}))
	seq, err = s.Courses()
	require.NoError(t, err)
	for range seq {
		t.Fatal("expected no courses at radius 0")
	}

	assert.ErrorIs(t, s.SetArea(model.SearchArea{Home: model.Point{Lat: 100}}), model.ErrInvalidArgument)
}

func TestIncrement_ConcurrentCallersNeverOverspend(t *testing.T) {
	s, _ := newTestSession(t, "enthusiast") // Classic bank 29: 14 rounds at 2

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			_ = s.Increment(id)
		}([]int{drax, 99}[i%2])
	}
	wg.Wait()

	v := s.Snapshot()
	assert.Equal(t, 28, v.Spent.Classic)
	assert.Equal(t, 1, v.Remaining.Classic)
	assert.LessOrEqual(t, v.Spent.Classic, v.Banks.Classic)
}

package model

import (
	"time"

	"github.com/google/uuid"
)

// BookingExtras are the optional round extras chosen at booking time.
type BookingExtras struct {
	Cart      bool `json:"cart"`
	Insurance bool `json:"insurance"`
	Meal      bool `json:"meal"`
	Balls     bool `json:"balls"`
}

// Booking is a confirmed tee time held in the member session.
type Booking struct {
	ID       uuid.UUID
	CourseID int
	When     time.Time
	Extras   BookingExtras
}

// NextRound describes the soonest upcoming booking.
type NextRound struct {
	Booking    Booking
	Hours      int
	Minutes    int
	OfferBalls bool // more than 48h away: time to order balls for it
}

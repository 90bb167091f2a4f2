package model

import "errors"

var (
	ErrInvalidArgument     = errors.New("invalid argument")
	ErrUnknownCourse       = errors.New("unknown course")
	ErrUnknownPackage      = errors.New("unknown package")
	ErrUnknownAddOn        = errors.New("unknown add-on")
	ErrCapReached          = errors.New("category cap reached for course")
	ErrInsufficientCredits = errors.New("insufficient credits in category bank")
	ErrNoRoundsAllocated   = errors.New("no rounds allocated to course")
)

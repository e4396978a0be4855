package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrRecordNotFound     = errors.New("record not found")
	ErrEditConflict       = errors.New("edit conflict")
	ErrCinemaNameTaken    = errors.New("a cinema with this name already exists")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSeatLockHeld       = errors.New("seat(s) are currently held by another customer")
	ErrBookingNotPending  = errors.New("booking is not in pending state")
)

// SessionExistsError is returned when a session already exists for the exact
// (cinema, movie, room, date) tuple. It carries the existing session's ID so
// the caller can redirect into an update flow.
type SessionExistsError struct {
	ExistingSessionID int
}

func (e SessionExistsError) Error() string {
	return fmt.Sprintf("a session already exists for this cinema, movie, room and date (session %d)", e.ExistingSessionID)
}

// TimeRangeOverlapError is returned when a supplied time range overlaps an
// existing session's time ranges for the same (cinema, room, date).
type TimeRangeOverlapError struct {
	StartsAt time.Time
	EndsAt   time.Time
}

func (e TimeRangeOverlapError) Error() string {
	return fmt.Sprintf(
		"time range %s - %s overlaps an existing session in this room",
		e.StartsAt.Format("15:04"),
		e.EndsAt.Format("15:04"),
	)
}

// SeatNotFoundError is returned when a requested seat number does not exist
// in the session's room.
type SeatNotFoundError struct {
	SeatNumber string
}

func (e SeatNotFoundError) Error() string {
	return fmt.Sprintf("seat %s does not exist in this room", e.SeatNumber)
}

// SeatAlreadyBookedError is returned when a requested seat is already booked
// for the requested time range.
type SeatAlreadyBookedError struct {
	SeatNumber string
}

func (e SeatAlreadyBookedError) Error() string {
	return fmt.Sprintf("seat %s is already booked for this time range", e.SeatNumber)
}

package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	// BookingStatusNoSession marks bookings orphaned by a session
	// soft-delete. Terminal until an admin re-assigns the booking.
	BookingStatusNoSession BookingStatus = "no session"
)

// Booking aggregates a user, a session, a chosen time range and a list of
// seats. Seat numbers and the PMR flag are snapshotted at creation time and
// do not track later catalog changes; the time range snapshot is denormalized
// so the booking stays readable after a session soft-delete.
type Booking struct {
	ID        int
	Reference string
	UserID    int
	SessionID int
	MovieID   int
	CinemaID  int
	RoomID    int

	TimeRangeID    int
	TimeRangeStart time.Time
	TimeRangeEnd   time.Time

	Seats     []BookingSeat
	Price     decimal.Decimal
	Status    BookingStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

type BookingSeat struct {
	SeatID     int
	SeatNumber string
	Status     SeatState
	PMR        bool
}

// BookingSummary is the list-view projection of a booking.
type BookingSummary struct {
	ID         int
	Reference  string
	MovieTitle string
	CinemaName string
	Date       time.Time
	Status     BookingStatus
	Price      decimal.Decimal
	CreatedAt  time.Time
}

type BookingRepository interface {
	// CreateWithSeats validates and books the requested seats for the
	// booking's time range and inserts the booking, all in one transaction.
	// Seat rows are locked for the duration of the check-then-write, so two
	// concurrent requests for the same seat cannot both succeed. Fails with
	// SeatNotFoundError or SeatAlreadyBookedError.
	CreateWithSeats(ctx context.Context, booking *Booking, seatStatus SeatState) error

	// UpdateWithSeats overwrites an existing booking's references, seats,
	// price and status, releasing the previously held seats first. Same
	// locking discipline as CreateWithSeats.
	UpdateWithSeats(ctx context.Context, booking *Booking, seatStatus SeatState) error

	GetByID(ctx context.Context, id int) (*Booking, error)
	GetSummariesByUserID(ctx context.Context, userID int, pagination Pagination) ([]BookingSummary, *Metadata, error)
	CountBySessionID(ctx context.Context, sessionID int) (int, error)

	// Cancel soft-deletes the booking: every seat is set back to available
	// for its time range, then the booking status becomes cancelled.
	Cancel(ctx context.Context, id int) (*Booking, error)

	UpdateStatus(ctx context.Context, id int, status BookingStatus) error
}

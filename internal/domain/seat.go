package domain

import "context"

type SeatState string

const (
	SeatStateAvailable SeatState = "available"
	SeatStatePending   SeatState = "pending"
	SeatStateBooked    SeatState = "booked"
)

// SeatStatus is the availability of one seat for one time range. At most one
// row exists per (seat, time range) pair; absence of a row means available.
type SeatStatus struct {
	SeatID      int
	TimeRangeID int
	Status      SeatState
}

// SessionSeat is a seat of a session's room together with its aggregate
// availability over the session's non-deleted time ranges.
type SessionSeat struct {
	Seat
	Status SeatState
}

type SeatRepository interface {
	GetByID(ctx context.Context, id int) (*Seat, error)
	GetByNumberAndRoom(ctx context.Context, number string, roomID int) (*Seat, error)
	GetByRoom(ctx context.Context, roomID int) ([]Seat, error)

	// GetSeatsBySession returns the room's seats with their status resolved
	// across all of the session's time ranges. A seat counts as booked for
	// the session if it is booked for any of the session's ranges.
	GetSeatsBySession(ctx context.Context, sessionID int) ([]SessionSeat, error)

	// GetBookedSeatNumbers returns the numbers of seats whose status for the
	// given time range is booked or pending.
	GetBookedSeatNumbers(ctx context.Context, timeRangeID int) ([]string, error)

	// SetStatus upserts the status of one (seat, time range) pair. Calling it
	// twice with the same arguments is a no-op.
	SetStatus(ctx context.Context, seatID, timeRangeID int, status SeatState) error

	UpdatePMR(ctx context.Context, seatID int, pmr bool) (*Seat, error)
}

package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type SessionStatus string

const (
	SessionStatusActive  SessionStatus = "active"
	SessionStatusDeleted SessionStatus = "deleted"
)

type TimeRangeStatus string

const (
	TimeRangeStatusAvailable TimeRangeStatus = "available"
	TimeRangeStatusDeleted   TimeRangeStatus = "deleted"
)

// Session is a scheduled screening of a movie in a room on a calendar date.
// A session owns one or more time ranges; seat availability is tracked per
// (seat, time range), never per seat alone.
type Session struct {
	ID         int
	MovieID    int
	RoomID     int
	CinemaID   int
	Date       time.Time // date-only, UTC midnight
	Price      decimal.Decimal
	Status     SessionStatus
	TimeRanges []TimeRange
	CreatedAt  time.Time
}

type TimeRange struct {
	ID        int
	SessionID int
	StartsAt  time.Time
	EndsAt    time.Time
	Status    TimeRangeStatus
}

// TimeRangeByID returns the session's time range with the given ID, or nil.
func (s *Session) TimeRangeByID(id int) *TimeRange {
	for i := range s.TimeRanges {
		if s.TimeRanges[i].ID == id {
			return &s.TimeRanges[i]
		}
	}

	return nil
}

// AvailableTimeRange is a persisted generator candidate. Candidates are
// ephemeral by default; persisting them assigns stable IDs that session
// creation and update flows can reference.
type AvailableTimeRange struct {
	ID       int
	CinemaID int
	RoomID   int
	Date     time.Time
	StartsAt time.Time
	EndsAt   time.Time
}

// SessionDeleteOutcome reports which delete path was taken. The dispatch is
// decided up front by a single referencing-bookings count.
type SessionDeleteOutcome string

const (
	SessionHardDeleted SessionDeleteOutcome = "hard"
	SessionSoftDeleted SessionDeleteOutcome = "soft"
)

type SessionRepository interface {
	// Create persists the session and its time ranges, then initializes an
	// available seat status row for every (seat-in-room, time-range) pair.
	// It fails with SessionExistsError on a duplicate (cinema, movie, room,
	// date) tuple and with TimeRangeOverlapError when any supplied range
	// overlaps another session's ranges in the same room on the same date.
	Create(ctx context.Context, session *Session) error

	GetByID(ctx context.Context, id int) (*Session, error)
	GetByRoomAndDate(ctx context.Context, roomID int, date time.Time) ([]Session, error)
	GetAll(ctx context.Context, cinemaID int, date time.Time, pagination Pagination) ([]Session, *Metadata, error)

	// Update replaces the full time-range set (delete-then-recreate). Seat
	// statuses of removed ranges are dropped and not resurrected.
	Update(ctx context.Context, session *Session) error

	// Delete hard-deletes the session and its ranges when no bookings
	// reference it; otherwise it soft-deletes the session and its ranges and
	// flips every referencing booking to the "no session" status.
	Delete(ctx context.Context, id int) (SessionDeleteOutcome, error)

	UpsertAvailableTimeRanges(ctx context.Context, cinemaID, roomID int, date time.Time, candidates []CandidateRange) ([]AvailableTimeRange, error)
}

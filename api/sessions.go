package api

import (
	"time"

	"github.com/shopspring/decimal"
)

type TimeRangePayload struct {
	StartsAt time.Time `json:"startsAt" validate:"required"`
	EndsAt   time.Time `json:"endsAt" validate:"required,gtfield=StartsAt"`
}

type SessionRequest struct {
	MovieId      int                `json:"movieId" validate:"required,gt=0"`
	RoomId       int                `json:"roomId" validate:"required,gt=0"`
	CinemaId     int                `json:"cinemaId" validate:"required,gt=0"`
	SessionDate  Date               `json:"sessionDate" validate:"required"`
	SessionPrice decimal.Decimal    `json:"sessionPrice" validate:"required"`
	TimeRanges   []TimeRangePayload `json:"timeRanges" validate:"required,min=1,dive"`
}

type TimeRangeResponse struct {
	Id       int       `json:"id"`
	StartsAt time.Time `json:"startsAt"`
	EndsAt   time.Time `json:"endsAt"`
	Status   string    `json:"status"`
}

type SessionResponse struct {
	Id         int                 `json:"id"`
	MovieId    int                 `json:"movieId"`
	RoomId     int                 `json:"roomId"`
	CinemaId   int                 `json:"cinemaId"`
	Date       Date                `json:"date"`
	Price      decimal.Decimal     `json:"price"`
	Status     string              `json:"status"`
	TimeRanges []TimeRangeResponse `json:"timeRanges"`
}

type SessionListResponse struct {
	Sessions []SessionResponse `json:"sessions"`
	Metadata *Metadata         `json:"metadata,omitempty"`
}

type CandidateRangeResponse struct {
	StartsAt time.Time `json:"startsAt"`
	EndsAt   time.Time `json:"endsAt"`
}

type AvailableTimeRangesResponse struct {
	CinemaId   int                      `json:"cinemaId"`
	RoomId     int                      `json:"roomId"`
	Date       Date                     `json:"date"`
	TimeRanges []CandidateRangeResponse `json:"timeRanges"`
}

// PersistedTimeRangeResponse is a generator candidate that has been upserted
// for a stable ID.
type PersistedTimeRangeResponse struct {
	Id       int       `json:"id"`
	StartsAt time.Time `json:"startsAt"`
	EndsAt   time.Time `json:"endsAt"`
}

type PersistedTimeRangesResponse struct {
	CinemaId   int                          `json:"cinemaId"`
	RoomId     int                          `json:"roomId"`
	Date       Date                         `json:"date"`
	TimeRanges []PersistedTimeRangeResponse `json:"timeRanges"`
}

// SessionDeleteResponse reports whether the delete was a hard delete (no
// bookings referenced the session) or a soft delete.
type SessionDeleteResponse struct {
	Outcome string `json:"outcome"`
}

type SessionSeatResponse struct {
	Id     int    `json:"id"`
	Number string `json:"number"`
	Pmr    bool   `json:"pmr"`
	Status string `json:"status"`
}

type SessionSeatsResponse struct {
	SessionId int                   `json:"sessionId"`
	Seats     []SessionSeatResponse `json:"seats"`
}

type UpdateSeatRequest struct {
	Pmr *bool `json:"pmr" validate:"required"`
}

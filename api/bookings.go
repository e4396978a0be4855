package api

import (
	"time"

	"github.com/shopspring/decimal"
)

type BookingSeatPayload struct {
	SeatNumber string `json:"seatNumber" validate:"required,max=10"`
}

// BookingRequest creates or, when BookingId is set, fully overwrites a
// booking. Identifier fields accept numbers or numeric strings; anything
// else is rejected before validation runs.
type BookingRequest struct {
	BookingId   *FlexInt             `json:"bookingId,omitempty"`
	UserId      FlexInt              `json:"userId" validate:"required,gt=0"`
	SessionId   FlexInt              `json:"sessionId" validate:"required,gt=0"`
	MovieId     FlexInt              `json:"movieId" validate:"required,gt=0"`
	CinemaId    FlexInt              `json:"cinemaId" validate:"required,gt=0"`
	RoomId      FlexInt              `json:"roomId" validate:"required,gt=0"`
	TimeRangeId FlexInt              `json:"timeRangeId" validate:"required,gt=0"`
	Price       *decimal.Decimal     `json:"price" validate:"required"`
	SeatsBooked []BookingSeatPayload `json:"seatsBooked" validate:"required,min=1,dive"`
	SeatStatus  string               `json:"seatStatus" validate:"omitempty,oneof=pending booked"`
}

type BookingSeatResponse struct {
	SeatId     int    `json:"seatId"`
	SeatNumber string `json:"seatNumber"`
	Status     string `json:"status"`
	Pmr        bool   `json:"pmr"`
}

type TimeRangeSnapshot struct {
	Id       int       `json:"id"`
	StartsAt time.Time `json:"startsAt"`
	EndsAt   time.Time `json:"endsAt"`
}

type BookingResponse struct {
	Id        int                   `json:"id"`
	Reference string                `json:"reference"`
	UserId    int                   `json:"userId"`
	SessionId int                   `json:"sessionId"`
	MovieId   int                   `json:"movieId"`
	CinemaId  int                   `json:"cinemaId"`
	RoomId    int                   `json:"roomId"`
	TimeRange TimeRangeSnapshot     `json:"timeRange"`
	Seats     []BookingSeatResponse `json:"seats"`
	Price     decimal.Decimal       `json:"price"`
	Status    string                `json:"status"`
	CreatedAt time.Time             `json:"createdAt"`
}

type BookingSummaryResponse struct {
	Id         int             `json:"id"`
	Reference  string          `json:"reference"`
	MovieTitle string          `json:"movieTitle"`
	CinemaName string          `json:"cinemaName"`
	Date       time.Time       `json:"date"`
	Status     string          `json:"status"`
	Price      decimal.Decimal `json:"price"`
	CreatedAt  time.Time       `json:"createdAt"`
}

type UserBookingsResponse struct {
	Bookings []BookingSummaryResponse `json:"bookings"`
	Metadata *Metadata                `json:"metadata,omitempty"`
}

type IncidentRequest struct {
	SessionId   int    `json:"sessionId" validate:"required,gt=0"`
	UserId      int    `json:"userId" validate:"required,gt=0"`
	RoomId      int    `json:"roomId" validate:"required,gt=0"`
	CinemaId    int    `json:"cinemaId" validate:"required,gt=0"`
	Description string `json:"description" validate:"required,max=2000"`
	Status      string `json:"status" validate:"omitempty,oneof=reported 'in progress' resolved"`
}

type IncidentResponse struct {
	Id          int       `json:"id"`
	SessionId   int       `json:"sessionId"`
	UserId      int       `json:"userId"`
	RoomId      int       `json:"roomId"`
	CinemaId    int       `json:"cinemaId"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	ReportedAt  time.Time `json:"reportedAt"`
}

type IncidentListResponse struct {
	Incidents []IncidentResponse `json:"incidents"`
	Metadata  *Metadata          `json:"metadata,omitempty"`
}

package domain

import (
	"context"
	"fmt"
	"time"
)

// TimeOfDay is a wall-clock time without a date, used for cinema opening
// hours. It is stored as a Postgres TIME column.
type TimeOfDay struct {
	Hour   int
	Minute int
}

func ParseTimeOfDay(s string) (TimeOfDay, error) {
	var t TimeOfDay

	_, err := fmt.Sscanf(s, "%d:%d", &t.Hour, &t.Minute)
	if err != nil {
		return t, fmt.Errorf("invalid time of day %q, expected HH:MM", s)
	}

	if t.Hour < 0 || t.Hour > 23 || t.Minute < 0 || t.Minute > 59 {
		return t, fmt.Errorf("time of day %q out of range", s)
	}

	return t, nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// On anchors the time of day to a calendar date in UTC.
func (t TimeOfDay) On(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour, t.Minute, 0, 0, time.UTC)
}

func (t TimeOfDay) Before(other TimeOfDay) bool {
	if t.Hour != other.Hour {
		return t.Hour < other.Hour
	}

	return t.Minute < other.Minute
}

type Cinema struct {
	ID          int
	Name        string
	Address     string
	City        string
	PostalCode  string
	OpeningTime TimeOfDay
	ClosingTime TimeOfDay
	Rooms       []Room
	CreatedAt   time.Time
	Version     int
}

type RoomQuality string

const (
	RoomQualityStandard RoomQuality = "standard"
	RoomQualityThreeD   RoomQuality = "3D"
	RoomQualityFourDX   RoomQuality = "4DX"
	RoomQualityIMAX     RoomQuality = "IMAX"
)

type Room struct {
	ID       int
	CinemaID int
	Number   int
	Capacity int
	Quality  RoomQuality
	Seats    []Seat
}

type Seat struct {
	ID     int
	RoomID int
	Number string
	PMR    bool
}

type CinemaRepository interface {
	Create(ctx context.Context, cinema *Cinema) error
	GetByID(ctx context.Context, id int) (*Cinema, error)
	GetAll(ctx context.Context, pagination Pagination) ([]Cinema, *Metadata, error)
	Update(ctx context.Context, cinema *Cinema) error
	Delete(ctx context.Context, id int) error
}

type RoomRepository interface {
	// Create inserts the room and initializes one seat per unit of capacity,
	// numbered "1".."N", in a single transaction.
	Create(ctx context.Context, room *Room) error
	GetByID(ctx context.Context, id int) (*Room, error)
	Update(ctx context.Context, room *Room) error
	Delete(ctx context.Context, id int) error
}

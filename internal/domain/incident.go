package domain

import (
	"context"
	"time"
)

type IncidentStatus string

const (
	IncidentStatusReported   IncidentStatus = "reported"
	IncidentStatusInProgress IncidentStatus = "in progress"
	IncidentStatusResolved   IncidentStatus = "resolved"
)

// Incident is a staff-reported problem tied to a session or room. It is a
// pure reporting record, independent of booking state.
type Incident struct {
	ID          int
	SessionID   int
	UserID      int
	RoomID      int
	CinemaID    int
	Description string
	Status      IncidentStatus
	ReportedAt  time.Time
}

type IncidentRepository interface {
	Create(ctx context.Context, incident *Incident) error
	GetByID(ctx context.Context, id int) (*Incident, error)
	GetAll(ctx context.Context, pagination Pagination) ([]Incident, *Metadata, error)
	Update(ctx context.Context, incident *Incident) error
	Delete(ctx context.Context, id int) error
}

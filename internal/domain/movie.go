package domain

import (
	"context"
	"time"
)

type Movie struct {
	ID          int
	Title       string
	Description string
	Category    string
	// Duration is the movie runtime in minutes. It drives the width of the
	// time slots produced by the schedule generator.
	Duration    int
	PosterUrl   string
	ReleaseDate time.Time
	CreatedAt   time.Time
	Version     int
}

type MovieRepository interface {
	Create(ctx context.Context, movie *Movie) error
	GetByID(ctx context.Context, id int) (*Movie, error)
	GetAll(ctx context.Context, pagination Pagination) ([]Movie, *Metadata, error)
	Update(ctx context.Context, movie *Movie) error
	Delete(ctx context.Context, id int) error
}

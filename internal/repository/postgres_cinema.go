package repository

import (
	"context"
	"errors"

	"github.com/cinealto/cinema-reservation-api/internal/domain"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresCinemaRepository struct {
	db *pgxpool.Pool
}

func NewPostgresCinemaRepository(db *pgxpool.Pool) *PostgresCinemaRepository {
	return &PostgresCinemaRepository{
		db: db,
	}
}

func (p *PostgresCinemaRepository) Create(ctx context.Context, cinema *domain.Cinema) error {
	query := `
		INSERT INTO cinemas (name, address, city, postal_code, opening_time, closing_time)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, version
	`

	err := p.db.QueryRow(
		ctx,
		query,
		cinema.Name,
		cinema.Address,
		cinema.City,
		cinema.PostalCode,
		cinema.OpeningTime.String(),
		cinema.ClosingTime.String(),
	).Scan(&cinema.ID, &cinema.CreatedAt, &cinema.Version)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return domain.ErrCinemaNameTaken
		}

		return err
	}

	return nil
}

func (p *PostgresCinemaRepository) GetByID(ctx context.Context, id int) (*domain.Cinema, error) {
	query := `
		SELECT id, name, address, city, postal_code,
			to_char(opening_time, 'HH24:MI'), to_char(closing_time, 'HH24:MI'),
			created_at, version
		FROM cinemas
		WHERE id = $1
	`

	var cinema domain.Cinema
	var opening, closing string

	err := p.db.QueryRow(ctx, query, id).Scan(
		&cinema.ID,
		&cinema.Name,
		&cinema.Address,
		&cinema.City,
		&cinema.PostalCode,
		&opening,
		&closing,
		&cinema.CreatedAt,
		&cinema.Version,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	if cinema.OpeningTime, err = domain.ParseTimeOfDay(opening); err != nil {
		return nil, err
	}
	if cinema.ClosingTime, err = domain.ParseTimeOfDay(closing); err != nil {
		return nil, err
	}

	rooms, err := p.retrieveRooms(ctx, id)
	if err != nil {
		return nil, err
	}

	cinema.Rooms = rooms

	return &cinema, nil
}

func (p *PostgresCinemaRepository) retrieveRooms(ctx context.Context, cinemaID int) ([]domain.Room, error) {
	query := `
		SELECT id, cinema_id, number, capacity, quality
		FROM rooms
		WHERE cinema_id = $1
		ORDER BY number
	`

	rows, err := p.db.Query(ctx, query, cinemaID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rooms := make([]domain.Room, 0)

	for rows.Next() {
		var room domain.Room

		err := rows.Scan(&room.ID, &room.CinemaID, &room.Number, &room.Capacity, &room.Quality)
		if err != nil {
			return nil, err
		}

		rooms = append(rooms, room)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return rooms, nil
}

func (p *PostgresCinemaRepository) GetAll(
	ctx context.Context,
	pagination domain.Pagination) ([]domain.Cinema, *domain.Metadata, error) {

	query := `
		SELECT
			COUNT(*) OVER(),
			id, name, address, city, postal_code,
			to_char(opening_time, 'HH24:MI'), to_char(closing_time, 'HH24:MI'),
			created_at, version
		FROM cinemas
		WHERE $1 = '' OR name ILIKE '%' || $1 || '%'
		ORDER BY name
		LIMIT $2 OFFSET $3
	`

	rows, err := p.db.Query(ctx, query, pagination.Term, pagination.Limit(), pagination.Offset())
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	cinemas := make([]domain.Cinema, 0)
	totalRecords := 0

	for rows.Next() {
		var cinema domain.Cinema
		var opening, closing string

		err := rows.Scan(
			&totalRecords,
			&cinema.ID,
			&cinema.Name,
			&cinema.Address,
			&cinema.City,
			&cinema.PostalCode,
			&opening,
			&closing,
			&cinema.CreatedAt,
			&cinema.Version,
		)
		if err != nil {
			return nil, nil, err
		}

		if cinema.OpeningTime, err = domain.ParseTimeOfDay(opening); err != nil {
			return nil, nil, err
		}
		if cinema.ClosingTime, err = domain.ParseTimeOfDay(closing); err != nil {
			return nil, nil, err
		}

		cinemas = append(cinemas, cinema)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	metadata := domain.NewMetadata(totalRecords, pagination.Page, pagination.PageSize)

	return cinemas, metadata, nil
}

func (p *PostgresCinemaRepository) Update(ctx context.Context, cinema *domain.Cinema) error {
	query := `
		UPDATE cinemas
		SET name = $1, address = $2, city = $3, postal_code = $4,
			opening_time = $5, closing_time = $6, version = version + 1
		WHERE id = $7 AND version = $8
		RETURNING version
	`

	err := p.db.QueryRow(
		ctx,
		query,
		cinema.Name,
		cinema.Address,
		cinema.City,
		cinema.PostalCode,
		cinema.OpeningTime.String(),
		cinema.ClosingTime.String(),
		cinema.ID,
		cinema.Version,
	).Scan(&cinema.Version)

	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return domain.ErrEditConflict
		default:
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
				return domain.ErrCinemaNameTaken
			}

			return err
		}
	}

	return nil
}

func (p *PostgresCinemaRepository) Delete(ctx context.Context, id int) error {
	result, err := p.db.Exec(ctx, `DELETE FROM cinemas WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

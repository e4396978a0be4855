package repository

import (
	"context"
	"errors"
	"strconv"

	"github.com/cinealto/cinema-reservation-api/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRoomRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRoomRepository(db *pgxpool.Pool) *PostgresRoomRepository {
	return &PostgresRoomRepository{
		db: db,
	}
}

// Create inserts the room and one seat per unit of capacity in a single
// transaction, keeping the seat count == capacity invariant by construction.
func (p *PostgresRoomRepository) Create(ctx context.Context, room *domain.Room) error {
	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		query := `
			INSERT INTO rooms (cinema_id, number, capacity, quality)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`

		err := tx.QueryRow(ctx, query, room.CinemaID, room.Number, room.Capacity, room.Quality).Scan(&room.ID)
		if err != nil {
			return err
		}

		rows := make([][]any, 0, room.Capacity)
		for i := 1; i <= room.Capacity; i++ {
			rows = append(rows, []any{room.ID, strconv.Itoa(i), false})
		}

		_, err = tx.CopyFrom(
			ctx,
			pgx.Identifier{"seats"},
			[]string{"room_id", "seat_number", "pmr"},
			pgx.CopyFromRows(rows),
		)
		if err != nil {
			return err
		}

		return nil
	})
}

func (p *PostgresRoomRepository) GetByID(ctx context.Context, id int) (*domain.Room, error) {
	query := `
		SELECT id, cinema_id, number, capacity, quality
		FROM rooms
		WHERE id = $1
	`

	var room domain.Room

	err := p.db.QueryRow(ctx, query, id).Scan(
		&room.ID,
		&room.CinemaID,
		&room.Number,
		&room.Capacity,
		&room.Quality,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	seatsQuery := `
		SELECT id, room_id, seat_number, pmr
		FROM seats
		WHERE room_id = $1
		ORDER BY length(seat_number), seat_number
	`

	rows, err := p.db.Query(ctx, seatsQuery, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seats := make([]domain.Seat, 0, room.Capacity)

	for rows.Next() {
		var seat domain.Seat

		err := rows.Scan(&seat.ID, &seat.RoomID, &seat.Number, &seat.PMR)
		if err != nil {
			return nil, err
		}

		seats = append(seats, seat)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	room.Seats = seats

	return &room, nil
}

func (p *PostgresRoomRepository) Update(ctx context.Context, room *domain.Room) error {
	query := `
		UPDATE rooms
		SET number = $1, quality = $2
		WHERE id = $3
	`

	result, err := p.db.Exec(ctx, query, room.Number, room.Quality, room.ID)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

func (p *PostgresRoomRepository) Delete(ctx context.Context, id int) error {
	result, err := p.db.Exec(ctx, `DELETE FROM rooms WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

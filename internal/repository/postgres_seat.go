package repository

import (
	"context"
	"errors"

	"github.com/cinealto/cinema-reservation-api/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresSeatRepository struct {
	db *pgxpool.Pool
}

func NewPostgresSeatRepository(db *pgxpool.Pool) *PostgresSeatRepository {
	return &PostgresSeatRepository{
		db: db,
	}
}

func (p *PostgresSeatRepository) GetByID(ctx context.Context, id int) (*domain.Seat, error) {
	query := `
		SELECT id, room_id, seat_number, pmr
		FROM seats
		WHERE id = $1
	`

	var seat domain.Seat

	err := p.db.QueryRow(ctx, query, id).Scan(&seat.ID, &seat.RoomID, &seat.Number, &seat.PMR)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &seat, nil
}

func (p *PostgresSeatRepository) GetByNumberAndRoom(
	ctx context.Context,
	number string,
	roomID int) (*domain.Seat, error) {

	query := `
		SELECT id, room_id, seat_number, pmr
		FROM seats
		WHERE seat_number = $1 AND room_id = $2
	`

	var seat domain.Seat

	err := p.db.QueryRow(ctx, query, number, roomID).Scan(&seat.ID, &seat.RoomID, &seat.Number, &seat.PMR)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &seat, nil
}

func (p *PostgresSeatRepository) GetByRoom(ctx context.Context, roomID int) ([]domain.Seat, error) {
	query := `
		SELECT id, room_id, seat_number, pmr
		FROM seats
		WHERE room_id = $1
		ORDER BY length(seat_number), seat_number
	`

	rows, err := p.db.Query(ctx, query, roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seats := make([]domain.Seat, 0)

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

	return seats, nil
}

// GetSeatsBySession resolves seat availability across all non-deleted time
// ranges of the session. A seat counts as booked for the session if any of
// the session's ranges has it booked or pending; a missing status row means
// available.
func (p *PostgresSeatRepository) GetSeatsBySession(ctx context.Context, sessionID int) ([]domain.SessionSeat, error) {
	query := `
		SELECT
			se.id, se.room_id, se.seat_number, se.pmr,
			COALESCE(
				BOOL_OR(ss.status IN ('booked', 'pending')),
				FALSE
			) AS taken
		FROM sessions s
		JOIN seats se ON se.room_id = s.room_id
		LEFT JOIN time_ranges tr ON tr.session_id = s.id AND tr.status != 'deleted'
		LEFT JOIN seat_statuses ss ON ss.seat_id = se.id AND ss.time_range_id = tr.id
		WHERE s.id = $1
		GROUP BY se.id, se.room_id, se.seat_number, se.pmr
		ORDER BY length(se.seat_number), se.seat_number
	`

	rows, err := p.db.Query(ctx, query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seats := make([]domain.SessionSeat, 0)

	for rows.Next() {
		var seat domain.SessionSeat
		var taken bool

		err := rows.Scan(&seat.ID, &seat.RoomID, &seat.Number, &seat.PMR, &taken)
		if err != nil {
			return nil, err
		}

		if taken {
			seat.Status = domain.SeatStateBooked
		} else {
			seat.Status = domain.SeatStateAvailable
		}

		seats = append(seats, seat)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return seats, nil
}

func (p *PostgresSeatRepository) GetBookedSeatNumbers(ctx context.Context, timeRangeID int) ([]string, error) {
	query := `
		SELECT se.seat_number
		FROM seat_statuses ss
		JOIN seats se ON se.id = ss.seat_id
		WHERE ss.time_range_id = $1 AND ss.status IN ('booked', 'pending')
		ORDER BY length(se.seat_number), se.seat_number
	`

	rows, err := p.db.Query(ctx, query, timeRangeID)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, pgx.RowTo[string])
}

func (p *PostgresSeatRepository) SetStatus(
	ctx context.Context,
	seatID, timeRangeID int,
	status domain.SeatState) error {

	query := `
		INSERT INTO seat_statuses (seat_id, time_range_id, status)
		VALUES ($1, $2, $3)
		ON CONFLICT (seat_id, time_range_id) DO UPDATE SET status = EXCLUDED.status
	`

	_, err := p.db.Exec(ctx, query, seatID, timeRangeID, status)

	return err
}

func (p *PostgresSeatRepository) UpdatePMR(ctx context.Context, seatID int, pmr bool) (*domain.Seat, error) {
	query := `
		UPDATE seats
		SET pmr = $1
		WHERE id = $2
		RETURNING id, room_id, seat_number, pmr
	`

	var seat domain.Seat

	err := p.db.QueryRow(ctx, query, pmr, seatID).Scan(&seat.ID, &seat.RoomID, &seat.Number, &seat.PMR)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &seat, nil
}

package repository

import (
	"context"
	"errors"

	"github.com/cinealto/cinema-reservation-api/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresBookingRepository struct {
	db *pgxpool.Pool
}

func NewPostgresBookingRepository(db *pgxpool.Pool) *PostgresBookingRepository {
	return &PostgresBookingRepository{
		db: db,
	}
}

// CreateWithSeats books the requested seats for the booking's time range and
// inserts the booking in one transaction. Each seat's row is locked before
// the status check, so two concurrent requests for the same seat serialize
// and the loser sees the winner's write.
func (p *PostgresBookingRepository) CreateWithSeats(
	ctx context.Context,
	booking *domain.Booking,
	seatStatus domain.SeatState) error {

	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		err := bookSeats(ctx, tx, booking, seatStatus)
		if err != nil {
			return err
		}

		query := `
			INSERT INTO bookings (
				reference, user_id, session_id, movie_id, cinema_id, room_id,
				time_range_id, time_range_start, time_range_end, price, status
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			RETURNING id, created_at, updated_at
		`

		err = tx.QueryRow(
			ctx,
			query,
			booking.Reference,
			booking.UserID,
			booking.SessionID,
			booking.MovieID,
			booking.CinemaID,
			booking.RoomID,
			booking.TimeRangeID,
			booking.TimeRangeStart,
			booking.TimeRangeEnd,
			booking.Price,
			booking.Status,
		).Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt)
		if err != nil {
			return err
		}

		return insertBookingSeats(ctx, tx, booking)
	})
}

// UpdateWithSeats fully overwrites an existing booking: the previously held
// seats are released for their time range, then the new seats are checked
// and booked under the same locking discipline as creation.
func (p *PostgresBookingRepository) UpdateWithSeats(
	ctx context.Context,
	booking *domain.Booking,
	seatStatus domain.SeatState) error {

	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		var oldTimeRangeID int

		err := tx.QueryRow(
			ctx,
			`SELECT time_range_id FROM bookings WHERE id = $1 FOR UPDATE`,
			booking.ID,
		).Scan(&oldTimeRangeID)

		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrRecordNotFound
			}

			return err
		}

		err = releaseBookingSeats(ctx, tx, booking.ID, oldTimeRangeID)
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx, `DELETE FROM booking_seats WHERE booking_id = $1`, booking.ID)
		if err != nil {
			return err
		}

		err = bookSeats(ctx, tx, booking, seatStatus)
		if err != nil {
			return err
		}

		query := `
			UPDATE bookings
			SET user_id = $1, session_id = $2, movie_id = $3, cinema_id = $4, room_id = $5,
				time_range_id = $6, time_range_start = $7, time_range_end = $8,
				price = $9, status = $10, updated_at = NOW()
			WHERE id = $11
			RETURNING reference, created_at, updated_at
		`

		err = tx.QueryRow(
			ctx,
			query,
			booking.UserID,
			booking.SessionID,
			booking.MovieID,
			booking.CinemaID,
			booking.RoomID,
			booking.TimeRangeID,
			booking.TimeRangeStart,
			booking.TimeRangeEnd,
			booking.Price,
			booking.Status,
			booking.ID,
		).Scan(&booking.Reference, &booking.CreatedAt, &booking.UpdatedAt)
		if err != nil {
			return err
		}

		return insertBookingSeats(ctx, tx, booking)
	})
}

// bookSeats resolves every requested seat by (number, room), checks it is
// not already booked for the time range and writes its status. The SELECT
// FOR UPDATE on the seat row serializes concurrent check-then-write
// sequences for the same seat.
func bookSeats(ctx context.Context, tx pgx.Tx, booking *domain.Booking, seatStatus domain.SeatState) error {
	seatQuery := `
		SELECT id, pmr
		FROM seats
		WHERE seat_number = $1 AND room_id = $2
		FOR UPDATE
	`

	statusQuery := `
		SELECT status
		FROM seat_statuses
		WHERE seat_id = $1 AND time_range_id = $2
	`

	upsertQuery := `
		INSERT INTO seat_statuses (seat_id, time_range_id, status)
		VALUES ($1, $2, $3)
		ON CONFLICT (seat_id, time_range_id) DO UPDATE SET status = EXCLUDED.status
	`

	for i := range booking.Seats {
		seat := &booking.Seats[i]

		err := tx.QueryRow(ctx, seatQuery, seat.SeatNumber, booking.RoomID).Scan(&seat.SeatID, &seat.PMR)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.SeatNotFoundError{SeatNumber: seat.SeatNumber}
			}

			return err
		}

		var current domain.SeatState

		err = tx.QueryRow(ctx, statusQuery, seat.SeatID, booking.TimeRangeID).Scan(&current)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return err
		}

		if current == domain.SeatStateBooked {
			return domain.SeatAlreadyBookedError{SeatNumber: seat.SeatNumber}
		}

		_, err = tx.Exec(ctx, upsertQuery, seat.SeatID, booking.TimeRangeID, seatStatus)
		if err != nil {
			return err
		}

		seat.Status = seatStatus
	}

	return nil
}

func insertBookingSeats(ctx context.Context, tx pgx.Tx, booking *domain.Booking) error {
	rows := make([][]any, 0, len(booking.Seats))
	for _, seat := range booking.Seats {
		rows = append(rows, []any{booking.ID, seat.SeatID, seat.SeatNumber, string(seat.Status), seat.PMR})
	}

	_, err := tx.CopyFrom(
		ctx,
		pgx.Identifier{"booking_seats"},
		[]string{"booking_id", "seat_id", "seat_number", "status", "pmr"},
		pgx.CopyFromRows(rows),
	)

	return err
}

func releaseBookingSeats(ctx context.Context, tx pgx.Tx, bookingID, timeRangeID int) error {
	query := `
		UPDATE seat_statuses
		SET status = 'available'
		WHERE time_range_id = $1
			AND seat_id IN (SELECT seat_id FROM booking_seats WHERE booking_id = $2)
	`

	_, err := tx.Exec(ctx, query, timeRangeID, bookingID)

	return err
}

func (p *PostgresBookingRepository) GetByID(ctx context.Context, id int) (*domain.Booking, error) {
	query := `
		SELECT id, reference, user_id, session_id, movie_id, cinema_id, room_id,
			time_range_id, time_range_start, time_range_end, price, status,
			created_at, updated_at
		FROM bookings
		WHERE id = $1
	`

	var booking domain.Booking

	err := p.db.QueryRow(ctx, query, id).Scan(
		&booking.ID,
		&booking.Reference,
		&booking.UserID,
		&booking.SessionID,
		&booking.MovieID,
		&booking.CinemaID,
		&booking.RoomID,
		&booking.TimeRangeID,
		&booking.TimeRangeStart,
		&booking.TimeRangeEnd,
		&booking.Price,
		&booking.Status,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	seats, err := p.retrieveBookingSeats(ctx, id)
	if err != nil {
		return nil, err
	}

	booking.Seats = seats

	return &booking, nil
}

func (p *PostgresBookingRepository) retrieveBookingSeats(ctx context.Context, bookingID int) ([]domain.BookingSeat, error) {
	query := `
		SELECT seat_id, seat_number, status, pmr
		FROM booking_seats
		WHERE booking_id = $1
		ORDER BY length(seat_number), seat_number
	`

	rows, err := p.db.Query(ctx, query, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seats := make([]domain.BookingSeat, 0)

	for rows.Next() {
		var seat domain.BookingSeat

		err := rows.Scan(&seat.SeatID, &seat.SeatNumber, &seat.Status, &seat.PMR)
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

func (p *PostgresBookingRepository) GetSummariesByUserID(
	ctx context.Context,
	userID int,
	pagination domain.Pagination) ([]domain.BookingSummary, *domain.Metadata, error) {

	query := `
		SELECT
			COUNT(*) OVER(),
			b.id, b.reference, m.title, c.name, b.time_range_start, b.status, b.price, b.created_at
		FROM bookings b
		JOIN movies m ON b.movie_id = m.id
		JOIN cinemas c ON b.cinema_id = c.id
		WHERE b.user_id = $1
		ORDER BY b.created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := p.db.Query(ctx, query, userID, pagination.Limit(), pagination.Offset())
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	summaries := make([]domain.BookingSummary, 0)
	totalRecords := 0

	for rows.Next() {
		var summary domain.BookingSummary

		err := rows.Scan(
			&totalRecords,
			&summary.ID,
			&summary.Reference,
			&summary.MovieTitle,
			&summary.CinemaName,
			&summary.Date,
			&summary.Status,
			&summary.Price,
			&summary.CreatedAt,
		)
		if err != nil {
			return nil, nil, err
		}

		summaries = append(summaries, summary)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	metadata := domain.NewMetadata(totalRecords, pagination.Page, pagination.PageSize)

	return summaries, metadata, nil
}

func (p *PostgresBookingRepository) CountBySessionID(ctx context.Context, sessionID int) (int, error) {
	var count int

	err := p.db.QueryRow(ctx, `SELECT COUNT(*) FROM bookings WHERE session_id = $1`, sessionID).Scan(&count)
	if err != nil {
		return 0, err
	}

	return count, nil
}

// Cancel releases all of the booking's seats for their time range, then
// marks the booking cancelled.
func (p *PostgresBookingRepository) Cancel(ctx context.Context, id int) (*domain.Booking, error) {
	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		var timeRangeID int

		err := tx.QueryRow(
			ctx,
			`SELECT time_range_id FROM bookings WHERE id = $1 FOR UPDATE`,
			id,
		).Scan(&timeRangeID)

		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrRecordNotFound
			}

			return err
		}

		err = releaseBookingSeats(ctx, tx, id, timeRangeID)
		if err != nil {
			return err
		}

		_, err = tx.Exec(
			ctx,
			`UPDATE bookings SET status = 'cancelled', updated_at = NOW() WHERE id = $1`,
			id,
		)

		return err
	})

	if err != nil {
		return nil, err
	}

	return p.GetByID(ctx, id)
}

func (p *PostgresBookingRepository) UpdateStatus(ctx context.Context, id int, status domain.BookingStatus) error {
	result, err := p.db.Exec(
		ctx,
		`UPDATE bookings SET status = $1, updated_at = NOW() WHERE id = $2`,
		status,
		id,
	)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

package repository

import (
	"context"
	"errors"
	"time"

	"github.com/cinealto/cinema-reservation-api/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresSessionRepository struct {
	db *pgxpool.Pool
}

func NewPostgresSessionRepository(db *pgxpool.Pool) *PostgresSessionRepository {
	return &PostgresSessionRepository{
		db: db,
	}
}

func (p *PostgresSessionRepository) Create(ctx context.Context, session *domain.Session) error {
	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		existingID, err := findDuplicateSession(ctx, tx, session, 0)
		if err != nil {
			return err
		}
		if existingID != 0 {
			return domain.SessionExistsError{ExistingSessionID: existingID}
		}

		err = checkTimeRangeOverlaps(ctx, tx, session, 0)
		if err != nil {
			return err
		}

		query := `
			INSERT INTO sessions (movie_id, room_id, cinema_id, session_date, price)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, status, created_at
		`

		err = tx.QueryRow(
			ctx,
			query,
			session.MovieID,
			session.RoomID,
			session.CinemaID,
			session.Date,
			session.Price,
		).Scan(&session.ID, &session.Status, &session.CreatedAt)
		if err != nil {
			return err
		}

		err = insertTimeRanges(ctx, tx, session)
		if err != nil {
			return err
		}

		return initSeatStatuses(ctx, tx, session.RoomID, session.TimeRanges)
	})
}

func findDuplicateSession(ctx context.Context, tx pgx.Tx, session *domain.Session, excludeID int) (int, error) {
	query := `
		SELECT id
		FROM sessions
		WHERE cinema_id = $1 AND movie_id = $2 AND room_id = $3 AND session_date = $4
			AND status = 'active' AND id != $5
	`

	var existingID int

	err := tx.QueryRow(
		ctx,
		query,
		session.CinemaID,
		session.MovieID,
		session.RoomID,
		session.Date,
		excludeID,
	).Scan(&existingID)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}

		return 0, err
	}

	return existingID, nil
}

// checkTimeRangeOverlaps rejects any supplied range that intersects another
// active session's ranges in the same room on the same date, regardless of
// which movie that session shows. Intervals are half-open: [a,b) and [c,d)
// overlap iff a < d && c < b.
func checkTimeRangeOverlaps(ctx context.Context, tx pgx.Tx, session *domain.Session, excludeID int) error {
	query := `
		SELECT 1
		FROM time_ranges tr
		JOIN sessions s ON tr.session_id = s.id
		WHERE s.cinema_id = $1 AND s.room_id = $2 AND s.session_date = $3
			AND s.status = 'active' AND tr.status != 'deleted' AND s.id != $4
			AND $5 < tr.ends_at AND tr.starts_at < $6
		LIMIT 1
	`

	for _, tr := range session.TimeRanges {
		var one int

		err := tx.QueryRow(
			ctx,
			query,
			session.CinemaID,
			session.RoomID,
			session.Date,
			excludeID,
			tr.StartsAt,
			tr.EndsAt,
		).Scan(&one)

		if err == nil {
			return domain.TimeRangeOverlapError{StartsAt: tr.StartsAt, EndsAt: tr.EndsAt}
		}

		if !errors.Is(err, pgx.ErrNoRows) {
			return err
		}
	}

	return nil
}

func insertTimeRanges(ctx context.Context, tx pgx.Tx, session *domain.Session) error {
	query := `
		INSERT INTO time_ranges (session_id, starts_at, ends_at)
		VALUES ($1, $2, $3)
		RETURNING id, status
	`

	for i := range session.TimeRanges {
		tr := &session.TimeRanges[i]
		tr.SessionID = session.ID

		err := tx.QueryRow(ctx, query, session.ID, tr.StartsAt, tr.EndsAt).Scan(&tr.ID, &tr.Status)
		if err != nil {
			return err
		}
	}

	return nil
}

// initSeatStatuses bulk-inserts an available status row for every
// (seat-in-room, time-range) pair.
func initSeatStatuses(ctx context.Context, tx pgx.Tx, roomID int, timeRanges []domain.TimeRange) error {
	rows, err := tx.Query(ctx, `SELECT id FROM seats WHERE room_id = $1`, roomID)
	if err != nil {
		return err
	}

	seatIDs, err := pgx.CollectRows(rows, pgx.RowTo[int])
	if err != nil {
		return err
	}

	statusRows := make([][]any, 0, len(seatIDs)*len(timeRanges))
	for _, seatID := range seatIDs {
		for _, tr := range timeRanges {
			statusRows = append(statusRows, []any{seatID, tr.ID, string(domain.SeatStateAvailable)})
		}
	}

	_, err = tx.CopyFrom(
		ctx,
		pgx.Identifier{"seat_statuses"},
		[]string{"seat_id", "time_range_id", "status"},
		pgx.CopyFromRows(statusRows),
	)

	return err
}

func (p *PostgresSessionRepository) GetByID(ctx context.Context, id int) (*domain.Session, error) {
	query := `
		SELECT id, movie_id, room_id, cinema_id, session_date, price, status, created_at
		FROM sessions
		WHERE id = $1
	`

	var session domain.Session

	err := p.db.QueryRow(ctx, query, id).Scan(
		&session.ID,
		&session.MovieID,
		&session.RoomID,
		&session.CinemaID,
		&session.Date,
		&session.Price,
		&session.Status,
		&session.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	timeRanges, err := p.retrieveTimeRanges(ctx, id)
	if err != nil {
		return nil, err
	}

	session.TimeRanges = timeRanges

	return &session, nil
}

func (p *PostgresSessionRepository) retrieveTimeRanges(ctx context.Context, sessionID int) ([]domain.TimeRange, error) {
	query := `
		SELECT id, session_id, starts_at, ends_at, status
		FROM time_ranges
		WHERE session_id = $1
		ORDER BY starts_at
	`

	rows, err := p.db.Query(ctx, query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	timeRanges := make([]domain.TimeRange, 0)

	for rows.Next() {
		var tr domain.TimeRange

		err := rows.Scan(&tr.ID, &tr.SessionID, &tr.StartsAt, &tr.EndsAt, &tr.Status)
		if err != nil {
			return nil, err
		}

		timeRanges = append(timeRanges, tr)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return timeRanges, nil
}

func (p *PostgresSessionRepository) GetByRoomAndDate(
	ctx context.Context,
	roomID int,
	date time.Time) ([]domain.Session, error) {

	query := `
		SELECT
			s.id, s.movie_id, s.room_id, s.cinema_id, s.session_date, s.price, s.status, s.created_at,
			tr.id, tr.session_id, tr.starts_at, tr.ends_at, tr.status
		FROM sessions s
		JOIN time_ranges tr ON tr.session_id = s.id
		WHERE s.room_id = $1 AND s.session_date = $2 AND s.status = 'active'
		ORDER BY s.id, tr.starts_at
	`

	rows, err := p.db.Query(ctx, query, roomID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := make([]domain.Session, 0)

	for rows.Next() {
		var session domain.Session
		var tr domain.TimeRange

		err := rows.Scan(
			&session.ID,
			&session.MovieID,
			&session.RoomID,
			&session.CinemaID,
			&session.Date,
			&session.Price,
			&session.Status,
			&session.CreatedAt,
			&tr.ID,
			&tr.SessionID,
			&tr.StartsAt,
			&tr.EndsAt,
			&tr.Status,
		)
		if err != nil {
			return nil, err
		}

		if n := len(sessions); n > 0 && sessions[n-1].ID == session.ID {
			sessions[n-1].TimeRanges = append(sessions[n-1].TimeRanges, tr)
			continue
		}

		session.TimeRanges = []domain.TimeRange{tr}
		sessions = append(sessions, session)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return sessions, nil
}

func (p *PostgresSessionRepository) GetAll(
	ctx context.Context,
	cinemaID int,
	date time.Time,
	pagination domain.Pagination) ([]domain.Session, *domain.Metadata, error) {

	query := `
		SELECT
			COUNT(*) OVER(),
			id, movie_id, room_id, cinema_id, session_date, price, status, created_at
		FROM sessions
		WHERE status = 'active'
			AND ($1 = 0 OR cinema_id = $1)
			AND ($2::date IS NULL OR session_date = $2)
		ORDER BY session_date, id
		LIMIT $3 OFFSET $4
	`

	var dateArg any
	if !date.IsZero() {
		dateArg = date
	}

	rows, err := p.db.Query(ctx, query, cinemaID, dateArg, pagination.Limit(), pagination.Offset())
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	sessions := make([]domain.Session, 0)
	totalRecords := 0

	for rows.Next() {
		var session domain.Session

		err := rows.Scan(
			&totalRecords,
			&session.ID,
			&session.MovieID,
			&session.RoomID,
			&session.CinemaID,
			&session.Date,
			&session.Price,
			&session.Status,
			&session.CreatedAt,
		)
		if err != nil {
			return nil, nil, err
		}

		sessions = append(sessions, session)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	for i := range sessions {
		timeRanges, err := p.retrieveTimeRanges(ctx, sessions[i].ID)
		if err != nil {
			return nil, nil, err
		}

		sessions[i].TimeRanges = timeRanges
	}

	metadata := domain.NewMetadata(totalRecords, pagination.Page, pagination.PageSize)

	return sessions, metadata, nil
}

// Update replaces the session's full time-range set. The old ranges are
// deleted (their seat statuses cascade away and are not resurrected) and the
// new ranges get a fresh set of available seat statuses.
func (p *PostgresSessionRepository) Update(ctx context.Context, session *domain.Session) error {
	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		existingID, err := findDuplicateSession(ctx, tx, session, session.ID)
		if err != nil {
			return err
		}
		if existingID != 0 {
			return domain.SessionExistsError{ExistingSessionID: existingID}
		}

		err = checkTimeRangeOverlaps(ctx, tx, session, session.ID)
		if err != nil {
			return err
		}

		query := `
			UPDATE sessions
			SET movie_id = $1, room_id = $2, cinema_id = $3, session_date = $4, price = $5
			WHERE id = $6 AND status = 'active'
			RETURNING status, created_at
		`

		err = tx.QueryRow(
			ctx,
			query,
			session.MovieID,
			session.RoomID,
			session.CinemaID,
			session.Date,
			session.Price,
			session.ID,
		).Scan(&session.Status, &session.CreatedAt)

		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrRecordNotFound
			}

			return err
		}

		_, err = tx.Exec(ctx, `DELETE FROM time_ranges WHERE session_id = $1`, session.ID)
		if err != nil {
			return err
		}

		err = insertTimeRanges(ctx, tx, session)
		if err != nil {
			return err
		}

		return initSeatStatuses(ctx, tx, session.RoomID, session.TimeRanges)
	})
}

// Delete dispatches between hard and soft delete based on a single
// referencing-bookings count taken up front.
func (p *PostgresSessionRepository) Delete(ctx context.Context, id int) (domain.SessionDeleteOutcome, error) {
	var outcome domain.SessionDeleteOutcome

	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		var bookingCount int

		err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM bookings WHERE session_id = $1`, id).Scan(&bookingCount)
		if err != nil {
			return err
		}

		if bookingCount == 0 {
			result, err := tx.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id)
			if err != nil {
				return err
			}

			if result.RowsAffected() == 0 {
				return domain.ErrRecordNotFound
			}

			outcome = domain.SessionHardDeleted

			return nil
		}

		result, err := tx.Exec(ctx, `UPDATE sessions SET status = 'deleted' WHERE id = $1`, id)
		if err != nil {
			return err
		}

		if result.RowsAffected() == 0 {
			return domain.ErrRecordNotFound
		}

		_, err = tx.Exec(ctx, `UPDATE time_ranges SET status = 'deleted' WHERE session_id = $1`, id)
		if err != nil {
			return err
		}

		// Bookings survive a session delete; they are flipped to "no
		// session" and stay readable through their denormalized snapshot.
		_, err = tx.Exec(
			ctx,
			`UPDATE bookings SET status = 'no session', updated_at = NOW() WHERE session_id = $1`,
			id,
		)
		if err != nil {
			return err
		}

		outcome = domain.SessionSoftDeleted

		return nil
	})

	if err != nil {
		return "", err
	}

	return outcome, nil
}

func (p *PostgresSessionRepository) UpsertAvailableTimeRanges(
	ctx context.Context,
	cinemaID, roomID int,
	date time.Time,
	candidates []domain.CandidateRange) ([]domain.AvailableTimeRange, error) {

	query := `
		INSERT INTO available_time_ranges (cinema_id, room_id, range_date, starts_at, ends_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (room_id, starts_at, ends_at) DO UPDATE SET range_date = EXCLUDED.range_date
		RETURNING id
	`

	persisted := make([]domain.AvailableTimeRange, 0, len(candidates))

	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		for _, c := range candidates {
			atr := domain.AvailableTimeRange{
				CinemaID: cinemaID,
				RoomID:   roomID,
				Date:     date,
				StartsAt: c.StartsAt,
				EndsAt:   c.EndsAt,
			}

			err := tx.QueryRow(ctx, query, cinemaID, roomID, date, c.StartsAt, c.EndsAt).Scan(&atr.ID)
			if err != nil {
				return err
			}

			persisted = append(persisted, atr)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return persisted, nil
}

package repository

import (
	"context"
	"errors"

	"github.com/cinealto/cinema-reservation-api/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresIncidentRepository struct {
	db *pgxpool.Pool
}

func NewPostgresIncidentRepository(db *pgxpool.Pool) *PostgresIncidentRepository {
	return &PostgresIncidentRepository{
		db: db,
	}
}

func (p *PostgresIncidentRepository) Create(ctx context.Context, incident *domain.Incident) error {
	query := `
		INSERT INTO incidents (session_id, user_id, room_id, cinema_id, description, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, reported_at
	`

	if incident.Status == "" {
		incident.Status = domain.IncidentStatusReported
	}

	return p.db.QueryRow(
		ctx,
		query,
		incident.SessionID,
		incident.UserID,
		incident.RoomID,
		incident.CinemaID,
		incident.Description,
		incident.Status,
	).Scan(&incident.ID, &incident.ReportedAt)
}

func (p *PostgresIncidentRepository) GetByID(ctx context.Context, id int) (*domain.Incident, error) {
	query := `
		SELECT id, session_id, user_id, room_id, cinema_id, description, status, reported_at
		FROM incidents
		WHERE id = $1
	`

	var incident domain.Incident

	err := p.db.QueryRow(ctx, query, id).Scan(
		&incident.ID,
		&incident.SessionID,
		&incident.UserID,
		&incident.RoomID,
		&incident.CinemaID,
		&incident.Description,
		&incident.Status,
		&incident.ReportedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &incident, nil
}

func (p *PostgresIncidentRepository) GetAll(
	ctx context.Context,
	pagination domain.Pagination) ([]domain.Incident, *domain.Metadata, error) {

	query := `
		SELECT
			COUNT(*) OVER(),
			id, session_id, user_id, room_id, cinema_id, description, status, reported_at
		FROM incidents
		ORDER BY reported_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := p.db.Query(ctx, query, pagination.Limit(), pagination.Offset())
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	incidents := make([]domain.Incident, 0)
	totalRecords := 0

	for rows.Next() {
		var incident domain.Incident

		err := rows.Scan(
			&totalRecords,
			&incident.ID,
			&incident.SessionID,
			&incident.UserID,
			&incident.RoomID,
			&incident.CinemaID,
			&incident.Description,
			&incident.Status,
			&incident.ReportedAt,
		)
		if err != nil {
			return nil, nil, err
		}

		incidents = append(incidents, incident)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	metadata := domain.NewMetadata(totalRecords, pagination.Page, pagination.PageSize)

	return incidents, metadata, nil
}

func (p *PostgresIncidentRepository) Update(ctx context.Context, incident *domain.Incident) error {
	query := `
		UPDATE incidents
		SET description = $1, status = $2
		WHERE id = $3
	`

	result, err := p.db.Exec(ctx, query, incident.Description, incident.Status, incident.ID)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

func (p *PostgresIncidentRepository) Delete(ctx context.Context, id int) error {
	result, err := p.db.Exec(ctx, `DELETE FROM incidents WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

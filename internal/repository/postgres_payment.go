package repository

import (
	"context"
	"errors"

	"github.com/cinealto/cinema-reservation-api/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresPaymentRepository struct {
	db *pgxpool.Pool
}

func NewPostgresPaymentRepository(db *pgxpool.Pool) *PostgresPaymentRepository {
	return &PostgresPaymentRepository{
		db: db,
	}
}

func (p *PostgresPaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	query := `
		INSERT INTO payments (user_id, booking_id, stripe_checkout_session_id, amount, currency, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	return p.db.QueryRow(
		ctx,
		query,
		payment.UserID,
		payment.BookingID,
		payment.CheckoutSessionID,
		payment.Amount,
		payment.Currency,
		payment.Status,
	).Scan(&payment.ID, &payment.CreatedAt)
}

// MarkCompleted completes the payment and confirms its booking in one
// transaction, returning the booking ID.
func (p *PostgresPaymentRepository) MarkCompleted(ctx context.Context, checkoutSessionID string) (int, error) {
	var bookingID int

	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		query := `
			UPDATE payments
			SET status = 'completed', payment_date = NOW(), updated_at = NOW()
			WHERE stripe_checkout_session_id = $1
			RETURNING booking_id
		`

		err := tx.QueryRow(ctx, query, checkoutSessionID).Scan(&bookingID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrRecordNotFound
			}

			return err
		}

		query = `
			UPDATE bookings
			SET status = 'confirmed', updated_at = NOW()
			WHERE id = $1 AND status = 'pending'
		`

		result, err := tx.Exec(ctx, query, bookingID)
		if err != nil {
			return err
		}

		if result.RowsAffected() == 0 {
			return domain.ErrBookingNotPending
		}

		return nil
	})

	if err != nil {
		return 0, err
	}

	return bookingID, nil
}

func (p *PostgresPaymentRepository) MarkFailed(
	ctx context.Context,
	checkoutSessionID string,
	errMsg string) error {

	query := `
		UPDATE payments
		SET status = 'canceled', error_msg = $1, updated_at = NOW()
		WHERE stripe_checkout_session_id = $2
	`

	result, err := p.db.Exec(ctx, query, errMsg, checkoutSessionID)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

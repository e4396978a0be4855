package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v82"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCanceled  PaymentStatus = "canceled"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

type Payment struct {
	ID                int
	UserID            int
	BookingID         int
	CheckoutSessionID *string
	Amount            decimal.Decimal
	Currency          string
	Status            PaymentStatus
	ErrorMsg          *string
	PaymentDate       *time.Time
	CreatedAt         time.Time
	UpdatedAt         *time.Time
}

type PaymentRepository interface {
	Create(ctx context.Context, payment *Payment) error

	// MarkCompleted completes the payment identified by its checkout session
	// and confirms the referenced booking in the same transaction, returning
	// the booking ID.
	MarkCompleted(ctx context.Context, checkoutSessionID string) (int, error)

	MarkFailed(ctx context.Context, checkoutSessionID string, errMsg string) error
}

type PaymentProvider interface {
	CreateCheckoutSession(user *User, booking *Booking, movie *Movie, cinema *Cinema) (*stripe.CheckoutSession, error)
}

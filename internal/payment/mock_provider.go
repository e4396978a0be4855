package payment

import (
	"fmt"

	"github.com/stripe/stripe-go/v82"

	"github.com/cinealto/cinema-reservation-api/internal/domain"
)

type MockPaymentProvider struct {
}

func NewMockPaymentProvider() *MockPaymentProvider {
	return &MockPaymentProvider{}
}

func (m *MockPaymentProvider) CreateCheckoutSession(
	user *domain.User,
	booking *domain.Booking,
	movie *domain.Movie,
	cinema *domain.Cinema) (*stripe.CheckoutSession, error) {

	return &stripe.CheckoutSession{
		ID:  fmt.Sprintf("cs_test_%s", booking.Reference),
		URL: "https://checkout.example/session",
	}, nil
}

package mocks

import (
	"github.com/stretchr/testify/mock"
	"github.com/stripe/stripe-go/v82"

	"github.com/cinealto/cinema-reservation-api/internal/domain"
)

type MockPaymentProvider struct {
	mock.Mock
	domain.PaymentProvider
}

func (m *MockPaymentProvider) CreateCheckoutSession(
	user *domain.User,
	booking *domain.Booking,
	movie *domain.Movie,
	cinema *domain.Cinema) (*stripe.CheckoutSession, error) {

	args := m.Called(user, booking, movie, cinema)
	return args.Get(0).(*stripe.CheckoutSession), args.Error(1)
}

package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"

	"github.com/cinealto/cinema-reservation-api/api"
	"github.com/cinealto/cinema-reservation-api/internal/domain"
	"github.com/cinealto/cinema-reservation-api/internal/events"
)

func (app *Application) CreateCheckoutSessionHandler(w http.ResponseWriter, r *http.Request) {
	var input api.CheckoutSessionRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	booking, err := app.bookingRepo.GetByID(r.Context(), input.BookingId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponseWithErr(w, r, fmt.Errorf("booking not found"))
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	if !app.mayAccessBooking(r, booking) {
		app.forbiddenResponse(w, r)
		return
	}

	if booking.Status != domain.BookingStatusPending {
		app.badRequestResponse(w, r, fmt.Errorf("only pending bookings can be paid, booking is %s", booking.Status))
		return
	}

	user, err := app.userRepo.GetByID(r.Context(), booking.UserID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	movie, err := app.movieRepo.GetByID(r.Context(), booking.MovieID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	cinema, err := app.cinemaRepo.GetByID(r.Context(), booking.CinemaID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	checkoutSession, err := app.paymentProvider.CreateCheckoutSession(user, booking, movie, cinema)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	amount := booking.Price.Mul(decimal.NewFromInt(int64(len(booking.Seats))))

	payment := &domain.Payment{
		UserID:            booking.UserID,
		BookingID:         booking.ID,
		CheckoutSessionID: &checkoutSession.ID,
		Amount:            amount,
		Currency:          "EUR",
		Status:            domain.PaymentStatusPending,
	}

	err = app.paymentRepo.Create(r.Context(), payment)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.CheckoutSessionResponse{
		RedirectUrl: checkoutSession.URL,
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) StripeWebhookHandler(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	r.Body = http.MaxBytesReader(w, r.Body, 65536)
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	event, err := webhook.ConstructEvent(payload, r.Header.Get("Stripe-Signature"), app.config.Stripe.WebhookSecret)
	if err != nil {
		logger.Warn("webhook signature verification failed", "error", err)
		app.badRequestResponse(w, r, fmt.Errorf("webhook signature verification failed"))
		return
	}

	switch event.Type {
	case "checkout.session.completed":
		var checkoutSession stripe.CheckoutSession

		err = json.Unmarshal(event.Data.Raw, &checkoutSession)
		if err != nil {
			app.badRequestResponse(w, r, err)
			return
		}

		err = app.completePayment(w, r, checkoutSession.ID)
		if err != nil {
			return
		}

	case "checkout.session.expired":
		var checkoutSession stripe.CheckoutSession

		err = json.Unmarshal(event.Data.Raw, &checkoutSession)
		if err != nil {
			app.badRequestResponse(w, r, err)
			return
		}

		err = app.paymentRepo.MarkFailed(r.Context(), checkoutSession.ID, "checkout session expired")
		if err != nil && !errors.Is(err, domain.ErrRecordNotFound) {
			app.serverErrorResponse(w, r, err)
			return
		}

	default:
		logger.Info("unhandled webhook event type", "type", string(event.Type))
	}

	w.WriteHeader(http.StatusOK)
}

// completePayment confirms the payment and its booking, promotes the booked
// seats, and notifies the customer. A nil return means the 200 can be sent.
func (app *Application) completePayment(w http.ResponseWriter, r *http.Request, checkoutSessionID string) error {
	logger := app.contextGetLogger(r)

	bookingID, err := app.paymentRepo.MarkCompleted(r.Context(), checkoutSessionID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			// Unknown checkout session, acknowledge so Stripe stops retrying.
			logger.Warn("webhook for unknown checkout session", "checkout_session_id", checkoutSessionID)
			return nil
		case errors.Is(err, domain.ErrBookingNotPending):
			logger.Warn("webhook for a booking that is no longer pending", "checkout_session_id", checkoutSessionID)
			return nil
		default:
			app.serverErrorResponse(w, r, err)
			return err
		}
	}

	booking, err := app.bookingRepo.GetByID(r.Context(), bookingID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return err
	}

	for _, seat := range booking.Seats {
		err = app.seatRepo.SetStatus(r.Context(), seat.SeatID, booking.TimeRangeID, domain.SeatStateBooked)
		if err != nil {
			app.serverErrorResponse(w, r, err)
			return err
		}
	}

	logger.Info("booking confirmed", "booking_id", booking.ID, "reference", booking.Reference)

	app.publishEvent(r.Context(), events.RoutingKeyBookingConfirmed, toBookingEvent(booking))

	app.sendBookingConfirmation(booking)

	return nil
}

func (app *Application) sendBookingConfirmation(booking *domain.Booking) {
	user, err := app.userRepo.GetByID(context.Background(), booking.UserID)
	if err != nil {
		app.logger.Error("failed to load user for confirmation email", "booking_id", booking.ID, "error", err)
		return
	}

	movie, err := app.movieRepo.GetByID(context.Background(), booking.MovieID)
	if err != nil {
		app.logger.Error("failed to load movie for confirmation email", "booking_id", booking.ID, "error", err)
		return
	}

	cinema, err := app.cinemaRepo.GetByID(context.Background(), booking.CinemaID)
	if err != nil {
		app.logger.Error("failed to load cinema for confirmation email", "booking_id", booking.ID, "error", err)
		return
	}

	seatNumbers := make([]string, len(booking.Seats))
	for i, seat := range booking.Seats {
		seatNumbers[i] = seat.SeatNumber
	}

	data := map[string]any{
		"reference":  booking.Reference,
		"movieTitle": movie.Title,
		"cinemaName": cinema.Name,
		"date":       booking.TimeRangeStart.Format("Mon, 02 Jan 2006 15:04"),
		"seats":      strings.Join(seatNumbers, ", "),
	}

	go func() {
		defer func() {
			if err := recover(); err != nil {
				app.logger.Error("panic while sending confirmation email", "error", err)
			}
		}()

		err := app.mailer.Send(user.Email, "booking_confirmation.tmpl", data)
		if err != nil {
			app.logger.Error("failed to send confirmation email", "booking_id", booking.ID, "error", err)
		}
	}()
}

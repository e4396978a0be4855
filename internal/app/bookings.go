package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/cinealto/cinema-reservation-api/api"
	"github.com/cinealto/cinema-reservation-api/internal/domain"
	"github.com/cinealto/cinema-reservation-api/internal/events"
)

// seatLockTTL bounds the window between the Redis fast-fail check and the
// transactional seat booking. Locks are released as soon as the transaction
// finishes; the TTL only covers crashes in between.
const seatLockTTL = 2 * time.Minute

var lockSeatsScript = redis.NewScript(`
    -- KEYS = seat lock keys (e.g., seat_lock:123:A1, seat_lock:123:A2 etc.)
    -- ARGV = [owner, ttl]

    for i=1, #KEYS do
        if redis.call("EXISTS", KEYS[i]) == 1 then
            return {err = "seat already locked"} -- Return an error indicator
        end
    end

    for i=1, #KEYS do
        redis.call("SET", KEYS[i], ARGV[1], "EX", ARGV[2])
    end

    return "OK"
`)

func (app *Application) CreateBookingHandler(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	var input api.BookingRequest

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

	if input.BookingId != nil {
		app.badRequestResponse(w, r, errors.New("bookingId must not be set when creating a booking"))
		return
	}

	session, timeRange, ok := app.resolveBookingRefs(w, r, input)
	if !ok {
		return
	}

	booking := toDomainBooking(input, session, timeRange)
	booking.Reference = uuid.New().String()
	booking.Status = domain.BookingStatusPending

	seatStatus := domain.SeatState(input.SeatStatus)
	if seatStatus == "" {
		seatStatus = domain.SeatStatePending
	}

	seatNumbers := make([]string, len(input.SeatsBooked))
	for i, seat := range input.SeatsBooked {
		seatNumbers[i] = seat.SeatNumber
	}

	err = app.tryLockSeats(r.Context(), timeRange.ID, seatNumbers, booking.Reference)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSeatLockHeld):
			logger.Warn("booking conflict: seats locked by a concurrent request", "time_range_id", timeRange.ID)
			app.editConflictResponseWithErr(w, r, err)
		default:
			app.serverErrorResponse(w, r, fmt.Errorf("seats couldn't be acquired: %w", err))
		}
		return
	}
	defer app.releaseSeatLocks(r.Context(), timeRange.ID, seatNumbers)

	err = app.bookingRepo.CreateWithSeats(r.Context(), booking, seatStatus)
	if err != nil {
		app.respondBookingWriteError(w, r, err)
		return
	}

	logger.Info("booking created", "booking_id", booking.ID, "reference", booking.Reference, "seats", len(booking.Seats))

	app.publishEvent(r.Context(), events.RoutingKeyBookingCreated, toBookingEvent(booking))

	resp := toBookingResponse(booking)

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) UpdateBookingHandler(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	var input api.BookingRequest

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

	if input.BookingId == nil {
		app.badRequestResponse(w, r, errors.New("bookingId is required when updating a booking"))
		return
	}

	existing, err := app.bookingRepo.GetByID(r.Context(), input.BookingId.Int())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	if !app.mayAccessBooking(r, existing) {
		app.forbiddenResponse(w, r)
		return
	}

	session, timeRange, ok := app.resolveBookingRefs(w, r, input)
	if !ok {
		return
	}

	booking := toDomainBooking(input, session, timeRange)
	booking.ID = existing.ID
	booking.Reference = existing.Reference
	booking.Status = existing.Status

	seatStatus := domain.SeatState(input.SeatStatus)
	if seatStatus == "" {
		seatStatus = domain.SeatStatePending
	}

	seatNumbers := make([]string, len(input.SeatsBooked))
	for i, seat := range input.SeatsBooked {
		seatNumbers[i] = seat.SeatNumber
	}

	err = app.tryLockSeats(r.Context(), timeRange.ID, seatNumbers, booking.Reference)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSeatLockHeld):
			app.editConflictResponseWithErr(w, r, err)
		default:
			app.serverErrorResponse(w, r, fmt.Errorf("seats couldn't be acquired: %w", err))
		}
		return
	}
	defer app.releaseSeatLocks(r.Context(), timeRange.ID, seatNumbers)

	err = app.bookingRepo.UpdateWithSeats(r.Context(), booking, seatStatus)
	if err != nil {
		app.respondBookingWriteError(w, r, err)
		return
	}

	logger.Info("booking updated", "booking_id", booking.ID, "seats", len(booking.Seats))

	resp := toBookingResponse(booking)

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetBookingHandler(w http.ResponseWriter, r *http.Request) {
	bookingID, err := app.readIDParam(r, "bookingId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	booking, err := app.bookingRepo.GetByID(r.Context(), bookingID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	if !app.mayAccessBooking(r, booking) {
		app.forbiddenResponse(w, r)
		return
	}

	resp := toBookingResponse(booking)

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetUserBookingsHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := app.readIDParam(r, "userId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if userID != app.contextGetUserId(r) && !app.isAdmin(r) {
		app.forbiddenResponse(w, r)
		return
	}

	pagination := app.readPagination(r)

	summaries, metadata, err := app.bookingRepo.GetSummariesByUserID(r.Context(), userID, pagination)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	bookings := make([]api.BookingSummaryResponse, len(summaries))
	for i, s := range summaries {
		bookings[i] = api.BookingSummaryResponse{
			Id:         s.ID,
			Reference:  s.Reference,
			MovieTitle: s.MovieTitle,
			CinemaName: s.CinemaName,
			Date:       s.Date,
			Status:     string(s.Status),
			Price:      s.Price,
			CreatedAt:  s.CreatedAt,
		}
	}

	resp := api.UserBookingsResponse{
		Bookings: bookings,
		Metadata: toApiMetadata(metadata),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CancelBookingHandler(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	bookingID, err := app.readIDParam(r, "bookingId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	booking, err := app.bookingRepo.GetByID(r.Context(), bookingID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	if !app.mayAccessBooking(r, booking) {
		app.forbiddenResponse(w, r)
		return
	}

	if booking.Status == domain.BookingStatusCancelled {
		app.badRequestResponse(w, r, errors.New("booking is already cancelled"))
		return
	}

	booking, err = app.bookingRepo.Cancel(r.Context(), bookingID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	logger.Info("booking cancelled", "booking_id", booking.ID, "reference", booking.Reference)

	app.publishEvent(r.Context(), events.RoutingKeyBookingCancelled, toBookingEvent(booking))

	resp := toBookingResponse(booking)

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// resolveBookingRefs checks every entity the booking references and that the
// time range belongs to the session. It writes the error response itself and
// reports success through the boolean.
func (app *Application) resolveBookingRefs(w http.ResponseWriter, r *http.Request, input api.BookingRequest) (*domain.Session, *domain.TimeRange, bool) {
	if input.UserId.Int() != app.contextGetUserId(r) && !app.isAdmin(r) {
		app.forbiddenResponse(w, r)
		return nil, nil, false
	}

	_, err := app.userRepo.GetByID(r.Context(), input.UserId.Int())
	if err != nil {
		app.respondRefError(w, r, "user", err)
		return nil, nil, false
	}

	session, err := app.sessionRepo.GetByID(r.Context(), input.SessionId.Int())
	if err != nil {
		app.respondRefError(w, r, "session", err)
		return nil, nil, false
	}

	if session.Status != domain.SessionStatusActive {
		app.notFoundResponseWithErr(w, r, errors.New("session not found"))
		return nil, nil, false
	}

	if session.MovieID != input.MovieId.Int() || session.CinemaID != input.CinemaId.Int() || session.RoomID != input.RoomId.Int() {
		app.badRequestResponse(w, r, errors.New("movie, cinema and room must match the session"))
		return nil, nil, false
	}

	timeRange := session.TimeRangeByID(input.TimeRangeId.Int())
	if timeRange == nil || timeRange.Status == domain.TimeRangeStatusDeleted {
		app.badRequestResponse(w, r, errors.New("time range does not belong to the session"))
		return nil, nil, false
	}

	return session, timeRange, true
}

func (app *Application) respondBookingWriteError(w http.ResponseWriter, r *http.Request, err error) {
	var seatNotFoundErr domain.SeatNotFoundError
	var seatBookedErr domain.SeatAlreadyBookedError

	switch {
	case errors.As(err, &seatNotFoundErr):
		app.notFoundResponseWithErr(w, r, seatNotFoundErr)
	case errors.As(err, &seatBookedErr):
		app.editConflictResponseWithErr(w, r, seatBookedErr)
	case errors.Is(err, domain.ErrRecordNotFound):
		app.notFoundResponse(w, r)
	default:
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) isAdmin(r *http.Request) bool {
	role, _ := r.Context().Value(SessionKeyRole).(string)
	return role == string(domain.RoleAdmin)
}

func (app *Application) mayAccessBooking(r *http.Request, booking *domain.Booking) bool {
	return booking.UserID == app.contextGetUserId(r) || app.isAdmin(r)
}

func (app *Application) tryLockSeats(ctx context.Context, timeRangeID int, seatNumbers []string, owner string) error {
	keys := make([]string, len(seatNumbers))
	for i, number := range seatNumbers {
		keys[i] = seatLockKey(timeRangeID, number)
	}

	err := lockSeatsScript.Run(ctx, app.redis, keys, owner, int(seatLockTTL.Seconds())).Err()
	if err != nil {
		if redis.HasErrorPrefix(err, "seat already locked") {
			return domain.ErrSeatLockHeld
		}

		return err
	}

	return nil
}

func (app *Application) releaseSeatLocks(ctx context.Context, timeRangeID int, seatNumbers []string) {
	keys := make([]string, len(seatNumbers))
	for i, number := range seatNumbers {
		keys[i] = seatLockKey(timeRangeID, number)
	}

	err := app.redis.Del(ctx, keys...).Err()
	if err != nil {
		app.logger.Error("failed to release seat locks", "error", err)
	}
}

func seatLockKey(timeRangeID int, seatNumber string) string {
	return fmt.Sprintf("seat_lock:%d:%s", timeRangeID, seatNumber)
}

func toDomainBooking(input api.BookingRequest, session *domain.Session, timeRange *domain.TimeRange) *domain.Booking {
	booking := &domain.Booking{
		UserID:    input.UserId.Int(),
		SessionID: session.ID,
		MovieID:   session.MovieID,
		CinemaID:  session.CinemaID,
		RoomID:    session.RoomID,

		TimeRangeID:    timeRange.ID,
		TimeRangeStart: timeRange.StartsAt,
		TimeRangeEnd:   timeRange.EndsAt,

		Price: *input.Price,
	}

	for _, seat := range input.SeatsBooked {
		booking.Seats = append(booking.Seats, domain.BookingSeat{
			SeatNumber: seat.SeatNumber,
		})
	}

	return booking
}

func toBookingEvent(booking *domain.Booking) events.BookingEvent {
	return events.BookingEvent{
		EventID:    uuid.New().String(),
		BookingID:  booking.ID,
		Reference:  booking.Reference,
		UserID:     booking.UserID,
		SessionID:  booking.SessionID,
		CinemaID:   booking.CinemaID,
		SeatCount:  len(booking.Seats),
		Status:     string(booking.Status),
		OccurredAt: time.Now(),
	}
}

func toBookingResponse(booking *domain.Booking) api.BookingResponse {
	seats := make([]api.BookingSeatResponse, len(booking.Seats))
	for i, seat := range booking.Seats {
		seats[i] = api.BookingSeatResponse{
			SeatId:     seat.SeatID,
			SeatNumber: seat.SeatNumber,
			Status:     string(seat.Status),
			Pmr:        seat.PMR,
		}
	}

	return api.BookingResponse{
		Id:        booking.ID,
		Reference: booking.Reference,
		UserId:    booking.UserID,
		SessionId: booking.SessionID,
		MovieId:   booking.MovieID,
		CinemaId:  booking.CinemaID,
		RoomId:    booking.RoomID,
		TimeRange: api.TimeRangeSnapshot{
			Id:       booking.TimeRangeID,
			StartsAt: booking.TimeRangeStart,
			EndsAt:   booking.TimeRangeEnd,
		},
		Seats:     seats,
		Price:     booking.Price,
		Status:    string(booking.Status),
		CreatedAt: booking.CreatedAt,
	}
}

package app

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/cinealto/cinema-reservation-api/api"
	"github.com/cinealto/cinema-reservation-api/internal/domain"
	"github.com/cinealto/cinema-reservation-api/internal/mocks"
)

type BookingsTestSuite struct {
	suite.Suite
	app         *Application
	bookingRepo *mocks.MockBookingRepo
	sessionRepo *mocks.MockSessionRepo
	userRepo    *mocks.MockUserRepo
	redisClient *mocks.MockRedisClient
}

func (s *BookingsTestSuite) SetupTest() {
	s.bookingRepo = &mocks.MockBookingRepo{}
	s.sessionRepo = &mocks.MockSessionRepo{}
	s.userRepo = &mocks.MockUserRepo{}
	s.redisClient = new(mocks.MockRedisClient)

	s.app = newTestApplication(func(a *Application) {
		a.bookingRepo = s.bookingRepo
		a.sessionRepo = s.sessionRepo
		a.userRepo = s.userRepo
		a.redis = s.redisClient
	})
}

func TestBookingsSuite(t *testing.T) {
	suite.Run(t, new(BookingsTestSuite))
}

func (s *BookingsTestSuite) stubSession() {
	s.userRepo.GetByIDFunc = func(ctx context.Context, id int) (*domain.User, error) {
		return &domain.User{ID: id, Email: "alice@example.com"}, nil
	}

	s.sessionRepo.GetByIDFunc = func(ctx context.Context, id int) (*domain.Session, error) {
		return &domain.Session{
			ID:       5,
			MovieID:  1,
			CinemaID: 3,
			RoomID:   2,
			Status:   domain.SessionStatusActive,
			TimeRanges: []domain.TimeRange{
				{
					ID:        70,
					SessionID: 5,
					StartsAt:  time.Date(2026, 9, 1, 14, 0, 0, 0, time.UTC),
					EndsAt:    time.Date(2026, 9, 1, 16, 0, 0, 0, time.UTC),
					Status:    domain.TimeRangeStatusAvailable,
				},
			},
		}, nil
	}
}

func (s *BookingsTestSuite) stubLockSuccess() {
	s.redisClient.On("EvalSha", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(redis.NewCmdResult("OK", nil))
	s.redisClient.On("Del", mock.Anything, mock.Anything).
		Return(redis.NewIntResult(1, nil))
}

func validBookingBody() map[string]any {
	return map[string]any{
		"userId":      7,
		"sessionId":   5,
		"movieId":     1,
		"cinemaId":    3,
		"roomId":      2,
		"timeRangeId": 70,
		"price":       "12.50",
		"seatsBooked": []map[string]any{{"seatNumber": "12"}, {"seatNumber": "13"}},
	}
}

func (s *BookingsTestSuite) TestCreateBookingHandler() {
	tests := []struct {
		name           string
		body           func() map[string]any
		userId         int
		role           domain.Role
		setupMocks     func()
		wantStatus     int
		wantErrMessage string
	}{
		{
			name: "should fail validation when no seats are requested",
			body: func() map[string]any {
				b := validBookingBody()
				delete(b, "seatsBooked")
				return b
			},
			userId:         7,
			role:           domain.RoleCustomer,
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: "is required",
		},
		{
			name: "should reject a non-numeric identifier before validation",
			body: func() map[string]any {
				b := validBookingBody()
				b["sessionId"] = "abc"
				return b
			},
			userId:     7,
			role:       domain.RoleCustomer,
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "should reject a bookingId on creation",
			body: func() map[string]any {
				b := validBookingBody()
				b["bookingId"] = 11
				return b
			},
			userId:         7,
			role:           domain.RoleCustomer,
			wantStatus:     http.StatusBadRequest,
			wantErrMessage: "bookingId must not be set when creating a booking",
		},
		{
			name:       "should forbid booking on behalf of another user",
			body:       validBookingBody,
			userId:     8,
			role:       domain.RoleCustomer,
			wantStatus: http.StatusForbidden,
		},
		{
			name:   "should fail when the session does not exist",
			body:   validBookingBody,
			userId: 7,
			role:   domain.RoleCustomer,
			setupMocks: func() {
				s.stubSession()
				s.sessionRepo.GetByIDFunc = func(ctx context.Context, id int) (*domain.Session, error) {
					return nil, domain.ErrRecordNotFound
				}
			},
			wantStatus:     http.StatusNotFound,
			wantErrMessage: "session not found",
		},
		{
			name: "should fail when the movie does not match the session",
			body: func() map[string]any {
				b := validBookingBody()
				b["movieId"] = 99
				return b
			},
			userId: 7,
			role:   domain.RoleCustomer,
			setupMocks: func() {
				s.stubSession()
			},
			wantStatus:     http.StatusBadRequest,
			wantErrMessage: "movie, cinema and room must match the session",
		},
		{
			name: "should fail when the time range does not belong to the session",
			body: func() map[string]any {
				b := validBookingBody()
				b["timeRangeId"] = 999
				return b
			},
			userId: 7,
			role:   domain.RoleCustomer,
			setupMocks: func() {
				s.stubSession()
			},
			wantStatus:     http.StatusBadRequest,
			wantErrMessage: "time range does not belong to the session",
		},
		{
			name:   "should answer 409 when the seats are locked by a concurrent request",
			body:   validBookingBody,
			userId: 7,
			role:   domain.RoleCustomer,
			setupMocks: func() {
				s.stubSession()
				s.redisClient.On("EvalSha", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
					Return(redis.NewCmdResult(nil, mocks.MockRedisError{Msg: "seat already locked"}))
			},
			wantStatus:     http.StatusConflict,
			wantErrMessage: domain.ErrSeatLockHeld.Error(),
		},
		{
			name:   "should answer 409 when a seat is already booked for the time range",
			body:   validBookingBody,
			userId: 7,
			role:   domain.RoleCustomer,
			setupMocks: func() {
				s.stubSession()
				s.stubLockSuccess()
				s.bookingRepo.CreateWithSeatsFunc = func(ctx context.Context, booking *domain.Booking, seatStatus domain.SeatState) error {
					return domain.SeatAlreadyBookedError{SeatNumber: "12"}
				}
			},
			wantStatus:     http.StatusConflict,
			wantErrMessage: "seat 12 is already booked for this time range",
		},
		{
			name:   "should answer 404 when a seat does not exist in the room",
			body:   validBookingBody,
			userId: 7,
			role:   domain.RoleCustomer,
			setupMocks: func() {
				s.stubSession()
				s.stubLockSuccess()
				s.bookingRepo.CreateWithSeatsFunc = func(ctx context.Context, booking *domain.Booking, seatStatus domain.SeatState) error {
					return domain.SeatNotFoundError{SeatNumber: "13"}
				}
			},
			wantStatus:     http.StatusNotFound,
			wantErrMessage: "seat 13 does not exist in this room",
		},
		{
			name:   "should create a booking with valid input",
			body:   validBookingBody,
			userId: 7,
			role:   domain.RoleCustomer,
			setupMocks: func() {
				s.stubSession()
				s.stubLockSuccess()
				s.bookingRepo.CreateWithSeatsFunc = func(ctx context.Context, booking *domain.Booking, seatStatus domain.SeatState) error {
					s.Equal(domain.SeatStatePending, seatStatus)
					booking.ID = 21
					booking.Seats[0].SeatID = 201
					booking.Seats[0].Status = seatStatus
					booking.Seats[1].SeatID = 202
					booking.Seats[1].Status = seatStatus
					booking.CreatedAt = time.Now()
					return nil
				}
			},
			wantStatus: http.StatusCreated,
		},
		{
			name: "should accept numeric string identifiers",
			body: func() map[string]any {
				b := validBookingBody()
				b["userId"] = "7"
				b["sessionId"] = "5"
				b["timeRangeId"] = "70"
				return b
			},
			userId: 7,
			role:   domain.RoleCustomer,
			setupMocks: func() {
				s.stubSession()
				s.stubLockSuccess()
				s.bookingRepo.CreateWithSeatsFunc = func(ctx context.Context, booking *domain.Booking, seatStatus domain.SeatState) error {
					booking.ID = 22
					return nil
				}
			},
			wantStatus: http.StatusCreated,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()

			if tt.setupMocks != nil {
				tt.setupMocks()
			}

			w, r := executeRequest(s.T(), http.MethodPost, "/api/bookings", tt.body())
			r = asUser(r, tt.userId, tt.role)

			s.app.CreateBookingHandler(w, r)

			s.Equal(tt.wantStatus, w.Code)
			checkErrorResponse(s.T(), w, tt.wantStatus, tt.wantErrMessage)

			if tt.wantStatus == http.StatusCreated {
				var resp api.BookingResponse
				s.NoError(json.NewDecoder(w.Body).Decode(&resp))
				s.NotZero(resp.Id)
				s.Equal(70, resp.TimeRange.Id)
				s.Equal("pending", resp.Status)
				s.NotEmpty(resp.Reference)
			}
		})
	}
}

func (s *BookingsTestSuite) TestUpdateBookingHandler() {
	s.stubSession()
	s.stubLockSuccess()

	s.bookingRepo.GetByIDFunc = func(ctx context.Context, id int) (*domain.Booking, error) {
		return &domain.Booking{
			ID:        11,
			Reference: "ref-11",
			UserID:    7,
			Status:    domain.BookingStatusPending,
		}, nil
	}

	var updated *domain.Booking
	s.bookingRepo.UpdateWithSeatsFunc = func(ctx context.Context, booking *domain.Booking, seatStatus domain.SeatState) error {
		updated = booking
		return nil
	}

	body := validBookingBody()
	body["bookingId"] = 11
	body["seatStatus"] = "booked"

	w, r := executeRequest(s.T(), http.MethodPut, "/api/bookings", body)
	r = asUser(r, 7, domain.RoleCustomer)

	s.app.UpdateBookingHandler(w, r)

	s.Equal(http.StatusOK, w.Code)
	s.Require().NotNil(updated)
	s.Equal(11, updated.ID)
	s.Equal("ref-11", updated.Reference)
	s.Len(updated.Seats, 2)
}

func (s *BookingsTestSuite) TestUpdateBookingHandlerRequiresBookingId() {
	w, r := executeRequest(s.T(), http.MethodPut, "/api/bookings", validBookingBody())
	r = asUser(r, 7, domain.RoleCustomer)

	s.app.UpdateBookingHandler(w, r)

	s.Equal(http.StatusBadRequest, w.Code)
	checkErrorResponse(s.T(), w, http.StatusBadRequest, "bookingId is required when updating a booking")
}

func (s *BookingsTestSuite) TestCancelBookingHandler() {
	tests := []struct {
		name           string
		userId         int
		role           domain.Role
		bookingStatus  domain.BookingStatus
		wantStatus     int
		wantErrMessage string
	}{
		{
			name:          "owner can cancel a pending booking",
			userId:        7,
			role:          domain.RoleCustomer,
			bookingStatus: domain.BookingStatusPending,
			wantStatus:    http.StatusOK,
		},
		{
			name:          "admin can cancel any booking",
			userId:        1,
			role:          domain.RoleAdmin,
			bookingStatus: domain.BookingStatusConfirmed,
			wantStatus:    http.StatusOK,
		},
		{
			name:          "another customer is forbidden",
			userId:        8,
			role:          domain.RoleCustomer,
			bookingStatus: domain.BookingStatusPending,
			wantStatus:    http.StatusForbidden,
		},
		{
			name:           "cancelling twice is rejected",
			userId:         7,
			role:           domain.RoleCustomer,
			bookingStatus:  domain.BookingStatusCancelled,
			wantStatus:     http.StatusBadRequest,
			wantErrMessage: "booking is already cancelled",
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()

			s.bookingRepo.GetByIDFunc = func(ctx context.Context, id int) (*domain.Booking, error) {
				return &domain.Booking{
					ID:     14,
					UserID: 7,
					Status: tt.bookingStatus,
					Price:  decimal.NewFromInt(10),
				}, nil
			}
			s.bookingRepo.CancelFunc = func(ctx context.Context, id int) (*domain.Booking, error) {
				return &domain.Booking{
					ID:     14,
					UserID: 7,
					Status: domain.BookingStatusCancelled,
					Price:  decimal.NewFromInt(10),
				}, nil
			}

			w, r := executeRequest(s.T(), http.MethodPatch, "/api/bookings/soft-delete/14", nil)
			r = withURLParams(r, map[string]string{"bookingId": "14"})
			r = asUser(r, tt.userId, tt.role)

			s.app.CancelBookingHandler(w, r)

			s.Equal(tt.wantStatus, w.Code)
			checkErrorResponse(s.T(), w, tt.wantStatus, tt.wantErrMessage)

			if tt.wantStatus == http.StatusOK {
				var resp api.BookingResponse
				s.NoError(json.NewDecoder(w.Body).Decode(&resp))
				s.Equal("cancelled", resp.Status)
			}
		})
	}
}

func (s *BookingsTestSuite) TestGetUserBookingsHandler() {
	s.bookingRepo.GetSummariesByUserIDFunc = func(ctx context.Context, userID int, pagination domain.Pagination) ([]domain.BookingSummary, *domain.Metadata, error) {
		s.Equal(7, userID)
		return []domain.BookingSummary{
			{
				ID:         14,
				Reference:  "ref-14",
				MovieTitle: "Dune",
				CinemaName: "Le Grand Rex",
				Status:     domain.BookingStatusConfirmed,
				Price:      decimal.NewFromInt(12),
			},
		}, domain.NewMetadata(1, 1, 20), nil
	}

	w, r := executeRequest(s.T(), http.MethodGet, "/api/bookings/user/7", nil)
	r = withURLParams(r, map[string]string{"userId": "7"})
	r = asUser(r, 7, domain.RoleCustomer)

	s.app.GetUserBookingsHandler(w, r)

	s.Equal(http.StatusOK, w.Code)

	var resp api.UserBookingsResponse
	s.NoError(json.NewDecoder(w.Body).Decode(&resp))
	s.Len(resp.Bookings, 1)
	s.Equal("Dune", resp.Bookings[0].MovieTitle)
	s.Equal(1, resp.Metadata.TotalRecords)
}

func (s *BookingsTestSuite) TestGetUserBookingsHandlerForbidsOtherUsers() {
	w, r := executeRequest(s.T(), http.MethodGet, "/api/bookings/user/7", nil)
	r = withURLParams(r, map[string]string{"userId": "7"})
	r = asUser(r, 8, domain.RoleCustomer)

	s.app.GetUserBookingsHandler(w, r)

	s.Equal(http.StatusForbidden, w.Code)
}

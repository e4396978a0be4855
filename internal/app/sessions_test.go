package app

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/cinealto/cinema-reservation-api/api"
	"github.com/cinealto/cinema-reservation-api/internal/domain"
	"github.com/cinealto/cinema-reservation-api/internal/mocks"
)

type SessionsTestSuite struct {
	suite.Suite
	app         *Application
	sessionRepo *mocks.MockSessionRepo
	movieRepo   *mocks.MockMovieRepo
	roomRepo    *mocks.MockRoomRepo
	cinemaRepo  *mocks.MockCinemaRepo
	bookingRepo *mocks.MockBookingRepo
}

func (s *SessionsTestSuite) SetupTest() {
	s.sessionRepo = &mocks.MockSessionRepo{}
	s.movieRepo = &mocks.MockMovieRepo{}
	s.roomRepo = &mocks.MockRoomRepo{}
	s.cinemaRepo = &mocks.MockCinemaRepo{}
	s.bookingRepo = &mocks.MockBookingRepo{}

	s.app = newTestApplication(func(a *Application) {
		a.sessionRepo = s.sessionRepo
		a.movieRepo = s.movieRepo
		a.roomRepo = s.roomRepo
		a.cinemaRepo = s.cinemaRepo
		a.bookingRepo = s.bookingRepo
	})
}

func TestSessionsSuite(t *testing.T) {
	suite.Run(t, new(SessionsTestSuite))
}

func (s *SessionsTestSuite) stubRefs(movieDuration int, roomCinemaID int) {
	s.movieRepo.GetByIDFunc = func(ctx context.Context, id int) (*domain.Movie, error) {
		return &domain.Movie{ID: id, Title: "Dune", Duration: movieDuration}, nil
	}
	s.roomRepo.GetByIDFunc = func(ctx context.Context, id int) (*domain.Room, error) {
		return &domain.Room{ID: id, CinemaID: roomCinemaID, Number: 1, Capacity: 50}, nil
	}
	s.cinemaRepo.GetByIDFunc = func(ctx context.Context, id int) (*domain.Cinema, error) {
		return &domain.Cinema{
			ID:          id,
			Name:        "Le Grand Rex",
			OpeningTime: domain.TimeOfDay{Hour: 10},
			ClosingTime: domain.TimeOfDay{Hour: 22},
		}, nil
	}
}

func validSessionRequest() api.SessionRequest {
	starts := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	return api.SessionRequest{
		MovieId:      1,
		RoomId:       2,
		CinemaId:     3,
		SessionDate:  api.Date{Time: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)},
		SessionPrice: decimal.NewFromFloat(12.50),
		TimeRanges: []api.TimeRangePayload{
			{StartsAt: starts, EndsAt: starts.Add(2 * time.Hour)},
		},
	}
}

func (s *SessionsTestSuite) TestCreateSessionHandler() {
	tests := []struct {
		name           string
		body           func() api.SessionRequest
		setupMocks     func()
		wantStatus     int
		wantErrMessage string
	}{
		{
			name: "should fail validation when time ranges are missing",
			body: func() api.SessionRequest {
				req := validSessionRequest()
				req.TimeRanges = nil
				return req
			},
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: "is required",
		},
		{
			name: "should fail when the movie does not exist",
			body: validSessionRequest,
			setupMocks: func() {
				s.stubRefs(120, 3)
				s.movieRepo.GetByIDFunc = func(ctx context.Context, id int) (*domain.Movie, error) {
					return nil, domain.ErrRecordNotFound
				}
			},
			wantStatus:     http.StatusNotFound,
			wantErrMessage: "movie not found",
		},
		{
			name: "should fail when the room belongs to another cinema",
			body: validSessionRequest,
			setupMocks: func() {
				s.stubRefs(120, 99)
			},
			wantStatus:     http.StatusBadRequest,
			wantErrMessage: "room does not belong to the given cinema",
		},
		{
			name: "should answer a duplicate session with the existing session id",
			body: validSessionRequest,
			setupMocks: func() {
				s.stubRefs(120, 3)
				s.sessionRepo.CreateFunc = func(ctx context.Context, session *domain.Session) error {
					return domain.SessionExistsError{ExistingSessionID: 42}
				}
			},
			wantStatus: http.StatusConflict,
		},
		{
			name: "should fail when a time range overlaps another session",
			body: validSessionRequest,
			setupMocks: func() {
				s.stubRefs(120, 3)
				s.sessionRepo.CreateFunc = func(ctx context.Context, session *domain.Session) error {
					return domain.TimeRangeOverlapError{
						StartsAt: time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
						EndsAt:   time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC),
					}
				}
			},
			wantStatus:     http.StatusBadRequest,
			wantErrMessage: "time range 10:00 - 12:00 overlaps an existing session in this room",
		},
		{
			name: "should create a session with valid input",
			body: validSessionRequest,
			setupMocks: func() {
				s.stubRefs(120, 3)
				s.sessionRepo.CreateFunc = func(ctx context.Context, session *domain.Session) error {
					session.ID = 7
					session.TimeRanges[0].ID = 70
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

			w, r := executeRequest(s.T(), http.MethodPost, "/api/sessions", tt.body())

			s.app.CreateSessionHandler(w, r)

			s.Equal(tt.wantStatus, w.Code)

			if tt.wantStatus == http.StatusConflict {
				var resp api.SessionConflictResponse
				s.NoError(json.NewDecoder(w.Body).Decode(&resp))
				s.Equal(42, resp.ExistingSessionId)
				return
			}

			checkErrorResponse(s.T(), w, tt.wantStatus, tt.wantErrMessage)

			if tt.wantStatus == http.StatusCreated {
				var resp api.SessionResponse
				s.NoError(json.NewDecoder(w.Body).Decode(&resp))
				s.Equal(7, resp.Id)
				s.Len(resp.TimeRanges, 1)
				s.Equal(70, resp.TimeRanges[0].Id)
			}
		})
	}
}

func (s *SessionsTestSuite) TestGetAvailableTimeRangesHandler() {
	s.stubRefs(120, 3)

	date := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	s.sessionRepo.GetByRoomAndDateFunc = func(ctx context.Context, roomID int, d time.Time) ([]domain.Session, error) {
		s.Equal(2, roomID)
		return []domain.Session{
			{
				ID: 5,
				TimeRanges: []domain.TimeRange{
					{
						ID:       50,
						StartsAt: time.Date(2026, 9, 1, 14, 0, 0, 0, time.UTC),
						EndsAt:   time.Date(2026, 9, 1, 16, 0, 0, 0, time.UTC),
						Status:   domain.TimeRangeStatusAvailable,
					},
				},
			},
		}, nil
	}

	url := "/api/sessions/available-time-ranges?cinemaId=3&roomId=2&movieId=1&date=2026-09-01"
	w, r := executeRequest(s.T(), http.MethodGet, url, nil)

	s.app.GetAvailableTimeRangesHandler(w, r)

	s.Equal(http.StatusOK, w.Code)

	var resp api.AvailableTimeRangesResponse
	s.NoError(json.NewDecoder(w.Body).Decode(&resp))

	want := []api.CandidateRangeResponse{
		{StartsAt: date.Add(10 * time.Hour), EndsAt: date.Add(12 * time.Hour)},
		{StartsAt: date.Add(12 * time.Hour), EndsAt: date.Add(14 * time.Hour)},
		{StartsAt: date.Add(16 * time.Hour), EndsAt: date.Add(18 * time.Hour)},
		{StartsAt: date.Add(18 * time.Hour), EndsAt: date.Add(20 * time.Hour)},
		{StartsAt: date.Add(20 * time.Hour), EndsAt: date.Add(22 * time.Hour)},
	}

	if diff := cmp.Diff(want, resp.TimeRanges); diff != "" {
		s.T().Errorf("time ranges mismatch (-want +got):\n%s", diff)
	}
}

func (s *SessionsTestSuite) TestGetAvailableTimeRangesHandlerRejectsBadParams() {
	tests := []struct {
		name string
		url  string
	}{
		{name: "missing cinema id", url: "/api/sessions/available-time-ranges?roomId=2&movieId=1&date=2026-09-01"},
		{name: "non-numeric room id", url: "/api/sessions/available-time-ranges?cinemaId=3&roomId=abc&movieId=1&date=2026-09-01"},
		{name: "malformed date", url: "/api/sessions/available-time-ranges?cinemaId=3&roomId=2&movieId=1&date=01-09-2026"},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			w, r := executeRequest(s.T(), http.MethodGet, tt.url, nil)

			s.app.GetAvailableTimeRangesHandler(w, r)

			s.Equal(http.StatusBadRequest, w.Code)
		})
	}
}

func (s *SessionsTestSuite) TestDeleteSessionHandler() {
	tests := []struct {
		name         string
		bookingCount int
		deleteErr    error
		outcome      domain.SessionDeleteOutcome
		wantStatus   int
		wantOutcome  string
	}{
		{
			name:         "hard deletes a session without bookings",
			bookingCount: 0,
			outcome:      domain.SessionHardDeleted,
			wantStatus:   http.StatusOK,
			wantOutcome:  "hard",
		},
		{
			name:         "soft deletes a session with bookings",
			bookingCount: 3,
			outcome:      domain.SessionSoftDeleted,
			wantStatus:   http.StatusOK,
			wantOutcome:  "soft",
		},
		{
			name:       "answers 404 for an unknown session",
			deleteErr:  domain.ErrRecordNotFound,
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()

			s.bookingRepo.CountBySessionIDFunc = func(ctx context.Context, sessionID int) (int, error) {
				return tt.bookingCount, nil
			}
			s.sessionRepo.DeleteFunc = func(ctx context.Context, id int) (domain.SessionDeleteOutcome, error) {
				if tt.deleteErr != nil {
					return "", tt.deleteErr
				}
				return tt.outcome, nil
			}

			w, r := executeRequest(s.T(), http.MethodDelete, "/api/sessions/9", nil)
			r = withURLParams(r, map[string]string{"sessionId": "9"})

			s.app.DeleteSessionHandler(w, r)

			s.Equal(tt.wantStatus, w.Code)

			if tt.wantStatus == http.StatusOK {
				var resp api.SessionDeleteResponse
				s.NoError(json.NewDecoder(w.Body).Decode(&resp))
				s.Equal(tt.wantOutcome, resp.Outcome)
			}
		})
	}
}

func (s *SessionsTestSuite) TestUpdateSessionHandlerNotFound() {
	s.stubRefs(120, 3)
	s.sessionRepo.GetByIDFunc = func(ctx context.Context, id int) (*domain.Session, error) {
		return nil, domain.ErrRecordNotFound
	}

	w, r := executeRequest(s.T(), http.MethodPut, "/api/sessions/9", validSessionRequest())
	r = withURLParams(r, map[string]string{"sessionId": "9"})

	s.app.UpdateSessionHandler(w, r)

	s.Equal(http.StatusNotFound, w.Code)
}

func (s *SessionsTestSuite) TestUpdateSessionHandlerReplacesTimeRanges() {
	s.stubRefs(120, 3)

	s.sessionRepo.GetByIDFunc = func(ctx context.Context, id int) (*domain.Session, error) {
		return &domain.Session{ID: id, Status: domain.SessionStatusActive}, nil
	}

	var updated *domain.Session
	s.sessionRepo.UpdateFunc = func(ctx context.Context, session *domain.Session) error {
		updated = session
		return nil
	}

	req := validSessionRequest()
	req.TimeRanges = append(req.TimeRanges, api.TimeRangePayload{
		StartsAt: time.Date(2026, 9, 1, 14, 0, 0, 0, time.UTC),
		EndsAt:   time.Date(2026, 9, 1, 16, 0, 0, 0, time.UTC),
	})

	w, r := executeRequest(s.T(), http.MethodPut, "/api/sessions/9", req)
	r = withURLParams(r, map[string]string{"sessionId": "9"})

	s.app.UpdateSessionHandler(w, r)

	s.Equal(http.StatusOK, w.Code)
	s.Require().NotNil(updated)
	s.Equal(9, updated.ID)
	s.Len(updated.TimeRanges, 2)
}

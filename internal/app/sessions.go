package app

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/cinealto/cinema-reservation-api/api"
	"github.com/cinealto/cinema-reservation-api/internal/domain"
	"github.com/cinealto/cinema-reservation-api/internal/events"
)

func (app *Application) CreateSessionHandler(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	var input api.SessionRequest

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

	_, room, _, err := app.resolveSessionRefs(w, r, input.MovieId, input.RoomId, input.CinemaId)
	if err != nil {
		return
	}

	if room.CinemaID != input.CinemaId {
		app.badRequestResponse(w, r, errors.New("room does not belong to the given cinema"))
		return
	}

	session := toDomainSession(input)

	err = app.sessionRepo.Create(r.Context(), session)
	if err != nil {
		var existsErr domain.SessionExistsError
		var overlapErr domain.TimeRangeOverlapError

		switch {
		case errors.As(err, &existsErr):
			logger.Warn("duplicate session creation attempt", "existing_session_id", existsErr.ExistingSessionID)
			app.sessionConflictResponse(w, r, existsErr.ExistingSessionID)
		case errors.As(err, &overlapErr):
			app.badRequestResponse(w, r, overlapErr)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	resp := toSessionResponse(session)

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetSessionHandler(w http.ResponseWriter, r *http.Request) {
	sessionID, err := app.readIDParam(r, "sessionId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	session, err := app.sessionRepo.GetByID(r.Context(), sessionID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	resp := toSessionResponse(session)

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) ListSessionsHandler(w http.ResponseWriter, r *http.Request) {
	pagination := app.readPagination(r)

	var cinemaID int
	if v := r.URL.Query().Get("cinemaId"); v != "" {
		cinemaID, _ = strconv.Atoi(v)
	}

	var date time.Time
	if v := r.URL.Query().Get("date"); v != "" {
		date, _ = time.Parse("2006-01-02", v)
	}

	sessions, metadata, err := app.sessionRepo.GetAll(r.Context(), cinemaID, date, pagination)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	sessionResponses := make([]api.SessionResponse, len(sessions))
	for i := range sessions {
		sessionResponses[i] = toSessionResponse(&sessions[i])
	}

	resp := api.SessionListResponse{
		Sessions: sessionResponses,
		Metadata: toApiMetadata(metadata),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) UpdateSessionHandler(w http.ResponseWriter, r *http.Request) {
	sessionID, err := app.readIDParam(r, "sessionId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input api.SessionRequest

	err = app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	_, room, _, err := app.resolveSessionRefs(w, r, input.MovieId, input.RoomId, input.CinemaId)
	if err != nil {
		return
	}

	if room.CinemaID != input.CinemaId {
		app.badRequestResponse(w, r, errors.New("room does not belong to the given cinema"))
		return
	}

	existing, err := app.sessionRepo.GetByID(r.Context(), sessionID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	if existing.Status == domain.SessionStatusDeleted {
		app.notFoundResponse(w, r)
		return
	}

	session := toDomainSession(input)
	session.ID = sessionID

	err = app.sessionRepo.Update(r.Context(), session)
	if err != nil {
		var existsErr domain.SessionExistsError
		var overlapErr domain.TimeRangeOverlapError

		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		case errors.As(err, &existsErr):
			app.sessionConflictResponse(w, r, existsErr.ExistingSessionID)
		case errors.As(err, &overlapErr):
			app.badRequestResponse(w, r, overlapErr)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	resp := toSessionResponse(session)

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) DeleteSessionHandler(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	sessionID, err := app.readIDParam(r, "sessionId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	bookingCount, err := app.bookingRepo.CountBySessionID(r.Context(), sessionID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	outcome, err := app.sessionRepo.Delete(r.Context(), sessionID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	logger.Info("session deleted", "session_id", sessionID, "outcome", string(outcome), "orphaned_bookings", bookingCount)

	app.publishEvent(r.Context(), events.RoutingKeySessionDeleted, events.SessionDeletedEvent{
		EventID:          uuid.New().String(),
		SessionID:        sessionID,
		Outcome:          string(outcome),
		OrphanedBookings: bookingCount,
		OccurredAt:       time.Now(),
	})

	resp := api.SessionDeleteResponse{
		Outcome: string(outcome),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetAvailableTimeRangesHandler(w http.ResponseWriter, r *http.Request) {
	cinema, room, movie, date, ok := app.readGeneratorParams(w, r)
	if !ok {
		return
	}

	existing, err := app.sessionRepo.GetByRoomAndDate(r.Context(), room.ID, date)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	movieLength := time.Duration(movie.Duration) * time.Minute
	candidates := domain.GenerateAvailableRanges(cinema, date, movieLength, existing)

	timeRanges := make([]api.CandidateRangeResponse, len(candidates))
	for i, c := range candidates {
		timeRanges[i] = api.CandidateRangeResponse{
			StartsAt: c.StartsAt,
			EndsAt:   c.EndsAt,
		}
	}

	resp := api.AvailableTimeRangesResponse{
		CinemaId:   cinema.ID,
		RoomId:     room.ID,
		Date:       api.Date{Time: date},
		TimeRanges: timeRanges,
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) PersistAvailableTimeRangesHandler(w http.ResponseWriter, r *http.Request) {
	cinema, room, movie, date, ok := app.readGeneratorParams(w, r)
	if !ok {
		return
	}

	existing, err := app.sessionRepo.GetByRoomAndDate(r.Context(), room.ID, date)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	movieLength := time.Duration(movie.Duration) * time.Minute
	candidates := domain.GenerateAvailableRanges(cinema, date, movieLength, existing)

	persisted, err := app.sessionRepo.UpsertAvailableTimeRanges(r.Context(), cinema.ID, room.ID, date, candidates)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	timeRanges := make([]api.PersistedTimeRangeResponse, len(persisted))
	for i, p := range persisted {
		timeRanges[i] = api.PersistedTimeRangeResponse{
			Id:       p.ID,
			StartsAt: p.StartsAt,
			EndsAt:   p.EndsAt,
		}
	}

	resp := api.PersistedTimeRangesResponse{
		CinemaId:   cinema.ID,
		RoomId:     room.ID,
		Date:       api.Date{Time: date},
		TimeRanges: timeRanges,
	}

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// readGeneratorParams parses and resolves the cinemaId, roomId, movieId and
// date query parameters shared by the generator endpoints. It writes the
// error response itself and reports success through the boolean.
func (app *Application) readGeneratorParams(w http.ResponseWriter, r *http.Request) (*domain.Cinema, *domain.Room, *domain.Movie, time.Time, bool) {
	query := r.URL.Query()

	cinemaID, err := strconv.Atoi(query.Get("cinemaId"))
	if err != nil || cinemaID < 1 {
		app.badRequestResponse(w, r, errors.New("invalid cinemaId parameter"))
		return nil, nil, nil, time.Time{}, false
	}

	roomID, err := strconv.Atoi(query.Get("roomId"))
	if err != nil || roomID < 1 {
		app.badRequestResponse(w, r, errors.New("invalid roomId parameter"))
		return nil, nil, nil, time.Time{}, false
	}

	movieID, err := strconv.Atoi(query.Get("movieId"))
	if err != nil || movieID < 1 {
		app.badRequestResponse(w, r, errors.New("invalid movieId parameter"))
		return nil, nil, nil, time.Time{}, false
	}

	date, err := time.Parse("2006-01-02", query.Get("date"))
	if err != nil {
		app.badRequestResponse(w, r, errors.New("invalid date parameter, expected YYYY-MM-DD"))
		return nil, nil, nil, time.Time{}, false
	}

	movie, room, cinema, err := app.resolveSessionRefs(w, r, movieID, roomID, cinemaID)
	if err != nil {
		return nil, nil, nil, time.Time{}, false
	}

	if room.CinemaID != cinemaID {
		app.badRequestResponse(w, r, errors.New("room does not belong to the given cinema"))
		return nil, nil, nil, time.Time{}, false
	}

	return cinema, room, movie, date, true
}

// resolveSessionRefs loads the movie, room and cinema a session references,
// answering 404 with the missing entity named. The returned error only
// signals that a response has been written.
func (app *Application) resolveSessionRefs(w http.ResponseWriter, r *http.Request, movieID, roomID, cinemaID int) (*domain.Movie, *domain.Room, *domain.Cinema, error) {
	movie, err := app.movieRepo.GetByID(r.Context(), movieID)
	if err != nil {
		app.respondRefError(w, r, "movie", err)
		return nil, nil, nil, err
	}

	room, err := app.roomRepo.GetByID(r.Context(), roomID)
	if err != nil {
		app.respondRefError(w, r, "room", err)
		return nil, nil, nil, err
	}

	cinema, err := app.cinemaRepo.GetByID(r.Context(), cinemaID)
	if err != nil {
		app.respondRefError(w, r, "cinema", err)
		return nil, nil, nil, err
	}

	return movie, room, cinema, nil
}

func (app *Application) respondRefError(w http.ResponseWriter, r *http.Request, entity string, err error) {
	switch {
	case errors.Is(err, domain.ErrRecordNotFound):
		app.notFoundResponseWithErr(w, r, fmt.Errorf("%s not found", entity))
	default:
		app.serverErrorResponse(w, r, err)
	}
}

func toDomainSession(input api.SessionRequest) *domain.Session {
	session := &domain.Session{
		MovieID:  input.MovieId,
		RoomID:   input.RoomId,
		CinemaID: input.CinemaId,
		Date:     input.SessionDate.Time,
		Price:    input.SessionPrice,
		Status:   domain.SessionStatusActive,
	}

	for _, tr := range input.TimeRanges {
		session.TimeRanges = append(session.TimeRanges, domain.TimeRange{
			StartsAt: tr.StartsAt,
			EndsAt:   tr.EndsAt,
			Status:   domain.TimeRangeStatusAvailable,
		})
	}

	return session
}

func toSessionResponse(session *domain.Session) api.SessionResponse {
	timeRanges := make([]api.TimeRangeResponse, len(session.TimeRanges))
	for i, tr := range session.TimeRanges {
		timeRanges[i] = api.TimeRangeResponse{
			Id:       tr.ID,
			StartsAt: tr.StartsAt,
			EndsAt:   tr.EndsAt,
			Status:   string(tr.Status),
		}
	}

	return api.SessionResponse{
		Id:         session.ID,
		MovieId:    session.MovieID,
		RoomId:     session.RoomID,
		CinemaId:   session.CinemaID,
		Date:       api.Date{Time: session.Date},
		Price:      session.Price,
		Status:     string(session.Status),
		TimeRanges: timeRanges,
	}
}

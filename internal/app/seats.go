package app

import (
	"errors"
	"net/http"

	"github.com/cinealto/cinema-reservation-api/api"
	"github.com/cinealto/cinema-reservation-api/internal/domain"
)

func (app *Application) GetSessionSeatsHandler(w http.ResponseWriter, r *http.Request) {
	sessionID, err := app.readIDParam(r, "sessionId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	_, err = app.sessionRepo.GetByID(r.Context(), sessionID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	seats, err := app.seatRepo.GetSeatsBySession(r.Context(), sessionID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	statusFilter := r.URL.Query().Get("status")
	if statusFilter != "" && statusFilter != string(domain.SeatStateAvailable) &&
		statusFilter != string(domain.SeatStatePending) && statusFilter != string(domain.SeatStateBooked) {
		app.badRequestResponse(w, r, errors.New("status must be one of: available, pending, booked"))
		return
	}

	seatResponses := make([]api.SessionSeatResponse, 0, len(seats))
	for _, seat := range seats {
		if statusFilter != "" && string(seat.Status) != statusFilter {
			continue
		}

		seatResponses = append(seatResponses, api.SessionSeatResponse{
			Id:     seat.ID,
			Number: seat.Number,
			Pmr:    seat.PMR,
			Status: string(seat.Status),
		})
	}

	resp := api.SessionSeatsResponse{
		SessionId: sessionID,
		Seats:     seatResponses,
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetSeatHandler(w http.ResponseWriter, r *http.Request) {
	seatID, err := app.readIDParam(r, "seatId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	seat, err := app.seatRepo.GetByID(r.Context(), seatID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	resp := api.SeatResponse{
		Id:     seat.ID,
		Number: seat.Number,
		Pmr:    seat.PMR,
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) UpdateSeatHandler(w http.ResponseWriter, r *http.Request) {
	seatID, err := app.readIDParam(r, "seatId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input api.UpdateSeatRequest

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

	seat, err := app.seatRepo.UpdatePMR(r.Context(), seatID, *input.Pmr)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	resp := api.SeatResponse{
		Id:     seat.ID,
		Number: seat.Number,
		Pmr:    seat.PMR,
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

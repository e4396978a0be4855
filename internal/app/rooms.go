package app

import (
	"errors"
	"net/http"

	"github.com/cinealto/cinema-reservation-api/api"
	"github.com/cinealto/cinema-reservation-api/internal/domain"
)

func (app *Application) CreateRoomHandler(w http.ResponseWriter, r *http.Request) {
	var input api.RoomRequest

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

	_, err = app.cinemaRepo.GetByID(r.Context(), input.CinemaId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponseWithErr(w, r, errors.New("cinema not found"))
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	room := &domain.Room{
		CinemaID: input.CinemaId,
		Number:   input.Number,
		Capacity: input.Capacity,
		Quality:  domain.RoomQuality(input.Quality),
	}

	err = app.roomRepo.Create(r.Context(), room)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := toRoomResponse(room)

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetRoomHandler(w http.ResponseWriter, r *http.Request) {
	roomID, err := app.readIDParam(r, "roomId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	room, err := app.roomRepo.GetByID(r.Context(), roomID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	resp := toRoomResponse(room)

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) UpdateRoomHandler(w http.ResponseWriter, r *http.Request) {
	roomID, err := app.readIDParam(r, "roomId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input api.RoomRequest

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

	room, err := app.roomRepo.GetByID(r.Context(), roomID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	// Capacity is fixed after creation, seats already exist for it.
	if input.Capacity != room.Capacity {
		app.badRequestResponse(w, r, errors.New("room capacity cannot be changed"))
		return
	}

	room.Number = input.Number
	room.Quality = domain.RoomQuality(input.Quality)

	err = app.roomRepo.Update(r.Context(), room)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := toRoomResponse(room)

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) DeleteRoomHandler(w http.ResponseWriter, r *http.Request) {
	roomID, err := app.readIDParam(r, "roomId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.roomRepo.Delete(r.Context(), roomID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toRoomResponse(room *domain.Room) api.RoomResponse {
	resp := api.RoomResponse{
		Id:       room.ID,
		CinemaId: room.CinemaID,
		Number:   room.Number,
		Capacity: room.Capacity,
		Quality:  string(room.Quality),
	}

	for _, seat := range room.Seats {
		resp.Seats = append(resp.Seats, api.SeatResponse{
			Id:     seat.ID,
			Number: seat.Number,
			Pmr:    seat.PMR,
		})
	}

	return resp
}

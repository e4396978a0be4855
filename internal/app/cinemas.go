package app

import (
	"errors"
	"net/http"

	"github.com/cinealto/cinema-reservation-api/api"
	"github.com/cinealto/cinema-reservation-api/internal/domain"
)

func (app *Application) CreateCinemaHandler(w http.ResponseWriter, r *http.Request) {
	var input api.CinemaRequest

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

	opening, err := domain.ParseTimeOfDay(input.OpeningTime)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	closing, err := domain.ParseTimeOfDay(input.ClosingTime)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if !opening.Before(closing) {
		app.badRequestResponse(w, r, errors.New("opening time must be before closing time"))
		return
	}

	cinema := &domain.Cinema{
		Name:        input.Name,
		Address:     input.Address,
		City:        input.City,
		PostalCode:  input.PostalCode,
		OpeningTime: opening,
		ClosingTime: closing,
	}

	err = app.cinemaRepo.Create(r.Context(), cinema)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrCinemaNameTaken):
			app.editConflictResponseWithErr(w, r, err)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	resp := toCinemaResponse(cinema)

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetCinemaHandler(w http.ResponseWriter, r *http.Request) {
	cinemaID, err := app.readIDParam(r, "cinemaId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	cinema, err := app.cinemaRepo.GetByID(r.Context(), cinemaID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	resp := toCinemaResponse(cinema)

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) ListCinemasHandler(w http.ResponseWriter, r *http.Request) {
	pagination := app.readPagination(r)

	cinemas, metadata, err := app.cinemaRepo.GetAll(r.Context(), pagination)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	cinemaResponses := make([]api.CinemaResponse, len(cinemas))
	for i := range cinemas {
		cinemaResponses[i] = toCinemaResponse(&cinemas[i])
	}

	resp := api.CinemaListResponse{
		Cinemas:  cinemaResponses,
		Metadata: toApiMetadata(metadata),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) UpdateCinemaHandler(w http.ResponseWriter, r *http.Request) {
	cinemaID, err := app.readIDParam(r, "cinemaId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input api.CinemaRequest

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

	opening, err := domain.ParseTimeOfDay(input.OpeningTime)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	closing, err := domain.ParseTimeOfDay(input.ClosingTime)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if !opening.Before(closing) {
		app.badRequestResponse(w, r, errors.New("opening time must be before closing time"))
		return
	}

	cinema, err := app.cinemaRepo.GetByID(r.Context(), cinemaID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	cinema.Name = input.Name
	cinema.Address = input.Address
	cinema.City = input.City
	cinema.PostalCode = input.PostalCode
	cinema.OpeningTime = opening
	cinema.ClosingTime = closing

	err = app.cinemaRepo.Update(r.Context(), cinema)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEditConflict):
			app.editConflictResponse(w, r)
		case errors.Is(err, domain.ErrCinemaNameTaken):
			app.editConflictResponseWithErr(w, r, err)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	resp := toCinemaResponse(cinema)

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) DeleteCinemaHandler(w http.ResponseWriter, r *http.Request) {
	cinemaID, err := app.readIDParam(r, "cinemaId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.cinemaRepo.Delete(r.Context(), cinemaID)
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

func toCinemaResponse(cinema *domain.Cinema) api.CinemaResponse {
	resp := api.CinemaResponse{
		Id:          cinema.ID,
		Name:        cinema.Name,
		Address:     cinema.Address,
		City:        cinema.City,
		PostalCode:  cinema.PostalCode,
		OpeningTime: cinema.OpeningTime.String(),
		ClosingTime: cinema.ClosingTime.String(),
	}

	for _, room := range cinema.Rooms {
		resp.Rooms = append(resp.Rooms, toRoomResponse(&room))
	}

	return resp
}

func toApiMetadata(metadata *domain.Metadata) *api.Metadata {
	if metadata == nil {
		return nil
	}

	return &api.Metadata{
		CurrentPage:  metadata.CurrentPage,
		FirstPage:    metadata.FirstPage,
		LastPage:     metadata.LastPage,
		PageSize:     metadata.PageSize,
		TotalRecords: metadata.TotalRecords,
	}
}

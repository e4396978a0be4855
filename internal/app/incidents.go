package app

import (
	"errors"
	"net/http"

	"github.com/cinealto/cinema-reservation-api/api"
	"github.com/cinealto/cinema-reservation-api/internal/domain"
)

func (app *Application) CreateIncidentHandler(w http.ResponseWriter, r *http.Request) {
	var input api.IncidentRequest

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

	_, err = app.sessionRepo.GetByID(r.Context(), input.SessionId)
	if err != nil {
		app.respondRefError(w, r, "session", err)
		return
	}

	status := domain.IncidentStatus(input.Status)
	if status == "" {
		status = domain.IncidentStatusReported
	}

	incident := &domain.Incident{
		SessionID:   input.SessionId,
		UserID:      input.UserId,
		RoomID:      input.RoomId,
		CinemaID:    input.CinemaId,
		Description: input.Description,
		Status:      status,
	}

	err = app.incidentRepo.Create(r.Context(), incident)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := toIncidentResponse(incident)

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) ListIncidentsHandler(w http.ResponseWriter, r *http.Request) {
	pagination := app.readPagination(r)

	incidents, metadata, err := app.incidentRepo.GetAll(r.Context(), pagination)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	incidentResponses := make([]api.IncidentResponse, len(incidents))
	for i := range incidents {
		incidentResponses[i] = toIncidentResponse(&incidents[i])
	}

	resp := api.IncidentListResponse{
		Incidents: incidentResponses,
		Metadata:  toApiMetadata(metadata),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) UpdateIncidentHandler(w http.ResponseWriter, r *http.Request) {
	incidentID, err := app.readIDParam(r, "incidentId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input api.IncidentRequest

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

	incident, err := app.incidentRepo.GetByID(r.Context(), incidentID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	incident.Description = input.Description
	if input.Status != "" {
		incident.Status = domain.IncidentStatus(input.Status)
	}

	err = app.incidentRepo.Update(r.Context(), incident)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := toIncidentResponse(incident)

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) DeleteIncidentHandler(w http.ResponseWriter, r *http.Request) {
	incidentID, err := app.readIDParam(r, "incidentId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.incidentRepo.Delete(r.Context(), incidentID)
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

func toIncidentResponse(incident *domain.Incident) api.IncidentResponse {
	return api.IncidentResponse{
		Id:          incident.ID,
		SessionId:   incident.SessionID,
		UserId:      incident.UserID,
		RoomId:      incident.RoomID,
		CinemaId:    incident.CinemaID,
		Description: incident.Description,
		Status:      string(incident.Status),
		ReportedAt:  incident.ReportedAt,
	}
}

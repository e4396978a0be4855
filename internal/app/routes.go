package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/riandyrn/otelchi"
)

func (app *Application) Routes() http.Handler {
	r := chi.NewRouter()

	r.NotFound(app.notFoundResponse)

	r.Use(middleware.Logger)
	r.Use(middleware.RequestID)
	r.Use(otelchi.Middleware("cinema-reservation-api", otelchi.WithChiRoutes(r)))
	r.Use(app.recoverPanic)
	r.Use(app.loggerContext)
	r.Use(app.sessionManager.LoadAndSave)

	r.Get("/healthcheck", app.GetHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", app.LoginHandler)
		r.Post("/auth/logout", app.LogoutHandler)

		r.Route("/cinemas", func(r chi.Router) {
			r.Get("/", app.ListCinemasHandler)
			r.Get("/{cinemaId}", app.GetCinemaHandler)

			r.Group(func(r chi.Router) {
				r.Use(app.requireAuthentication, app.requireAdmin)
				r.Post("/", app.CreateCinemaHandler)
				r.Put("/{cinemaId}", app.UpdateCinemaHandler)
				r.Delete("/{cinemaId}", app.DeleteCinemaHandler)
			})
		})

		r.Route("/rooms", func(r chi.Router) {
			r.Get("/{roomId}", app.GetRoomHandler)

			r.Group(func(r chi.Router) {
				r.Use(app.requireAuthentication, app.requireAdmin)
				r.Post("/", app.CreateRoomHandler)
				r.Put("/{roomId}", app.UpdateRoomHandler)
				r.Delete("/{roomId}", app.DeleteRoomHandler)
			})
		})

		r.Route("/movies", func(r chi.Router) {
			r.Get("/", app.ListMoviesHandler)
			r.Get("/{movieId}", app.GetMovieHandler)

			r.Group(func(r chi.Router) {
				r.Use(app.requireAuthentication, app.requireAdmin)
				r.Post("/", app.CreateMovieHandler)
				r.Put("/{movieId}", app.UpdateMovieHandler)
				r.Delete("/{movieId}", app.DeleteMovieHandler)
			})
		})

		r.Route("/sessions", func(r chi.Router) {
			r.Get("/", app.ListSessionsHandler)
			r.Get("/available-time-ranges", app.GetAvailableTimeRangesHandler)
			r.Get("/{sessionId}", app.GetSessionHandler)
			r.Get("/{sessionId}/seats", app.GetSessionSeatsHandler)

			r.Group(func(r chi.Router) {
				r.Use(app.requireAuthentication, app.requireAdmin)
				r.Post("/", app.CreateSessionHandler)
				r.Post("/available-time-ranges", app.PersistAvailableTimeRangesHandler)
				r.Put("/{sessionId}", app.UpdateSessionHandler)
				r.Delete("/{sessionId}", app.DeleteSessionHandler)
			})
		})

		r.Route("/seats", func(r chi.Router) {
			r.Get("/{seatId}", app.GetSeatHandler)

			r.Group(func(r chi.Router) {
				r.Use(app.requireAuthentication, app.requireAdmin)
				r.Put("/{seatId}", app.UpdateSeatHandler)
			})
		})

		r.Route("/bookings", func(r chi.Router) {
			r.Use(app.requireAuthentication)

			r.Post("/", app.CreateBookingHandler)
			r.Put("/", app.UpdateBookingHandler)
			r.Get("/user/{userId}", app.GetUserBookingsHandler)
			r.Get("/{bookingId}", app.GetBookingHandler)
			r.Patch("/soft-delete/{bookingId}", app.CancelBookingHandler)
		})

		r.Route("/incidents", func(r chi.Router) {
			r.Use(app.requireAuthentication)

			r.Get("/", app.ListIncidentsHandler)
			r.Post("/", app.CreateIncidentHandler)
			r.Put("/{incidentId}", app.UpdateIncidentHandler)
			r.Delete("/{incidentId}", app.DeleteIncidentHandler)
		})

		r.With(app.requireAuthentication).Post("/checkout/session", app.CreateCheckoutSessionHandler)

		r.Post("/webhook", app.StripeWebhookHandler)
	})

	return r
}

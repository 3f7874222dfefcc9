package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	custommiddleware "github.com/mmeshcher/antrian-system/internal/middleware"
)

// SetupRouter настраивает HTTP-маршруты и middleware сервиса записи МПП.
func (h *Handler) SetupRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(custommiddleware.GzipMiddleware)
	r.Use(custommiddleware.Logger(h.logger))

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/session/login", h.Login)

		r.Group(func(r chi.Router) {
			r.Use(h.authMiddleware.Middleware)

			r.Get("/session", h.GetSession)
			r.Get("/services", h.GetServices)

			r.Post("/booking/select", h.SelectService)
			r.Post("/booking/back", h.Back)
			r.Post("/booking/confirm", h.ConfirmBooking)

			r.Get("/ticket", h.GetTicket)
			r.Post("/ticket/cancel", h.CancelTicket)

			r.Post("/navigate", h.Navigate)

			r.Get("/assistant/messages", h.GetAssistantMessages)
			r.Post("/assistant/messages", h.PostAssistantMessage)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	})

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	})

	return r
}

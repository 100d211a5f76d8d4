package httpserver

import (
	"net/http"
	"time"

	"family-talk-go/internal/config"
	"family-talk-go/internal/transport/httpserver/handler"
	corsmw "family-talk-go/internal/transport/httpserver/middleware"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(cfg config.Config, handlers *handler.Handlers) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(corsmw.NewCORS(cfg.CORSOrigins))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health)

		r.Post("/register", handlers.Register)
		r.Post("/login", handlers.Login)
		r.Get("/users/{email}", handlers.GetUser)
		r.Get("/users/{email}/invite-qr", handlers.InviteQR)

		r.Route("/families", func(r chi.Router) {
			r.Post("/create", handlers.CreateFamily)
			r.Post("/join", handlers.JoinFamily)
			r.Post("/leave", handlers.LeaveFamily)
			r.Get("/{family_id}", handlers.GetFamily)
		})

		r.Post("/messages", handlers.PostMessage)
		r.Get("/messages/{family_id}", handlers.ListMessages)

		r.Route("/schedules", func(r chi.Router) {
			r.Post("/", handlers.CreateSchedule)
			r.Get("/{family_id}", handlers.ListSchedules)
			r.Post("/{schedule_id}/responses", handlers.SaveScheduleResponse)
			r.Get("/{schedule_id}/responses", handlers.ListScheduleResponses)
			r.Get("/{schedule_id}/final", handlers.GetFinalSchedule)
		})
	})

	return r
}

package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"
)

// NewRouter собирает маршруты API. Все маршруты под /api требуют токен.
func NewRouter(h *Handler, auth *Authenticator, allowedOrigins []string, logger *logrus.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger(&requestLogFormatter{logger: logger}))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Get("/healthz", h.Health)

	r.Route("/api", func(r chi.Router) {
		r.Use(auth.Middleware)

		r.Route("/absences", func(r chi.Router) {
			r.Get("/", h.ListAbsences)
			r.Post("/", h.AddAbsence)
			r.Delete("/{date}", h.DeleteAbsence)
		})

		r.Route("/delegations", func(r chi.Router) {
			r.Get("/", h.ListDelegations)
			r.Post("/", h.AddDelegation)
			r.Delete("/{date}", h.DeleteDelegation)
		})

		r.Route("/worktime", func(r chi.Router) {
			r.Get("/", h.ListWorkSessions)
			r.Post("/", h.AddWorkSession)
			r.Put("/{id}", h.UpdateWorkSession)
			r.Delete("/{id}", h.DeleteWorkSession)
		})

		r.Route("/salary", func(r chi.Router) {
			r.Get("/profile", h.GetSalaryProfile)
			r.Get("/history", h.GetPayrollHistory)
			r.Post("/generate", h.GeneratePayroll)
			r.Put("/update/{id}", h.UpdatePayrollRecord)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(RequireAdmin)
			r.Put("/users/{id}/salary", h.UpsertSalaryProfile)
		})
	})

	return r
}

// NewServer создает HTTP сервер с таймаутами
func NewServer(port int, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// requestLogFormatter пишет журнал запросов через logrus
type requestLogFormatter struct {
	logger *logrus.Logger
}

func (f *requestLogFormatter) NewLogEntry(r *http.Request) middleware.LogEntry {
	return &requestLogEntry{
		entry: f.logger.WithFields(logrus.Fields{
			"request_id": middleware.GetReqID(r.Context()),
			"method":     r.Method,
			"path":       r.URL.Path,
			"remote":     r.RemoteAddr,
		}),
	}
}

type requestLogEntry struct {
	entry *logrus.Entry
}

func (e *requestLogEntry) Write(status, bytes int, header http.Header, elapsed time.Duration, extra interface{}) {
	e.entry.WithFields(logrus.Fields{
		"status":  status,
		"bytes":   bytes,
		"elapsed": elapsed.String(),
	}).Info("Request handled")
}

func (e *requestLogEntry) Panic(v interface{}, stack []byte) {
	e.entry.WithFields(logrus.Fields{
		"panic": fmt.Sprintf("%+v", v),
		"stack": string(stack),
	}).Error("Request panicked")
}

package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/jaminalder/gomoku/internal/app"
)

// DefaultHeartbeat is the keep-alive interval for event and socket streams.
const DefaultHeartbeat = 15 * time.Second

// NewServer wires routes and returns an http.Handler. A non-positive
// heartbeat selects DefaultHeartbeat.
func NewServer(s *app.Service, log *zap.SugaredLogger, heartbeat time.Duration) http.Handler {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	if heartbeat <= 0 {
		heartbeat = DefaultHeartbeat
	}
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(log))
	r.Use(middleware.Recoverer)

	h := &handlers{svc: s, tpl: loadTemplates(), log: log, heartbeat: heartbeat}
	r.Get("/", h.index)
	r.Post("/game", h.create)
	r.Route("/game/{id}", func(r chi.Router) {
		r.Get("/", h.view)
		r.Post("/start", h.start)
		r.Post("/play", h.play)
		r.Post("/undo", h.undo)
		r.Post("/restart", h.restart)
		r.Get("/state", h.state)
		r.Get("/events", h.events)
		r.Get("/ws", h.socket)
	})
	return r
}

func requestLogger(log *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.Infow("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"elapsed", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}

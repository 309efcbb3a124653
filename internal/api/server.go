package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pfrederiksen/abs-calendar/internal/calendar"
	"github.com/pfrederiksen/abs-calendar/internal/config"
	"github.com/pfrederiksen/abs-calendar/internal/filter"
	"github.com/pfrederiksen/abs-calendar/internal/metrics"
	"github.com/pfrederiksen/abs-calendar/internal/release"
)

// Output formats accepted by the format parameter.
const (
	FormatICalendar = "icalendar"
	FormatJSON      = "json"
)

// Reserved query parameters; every other name is a filter field.
const (
	paramFormat = "format"
	paramAllDay = "allday"
)

// ReleaseSource produces the full list of scheduled releases.
type ReleaseSource interface {
	FetchReleases(ctx context.Context) ([]*release.Record, error)
}

// Clock supplies the DTSTAMP of generated calendars.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// Server wires HTTP handlers to the release source.
type Server struct {
	router chi.Router
	source ReleaseSource
	clock  Clock
	cfg    config.CalendarConfig
	logger *zap.Logger
}

// NewServer constructs a Server with middleware and routes.
func NewServer(source ReleaseSource, cfg config.CalendarConfig, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		source: source,
		clock:  systemClock{},
		cfg:    cfg,
		logger: logger,
	}
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoverMiddleware)

	r.Get("/healthz", s.healthz)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Get("/calendar", s.releasesHandler(FormatICalendar))
		r.Get("/releases", s.releasesHandler(FormatJSON))
		r.Get("/releases.{format}", s.releasesHandler(""))
	})

	s.router = r
	return s
}

// Handler returns the Router for use with http.Server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// releasesHandler serves releases in the requested format. defaultFormat
// applies when the query has no format; an empty defaultFormat takes the
// format from the route instead.
func (s *Server) releasesHandler(defaultFormat string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		format := defaultFormat
		if format == "" {
			format = chi.URLParam(r, "format")
		}
		if v := query.Get(paramFormat); v != "" {
			format = v
		}
		if format != FormatICalendar && format != FormatJSON {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown format %q", format))
			return
		}

		// allday only shapes calendar output and is ignored for json.
		var allDay *time.Location
		if format == FormatICalendar {
			loc, err := calendar.ParseAllDay(query.Get(paramAllDay), s.cfg.DefaultTimezone)
			if err != nil {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			allDay = loc
		}

		spec, err := filter.FromRawQuery(r.URL.RawQuery, paramFormat, paramAllDay)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		releases, err := s.source.FetchReleases(r.Context())
		if err != nil {
			s.logger.Error("fetch releases failed", zap.Error(err), zap.String("request_id", RequestID(r.Context())))
			writeError(w, http.StatusBadGateway, "failed to scrape release calendar")
			return
		}
		releases = spec.Apply(releases)

		if format == FormatJSON {
			writeJSON(w, http.StatusOK, releasesOrEmpty(releases))
			return
		}

		body := calendar.Serialize(releases, calendar.Options{
			ProductID: s.cfg.ProductID,
			Name:      s.cfg.Name,
			AllDay:    allDay,
			Now:       s.clock.Now(),
		})
		filename := s.cfg.Filename
		if filename == "" {
			filename = calendar.DefaultFilename
		}
		w.Header().Set("Content-Type", calendar.ContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(body)); err != nil {
			s.logger.Warn("write calendar failed", zap.Error(err))
		}
	}
}

func releasesOrEmpty(releases []*release.Record) []*release.Record {
	if releases == nil {
		return []*release.Record{}
	}
	return releases
}

type requestIDKey struct{}

// RequestID returns the request ID stored by the request ID middleware.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := uuid.NewString()
		ctx := context.WithValue(r.Context(), requestIDKey{}, reqID)
		w.Header().Set("X-Request-ID", reqID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		duration := time.Since(start)
		metrics.ObserveHTTPRequest(r.Method, route, ww.status, duration)
		s.logger.Info("request completed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.status),
			zap.Int64("duration_ms", duration.Milliseconds()),
			zap.String("request_id", RequestID(r.Context())),
		)
	})
}

func (s *Server) recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error("panic recovered", zap.Any("error", rec))
				writeError(w, http.StatusInternalServerError, "internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		zap.L().Error("write JSON failed", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

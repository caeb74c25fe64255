package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/MJE43/roulette-odds-go/internal/lib/logger/sl"
)

// LoggingMiddleware logs the start and completion of every request
func (s *Server) LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := middleware.GetReqID(r.Context())
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		s.logger.Debug("request_start",
			sl.String("method", r.Method),
			sl.String("path", r.URL.Path),
			sl.RequestID(requestID),
			sl.String("remote_addr", r.RemoteAddr),
			sl.String("user_agent", r.UserAgent()),
		)

		next.ServeHTTP(ww, r)

		s.logger.Info("request_completed",
			sl.String("method", r.Method),
			sl.String("path", r.URL.Path),
			sl.Any("status", ww.Status()),
			sl.Any("duration", time.Since(start)),
			sl.RequestID(requestID),
			sl.Any("bytes_written", ww.BytesWritten()),
			sl.String("engine_version", EngineVersion),
		)
	})
}

// CORSMiddleware sets CORS headers for the configured origin
func (s *Server) CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", s.cfg.CORSOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-Id")
		w.Header().Set("Access-Control-Max-Age", "86400")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// instrument records per-operation request counts and latency
func (s *Server) instrument(op string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		h(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		s.monitor.Record(op, time.Since(start), status >= http.StatusBadRequest)
	}
}

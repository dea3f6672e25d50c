package serverhttp

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/ja7ad/heartbeat/pkg/logx"
	"github.com/ja7ad/heartbeat/pkg/metrics"
	"github.com/ja7ad/heartbeat/pkg/opsmetrics"
)

// Server exposes the latest sample over HTTP and mirrors every sample to
// a Persister. The latest-sample slot is a lock-free atomic pointer
// (spec §9 design note): the HTTP handlers never block the sample
// pipeline, and the pipeline never blocks on a slow HTTP client.
type Server struct {
	latest atomic.Pointer[metrics.Sample]

	persist   *Persister
	ops       *opsmetrics.Registry
	log       logx.Logger
	http      *http.Server
	start     time.Time
	sessionID string
}

// New returns a Server that will listen on addr, persist via p, and
// report additive operational metrics via ops.
func New(addr string, p *Persister, ops *opsmetrics.Registry, log logx.Logger) *Server {
	if log == nil {
		log = logx.New(nil)
	}
	s := &Server{persist: p, ops: ops, log: log, start: time.Now(), sessionID: uuid.NewString()}

	mux := http.NewServeMux()
	mux.Handle("/health", getOnly(s.handleHealth))
	mux.Handle("/metrics", getOnly(s.handleMetrics))
	mux.Handle("/internal/metrics", ops.Handler())
	mux.Handle("/", http.HandlerFunc(notFound))

	s.http = &http.Server{
		Addr:              addr,
		Handler:           withRequestID(mux),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Observe records a newly arrived sample: it becomes the value /metrics
// serves and is queued for disk persistence.
func (s *Server) Observe(sample metrics.Sample) {
	s.latest.Store(&sample)
	s.persist.Append(sample)
}

// ListenAndServe blocks serving HTTP until the server is shut down.
// http.ErrServerClosed is swallowed, matching net/http's documented
// shutdown contract.
func (s *Server) ListenAndServe() error {
	err := s.http.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown gracefully stops the HTTP listener.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

// handleHealth answers the wire contract from spec §6, plus a
// request_id correlation field supplementing it (SPEC_FULL.md §6).
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":         "healthy",
		"uptime_seconds": int64(time.Since(s.start) / time.Second),
		"timestamp_ms":   time.Now().UnixMilli(),
		"request_id":     requestIDFrom(r),
		"session_id":     s.sessionID,
	})
}

// handleMetrics serves the latest sample as JSON extended with
// server_uptime_seconds, or 404 before the first sample has arrived
// (spec §9 Open Question: a 404 here is more honest than a fabricated
// zero-valued sample, and lets clients distinguish "not ready yet" from
// "server down").
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	sample := s.latest.Load()
	if sample == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{
			"error":      "no samples yet",
			"request_id": requestIDFrom(r),
		})
		return
	}

	body, err := json.Marshal(sample.SystemMetrics)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "encode failure"})
		return
	}
	extended := map[string]any{"server_uptime_seconds": time.Since(s.start).Seconds()}
	if err := json.Unmarshal(body, &extended); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "encode failure"})
		return
	}
	extended["server_uptime_seconds"] = time.Since(s.start).Seconds()
	writeJSON(w, http.StatusOK, extended)
}

func notFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, map[string]string{
		"error":      "not found",
		"request_id": requestIDFrom(r),
	})
}

// getOnly rejects any method but GET with the 405 JSON body spec §6
// requires for known paths.
func getOnly(h http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeJSON(w, http.StatusMethodNotAllowed, map[string]string{
				"error":      "method not allowed",
				"request_id": requestIDFrom(r),
			})
			return
		}
		h(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

type requestIDKey struct{}

// withRequestID stamps every request with a correlation ID (spec §6),
// generated once per request and available to handlers and logs.
func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-Id", id)
		ctx := context.WithValue(r.Context(), requestIDKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func requestIDFrom(r *http.Request) string {
	if v, ok := r.Context().Value(requestIDKey{}).(string); ok {
		return v
	}
	return ""
}

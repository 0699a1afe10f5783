package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/goloan/internal/usecase"
)

// IdempotencyKeyHeader is the header name for idempotency keys.
const IdempotencyKeyHeader = "Idempotency-Key"

// storedResponse is what the store keeps for a completed request, so a
// replay carries the original status and content type.
type storedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type,omitempty"`
	Body        []byte `json:"body"`
}

// IdempotencyMiddleware replays stored responses for repeated requests.
type IdempotencyMiddleware struct {
	store    usecase.IdempotencyStore
	ttl      time.Duration
	onReplay func()
}

// IdempotencyOption configures an IdempotencyMiddleware.
type IdempotencyOption func(*IdempotencyMiddleware)

// WithIdempotencyTTL sets how long responses are kept.
func WithIdempotencyTTL(ttl time.Duration) IdempotencyOption {
	return func(m *IdempotencyMiddleware) {
		if ttl > 0 {
			m.ttl = ttl
		}
	}
}

// WithReplayHook registers a callback invoked on every replayed response.
func WithReplayHook(fn func()) IdempotencyOption {
	return func(m *IdempotencyMiddleware) {
		m.onReplay = fn
	}
}

// NewIdempotencyMiddleware creates a new IdempotencyMiddleware.
func NewIdempotencyMiddleware(store usecase.IdempotencyStore, opts ...IdempotencyOption) *IdempotencyMiddleware {
	m := &IdempotencyMiddleware{
		store:    store,
		ttl:      usecase.IdempotencyKeyTTL,
		onReplay: func() {},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Wrap wraps an http.Handler with idempotency checking.
func (m *IdempotencyMiddleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost && r.Method != http.MethodPut {
			next.ServeHTTP(w, r)
			return
		}

		header := r.Header.Get(IdempotencyKeyHeader)
		if header == "" {
			next.ServeHTTP(w, r)
			return
		}

		// keys are scoped to the route so one key cannot replay another endpoint
		key := r.URL.Path + ":" + header
		logger := zerolog.Ctx(r.Context())

		exists, cachedResponse, err := m.store.CheckAndSet(r.Context(), key, nil, m.ttl)
		if err != nil {
			logger.Error().Err(err).Str("idempotency_key", header).Msg("idempotency check failed")
			http.Error(w, "idempotency check failed", http.StatusInternalServerError)
			return
		}

		if exists {
			if cachedResponse == nil || string(cachedResponse) == usecase.IdempotencyPending {
				http.Error(w, "request with this idempotency key is in progress", http.StatusConflict)
				return
			}

			var stored storedResponse
			if err := json.Unmarshal(cachedResponse, &stored); err != nil || stored.Status == 0 {
				logger.Error().Err(err).Str("idempotency_key", header).Msg("stored idempotent response is unreadable")
				http.Error(w, "idempotency check failed", http.StatusInternalServerError)
				return
			}

			m.onReplay()
			if stored.ContentType != "" {
				w.Header().Set("Content-Type", stored.ContentType)
			}
			w.Header().Set("X-Idempotency-Replay", "true")
			w.WriteHeader(stored.Status)
			_, _ = w.Write(stored.Body)
			return
		}

		recorder := &responseRecorder{
			ResponseWriter: w,
			body:           &bytes.Buffer{},
			statusCode:     http.StatusOK,
		}
		next.ServeHTTP(recorder, r)

		if recorder.statusCode >= 200 && recorder.statusCode < 300 {
			payload, err := json.Marshal(storedResponse{
				Status:      recorder.statusCode,
				ContentType: recorder.Header().Get("Content-Type"),
				Body:        recorder.body.Bytes(),
			})
			if err == nil {
				err = m.store.Update(r.Context(), key, payload, m.ttl)
			}
			if err != nil {
				logger.Warn().Err(err).Str("idempotency_key", header).Msg("failed to store idempotent response")
			}
			return
		}

		if err := m.store.Release(r.Context(), key); err != nil {
			logger.Warn().Err(err).Str("idempotency_key", header).Msg("failed to release idempotency key")
		}
	})
}

type responseRecorder struct {
	http.ResponseWriter
	statusCode int
	body       *bytes.Buffer
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

func (r *responseRecorder) WriteHeader(statusCode int) {
	r.statusCode = statusCode
	r.ResponseWriter.WriteHeader(statusCode)
}

package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/diagnosis/hotel-frontdesk/pkg/logger"
)

type IdempotencyStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

type cachedResponse struct {
	Fingerprint string `json:"fingerprint"`
	Status      int    `json:"status"`
	Body        string `json:"body"`
}

const maxIdempotentBody = 1 << 20

// Idempotency replays the stored 2xx response of a POST carrying an
// Idempotency-Key header. Keys are scoped to the request path and the
// authenticated user (or, outside authentication, the Authorization header).
// Reusing a key with a different body is answered with 422 and never reaches
// next. Store failures are logged and the request proceeds.
func Idempotency(store IdempotencyStore, ttl time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if store == nil || r.Method != http.MethodPost {
				next.ServeHTTP(w, r)
				return
			}
			key := r.Header.Get("Idempotency-Key")
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			body, err := io.ReadAll(io.LimitReader(r.Body, maxIdempotentBody))
			if err != nil {
				writeIdempotencyError(w, http.StatusBadRequest, "Failed to read request body", "INVALID_REQUEST")
				return
			}
			r.Body.Close()
			r.Body = io.NopCloser(bytes.NewReader(body))
			sum := sha256.Sum256(body)
			fingerprint := hex.EncodeToString(sum[:])

			scope, _ := r.Context().Value(logger.UserIDKey).(string)
			if scope == "" {
				scope = r.Header.Get("Authorization")
			}
			hasher := sha256.New()
			hasher.Write([]byte(r.URL.Path))
			hasher.Write([]byte{0})
			hasher.Write([]byte(scope))
			hasher.Write([]byte{0})
			hasher.Write([]byte(key))
			hashedKey := fmt.Sprintf("idempotency:%x", hasher.Sum(nil))

			existing, err := store.Get(r.Context(), hashedKey)
			if err != nil {
				logger.WarnContext(r.Context(), "Idempotency store unavailable", "error", err)
			} else if existing != "" {
				var cached cachedResponse
				if err := json.Unmarshal([]byte(existing), &cached); err == nil {
					if cached.Fingerprint != fingerprint {
						logger.WarnContext(r.Context(), "Idempotency key reused with a different body", "path", r.URL.Path)
						writeIdempotencyError(w, http.StatusUnprocessableEntity,
							"Idempotency-Key was already used with a different request body", "IDEMPOTENCY_KEY_REUSED")
						return
					}
					w.Header().Set("Content-Type", "application/json")
					w.Header().Set("Idempotent-Replayed", "true")
					w.WriteHeader(cached.Status)
					w.Write([]byte(cached.Body))
					return
				}
			}

			recorder := &responseRecorder{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(recorder, r)

			if recorder.statusCode < 200 || recorder.statusCode >= 300 {
				return
			}
			payload, _ := json.Marshal(cachedResponse{
				Fingerprint: fingerprint,
				Status:      recorder.statusCode,
				Body:        string(recorder.body),
			})
			if err := store.Set(r.Context(), hashedKey, string(payload), ttl); err != nil {
				logger.WarnContext(r.Context(), "Failed to store idempotent response", "error", err)
			}
		})
	}
}

func writeIdempotencyError(w http.ResponseWriter, status int, message, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message, "code": code})
}

type responseRecorder struct {
	http.ResponseWriter
	statusCode int
	body       []byte
}

func (r *responseRecorder) WriteHeader(statusCode int) {
	r.statusCode = statusCode
	r.ResponseWriter.WriteHeader(statusCode)
}

func (r *responseRecorder) Write(body []byte) (int, error) {
	r.body = append(r.body, body...)
	return r.ResponseWriter.Write(body)
}

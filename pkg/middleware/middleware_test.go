package middleware

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/diagnosis/hotel-frontdesk/pkg/logger"
)

type mapStore struct {
	mu   sync.Mutex
	data map[string]string
	err  error
}

func (m *mapStore) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return "", m.err
	}
	return m.data[key], nil
}

func (m *mapStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.data[key] = value
	return nil
}

func counting(status int, calls *int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(`{"n":1}`))
	})
}

func post(h http.Handler, path, key string) *httptest.ResponseRecorder {
	return postBody(h, path, key, `{}`)
}

func postBody(h http.Handler, path, key, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	if key != "" {
		req.Header.Set("Idempotency-Key", key)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestIdempotencyReplaysSuccess(t *testing.T) {
	store := &mapStore{data: map[string]string{}}
	calls := 0
	h := Idempotency(store, time.Hour)(counting(http.StatusCreated, &calls))

	first := post(h, "/reservations", "k1")
	second := post(h, "/reservations", "k1")

	if calls != 1 {
		t.Fatalf("handler called %d times, want 1", calls)
	}
	if second.Code != http.StatusCreated {
		t.Errorf("replayed status = %d, want 201", second.Code)
	}
	if second.Body.String() != first.Body.String() {
		t.Errorf("replayed body = %q, want %q", second.Body.String(), first.Body.String())
	}
	if second.Header().Get("Idempotent-Replayed") != "true" {
		t.Error("replay header missing")
	}

	post(h, "/maintenance", "k1")
	if calls != 2 {
		t.Errorf("same key on another path must not replay, calls = %d", calls)
	}
}

func TestIdempotencyRejectsKeyReuseWithDifferentBody(t *testing.T) {
	store := &mapStore{data: map[string]string{}}
	calls := 0
	var seen []string
	h := Idempotency(store, time.Hour)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		b, _ := io.ReadAll(r.Body)
		seen = append(seen, string(b))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":1}`))
	}))

	first := postBody(h, "/reservations", "k1", `{"check_in_date":"2024-06-12","check_out_date":"2024-06-15"}`)
	if first.Code != http.StatusCreated {
		t.Fatalf("first status = %d", first.Code)
	}
	if len(seen) != 1 || !strings.Contains(seen[0], "2024-06-12") {
		t.Fatalf("handler must see the original body, got %v", seen)
	}

	second := postBody(h, "/reservations", "k1", `{"check_in_date":"2024-06-14","check_out_date":"2024-06-16"}`)
	if second.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", second.Code)
	}
	if second.Header().Get("Idempotent-Replayed") != "" {
		t.Error("a mismatched body must not be answered with the cached response")
	}
	if !strings.Contains(second.Body.String(), "IDEMPOTENCY_KEY_REUSED") {
		t.Errorf("body = %s", second.Body.String())
	}
	if calls != 1 {
		t.Errorf("handler called %d times, want 1", calls)
	}

	third := postBody(h, "/reservations", "k1", `{"check_in_date":"2024-06-12","check_out_date":"2024-06-15"}`)
	if third.Code != http.StatusCreated || third.Header().Get("Idempotent-Replayed") != "true" {
		t.Errorf("same body must replay, got %d", third.Code)
	}
}

func TestIdempotencyScopesKeysByUser(t *testing.T) {
	store := &mapStore{data: map[string]string{}}
	calls := 0
	h := Idempotency(store, time.Hour)(counting(http.StatusCreated, &calls))
	as := func(user string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/reservations", strings.NewReader(`{}`))
		req.Header.Set("Idempotency-Key", "k1")
		req = req.WithContext(context.WithValue(req.Context(), logger.UserIDKey, user))
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		return rr
	}

	as("7")
	as("8")
	if calls != 2 {
		t.Errorf("different users must not share a key, calls = %d", calls)
	}
	if rr := as("7"); rr.Header().Get("Idempotent-Replayed") != "true" || calls != 2 {
		t.Errorf("same user must replay, calls = %d", calls)
	}
}

func TestIdempotencySkipsFailuresAndMissingKey(t *testing.T) {
	store := &mapStore{data: map[string]string{}}
	calls := 0
	h := Idempotency(store, time.Hour)(counting(http.StatusConflict, &calls))

	post(h, "/reservations", "k1")
	post(h, "/reservations", "k1")
	post(h, "/reservations", "")
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
	if len(store.data) != 0 {
		t.Errorf("non-2xx responses must not be stored: %v", store.data)
	}
}

func TestIdempotencyFailsOpen(t *testing.T) {
	store := &mapStore{data: map[string]string{}, err: errors.New("connection refused")}
	calls := 0
	h := Idempotency(store, time.Hour)(counting(http.StatusCreated, &calls))

	rr := post(h, "/reservations", "k1")
	if rr.Code != http.StatusCreated || calls != 1 {
		t.Errorf("status = %d calls = %d", rr.Code, calls)
	}
}

func TestRequestIDAndServiceName(t *testing.T) {
	var gotID, gotService any
	h := RequestID(ServiceName("frontdesk")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = r.Context().Value(logger.RequestIDKey)
		gotService = r.Context().Value(logger.ServiceKey)
	})))

	req := httptest.NewRequest(http.MethodGet, "/rooms", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if gotID != "abc-123" || rr.Header().Get("X-Request-ID") != "abc-123" {
		t.Errorf("request id = %v, header = %q", gotID, rr.Header().Get("X-Request-ID"))
	}
	if gotService != "frontdesk" {
		t.Errorf("service = %v", gotService)
	}
}

func TestHealth(t *testing.T) {
	h := Health(http.NotFoundHandler())
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), `"status":"ok"`) {
		t.Errorf("healthz = %d %s", rr.Code, rr.Body.String())
	}
}

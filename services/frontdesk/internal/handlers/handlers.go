package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/diagnosis/hotel-frontdesk/pkg/auth"
	"github.com/diagnosis/hotel-frontdesk/pkg/config"
	"github.com/diagnosis/hotel-frontdesk/pkg/logger"
	mw "github.com/diagnosis/hotel-frontdesk/pkg/middleware"
	"github.com/diagnosis/hotel-frontdesk/pkg/validation"
	"github.com/diagnosis/hotel-frontdesk/services/frontdesk/internal/domain"
	"github.com/diagnosis/hotel-frontdesk/services/frontdesk/internal/response"
	"github.com/diagnosis/hotel-frontdesk/services/frontdesk/internal/service"
)

type ctxKey string

const ctxActor ctxKey = "actor"

type Handlers struct {
	reservations service.ReservationService
	rooms        service.RoomService
	guests       service.GuestService
	maintenance  service.MaintenanceService
	auth         config.AuthConfig
	validate     *validation.Validator
	idempotency  func(http.Handler) http.Handler
}

// Services groups what the handlers call into. *service.Service satisfies all
// four.
type Services struct {
	Reservations service.ReservationService
	Rooms        service.RoomService
	Guests       service.GuestService
	Maintenance  service.MaintenanceService
}

type Option func(*Handlers)

// WithIdempotency replays POST responses carrying an Idempotency-Key. It runs
// after the bearer token is verified.
func WithIdempotency(store mw.IdempotencyStore, ttl time.Duration) Option {
	return func(h *Handlers) {
		h.idempotency = mw.Idempotency(store, ttl)
	}
}

func New(svcs Services, authCfg config.AuthConfig, opts ...Option) *Handlers {
	h := &Handlers{
		reservations: svcs.Reservations,
		rooms:        svcs.Rooms,
		guests:       svcs.Guests,
		maintenance:  svcs.Maintenance,
		auth:         authCfg,
		validate:     validation.Default,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Routes mounts every front desk endpoint behind bearer authentication.
func (h *Handlers) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(h.RequireActor)
	if h.idempotency != nil {
		r.Use(h.idempotency)
	}

	r.Route("/reservations", func(r chi.Router) {
		r.Get("/", h.ListReservations)
		r.Post("/", h.CreateReservation)
		r.Post("/check", h.CheckAvailability)
		r.Get("/{id}", h.GetReservation)
		r.Put("/{id}", h.UpdateReservation)
		r.Delete("/{id}", h.DeleteReservation)
	})

	r.Route("/rooms", func(r chi.Router) {
		r.Get("/", h.ListRooms)
		r.Get("/{id}", h.GetRoom)
		r.Get("/{id}/occupant", h.GetOccupant)
		r.Get("/{id}/calendar", h.GetCalendar)
		r.Patch("/{id}/status", h.ChangeRoomStatus)
	})

	r.Route("/guests", func(r chi.Router) {
		r.Get("/", h.ListGuests)
		r.Post("/", h.CreateGuest)
		r.Get("/{id}", h.GetGuest)
		r.Put("/{id}", h.UpdateGuest)
		r.Delete("/{id}", h.DeleteGuest)
	})

	r.Route("/maintenance", func(r chi.Router) {
		r.Get("/", h.ListMaintenance)
		r.Post("/", h.CreateMaintenance)
		r.Get("/{id}", h.GetMaintenance)
		r.Put("/{id}", h.UpdateMaintenance)
	})

	return r
}

// RequireActor turns the bearer token into a domain.Actor. The role is not
// checked here; the authorization gate rejects unknown roles per operation.
func (h *Handlers) RequireActor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			response.Unauthorized(w, "Missing or invalid authorization header")
			return
		}

		claims, err := auth.Parse(strings.TrimPrefix(authHeader, "Bearer "), h.auth.JWTSecret, h.auth.Audience)
		if err != nil {
			logger.DebugContext(r.Context(), "Rejected bearer token", "error", err)
			response.WriteError(w, http.StatusUnauthorized, "Invalid token", response.CodeInvalidToken)
			return
		}

		actor := domain.Actor{ID: claims.Subject, Email: claims.Email, Role: domain.Role(claims.Role)}
		ctx := context.WithValue(r.Context(), ctxActor, actor)
		ctx = context.WithValue(ctx, logger.UserIDKey, claims.Subject)
		ctx = context.WithValue(ctx, logger.RoleKey, claims.Role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func actorFrom(r *http.Request) domain.Actor {
	actor, _ := r.Context().Value(ctxActor).(domain.Actor)
	return actor
}

// decode reads a JSON body into dst and runs its validate tags.
func (h *Handlers) decode(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return domain.Invalid("", "invalid JSON body: "+err.Error())
	}
	return h.check(dst)
}

func (h *Handlers) check(v interface{}) error {
	err := h.validate.Validate(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return domain.Invalid(fe.Field(), describe(fe))
	}
	return domain.Invalid("", err.Error())
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "is not a valid address"
	case "oneof":
		return "must be one of " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param() + " characters"
	default:
		return "failed " + fe.Tag() + " check"
	}
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.Invalid("id", "must be a positive integer")
	}
	return id, nil
}

// queryDate parses the named YYYY-MM-DD query parameter, falling back to def.
func queryDate(r *http.Request, name string, def domain.Date) (domain.Date, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	d, err := domain.ParseDate(raw)
	if err != nil {
		return domain.Date{}, domain.Invalid(name, err.Error())
	}
	return d, nil
}

func parsePagination(r *http.Request) (limit, offset int) {
	limit = 20
	offset = 0

	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}

	return limit, offset
}

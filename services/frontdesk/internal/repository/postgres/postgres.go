// Package postgres implements the repository contracts on PostgreSQL via pgx.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/diagnosis/hotel-frontdesk/services/frontdesk/internal/domain"
	"github.com/diagnosis/hotel-frontdesk/services/frontdesk/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const queryTimeout = 3 * time.Second

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// pgxPool is the part of *pgxpool.Pool the repositories need.
type pgxPool interface {
	querier
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

type scanner interface {
	Scan(dest ...any) error
}

// NewStore wires every postgres repository onto one pool.
func NewStore(pool *pgxpool.Pool) repository.Store {
	return repository.Store{
		Rooms:        NewRoomRepository(pool),
		Guests:       NewGuestRepository(pool),
		Reservations: NewReservationRepository(pool),
		Maintenance:  NewMaintenanceRepository(pool),
	}
}

const (
	sqlStateExclusionViolation  = "23P01"
	sqlStateForeignKeyViolation = "23503"
	sqlStateCheckViolation      = "23514"
)

// translate maps constraint violations onto the domain taxonomy. Everything
// else is returned unchanged and stays an infrastructure error.
func translate(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case sqlStateExclusionViolation:
		return fmt.Errorf("%w: overlapping stay rejected by %s", domain.ErrConflict, pgErr.ConstraintName)
	case sqlStateForeignKeyViolation:
		return domain.Invalid("guest_id/room_id", "references a guest or room that does not exist")
	case sqlStateCheckViolation:
		return domain.Invalid("", pgErr.Message)
	}
	return err
}

func normalizeLimit(limit, offset int) (int, int) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func dateOf(t *time.Time) domain.Date {
	if t == nil {
		return domain.Date{}
	}
	return domain.DateOf(*t)
}

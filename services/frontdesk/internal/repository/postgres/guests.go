package postgres

import (
	"context"
	"errors"

	"github.com/diagnosis/hotel-frontdesk/services/frontdesk/internal/domain"
	"github.com/diagnosis/hotel-frontdesk/services/frontdesk/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type guestRepository struct {
	pool querier
}

func NewGuestRepository(pool querier) repository.GuestRepository {
	return &guestRepository{pool: pool}
}

const guestCols = `id, name, coalesce(email, ''), coalesce(phone, ''), created_at`

func scanGuest(row scanner) (*domain.Guest, error) {
	var g domain.Guest
	if err := row.Scan(&g.ID, &g.Name, &g.Email, &g.Phone, &g.CreatedAt); err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *guestRepository) Create(ctx context.Context, g *domain.Guest) (*domain.Guest, error) {
	const q = `INSERT INTO guests (name, email, phone)
	VALUES ($1, nullif($2, ''), nullif($3, ''))
	RETURNING ` + guestCols
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	created, err := scanGuest(r.pool.QueryRow(ctx, q, g.Name, g.Email, g.Phone))
	if err != nil {
		return nil, translate(err)
	}
	return created, nil
}

func (r *guestRepository) GetByID(ctx context.Context, id int64) (*domain.Guest, error) {
	const q = `SELECT ` + guestCols + ` FROM guests WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	g, err := scanGuest(r.pool.QueryRow(ctx, q, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return g, err
}

func (r *guestRepository) List(ctx context.Context, limit, offset int) ([]domain.Guest, error) {
	limit, offset = normalizeLimit(limit, offset)
	const q = `SELECT ` + guestCols + ` FROM guests ORDER BY name, id LIMIT $1 OFFSET $2`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.pool.Query(ctx, q, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	guests := make([]domain.Guest, 0, limit)
	for rows.Next() {
		g, err := scanGuest(rows)
		if err != nil {
			return nil, err
		}
		guests = append(guests, *g)
	}
	return guests, rows.Err()
}

func (r *guestRepository) Update(ctx context.Context, g *domain.Guest) (*domain.Guest, error) {
	const q = `UPDATE guests SET name=$2, email=nullif($3, ''), phone=nullif($4, '')
	WHERE id=$1
	RETURNING ` + guestCols
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	updated, err := scanGuest(r.pool.QueryRow(ctx, q, g.ID, g.Name, g.Email, g.Phone))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, translate(err)
	}
	return updated, nil
}

func (r *guestRepository) Delete(ctx context.Context, id int64) (bool, error) {
	const q = `DELETE FROM guests WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	ct, err := r.pool.Exec(ctx, q, id)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == sqlStateForeignKeyViolation {
		return false, domain.Invalid("id", "guest has reservations and cannot be deleted")
	}
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}

var _ repository.GuestRepository = (*guestRepository)(nil)

package postgres

import (
	"context"
	"errors"

	"github.com/diagnosis/hotel-frontdesk/services/frontdesk/internal/domain"
	"github.com/diagnosis/hotel-frontdesk/services/frontdesk/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type roomRepository struct {
	pool *pgxpool.Pool
}

func NewRoomRepository(pool *pgxpool.Pool) repository.RoomRepository {
	return &roomRepository{pool: pool}
}

const roomCols = `id, room_number, type, beds, capacity, price_per_night,
features, status, created_at, updated_at`

func scanRoom(row scanner) (*domain.Room, error) {
	var rm domain.Room
	if err := row.Scan(
		&rm.ID, &rm.RoomNumber, &rm.Type, &rm.Beds, &rm.Capacity, &rm.PricePerNight,
		&rm.Features, &rm.Status, &rm.CreatedAt, &rm.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if rm.Features == nil {
		rm.Features = []string{}
	}
	return &rm, nil
}

func (r *roomRepository) List(ctx context.Context) ([]domain.Room, error) {
	const q = `SELECT ` + roomCols + ` FROM rooms ORDER BY room_number`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rooms []domain.Room
	for rows.Next() {
		rm, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, *rm)
	}
	return rooms, rows.Err()
}

func (r *roomRepository) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	const q = `SELECT ` + roomCols + ` FROM rooms WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rm, err := scanRoom(r.pool.QueryRow(ctx, q, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return rm, err
}

func (r *roomRepository) UpdateStatus(ctx context.Context, id int64, status domain.RoomStatus) (*domain.Room, error) {
	const q = `UPDATE rooms SET status=$2, updated_at=now() WHERE id=$1 RETURNING ` + roomCols
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rm, err := scanRoom(r.pool.QueryRow(ctx, q, id, status))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return rm, err
}

var _ repository.RoomRepository = (*roomRepository)(nil)

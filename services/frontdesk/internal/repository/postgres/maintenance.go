package postgres

import (
	"context"
	"errors"

	"github.com/diagnosis/hotel-frontdesk/services/frontdesk/internal/domain"
	"github.com/diagnosis/hotel-frontdesk/services/frontdesk/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type maintenanceRepository struct {
	pool *pgxpool.Pool
}

func NewMaintenanceRepository(pool *pgxpool.Pool) repository.MaintenanceRepository {
	return &maintenanceRepository{pool: pool}
}

const maintenanceCols = `id, room_id, description, priority, status, completed_at, created_at, updated_at`

func scanMaintenance(row scanner) (*domain.MaintenanceRequest, error) {
	var m domain.MaintenanceRequest
	if err := row.Scan(
		&m.ID, &m.RoomID, &m.Description, &m.Priority, &m.Status,
		&m.CompletedAt, &m.CreatedAt, &m.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *maintenanceRepository) Create(ctx context.Context, in *domain.MaintenanceRequest) (*domain.MaintenanceRequest, error) {
	const q = `INSERT INTO maintenance_requests (room_id, description, priority, status)
	VALUES ($1,$2,$3,$4)
	RETURNING ` + maintenanceCols
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	m, err := scanMaintenance(r.pool.QueryRow(ctx, q, in.RoomID, in.Description, in.Priority, in.Status))
	if err != nil {
		return nil, translate(err)
	}
	return m, nil
}

func (r *maintenanceRepository) GetByID(ctx context.Context, id int64) (*domain.MaintenanceRequest, error) {
	const q = `SELECT ` + maintenanceCols + ` FROM maintenance_requests WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	m, err := scanMaintenance(r.pool.QueryRow(ctx, q, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return m, err
}

func (r *maintenanceRepository) List(ctx context.Context, limit, offset int) ([]domain.MaintenanceRequest, error) {
	limit, offset = normalizeLimit(limit, offset)
	const q = `SELECT ` + maintenanceCols + ` FROM maintenance_requests ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.pool.Query(ctx, q, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.MaintenanceRequest, 0, limit)
	for rows.Next() {
		m, err := scanMaintenance(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}
	return out, rows.Err()
}

func (r *maintenanceRepository) Update(ctx context.Context, in *domain.MaintenanceRequest) (*domain.MaintenanceRequest, error) {
	const q = `UPDATE maintenance_requests SET
		room_id=$2, description=$3, priority=$4, status=$5, completed_at=$6, updated_at=now()
	WHERE id=$1
	RETURNING ` + maintenanceCols
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	m, err := scanMaintenance(r.pool.QueryRow(ctx, q,
		in.ID, in.RoomID, in.Description, in.Priority, in.Status, in.CompletedAt,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, translate(err)
	}
	return m, nil
}

var _ repository.MaintenanceRepository = (*maintenanceRepository)(nil)

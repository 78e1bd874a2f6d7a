package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/diagnosis/hotel-frontdesk/services/frontdesk/internal/domain"
	"github.com/diagnosis/hotel-frontdesk/services/frontdesk/internal/repository"
	"github.com/jackc/pgx/v5"
)

type reservationRepository struct {
	pool pgxPool
}

func NewReservationRepository(pool pgxPool) repository.ReservationRepository {
	return &reservationRepository{pool: pool}
}

const reservationCols = `id, room_id, guest_id, check_in_date, check_out_date,
total_amount, payment_status, coalesce(payment_method, ''), created_at, updated_at`

func scanReservation(row scanner) (*domain.Reservation, error) {
	var (
		res               domain.Reservation
		checkIn, checkOut *time.Time
	)
	if err := row.Scan(
		&res.ID, &res.RoomID, &res.GuestID, &checkIn, &checkOut,
		&res.TotalAmount, &res.PaymentStatus, &res.PaymentMethod, &res.CreatedAt, &res.UpdatedAt,
	); err != nil {
		return nil, err
	}
	res.CheckIn = dateOf(checkIn)
	res.CheckOut = dateOf(checkOut)
	return &res, nil
}

func collectReservations(rows pgx.Rows) ([]domain.Reservation, error) {
	defer rows.Close()
	var out []domain.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *res)
	}
	return out, rows.Err()
}

func (r *reservationRepository) List(ctx context.Context, limit, offset int) ([]domain.Reservation, error) {
	limit, offset = normalizeLimit(limit, offset)
	const q = `SELECT ` + reservationCols + ` FROM reservations ORDER BY check_in_date DESC, id DESC LIMIT $1 OFFSET $2`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.pool.Query(ctx, q, limit, offset)
	if err != nil {
		return nil, err
	}
	return collectReservations(rows)
}

func (r *reservationRepository) ListByRoom(ctx context.Context, roomID int64) ([]domain.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	return listByRoom(ctx, r.pool, roomID)
}

func listByRoom(ctx context.Context, q querier, roomID int64) ([]domain.Reservation, error) {
	const sql = `SELECT ` + reservationCols + ` FROM reservations WHERE room_id=$1 ORDER BY check_in_date, id`
	rows, err := q.Query(ctx, sql, roomID)
	if err != nil {
		return nil, err
	}
	return collectReservations(rows)
}

func (r *reservationRepository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	const q = `SELECT ` + reservationCols + ` FROM reservations WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := scanReservation(r.pool.QueryRow(ctx, q, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return res, err
}

func (r *reservationRepository) Delete(ctx context.Context, id int64) (bool, error) {
	const q = `DELETE FROM reservations WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	ct, err := r.pool.Exec(ctx, q, id)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}

// WithRoomLock takes a row lock on the room for the length of one transaction.
// Writers for the same room queue on that lock, so the overlap check and the
// insert that follows it cannot interleave with another writer.
func (r *reservationRepository) WithRoomLock(ctx context.Context, roomID int64, fn func(tx repository.ReservationTx) error) (err error) {
	ctx, cancel := context.WithTimeout(ctx, 2*queryTimeout)
	defer cancel()

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin reservation transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	var locked int64
	err = tx.QueryRow(ctx, `SELECT id FROM rooms WHERE id=$1 FOR UPDATE`, roomID).Scan(&locked)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.NotFound("room", roomID)
	}
	if err != nil {
		return fmt.Errorf("lock room %d: %w", roomID, err)
	}

	if err = fn(&reservationTx{tx: tx}); err != nil {
		return err
	}
	if err = tx.Commit(ctx); err != nil {
		return translate(fmt.Errorf("commit reservation transaction: %w", err))
	}
	return nil
}

type reservationTx struct {
	tx pgx.Tx
}

func (t *reservationTx) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	const q = `SELECT ` + reservationCols + ` FROM reservations WHERE id=$1 FOR UPDATE`
	res, err := scanReservation(t.tx.QueryRow(ctx, q, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return res, err
}

func (t *reservationTx) ListByRoom(ctx context.Context, roomID int64) ([]domain.Reservation, error) {
	return listByRoom(ctx, t.tx, roomID)
}

func (t *reservationTx) Create(ctx context.Context, in *domain.Reservation) (*domain.Reservation, error) {
	const q = `INSERT INTO reservations (
		room_id, guest_id, check_in_date, check_out_date,
		total_amount, payment_status, payment_method
	) VALUES ($1,$2,$3,$4,$5,$6,nullif($7, ''))
	RETURNING ` + reservationCols

	res, err := scanReservation(t.tx.QueryRow(ctx, q,
		in.RoomID, in.GuestID, in.CheckIn.Time(), in.CheckOut.Time(),
		in.TotalAmount, in.PaymentStatus, in.PaymentMethod,
	))
	if err != nil {
		return nil, translate(err)
	}
	return res, nil
}

func (t *reservationTx) Update(ctx context.Context, in *domain.Reservation) (*domain.Reservation, error) {
	const q = `UPDATE reservations SET
		room_id=$2, guest_id=$3, check_in_date=$4, check_out_date=$5,
		total_amount=$6, payment_status=$7, payment_method=nullif($8, ''), updated_at=now()
	WHERE id=$1
	RETURNING ` + reservationCols

	res, err := scanReservation(t.tx.QueryRow(ctx, q, in.ID,
		in.RoomID, in.GuestID, in.CheckIn.Time(), in.CheckOut.Time(),
		in.TotalAmount, in.PaymentStatus, in.PaymentMethod,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, translate(err)
	}
	return res, nil
}

var _ repository.ReservationRepository = (*reservationRepository)(nil)

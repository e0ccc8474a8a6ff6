package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	// Reserve atomically checks occupancy and inserts the booking. The
	// capacity check and the insert are one indivisible unit: two requests
	// racing for the last seat must not both succeed.
	Reserve(ctx context.Context, environmentID, slotKey, holderID string, capacity int) (*Booking, error)

	// Release deletes the matching booking. ErrNotFound when it does not
	// exist, including when raced by another cancellation.
	Release(ctx context.Context, environmentID, slotKey, holderID string) error

	// OccupantsBySlot returns holder ids grouped by slot key for the
	// environment's current bookings.
	OccupantsBySlot(ctx context.Context, environmentID string) (map[string][]string, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Reserve(ctx context.Context, environmentID, slotKey, holderID string, capacity int) (*Booking, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("begin reserve tx failed: %w", err)
	}
	defer tx.Rollback(ctx)

	// Lock the environment row so concurrent reservations for the same
	// environment serialize; the occupancy count below stays accurate for
	// the duration of the transaction.
	var lockedID string
	err = tx.QueryRow(ctx,
		`SELECT id FROM public.environments WHERE id = $1 FOR UPDATE`,
		environmentID,
	).Scan(&lockedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEnvironmentNotFound
		}
		return nil, fmt.Errorf("lock environment failed: %w", err)
	}

	var alreadyHeld bool
	err = tx.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM public.bookings
			WHERE environment_id = $1 AND slot_key = $2 AND holder_id = $3
		)`,
		environmentID, slotKey, holderID,
	).Scan(&alreadyHeld)
	if err != nil {
		return nil, fmt.Errorf("check existing booking failed: %w", err)
	}
	if alreadyHeld {
		return nil, ErrAlreadyBooked
	}

	var occupants int
	err = tx.QueryRow(ctx,
		`SELECT count(*) FROM public.bookings WHERE environment_id = $1 AND slot_key = $2`,
		environmentID, slotKey,
	).Scan(&occupants)
	if err != nil {
		return nil, fmt.Errorf("count slot occupants failed: %w", err)
	}
	if occupants >= capacity {
		return nil, ErrSlotFull
	}

	b := &Booking{
		EnvironmentID: environmentID,
		SlotKey:       slotKey,
		HolderID:      holderID,
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.bookings").
		Columns("environment_id", "slot_key", "holder_id").
		Values(environmentID, slotKey, holderID).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build create booking query failed: %w", err)
	}

	if err := tx.QueryRow(ctx, query, args...).Scan(&b.ID, &b.CreatedAt); err != nil {
		// The unique constraint on (environment_id, slot_key, holder_id)
		// stays the final arbiter even though we checked above.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, ErrAlreadyBooked
		}
		return nil, fmt.Errorf("create booking failed: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit reserve tx failed: %w", err)
	}
	return b, nil
}

func (r *pgxRepository) Release(ctx context.Context, environmentID, slotKey, holderID string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.bookings").
		Where(squirrel.Eq{
			"environment_id": environmentID,
			"slot_key":       slotKey,
			"holder_id":      holderID,
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete booking query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete booking failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) OccupantsBySlot(ctx context.Context, environmentID string) (map[string][]string, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("slot_key", "holder_id").
		From("public.bookings").
		Where(squirrel.Eq{"environment_id": environmentID}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	occupants := make(map[string][]string)
	for rows.Next() {
		var slotKey, holderID string
		if err := rows.Scan(&slotKey, &holderID); err != nil {
			return nil, fmt.Errorf("scan booking failed: %w", err)
		}
		occupants[slotKey] = append(occupants[slotKey], holderID)
	}
	return occupants, nil
}

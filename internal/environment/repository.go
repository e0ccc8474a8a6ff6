package environment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hazelmere/envbooker-backend/internal/schedule"
)

type Repository interface {
	Create(ctx context.Context, e *Environment) error
	GetByID(ctx context.Context, id string) (*Environment, error)
	List(ctx context.Context, filter Filter) ([]*Environment, int, error)
	Update(ctx context.Context, e *Environment) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

// settingsRecord is the JSONB form of schedule.Settings. The instant is
// stored as epoch seconds; decoding restores a UTC time.Time. The settings
// column is decoded exactly once here, never re-parsed downstream.
type settingsRecord struct {
	DaysAhead  int      `json:"days_ahead,omitempty"`
	Instant    int64    `json:"instant,omitempty"`
	TimesOfDay []string `json:"times_of_day,omitempty"`
}

func encodeSettings(s schedule.Settings) ([]byte, error) {
	rec := settingsRecord{
		DaysAhead:  s.DaysAhead,
		TimesOfDay: s.TimesOfDay,
	}
	if !s.Instant.IsZero() {
		rec.Instant = s.Instant.Unix()
	}
	return json.Marshal(rec)
}

func decodeSettings(raw []byte) (schedule.Settings, error) {
	var rec settingsRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return schedule.Settings{}, fmt.Errorf("decode environment settings failed: %w", err)
	}
	s := schedule.Settings{
		DaysAhead:  rec.DaysAhead,
		TimesOfDay: rec.TimesOfDay,
	}
	if rec.Instant != 0 {
		s.Instant = time.Unix(rec.Instant, 0).UTC()
	}
	return s, nil
}

func (r *pgxRepository) Create(ctx context.Context, e *Environment) error {
	settings, err := encodeSettings(e.Settings)
	if err != nil {
		return err
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.environments").
		Columns("resource_type_id", "name", "description", "pattern", "settings", "capacity").
		Values(e.ResourceTypeID, e.Name, e.Description, string(e.Pattern), settings, e.Capacity).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create environment query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&e.ID, &e.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrNameTaken
		}
		return fmt.Errorf("create environment failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Environment, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"id", "resource_type_id", "name", "description", "pattern", "settings", "capacity", "created_at",
	).
		From("public.environments").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get environment query failed: %w", err)
	}

	row := r.pool.QueryRow(ctx, query, args...)

	e, err := scanEnvironment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get environment failed: %w", err)
	}
	return e, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Environment, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	queryBuilder := psql.Select(
		"id", "resource_type_id", "name", "description", "pattern", "settings", "capacity", "created_at",
		"count(*) OVER() as total_count",
	).
		From("public.environments")

	if filter.ResourceTypeID != "" {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"resource_type_id": filter.ResourceTypeID})
	}

	queryBuilder = queryBuilder.OrderBy("created_at ASC")

	// Pagination
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	queryBuilder = queryBuilder.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list environments query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list environments failed: %w", err)
	}
	defer rows.Close()

	var result []*Environment
	var total int

	for rows.Next() {
		var e Environment
		var pattern string
		var settings []byte
		if err := rows.Scan(
			&e.ID, &e.ResourceTypeID, &e.Name, &e.Description, &pattern, &settings, &e.Capacity, &e.CreatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan environment failed: %w", err)
		}
		e.Pattern = schedule.Pattern(pattern)
		if e.Settings, err = decodeSettings(settings); err != nil {
			return nil, 0, err
		}
		result = append(result, &e)
	}

	return result, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, e *Environment) error {
	settings, err := encodeSettings(e.Settings)
	if err != nil {
		return err
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.environments").
		Set("name", e.Name).
		Set("description", e.Description).
		Set("pattern", string(e.Pattern)).
		Set("settings", settings).
		Set("capacity", e.Capacity).
		Where(squirrel.Eq{"id": e.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update environment query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrNameTaken
		}
		return fmt.Errorf("update environment failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.environments").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete environment query failed: %w", err)
	}

	// Bookings and shares go with the environment via ON DELETE CASCADE.
	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete environment failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanEnvironment(row pgx.Row) (*Environment, error) {
	var e Environment
	var pattern string
	var settings []byte
	if err := row.Scan(
		&e.ID, &e.ResourceTypeID, &e.Name, &e.Description, &pattern, &settings, &e.Capacity, &e.CreatedAt,
	); err != nil {
		return nil, err
	}
	e.Pattern = schedule.Pattern(pattern)

	decoded, err := decodeSettings(settings)
	if err != nil {
		return nil, err
	}
	e.Settings = decoded
	return &e, nil
}

package share

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, s *Share) error
	ListByEnvironment(ctx context.Context, environmentID string) ([]*Share, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, s *Share) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.shares").
		Columns("environment_id", "channel_id", "message_ref").
		Values(s.EnvironmentID, s.ChannelID, s.MessageRef).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create share query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&s.ID, &s.CreatedAt); err != nil {
		return fmt.Errorf("create share failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) ListByEnvironment(ctx context.Context, environmentID string) ([]*Share, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id", "environment_id", "channel_id", "message_ref", "created_at").
		From("public.shares").
		Where(squirrel.Eq{"environment_id": environmentID}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list shares query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list shares failed: %w", err)
	}
	defer rows.Close()

	var result []*Share
	for rows.Next() {
		var s Share
		if err := rows.Scan(&s.ID, &s.EnvironmentID, &s.ChannelID, &s.MessageRef, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan share failed: %w", err)
		}
		result = append(result, &s)
	}
	return result, nil
}

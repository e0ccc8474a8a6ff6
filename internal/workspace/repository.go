package workspace

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	// Upsert inserts the workspace or refreshes its name when the team is
	// already known (re-install).
	Upsert(ctx context.Context, w *Workspace) error
	GetByTeamID(ctx context.Context, teamID string) (*Workspace, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Upsert(ctx context.Context, w *Workspace) error {
	const query = `
		INSERT INTO public.workspaces (team_id, name)
		VALUES ($1, $2)
		ON CONFLICT (team_id) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, installed_at
	`

	if err := r.pool.QueryRow(ctx, query, w.TeamID, w.Name).Scan(&w.ID, &w.InstalledAt); err != nil {
		return fmt.Errorf("upsert workspace failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByTeamID(ctx context.Context, teamID string) (*Workspace, error) {
	const query = `
		SELECT id, team_id, name, installed_at
		FROM public.workspaces
		WHERE team_id = $1
	`

	var w Workspace
	if err := r.pool.QueryRow(ctx, query, teamID).Scan(&w.ID, &w.TeamID, &w.Name, &w.InstalledAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get workspace failed: %w", err)
	}
	return &w, nil
}

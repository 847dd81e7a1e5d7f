package db

import (
	"context"
	"database/sql"
	"time"
)

type Queries struct {
	db *sql.DB
}

func New(conn *sql.DB) *Queries {
	return &Queries{db: conn}
}

type Run struct {
	ID        string
	Symbol    string
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Stage struct {
	ID        int64
	RunID     string
	Name      string
	Content   string
	CreatedAt time.Time
}

type UpsertRunParams struct {
	ID     string
	Symbol string
}

func (q *Queries) UpsertRun(ctx context.Context, arg UpsertRunParams) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO runs (id, symbol) VALUES (?, ?)
		ON CONFLICT (id) DO UPDATE SET updated_at = CURRENT_TIMESTAMP`,
		arg.ID, arg.Symbol)
	return err
}

type SetRunStatusParams struct {
	ID     string
	Status string
}

func (q *Queries) SetRunStatus(ctx context.Context, arg SetRunStatusParams) error {
	_, err := q.db.ExecContext(ctx, `
		UPDATE runs SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		arg.Status, arg.ID)
	return err
}

type InsertStageParams struct {
	RunID   string
	Name    string
	Content string
}

func (q *Queries) InsertStage(ctx context.Context, arg InsertStageParams) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO stages (run_id, name, content) VALUES (?, ?, ?)`,
		arg.RunID, arg.Name, arg.Content)
	return err
}

func (q *Queries) GetRun(ctx context.Context, id string) (Run, error) {
	row := q.db.QueryRowContext(ctx, `
		SELECT id, symbol, status, created_at, updated_at FROM runs WHERE id = ?`, id)
	var r Run
	err := row.Scan(&r.ID, &r.Symbol, &r.Status, &r.CreatedAt, &r.UpdatedAt)
	return r, err
}

func (q *Queries) ListRuns(ctx context.Context, limit int64) ([]Run, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT id, symbol, status, created_at, updated_at
		FROM runs ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Symbol, &r.Status, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

func (q *Queries) GetStagesByRun(ctx context.Context, runID string) ([]Stage, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT id, run_id, name, content, created_at
		FROM stages WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stages []Stage
	for rows.Next() {
		var s Stage
		if err := rows.Scan(&s.ID, &s.RunID, &s.Name, &s.Content, &s.CreatedAt); err != nil {
			return nil, err
		}
		stages = append(stages, s)
	}
	return stages, rows.Err()
}

package history

import (
	"context"

	"finch/internal/db"
)

// Store records pipeline runs and the intermediate output of each
// stage so past analyses can be listed and replayed.
type Store struct {
	q *db.Queries
}

func NewStore(database *db.DB) *Store {
	return &Store{q: db.New(database.Conn())}
}

func (s *Store) EnsureRun(ctx context.Context, runID, symbol string) error {
	return s.q.UpsertRun(ctx, db.UpsertRunParams{
		ID:     runID,
		Symbol: symbol,
	})
}

func (s *Store) SaveStage(ctx context.Context, runID, name, content string) error {
	return s.q.InsertStage(ctx, db.InsertStageParams{
		RunID:   runID,
		Name:    name,
		Content: content,
	})
}

func (s *Store) FinishRun(ctx context.Context, runID, status string) error {
	return s.q.SetRunStatus(ctx, db.SetRunStatusParams{
		ID:     runID,
		Status: status,
	})
}

func (s *Store) ListRuns(ctx context.Context, limit int64) ([]db.Run, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.q.ListRuns(ctx, limit)
}

type RunDetail struct {
	Run    db.Run
	Stages []db.Stage
}

func (s *Store) GetRun(ctx context.Context, runID string) (*RunDetail, error) {
	run, err := s.q.GetRun(ctx, runID)
	if err != nil {
		return nil, err
	}
	stages, err := s.q.GetStagesByRun(ctx, runID)
	if err != nil {
		return nil, err
	}
	return &RunDetail{Run: run, Stages: stages}, nil
}

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// LogWeight records the weight for the entry's day. A second entry on the
// same day replaces the first but keeps its id; w.WeightID is set to the
// stored id.
func (s *SQLiteStore) LogWeight(ctx context.Context, w *WeightEntry) error {
	if w == nil {
		return errors.New("weight entry cannot be nil")
	}
	if w.WeightKg <= 0 {
		return fmt.Errorf("weight must be positive (got %v)", w.WeightKg)
	}
	if w.Unit == "" {
		return errors.New("unit is required")
	}
	if w.LoggedAtUnixMs == 0 {
		w.LoggedAtUnixMs = s.now().UnixMilli()
	}
	if w.LoggedDate == "" {
		w.LoggedDate = time.UnixMilli(w.LoggedAtUnixMs).Format(time.DateOnly)
	}
	if w.WeightID == "" {
		w.WeightID = uuid.New().String()
	}

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO weights (weight_id, weight_kg, unit, logged_date, logged_at_unix_ms)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(logged_date) DO UPDATE SET
			weight_kg = excluded.weight_kg,
			unit = excluded.unit,
			logged_at_unix_ms = excluded.logged_at_unix_ms
		RETURNING weight_id
	`, w.WeightID, w.WeightKg, w.Unit, w.LoggedDate, w.LoggedAtUnixMs).Scan(&w.WeightID)
	if err != nil {
		return fmt.Errorf("failed to log weight: %w", err)
	}
	return nil
}

// LatestWeight returns the most recent entry.
func (s *SQLiteStore) LatestWeight(ctx context.Context) (*WeightEntry, error) {
	entries, err := s.ListWeights(ctx, 1)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, ErrWeightNotFound
	}
	return &entries[0], nil
}

// ListWeights returns entries newest first. limit <= 0 returns all.
func (s *SQLiteStore) ListWeights(ctx context.Context, limit int) ([]WeightEntry, error) {
	query := `
		SELECT weight_id, weight_kg, unit, logged_date, logged_at_unix_ms
		FROM weights
		ORDER BY logged_at_unix_ms DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list weights: %w", err)
	}
	defer rows.Close()

	var out []WeightEntry
	for rows.Next() {
		var w WeightEntry
		if err := rows.Scan(&w.WeightID, &w.WeightKg, &w.Unit, &w.LoggedDate, &w.LoggedAtUnixMs); err != nil {
			return nil, fmt.Errorf("failed to scan weight: %w", err)
		}
		out = append(out, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate weights: %w", err)
	}
	return out, nil
}

// DeleteWeight removes an entry by id.
func (s *SQLiteStore) DeleteWeight(ctx context.Context, weightID string) error {
	if weightID == "" {
		return errors.New("weight_id is required")
	}
	result, err := s.db.ExecContext(ctx, `DELETE FROM weights WHERE weight_id = ?`, weightID)
	if err != nil {
		return fmt.Errorf("failed to delete weight: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrWeightNotFound
	}
	return nil
}

// SetWeightGoal retires the active goal, if any, and stores g as the new
// active goal.
func (s *SQLiteStore) SetWeightGoal(ctx context.Context, g *WeightGoal) error {
	if g == nil {
		return errors.New("weight goal cannot be nil")
	}
	if g.TargetWeightKg <= 0 || g.StartWeightKg <= 0 {
		return errors.New("start and target weights must be positive")
	}
	if g.Unit == "" {
		return errors.New("unit is required")
	}
	if g.GoalID == "" {
		g.GoalID = uuid.New().String()
	}
	now := s.now().UnixMilli()
	if g.CreatedAtUnixMs == 0 {
		g.CreatedAtUnixMs = now
	}
	g.Achieved = false
	g.EndedAtUnixMs = nil

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
		UPDATE weight_goals SET achieved = 1, ended_at_unix_ms = ?
		WHERE achieved = 0
	`, now); err != nil {
		return fmt.Errorf("failed to retire weight goal: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO weight_goals (
			goal_id, start_weight_kg, target_weight_kg, unit,
			checkpoints, achieved, created_at_unix_ms
		) VALUES (?, ?, ?, ?, ?, 0, ?)
	`, g.GoalID, g.StartWeightKg, g.TargetWeightKg, g.Unit, g.Checkpoints, g.CreatedAtUnixMs); err != nil {
		return fmt.Errorf("failed to create weight goal: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit weight goal: %w", err)
	}
	return nil
}

// ActiveWeightGoal returns the newest goal not yet achieved.
func (s *SQLiteStore) ActiveWeightGoal(ctx context.Context) (*WeightGoal, error) {
	var (
		g        WeightGoal
		achieved int
		ended    sql.NullInt64
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT goal_id, start_weight_kg, target_weight_kg, unit, checkpoints,
		       achieved, created_at_unix_ms, ended_at_unix_ms
		FROM weight_goals
		WHERE achieved = 0
		ORDER BY created_at_unix_ms DESC
		LIMIT 1
	`).Scan(&g.GoalID, &g.StartWeightKg, &g.TargetWeightKg, &g.Unit, &g.Checkpoints,
		&achieved, &g.CreatedAtUnixMs, &ended)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGoalNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get weight goal: %w", err)
	}
	g.Achieved = achieved != 0
	if ended.Valid {
		g.EndedAtUnixMs = &ended.Int64
	}
	return &g, nil
}

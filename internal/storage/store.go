// Package storage provides SQLite-based persistent storage for fitwheel.
// It holds the user profile, the daily weight log and weight goals.
package storage

import (
	"context"
	"errors"
)

// Sentinel errors returned by Store implementations.
var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrWeightNotFound  = errors.New("weight entry not found")
	ErrGoalNotFound    = errors.New("no active weight goal")
)

// Store defines the interface for all storage operations.
type Store interface {
	// Profile
	GetProfile(ctx context.Context) (*Profile, error)
	SaveProfile(ctx context.Context, p *Profile) error

	// Weights
	LogWeight(ctx context.Context, w *WeightEntry) error
	LatestWeight(ctx context.Context) (*WeightEntry, error)
	ListWeights(ctx context.Context, limit int) ([]WeightEntry, error)
	DeleteWeight(ctx context.Context, weightID string) error

	// Goals
	SetWeightGoal(ctx context.Context, g *WeightGoal) error
	ActiveWeightGoal(ctx context.Context) (*WeightGoal, error)

	// Lifecycle
	Close() error
}

// Profile is the measurement profile captured by the wizard.
// Zero HeightCm and empty Birthday mean "not recorded".
type Profile struct {
	UnitSystem      string
	HeightCm        float64
	Birthday        string // YYYY-MM-DD
	UpdatedAtUnixMs int64
}

// WeightEntry is one day's weight. Weights are stored in kilograms; Unit
// records what the user picked in.
type WeightEntry struct {
	WeightID       string
	WeightKg       float64
	Unit           string
	LoggedDate     string // YYYY-MM-DD, local time
	LoggedAtUnixMs int64
}

// WeightGoal is a target weight. Setting a new goal retires the active one.
type WeightGoal struct {
	GoalID          string
	StartWeightKg   float64
	TargetWeightKg  float64
	Unit            string
	Checkpoints     int
	Achieved        bool
	CreatedAtUnixMs int64
	EndedAtUnixMs   *int64
}

// Verify SQLiteStore implements Store
var _ Store = (*SQLiteStore)(nil)

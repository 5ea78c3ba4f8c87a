package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// GetProfile returns the stored profile.
func (s *SQLiteStore) GetProfile(ctx context.Context) (*Profile, error) {
	var (
		p        Profile
		height   sql.NullFloat64
		birthday sql.NullString
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT unit_system, height_cm, birthday, updated_at_unix_ms
		FROM profile WHERE id = 1
	`).Scan(&p.UnitSystem, &height, &birthday, &p.UpdatedAtUnixMs)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	p.HeightCm = height.Float64
	p.Birthday = birthday.String
	return &p, nil
}

// SaveProfile creates or replaces the profile. UpdatedAtUnixMs is set to now
// when zero.
func (s *SQLiteStore) SaveProfile(ctx context.Context, p *Profile) error {
	if p == nil {
		return errors.New("profile cannot be nil")
	}
	if p.UnitSystem == "" {
		return errors.New("unit_system is required")
	}
	if p.UpdatedAtUnixMs == 0 {
		p.UpdatedAtUnixMs = s.now().UnixMilli()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO profile (id, unit_system, height_cm, birthday, updated_at_unix_ms)
		VALUES (1, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			unit_system = excluded.unit_system,
			height_cm = excluded.height_cm,
			birthday = excluded.birthday,
			updated_at_unix_ms = excluded.updated_at_unix_ms
	`,
		p.UnitSystem,
		nullableFloat(p.HeightCm),
		nullableString(p.Birthday),
		p.UpdatedAtUnixMs,
	)
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

// nullableString converts an empty string to NULL.
func nullableString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullableFloat(f float64) sql.NullFloat64 {
	if f == 0 {
		return sql.NullFloat64{Valid: false}
	}
	return sql.NullFloat64{Float64: f, Valid: true}
}

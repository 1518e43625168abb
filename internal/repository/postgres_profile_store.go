package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"RunSight/internal/domain/models"
	domrepo "RunSight/internal/domain/repository"
	applogger "RunSight/pkg/logger"
	pkgpg "RunSight/pkg/postgres"
)

// ProfileSchema creates the adaptation profile table (idempotent).
var ProfileSchema = []string{
	`CREATE TABLE IF NOT EXISTS adaptation_profiles (
        user_id          TEXT        NOT NULL,
        adaptation_type  TEXT        NOT NULL,
        payload          JSONB       NOT NULL,
        confidence_score DOUBLE PRECISION NOT NULL DEFAULT 0,
        sample_count     INTEGER     NOT NULL DEFAULT 0,
        updated_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
        PRIMARY KEY (user_id, adaptation_type)
    )`,
}

// PGProfileStore implements ProfileStore backed by Postgres. The learned
// coefficients travel as a JSONB payload; the keyed columns exist for queries
// and observability.
type PGProfileStore struct {
	db *sql.DB
	l  *applogger.Logger
}

func NewPGProfileStore(pg *pkgpg.Client) *PGProfileStore {
	return &PGProfileStore{db: pg.DB()}
}

// SetLogger injects a structured logger.
func (s *PGProfileStore) SetLogger(l *applogger.Logger) { s.l = l }

// Get returns the stored profile, or (nil, nil) when absent.
func (s *PGProfileStore) Get(ctx context.Context, userID string, t models.AdaptationType) (*models.AdaptationProfile, error) {
	const q = `
        SELECT payload
        FROM adaptation_profiles
        WHERE user_id = $1 AND adaptation_type = $2
    `
	var payload []byte
	err := s.db.QueryRowContext(ctx, q, userID, string(t)).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		if s.l != nil {
			s.l.Error("postgres profile get error",
				applogger.String("user_id", userID),
				applogger.String("type", string(t)),
				applogger.Error(err))
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}

	var p models.AdaptationProfile
	if err := json.Unmarshal(payload, &p); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	if err := p.Validate(); err != nil {
		// a stored profile that fails validation is treated as absent so the
		// next learning pass replaces it
		if s.l != nil {
			s.l.Warn("postgres profile invalid, ignoring",
				applogger.String("user_id", userID),
				applogger.String("type", string(t)),
				applogger.Error(err))
		}
		return nil, nil
	}
	return &p, nil
}

// Upsert stores the profile keyed by (user_id, adaptation_type).
func (s *PGProfileStore) Upsert(ctx context.Context, p *models.AdaptationProfile) error {
	if p == nil {
		return fmt.Errorf("profile is nil")
	}
	if err := p.Validate(); err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	payload, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}

	updatedAt := p.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}
	const q = `
        INSERT INTO adaptation_profiles (user_id, adaptation_type, payload, confidence_score, sample_count, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6)
        ON CONFLICT (user_id, adaptation_type) DO UPDATE SET
            payload          = EXCLUDED.payload,
            confidence_score = EXCLUDED.confidence_score,
            sample_count     = EXCLUDED.sample_count,
            updated_at       = EXCLUDED.updated_at
    `
	if _, err := s.db.ExecContext(ctx, q, p.UserID, string(p.Type), payload, p.ConfidenceScore, p.SampleCount, updatedAt); err != nil {
		if s.l != nil {
			s.l.Error("postgres profile upsert error",
				applogger.String("user_id", p.UserID),
				applogger.String("type", string(p.Type)),
				applogger.Error(err))
		}
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}

var _ domrepo.ProfileStore = (*PGProfileStore)(nil)

package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"truck-route-optimizer/internal/adapters/codec"
	"truck-route-optimizer/internal/domain"
	"truck-route-optimizer/internal/platform/obs"
)

// SQLite backed plan cache. Entries expire after TTL; expired rows are
// ignored on read and overwritten on the next put.
type SqlitePlanCache struct {
	DB  *sql.DB
	TTL time.Duration
	Now func() time.Time
}

func NewSqlitePlanCache(db *sql.DB, ttl time.Duration) *SqlitePlanCache {
	return &SqlitePlanCache{DB: db, TTL: ttl, Now: time.Now}
}

// Fetch the cached run for key.
func (s *SqlitePlanCache) GetPlan(ctx context.Context, key string) (_ *domain.PlanRun, _ bool, err error) {
	defer obs.Time(ctx, "plan.cache.sqlite.GetPlan")(&err)

	if s.DB == nil {
		return nil, false, errors.New("plan cache: db is nil")
	}

	if strings.TrimSpace(key) == "" {
		return nil, false, errors.New("get plan cache: key must not be empty")
	}

	q := `
	SELECT
        run_json
    FROM plan_cache
    WHERE plan_key = ?
        AND expires_at > ?;
	`

	var raw string
	err = s.DB.QueryRowContext(ctx, q, key, s.now().UnixNano()).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get plan cache: query plan_cache table: %w", err)
	}

	run, err := codec.DecodeRun([]byte(raw))
	if err != nil {
		return nil, false, fmt.Errorf("get plan cache key=%s: %w", key, err)
	}

	return run, true, nil
}

// Store a run under key, replacing any previous entry.
func (s *SqlitePlanCache) PutPlan(ctx context.Context, key string, run *domain.PlanRun) error {
	if s.DB == nil {
		return errors.New("plan cache: db is nil")
	}

	if strings.TrimSpace(key) == "" {
		return errors.New("insert plan cache: key must not be empty")
	}

	raw, err := codec.EncodeRun(run)
	if err != nil {
		return fmt.Errorf("insert plan cache: %w", err)
	}

	_, err = s.DB.ExecContext(ctx, `
	INSERT OR REPLACE INTO plan_cache (
        plan_key,
        run_json,
        expires_at
    )
    VALUES (?, ?, ?)
	`, key, string(raw), s.now().Add(s.TTL).UnixNano())
	if err != nil {
		return fmt.Errorf("insert plan cache key=%s: %w", key, err)
	}

	return nil
}

func (s *SqlitePlanCache) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

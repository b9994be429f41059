// Package repo stores completed analyses in Postgres and caches the latest
// result via the go-zero cache layer. Persistence is best-effort from the
// caller's point of view; the analysis pipeline itself stays stateless.
package repo

import (
	"context"
	"errors"
	"time"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/stores/cache"

	cachekeys "pulse-api/internal/cache"
	"pulse-api/internal/model"
)

// ErrNoAnalyses is returned by Latest when nothing has been stored yet.
var ErrNoAnalyses = errors.New("repo: no stored analyses")

// AnalysisStore persists and retrieves completed analysis runs.
type AnalysisStore interface {
	Save(ctx context.Context, rec *model.Analysis) error
	Latest(ctx context.Context) (*model.Analysis, error)
}

type analysisStore struct {
	model model.AnalysesModel
	cache cache.Cache
	ttl   cachekeys.TTLSet
}

// NewAnalysisStore constructs a store. cache may be nil; caching is then
// skipped entirely.
func NewAnalysisStore(m model.AnalysesModel, c cache.Cache, ttl cachekeys.TTLSet) (AnalysisStore, error) {
	if m == nil {
		return nil, errors.New("repo: analyses model is required")
	}
	return &analysisStore{model: m, cache: c, ttl: ttl}, nil
}

func (s *analysisStore) Save(ctx context.Context, rec *model.Analysis) error {
	if rec == nil {
		return errors.New("repo: nil analysis record")
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	id, err := s.model.Insert(ctx, rec)
	if err != nil {
		return err
	}
	rec.Id = id

	s.setCache(ctx, cachekeys.AnalysisLatestKey(), cachekeys.AnalysisLatestTTL(s.ttl), rec)
	return nil
}

func (s *analysisStore) Latest(ctx context.Context) (*model.Analysis, error) {
	var cached model.Analysis
	if ok, _ := s.getCache(ctx, cachekeys.AnalysisLatestKey(), &cached); ok {
		return &cached, nil
	}

	rec, err := s.model.FindLatest(ctx)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, ErrNoAnalyses
		}
		return nil, err
	}

	s.setCache(ctx, cachekeys.AnalysisLatestKey(), cachekeys.AnalysisLatestTTL(s.ttl), rec)
	return rec, nil
}

// helper: get from redis into v
func (s *analysisStore) getCache(ctx context.Context, key string, v interface{}) (bool, error) {
	if s.cache == nil {
		return false, nil
	}
	if err := s.cache.GetCtx(ctx, key, v); err != nil {
		if s.cache.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// helper: set redis from v
func (s *analysisStore) setCache(ctx context.Context, key string, ttl time.Duration, v interface{}) {
	if s.cache == nil || ttl <= 0 {
		return
	}
	if err := s.cache.SetWithExpireCtx(ctx, key, v, ttl); err != nil {
		logx.WithContext(ctx).Errorf("set cache %s: %v", key, err)
	}
}

package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/contactlearncert-blip/dianda-store/pkg/config"
	"github.com/contactlearncert-blip/dianda-store/pkg/logger"
	"github.com/contactlearncert-blip/dianda-store/pkg/redis"
)

const maxPayloadBytes = 4 << 20

// payloadCache is the optional write-through cache in front of the source.
type payloadCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// Source produces the raw catalog payload: cached copy first, then the
// upstream endpoint, then the local fallback file. Mirrors the storefront's
// database-or-bundled-JSON loading order.
type Source struct {
	cfg    config.CatalogConfig
	client *http.Client
	cache  payloadCache
	logg   *logger.Logger
}

// NewSource builds a catalog source; cache may be nil.
func NewSource(cfg config.CatalogConfig, cache payloadCache, logg *logger.Logger) *Source {
	return &Source{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.FetchTimeout},
		cache:  cache,
		logg:   logg,
	}
}

// Fetch returns the raw catalog JSON. Cache errors degrade to the fetch path;
// fetch errors degrade to the fallback file; only a failure of every source
// is returned to the caller.
func (s *Source) Fetch(ctx context.Context) ([]byte, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, redis.CatalogKey(s.cfg.SourceURL))
		if err == nil && cached != "" {
			return []byte(cached), nil
		}
		if err != nil && err != redis.ErrCacheMiss && s.logg != nil {
			s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "catalog cache read failed")
		}
	}

	payload, fetchErr := s.fetchUpstream(ctx)
	if fetchErr == nil {
		s.storeCache(ctx, payload)
		return payload, nil
	}
	if s.logg != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", fetchErr.Error()), "catalog fetch failed, trying fallback file")
	}

	payload, fileErr := os.ReadFile(s.cfg.FallbackPath)
	if fileErr != nil {
		return nil, fmt.Errorf("catalog unavailable: fetch: %v; fallback: %w", fetchErr, fileErr)
	}
	return payload, nil
}

func (s *Source) fetchUpstream(ctx context.Context) ([]byte, error) {
	if s.cfg.SourceURL == "" {
		return nil, fmt.Errorf("no catalog source url configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.SourceURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog endpoint returned %d", resp.StatusCode)
	}

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxPayloadBytes))
	if err != nil {
		return nil, fmt.Errorf("reading catalog body: %w", err)
	}
	return payload, nil
}

// Invalidate drops the cached payload so the next fetch goes upstream. Used
// when a cached copy turns out to be undecodable.
func (s *Source) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, redis.CatalogKey(s.cfg.SourceURL)); err != nil && s.logg != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "catalog cache purge failed")
	}
}

func (s *Source) storeCache(ctx context.Context, payload []byte) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, redis.CatalogKey(s.cfg.SourceURL), string(payload), s.cfg.CacheTTL); err != nil && s.logg != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "catalog cache write failed")
	}
}

package cache

import (
	"context"
	"maps"
	"strings"

	"github.com/riskibarqy/sports-reconciler/internal/domain/rawdata"
	basecache "github.com/riskibarqy/sports-reconciler/internal/platform/cache"
)

// RawDataRepository serves stored rows from a TTL cache in front of next.
// Concurrent misses for the same scope share one load.
type RawDataRepository struct {
	next  rawdata.Repository
	cache *basecache.Store
}

func NewRawDataRepository(next rawdata.Repository, cache *basecache.Store) *RawDataRepository {
	return &RawDataRepository{next: next, cache: cache}
}

func (r *RawDataRepository) ListTeamRows(ctx context.Context, sport, league string) ([]rawdata.Payload, error) {
	return r.list(ctx, scopeKey("raw:team", sport, league), func(ctx context.Context) ([]rawdata.Payload, error) {
		return r.next.ListTeamRows(ctx, sport, league)
	})
}

func (r *RawDataRepository) ListGameRows(ctx context.Context, sport, league string) ([]rawdata.Payload, error) {
	return r.list(ctx, scopeKey("raw:game", sport, league), func(ctx context.Context) ([]rawdata.Payload, error) {
		return r.next.ListGameRows(ctx, sport, league)
	})
}

func (r *RawDataRepository) list(
	ctx context.Context,
	key string,
	load func(context.Context) ([]rawdata.Payload, error),
) ([]rawdata.Payload, error) {
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := load(ctx)
		if err != nil {
			return nil, err
		}
		return copyPayloads(items), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]rawdata.Payload)
	return copyPayloads(items), nil
}

// scopeKey matches the case-insensitive scope filter of the stores.
func scopeKey(prefix, sport, league string) string {
	return prefix + ":" + strings.ToLower(strings.TrimSpace(sport)) + ":" + strings.ToLower(strings.TrimSpace(league))
}

// copyPayloads copies the slice and each top-level map. Nested values are
// shared; normalization only reads them.
func copyPayloads(items []rawdata.Payload) []rawdata.Payload {
	out := make([]rawdata.Payload, len(items))
	for i, item := range items {
		out[i] = maps.Clone(item)
	}
	return out
}

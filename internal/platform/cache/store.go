package cache

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/simplelru"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultTTL           = 60 * time.Second
	DefaultSweepInterval = 30 * time.Second
	DefaultMaxEntries    = 10000
)

type Config struct {
	TTL           time.Duration
	SweepInterval time.Duration
	MaxEntries    int
}

func DefaultConfig() Config {
	return Config{
		TTL:           DefaultTTL,
		SweepInterval: DefaultSweepInterval,
		MaxEntries:    DefaultMaxEntries,
	}
}

func normalizeConfig(cfg Config) Config {
	defaults := DefaultConfig()
	if cfg.TTL <= 0 {
		cfg.TTL = defaults.TTL
	}
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = defaults.SweepInterval
	}
	if cfg.MaxEntries < 1 {
		cfg.MaxEntries = defaults.MaxEntries
	}
	return cfg
}

type Stats struct {
	Entries       int           `json:"entries"`
	MaxEntries    int           `json:"max_entries"`
	Hits          uint64        `json:"hits"`
	Misses        uint64        `json:"misses"`
	Expired       uint64        `json:"expired"`
	Evicted       uint64        `json:"evicted"`
	TTL           time.Duration `json:"ttl_ns"`
	SweepInterval time.Duration `json:"sweep_interval_ns"`
}

type entry struct {
	value    any
	storedAt time.Time
}

// Store is a bounded LRU whose entries also expire a fixed TTL after
// insertion. Expired entries are dropped lazily on read and by a periodic
// sweep once Start is called. Safe for concurrent use.
type Store struct {
	mu       sync.Mutex
	entries  *simplelru.LRU[string, entry]
	removing bool
	cfg      Config
	flight   singleflight.Group
	now      func() time.Time

	hits    atomic.Uint64
	misses  atomic.Uint64
	expired atomic.Uint64
	evicted atomic.Uint64

	startOnce sync.Once
	closeOnce sync.Once
	stop      chan struct{}
	done      chan struct{}
}

func NewStore(cfg Config) *Store {
	cfg = normalizeConfig(cfg)
	s := &Store{
		cfg:  cfg,
		now:  time.Now,
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}

	// Only errors for a non-positive size, which normalizeConfig rules out.
	entries, _ := simplelru.NewLRU[string, entry](cfg.MaxEntries, func(string, entry) {
		if !s.removing {
			s.evicted.Add(1)
		}
	})
	s.entries = entries
	return s
}

// Start runs the background sweep until ctx is done or Close is called.
func (s *Store) Start(ctx context.Context) {
	s.startOnce.Do(func() {
		go s.sweepLoop(ctx)
	})
}

func (s *Store) Close() {
	s.closeOnce.Do(func() {
		close(s.stop)
	})
	s.startOnce.Do(func() {
		close(s.done)
	})
	<-s.done
}

func (s *Store) sweepLoop(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.cfg.SweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stop:
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

// Sweep removes every entry older than the TTL and returns how many it removed.
func (s *Store) Sweep() int {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for _, key := range s.entries.Keys() {
		e, ok := s.entries.Peek(key)
		if !ok || !s.isExpired(e, now) {
			continue
		}
		s.removeLocked(key)
		removed++
	}
	s.expired.Add(uint64(removed))
	return removed
}

func (s *Store) Get(_ context.Context, key string) (any, bool) {
	if key == "" {
		return nil, false
	}

	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries.Get(key)
	if !ok {
		s.misses.Add(1)
		return nil, false
	}
	if s.isExpired(e, now) {
		s.removeLocked(key)
		s.expired.Add(1)
		s.misses.Add(1)
		return nil, false
	}

	s.hits.Add(1)
	return e.value, true
}

func (s *Store) Set(_ context.Context, key string, value any) {
	if key == "" {
		return
	}

	e := entry{value: value, storedAt: s.now()}
	s.mu.Lock()
	s.entries.Add(key, e)
	s.mu.Unlock()
}

func (s *Store) Delete(_ context.Context, key string) {
	if key == "" {
		return
	}

	s.mu.Lock()
	s.removeLocked(key)
	s.mu.Unlock()
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entries.Len()
}

func (s *Store) Stats() Stats {
	return Stats{
		Entries:       s.Len(),
		MaxEntries:    s.cfg.MaxEntries,
		Hits:          s.hits.Load(),
		Misses:        s.misses.Load(),
		Expired:       s.expired.Load(),
		Evicted:       s.evicted.Load(),
		TTL:           s.cfg.TTL,
		SweepInterval: s.cfg.SweepInterval,
	}
}

// GetOrLoad returns the cached value for key, or runs loader once across all
// concurrent callers asking for the same key and caches its result.
func (s *Store) GetOrLoad(ctx context.Context, key string, loader func(context.Context) (any, error)) (any, error) {
	if loader == nil {
		return nil, fmt.Errorf("loader is required")
	}
	if key == "" {
		return loader(ctx)
	}

	if value, ok := s.Get(ctx, key); ok {
		return value, nil
	}

	value, err, _ := s.flight.Do(key, func() (any, error) {
		if cached, ok := s.Get(ctx, key); ok {
			return cached, nil
		}

		loaded, loadErr := loader(ctx)
		if loadErr != nil {
			return nil, loadErr
		}
		s.Set(ctx, key, loaded)
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}

	return value, nil
}

func (s *Store) isExpired(e entry, now time.Time) bool {
	return now.Sub(e.storedAt) >= s.cfg.TTL
}

// removeLocked drops key without counting it as a capacity eviction.
func (s *Store) removeLocked(key string) {
	s.removing = true
	s.entries.Remove(key)
	s.removing = false
}

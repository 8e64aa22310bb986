package reconcile

import (
	"context"
	"strings"
	"time"

	"github.com/riskibarqy/sports-reconciler/internal/domain/game"
	"github.com/riskibarqy/sports-reconciler/internal/domain/rawdata"
	"github.com/riskibarqy/sports-reconciler/internal/domain/team"
	"github.com/riskibarqy/sports-reconciler/internal/platform/id"
	"github.com/riskibarqy/sports-reconciler/internal/platform/logging"
)

const (
	memoKindTeam = "team"
	memoKindGame = "game"

	// noLeagueKey keeps a nil league apart from an empty one in memo keys.
	noLeagueKey = "\x00"
)

// Normalizer converts raw provider payloads into canonical teams and games.
// A Normalizer is safe for concurrent use when its Memo is.
type Normalizer struct {
	ids    id.Generator
	memo   Memo
	now    func() time.Time
	logger *logging.Logger
}

type Option func(*Normalizer)

// WithMemo caches results by payload content. Without it every call
// recomputes.
func WithMemo(memo Memo) Option {
	return func(n *Normalizer) {
		n.memo = memo
	}
}

func WithClock(now func() time.Time) Option {
	return func(n *Normalizer) {
		if now != nil {
			n.now = now
		}
	}
}

func WithIDGenerator(ids id.Generator) Option {
	return func(n *Normalizer) {
		if ids != nil {
			n.ids = ids
		}
	}
}

func WithLogger(logger *logging.Logger) Option {
	return func(n *Normalizer) {
		if logger != nil {
			n.logger = logger
		}
	}
}

func NewNormalizer(opts ...Option) *Normalizer {
	n := &Normalizer{
		ids:    id.NewHashGenerator(),
		now:    time.Now,
		logger: logging.Default(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// NormalizeTeam returns nil for an empty payload.
func (n *Normalizer) NormalizeTeam(raw rawdata.Payload, sport string, league *string) *team.Team {
	if raw.IsEmpty() {
		return nil
	}

	out, ok := n.memoized(memoKindTeam, raw, sport, league, func() any {
		return n.normalizeTeam(raw, sport, league)
	})
	if !ok {
		return nil
	}

	t, ok := out.(team.Team)
	if !ok {
		return nil
	}
	return &t
}

func (n *Normalizer) NormalizeGame(raw rawdata.Payload, sport string, league *string) game.Game {
	out, ok := n.memoized(memoKindGame, raw, sport, league, func() any {
		return n.normalizeGame(raw, sport, league)
	})
	if !ok {
		return n.normalizeGame(raw, sport, league)
	}

	g, ok := out.(game.Game)
	if !ok {
		return n.normalizeGame(raw, sport, league)
	}
	return g
}

// memoized runs compute through the memo when one is configured. Results
// are cloned on the way out so callers never share pointers with the
// cached copy.
func (n *Normalizer) memoized(kind string, raw rawdata.Payload, sport string, league *string, compute func() any) (any, bool) {
	if n.memo == nil {
		return compute(), true
	}

	leagueKey := noLeagueKey
	if league != nil {
		leagueKey = *league
	}
	key, ok := memoKey(kind, raw, sport, leagueKey)
	if !ok {
		n.logger.Debug("payload not memoizable", "kind", kind)
		return compute(), true
	}

	value, err := n.memo.GetOrLoad(context.Background(), key, func(context.Context) (any, error) {
		return compute(), nil
	})
	if err != nil {
		n.logger.Warn("memo lookup failed", "kind", kind, "error", err)
		return compute(), true
	}

	switch typed := value.(type) {
	case team.Team:
		return typed.Clone(), true
	case game.Game:
		return typed.Clone(), true
	default:
		return nil, false
	}
}

// effectiveSport prefers the caller's sport and falls back to the payload.
func effectiveSport(raw rawdata.Payload, sport string, spec fieldSpec) string {
	if s := strings.TrimSpace(sport); s != "" {
		return s
	}
	if s := spec.stringPtr(raw); s != nil {
		return strings.TrimSpace(*s)
	}
	return ""
}

// effectiveLeague prefers the caller's league and falls back to the payload.
func effectiveLeague(raw rawdata.Payload, league *string, spec fieldSpec) *string {
	if league != nil {
		l := *league
		return &l
	}
	return spec.stringPtr(raw)
}

func derefString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

package reconcile

import (
	"time"

	"github.com/riskibarqy/sports-reconciler/internal/domain/game"
	"github.com/riskibarqy/sports-reconciler/internal/domain/team"
)

// Deduplicate collapses items sharing a key to one winner. prefer reports
// whether candidate should replace the current winner. Output keeps the
// order in which each key was first seen.
func Deduplicate[T any](items []T, key func(T) string, prefer func(candidate, existing T) bool) []T {
	order := make([]string, 0, len(items))
	winners := make(map[string]T, len(items))

	for _, item := range items {
		k := key(item)
		existing, seen := winners[k]
		if !seen {
			winners[k] = item
			order = append(order, k)
			continue
		}
		if prefer(item, existing) {
			winners[k] = item
		}
	}

	out := make([]T, 0, len(order))
	for _, k := range order {
		out = append(out, winners[k])
	}
	return out
}

func DeduplicateTeams(teams []team.Team) []team.Team {
	now := time.Now()
	return Deduplicate(teams, func(t team.Team) string { return t.ID }, func(candidate, existing team.Team) bool {
		return preferTeam(candidate, existing, now)
	})
}

func DeduplicateGames(games []game.Game) []game.Game {
	now := time.Now()
	return Deduplicate(games, func(g game.Game) string { return g.ID }, func(candidate, existing game.Game) bool {
		return preferGame(candidate, existing, now)
	})
}

// preferTeam: richer record first, then the more recently modified one.
func preferTeam(candidate, existing team.Team, now time.Time) bool {
	cc, ec := candidate.Completeness(), existing.Completeness()
	if cc != ec {
		return cc > ec
	}
	return modifiedAt(candidate.LastModified, now).After(modifiedAt(existing.LastModified, now))
}

// preferGame: a scored record beats an unscored one, then the newer record
// wins, then the richer one. An older candidate only wins on completeness.
func preferGame(candidate, existing game.Game, now time.Time) bool {
	cs, es := candidate.HasScore(), existing.HasScore()
	if cs != es {
		return cs
	}

	ct := modifiedAt(candidate.LastModified, now)
	et := modifiedAt(existing.LastModified, now)
	if ct.After(et) {
		return true
	}
	return candidate.Completeness() > existing.Completeness()
}

func modifiedAt(lastModified func() (time.Time, bool), now time.Time) time.Time {
	if t, ok := lastModified(); ok {
		return t
	}
	return now
}

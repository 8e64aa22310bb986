package reconcile

import (
	"strings"
	"time"

	"github.com/riskibarqy/sports-reconciler/internal/domain/rawdata"
	"github.com/riskibarqy/sports-reconciler/internal/domain/team"
	"github.com/riskibarqy/sports-reconciler/internal/platform/id"
)

// CleanTeamName strips club affixes and resolves known aliases.
func CleanTeamName(name, sport string) string {
	return CanonicalTeamName(StripClubAffixes(name), sport)
}

func (n *Normalizer) normalizeTeam(raw rawdata.Payload, sport string, league *string) team.Team {
	now := n.now().UTC()
	sport = effectiveSport(raw, sport, teamFields.Sport)
	league = effectiveLeague(raw, league, teamFields.League)

	name := ""
	if v := teamFields.Name.stringPtr(raw); v != nil {
		name = CleanTeamName(*v, sport)
	}

	teamID := ""
	if v := teamFields.ID.stringPtr(raw); v != nil {
		teamID = strings.TrimSpace(*v)
	}
	if teamID == "" {
		teamID = n.ids.Canonical(id.KindTeam, name, sport, derefString(league))
	}

	out := team.Team{
		ID:           teamID,
		Name:         name,
		City:         teamFields.City.stringPtr(raw),
		League:       league,
		Sport:        sport,
		Abbreviation: teamFields.Abbreviation.stringPtr(raw),
		LogoURL:      teamFields.LogoURL.stringPtr(raw),
		Founded:      teamFields.Founded.intPtr(raw),
		Venue:        teamFields.Venue.stringPtr(raw),
		Capacity:     teamFields.Capacity.intPtr(raw),
		CreatedAt:    resolveTime(raw, teamFields.CreatedAt, now),
		UpdatedAt:    resolveTime(raw, teamFields.UpdatedAt, now),
	}
	if placeholder, ok := raw["placeholder"].(bool); ok {
		out.Placeholder = placeholder
	}
	return out
}

// placeholderTeam stands in for a missing side. Its name is the side label
// so the game ID stays deterministic.
func (n *Normalizer) placeholderTeam(side, sport string, league *string) team.Team {
	now := n.now().UTC()
	return team.Team{
		ID:          n.ids.Canonical(id.KindTeam, side, sport, derefString(league)),
		Name:        side,
		League:      cloneStringPtr(league),
		Sport:       sport,
		CreatedAt:   now,
		UpdatedAt:   now,
		Placeholder: true,
	}
}

func resolveTime(raw rawdata.Payload, spec fieldSpec, fallback time.Time) time.Time {
	value, ok := spec.resolve(raw)
	if !ok {
		return fallback
	}
	if t, ok := ParseDate(value); ok {
		return t
	}
	return fallback
}

func cloneStringPtr(v *string) *string {
	if v == nil {
		return nil
	}
	s := *v
	return &s
}

package reconcile

import (
	"github.com/riskibarqy/sports-reconciler/internal/domain/game"
	"github.com/riskibarqy/sports-reconciler/internal/domain/team"
)

// IntegrityReport lists games that reference teams outside the known team
// set or that carry a placeholder side.
type IntegrityReport struct {
	KnownTeams         int      `json:"known_teams"`
	UnknownTeamGameIDs []string `json:"unknown_team_game_ids"`
	PlaceholderGameIDs []string `json:"placeholder_game_ids"`
}

func (r IntegrityReport) OK() bool {
	return len(r.UnknownTeamGameIDs) == 0 && len(r.PlaceholderGameIDs) == 0
}

// CheckIntegrity cross-checks games against teams. With an empty team set
// only placeholder sides are reported.
func CheckIntegrity(teams []team.Team, games []game.Game) IntegrityReport {
	known := make(map[string]struct{}, len(teams))
	for _, t := range teams {
		known[t.ID] = struct{}{}
	}

	report := IntegrityReport{
		KnownTeams:         len(known),
		UnknownTeamGameIDs: []string{},
		PlaceholderGameIDs: []string{},
	}
	for _, g := range games {
		if g.HomeTeam.Placeholder || g.AwayTeam.Placeholder {
			report.PlaceholderGameIDs = append(report.PlaceholderGameIDs, g.ID)
		}
		if len(known) == 0 {
			continue
		}
		_, homeKnown := known[g.HomeTeamID]
		_, awayKnown := known[g.AwayTeamID]
		if !homeKnown || !awayKnown {
			report.UnknownTeamGameIDs = append(report.UnknownTeamGameIDs, g.ID)
		}
	}
	return report
}

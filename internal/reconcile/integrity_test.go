package reconcile

import (
	"testing"

	"github.com/riskibarqy/sports-reconciler/internal/domain/game"
	"github.com/riskibarqy/sports-reconciler/internal/domain/team"
)

func TestCheckIntegrity(t *testing.T) {
	teams := []team.Team{{ID: "team_1"}, {ID: "team_2"}}
	games := []game.Game{
		{ID: "game_ok", HomeTeamID: "team_1", AwayTeamID: "team_2"},
		{ID: "game_unknown", HomeTeamID: "team_1", AwayTeamID: "team_9"},
		{ID: "game_placeholder", HomeTeamID: "team_1", AwayTeamID: "team_2", AwayTeam: team.Team{Placeholder: true}},
	}

	report := CheckIntegrity(teams, games)
	if report.KnownTeams != 2 {
		t.Fatalf("unexpected known teams: %d", report.KnownTeams)
	}
	if len(report.UnknownTeamGameIDs) != 1 || report.UnknownTeamGameIDs[0] != "game_unknown" {
		t.Fatalf("unexpected unknown-team games: %v", report.UnknownTeamGameIDs)
	}
	if len(report.PlaceholderGameIDs) != 1 || report.PlaceholderGameIDs[0] != "game_placeholder" {
		t.Fatalf("unexpected placeholder games: %v", report.PlaceholderGameIDs)
	}
	if report.OK() {
		t.Fatalf("expected report with findings to be not ok")
	}
}

func TestCheckIntegrity_WithoutTeamSet(t *testing.T) {
	report := CheckIntegrity(nil, []game.Game{{ID: "game_1", HomeTeamID: "team_x", AwayTeamID: "team_y"}})
	if !report.OK() {
		t.Fatalf("expected no findings without a team set, got %+v", report)
	}
}

package reconcile

import (
	"strings"

	"github.com/riskibarqy/sports-reconciler/internal/domain/game"
	"github.com/riskibarqy/sports-reconciler/internal/domain/rawdata"
	"github.com/riskibarqy/sports-reconciler/internal/domain/team"
	"github.com/riskibarqy/sports-reconciler/internal/platform/id"
)

const (
	SideHome = "home"
	SideAway = "away"
)

func (n *Normalizer) normalizeGame(raw rawdata.Payload, sport string, league *string) game.Game {
	now := n.now().UTC()
	sport = effectiveSport(raw, sport, gameFields.Sport)
	league = effectiveLeague(raw, league, gameFields.League)

	home := n.resolveSide(raw, gameFields.HomeTeam, SideHome, sport, league)
	away := n.resolveSide(raw, gameFields.AwayTeam, SideAway, sport, league)

	gameDate, inferred := now, true
	if value, ok := gameFields.GameDate.resolve(raw); ok {
		if t, ok := ParseDate(value); ok {
			gameDate, inferred = t, false
		}
	}
	if flagged, ok := raw["date_inferred"].(bool); ok && flagged {
		inferred = true
	}

	status := game.StatusScheduled
	if value, ok := gameFields.Status.resolve(raw); ok {
		status = ClassifyStatus(statusText(value))
	}

	gameID := ""
	if v := gameFields.ID.stringPtr(raw); v != nil {
		gameID = strings.TrimSpace(*v)
	}
	if gameID == "" {
		gameID = n.ids.Canonical(id.KindGame, home.Name, away.Name, FormatISOMillis(gameDate), sport, derefString(league))
	}

	season := ""
	if v := gameFields.Season.stringPtr(raw); v != nil {
		season = *v
	}

	return game.Game{
		ID:            gameID,
		HomeTeamID:    home.ID,
		AwayTeamID:    away.ID,
		GameDate:      gameDate,
		Season:        season,
		HomeScore:     scorePtr(raw, gameFields.HomeScore),
		AwayScore:     scorePtr(raw, gameFields.AwayScore),
		Status:        status,
		Venue:         gameFields.Venue.stringPtr(raw),
		League:        league,
		Sport:         sport,
		Broadcast:     gameFields.Broadcast.stringPtr(raw),
		Attendance:    gameFields.Attendance.intPtr(raw),
		Period:        gameFields.Period.stringPtr(raw),
		TimeRemaining: gameFields.TimeRemaining.stringPtr(raw),
		Possession:    gameFields.Possession.stringPtr(raw),
		LastPlay:      gameFields.LastPlay.stringPtr(raw),
		HomeTeam:      home,
		AwayTeam:      away,
		CreatedAt:     resolveTime(raw, gameFields.CreatedAt, now),
		UpdatedAt:     resolveTime(raw, gameFields.UpdatedAt, now),
		DateInferred:  inferred,
	}
}

// resolveSide normalizes one side of a game. A missing or empty side
// becomes a placeholder team named after the side.
func (n *Normalizer) resolveSide(raw rawdata.Payload, spec fieldSpec, side, sport string, league *string) team.Team {
	value, ok := spec.resolve(raw)
	if !ok {
		return n.placeholderTeam(side, sport, league)
	}

	payload := asPayload(value)
	if payload.IsEmpty() {
		return n.placeholderTeam(side, sport, league)
	}
	return n.normalizeTeam(payload, sport, league)
}

// scorePtr keeps an explicit null as unknown. Negative or non-numeric
// values are treated as unknown too.
func scorePtr(raw rawdata.Payload, spec fieldSpec) *int {
	score := spec.intPtr(raw)
	if score == nil || *score < 0 {
		return nil
	}
	return score
}

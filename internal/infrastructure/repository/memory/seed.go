package memory

import "github.com/riskibarqy/sports-reconciler/internal/domain/rawdata"

const (
	SportSoccer = "soccer"

	LeagueLiga1Indonesia = "Liga 1 Indonesia"
	LeaguePremierLeague  = "Premier League"
)

// SeedTeamRows mixes two provider shapes for the same clubs so a fresh
// process has something to reconcile against.
func SeedTeamRows() []StoredRow {
	return []StoredRow{
		{Sport: SportSoccer, League: LeagueLiga1Indonesia, Payload: rawdata.Payload{"name": "Persija Jakarta", "abbreviation": "PSJ", "city": "Jakarta", "venue": "Jakarta International Stadium"}},
		{Sport: SportSoccer, League: LeagueLiga1Indonesia, Payload: rawdata.Payload{"displayName": "Persija Jakarta FC", "updatedAt": "2026-02-01T00:00:00Z"}},
		{Sport: SportSoccer, League: LeagueLiga1Indonesia, Payload: rawdata.Payload{"name": "Persib Bandung", "abbreviation": "PSB", "city": "Bandung", "venue": "Gelora Bandung Lautan Api"}},
		{Sport: SportSoccer, League: LeagueLiga1Indonesia, Payload: rawdata.Payload{"teamName": "Persebaya Surabaya", "abbrev": "PRB", "stadium": "Gelora Bung Tomo"}},
		{Sport: SportSoccer, League: LeagueLiga1Indonesia, Payload: rawdata.Payload{"name": "Bali United FC", "shortName": "BU", "location": "Gianyar", "venue": "Kapten I Wayan Dipta"}},
		{Sport: SportSoccer, League: LeaguePremierLeague, Payload: rawdata.Payload{"name": "Arsenal FC", "abbreviation": "ARS", "founded": 1886, "venue": "Emirates Stadium"}},
		{Sport: SportSoccer, League: LeaguePremierLeague, Payload: rawdata.Payload{"name": "Liverpool LFC", "abbreviation": "LIV", "founded": 1892, "venue": "Anfield"}},
	}
}

func SeedGameRows() []StoredRow {
	return []StoredRow{
		{Sport: SportSoccer, League: LeagueLiga1Indonesia, Payload: rawdata.Payload{
			"home_team": map[string]any{"name": "Persija Jakarta"},
			"away_team": map[string]any{"name": "Persib Bandung"},
			"game_date": "2026-02-14T19:00:00Z",
			"status":    "Final",
			"score":     map[string]any{"home": 2, "away": 1},
			"venue":     "Jakarta International Stadium",
		}},
		{Sport: SportSoccer, League: LeagueLiga1Indonesia, Payload: rawdata.Payload{
			"homeTeam": map[string]any{"displayName": "Persija Jakarta FC"},
			"awayTeam": map[string]any{"displayName": "Persib Bandung"},
			"dateTime": "2026-02-14T19:00:00Z",
			"status":   map[string]any{"detailedState": "Scheduled"},
		}},
		{Sport: SportSoccer, League: LeagueLiga1Indonesia, Payload: rawdata.Payload{
			"home":   "Persebaya Surabaya",
			"away":   "Bali United",
			"date":   "2026-02-15 12:30:00",
			"status": "postponed",
			"venue":  "Gelora Bung Tomo",
		}},
		{Sport: SportSoccer, League: LeaguePremierLeague, Payload: rawdata.Payload{
			"home_team": map[string]any{"name": "Arsenal"},
			"away_team": map[string]any{"name": "Liverpool"},
			"game_date": "2026-02-14T15:00:00Z",
			"status":    "upcoming",
			"venue":     "Emirates Stadium",
		}},
	}
}

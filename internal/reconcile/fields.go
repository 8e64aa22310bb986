package reconcile

import (
	"math"
	"strconv"
	"strings"

	"github.com/riskibarqy/sports-reconciler/internal/domain/rawdata"
)

type resolveMode int

const (
	// firstNonNull skips keys that are absent or hold null.
	firstNonNull resolveMode = iota
	// firstDefined stops at the first key that exists, even when it holds
	// null, so an explicit null survives as "unknown".
	firstDefined
)

// fieldSpec is one canonical field: the accessor paths tried in priority
// order and how a null value is treated.
type fieldSpec struct {
	paths []string
	mode  resolveMode
}

func aliases(paths ...string) fieldSpec {
	return fieldSpec{paths: paths, mode: firstNonNull}
}

func definedAliases(paths ...string) fieldSpec {
	return fieldSpec{paths: paths, mode: firstDefined}
}

func (f fieldSpec) resolve(p rawdata.Payload) (any, bool) {
	for _, path := range f.paths {
		value, ok := p.Lookup(path)
		if !ok {
			continue
		}
		if value == nil && f.mode == firstNonNull {
			continue
		}
		return value, true
	}
	return nil, false
}

func (f fieldSpec) stringPtr(p rawdata.Payload) *string {
	value, ok := f.resolve(p)
	if !ok {
		return nil
	}
	s, ok := asString(value)
	if !ok {
		return nil
	}
	return &s
}

func (f fieldSpec) intPtr(p rawdata.Payload) *int {
	value, ok := f.resolve(p)
	if !ok {
		return nil
	}
	n, ok := asInt(value)
	if !ok {
		return nil
	}
	return &n
}

type teamFieldTable struct {
	ID           fieldSpec
	Name         fieldSpec
	Sport        fieldSpec
	League       fieldSpec
	City         fieldSpec
	Abbreviation fieldSpec
	LogoURL      fieldSpec
	Founded      fieldSpec
	Venue        fieldSpec
	Capacity     fieldSpec
	CreatedAt    fieldSpec
	UpdatedAt    fieldSpec
}

var teamFields = teamFieldTable{
	ID:           aliases("id"),
	Name:         aliases("name", "displayName", "full_name", "teamName"),
	Sport:        aliases("sport"),
	League:       aliases("league", "leagueName", "competition"),
	City:         aliases("city", "location", "venueCity"),
	Abbreviation: aliases("abbreviation", "abbrev", "shortName"),
	LogoURL:      aliases("logo_url", "logo", "teamLogo", "crest", "badge"),
	Founded:      aliases("founded", "established"),
	Venue:        aliases("venue", "stadium", "homeStadium"),
	Capacity:     aliases("capacity", "venueCapacity"),
	CreatedAt:    aliases("created_at", "createdAt"),
	UpdatedAt:    aliases("updated_at", "updatedAt"),
}

type gameFieldTable struct {
	ID            fieldSpec
	HomeTeam      fieldSpec
	AwayTeam      fieldSpec
	GameDate      fieldSpec
	Status        fieldSpec
	HomeScore     fieldSpec
	AwayScore     fieldSpec
	Season        fieldSpec
	Sport         fieldSpec
	League        fieldSpec
	Venue         fieldSpec
	Broadcast     fieldSpec
	Attendance    fieldSpec
	Period        fieldSpec
	TimeRemaining fieldSpec
	Possession    fieldSpec
	LastPlay      fieldSpec
	CreatedAt     fieldSpec
	UpdatedAt     fieldSpec
}

var gameFields = gameFieldTable{
	ID:            aliases("id"),
	HomeTeam:      aliases("home_team_data", "home_team", "homeTeam", "home"),
	AwayTeam:      aliases("away_team_data", "away_team", "awayTeam", "away"),
	GameDate:      aliases("game_date", "date", "dateTime"),
	Status:        aliases("status"),
	HomeScore:     definedAliases("home_score", "homeScore", "score.home"),
	AwayScore:     definedAliases("away_score", "awayScore", "score.away"),
	Season:        aliases("season", "seasonYear", "season_year"),
	Sport:         aliases("sport"),
	League:        aliases("league", "leagueName", "competition"),
	Venue:         aliases("venue", "venue_name", "venueName", "stadium"),
	Broadcast:     aliases("broadcast", "tv", "network"),
	Attendance:    aliases("attendance"),
	Period:        aliases("quarter", "period", "inning"),
	TimeRemaining: aliases("time_remaining", "timeRemaining", "clock", "displayClock"),
	Possession:    aliases("possession"),
	LastPlay:      aliases("last_play", "lastPlay"),
	CreatedAt:     aliases("created_at", "createdAt"),
	UpdatedAt:     aliases("updated_at", "updatedAt"),
}

// objectNameKeys are tried when a scalar field arrives as a nested object,
// e.g. {"venue": {"name": "Anfield"}}.
var objectNameKeys = []string{"name", "fullName", "displayName", "text"}

func asString(v any) (string, bool) {
	switch typed := v.(type) {
	case nil:
		return "", false
	case string:
		return typed, true
	case float64:
		if math.IsNaN(typed) || math.IsInf(typed, 0) {
			return "", false
		}
		return strconv.FormatFloat(typed, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(typed), 'f', -1, 32), true
	case int:
		return strconv.Itoa(typed), true
	case int64:
		return strconv.FormatInt(typed, 10), true
	case int32:
		return strconv.FormatInt(int64(typed), 10), true
	case bool:
		return strconv.FormatBool(typed), true
	case interface{ String() string }:
		return typed.String(), true
	}

	if obj, ok := rawdata.AsObject(v); ok {
		for _, key := range objectNameKeys {
			if inner, exists := obj[key]; exists && inner != nil {
				return asString(inner)
			}
		}
	}
	return "", false
}

func asInt(v any) (int, bool) {
	switch typed := v.(type) {
	case nil:
		return 0, false
	case int:
		return typed, true
	case int64:
		return int(typed), true
	case int32:
		return int(typed), true
	case float64:
		if math.IsNaN(typed) || math.IsInf(typed, 0) {
			return 0, false
		}
		return int(math.Round(typed)), true
	case float32:
		return asInt(float64(typed))
	case string:
		trimmed := strings.TrimSpace(typed)
		if n, err := strconv.Atoi(trimmed); err == nil {
			return n, true
		}
		if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return asInt(f)
		}
		return 0, false
	case interface{ Int64() (int64, error) }:
		n, err := typed.Int64()
		if err != nil {
			return 0, false
		}
		return int(n), true
	default:
		return 0, false
	}
}

// asPayload turns a nested team value into a payload. A bare string is
// taken as the team name.
func asPayload(v any) rawdata.Payload {
	if obj, ok := rawdata.AsObject(v); ok {
		return rawdata.Payload(obj)
	}
	if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
		return rawdata.Payload{"name": s}
	}
	return rawdata.Payload{}
}

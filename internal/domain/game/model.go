package game

import (
	"time"

	"github.com/riskibarqy/sports-reconciler/internal/domain/team"
)

type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusPostponed  Status = "postponed"
)

// IsKnown reports whether s is one of the canonical statuses. Unrecognized
// provider values are carried through verbatim and are not known.
func (s Status) IsKnown() bool {
	switch s {
	case StatusScheduled, StatusInProgress, StatusCompleted, StatusPostponed:
		return true
	default:
		return false
	}
}

// Game is the canonical game record. HomeTeam and AwayTeam are snapshots
// owned by the game, not references into a team registry.
type Game struct {
	ID            string    `json:"id"`
	HomeTeamID    string    `json:"home_team_id"`
	AwayTeamID    string    `json:"away_team_id"`
	GameDate      time.Time `json:"game_date"`
	Season        string    `json:"season"`
	HomeScore     *int      `json:"home_score"`
	AwayScore     *int      `json:"away_score"`
	Status        Status    `json:"status"`
	Venue         *string   `json:"venue"`
	League        *string   `json:"league"`
	Sport         string    `json:"sport"`
	Broadcast     *string   `json:"broadcast,omitempty"`
	Attendance    *int      `json:"attendance,omitempty"`
	Period        *string   `json:"period,omitempty"`
	TimeRemaining *string   `json:"time_remaining,omitempty"`
	Possession    *string   `json:"possession,omitempty"`
	LastPlay      *string   `json:"last_play,omitempty"`
	HomeTeam      team.Team `json:"home_team"`
	AwayTeam      team.Team `json:"away_team"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	// DateInferred is set when no usable date was supplied and GameDate
	// defaulted to the normalization instant.
	DateInferred bool `json:"date_inferred,omitempty"`
}

func (g Game) HasScore() bool {
	return g.HomeScore != nil || g.AwayScore != nil
}

// Completeness counts populated top-level fields. Embedded teams are always
// present and are not counted.
func (g Game) Completeness() int {
	n := 0
	for _, s := range []string{g.ID, g.HomeTeamID, g.AwayTeamID, g.Season, string(g.Status), g.Sport} {
		if s != "" {
			n++
		}
	}
	for _, p := range []*string{g.Venue, g.League, g.Broadcast, g.Period, g.TimeRemaining, g.Possession, g.LastPlay} {
		if p != nil {
			n++
		}
	}
	for _, p := range []*int{g.HomeScore, g.AwayScore, g.Attendance} {
		if p != nil {
			n++
		}
	}
	for _, ts := range []time.Time{g.GameDate, g.CreatedAt, g.UpdatedAt} {
		if !ts.IsZero() {
			n++
		}
	}
	return n
}

func (g Game) LastModified() (time.Time, bool) {
	if !g.UpdatedAt.IsZero() {
		return g.UpdatedAt, true
	}
	if !g.CreatedAt.IsZero() {
		return g.CreatedAt, true
	}
	return time.Time{}, false
}

func (g Game) Clone() Game {
	out := g
	out.HomeScore = cloneInt(g.HomeScore)
	out.AwayScore = cloneInt(g.AwayScore)
	out.Attendance = cloneInt(g.Attendance)
	out.Venue = cloneString(g.Venue)
	out.League = cloneString(g.League)
	out.Broadcast = cloneString(g.Broadcast)
	out.Period = cloneString(g.Period)
	out.TimeRemaining = cloneString(g.TimeRemaining)
	out.Possession = cloneString(g.Possession)
	out.LastPlay = cloneString(g.LastPlay)
	out.HomeTeam = g.HomeTeam.Clone()
	out.AwayTeam = g.AwayTeam.Clone()
	return out
}

func cloneString(v *string) *string {
	if v == nil {
		return nil
	}
	s := *v
	return &s
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	n := *v
	return &n
}

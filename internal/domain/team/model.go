package team

import "time"

// Team is the canonical team record every provider shape converges to.
type Team struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	City         *string   `json:"city"`
	League       *string   `json:"league"`
	Sport        string    `json:"sport"`
	Abbreviation *string   `json:"abbreviation"`
	LogoURL      *string   `json:"logo_url"`
	Founded      *int      `json:"founded"`
	Venue        *string   `json:"venue"`
	Capacity     *int      `json:"capacity"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	// Placeholder marks a synthetic side standing in for a missing team payload.
	Placeholder bool `json:"placeholder,omitempty"`
}

// Completeness counts populated canonical fields.
func (t Team) Completeness() int {
	n := 0
	for _, s := range []string{t.ID, t.Name, t.Sport} {
		if s != "" {
			n++
		}
	}
	for _, p := range []*string{t.City, t.League, t.Abbreviation, t.LogoURL, t.Venue} {
		if p != nil {
			n++
		}
	}
	for _, p := range []*int{t.Founded, t.Capacity} {
		if p != nil {
			n++
		}
	}
	for _, ts := range []time.Time{t.CreatedAt, t.UpdatedAt} {
		if !ts.IsZero() {
			n++
		}
	}
	return n
}

// LastModified is updated_at, falling back to created_at. ok is false when
// neither is set.
func (t Team) LastModified() (time.Time, bool) {
	if !t.UpdatedAt.IsZero() {
		return t.UpdatedAt, true
	}
	if !t.CreatedAt.IsZero() {
		return t.CreatedAt, true
	}
	return time.Time{}, false
}

// Clone returns a deep copy that shares no pointers with t.
func (t Team) Clone() Team {
	out := t
	out.City = cloneString(t.City)
	out.League = cloneString(t.League)
	out.Abbreviation = cloneString(t.Abbreviation)
	out.LogoURL = cloneString(t.LogoURL)
	out.Venue = cloneString(t.Venue)
	out.Founded = cloneInt(t.Founded)
	out.Capacity = cloneInt(t.Capacity)
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

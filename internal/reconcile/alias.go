package reconcile

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// teamNameAliases maps folded provider spellings to the canonical short
// name, per sport. Keys must already be folded with foldName.
var teamNameAliases = map[string]map[string]string{
	"basketball": {
		"la lakers":              "Lakers",
		"los angeles lakers":     "Lakers",
		"la clippers":            "Clippers",
		"los angeles clippers":   "Clippers",
		"golden state warriors":  "Warriors",
		"gs warriors":            "Warriors",
		"boston celtics":         "Celtics",
		"miami heat":             "Heat",
		"new york knicks":        "Knicks",
		"ny knicks":              "Knicks",
		"brooklyn nets":          "Nets",
		"chicago bulls":          "Bulls",
		"philadelphia 76ers":     "76ers",
		"phila 76ers":            "76ers",
		"phoenix suns":           "Suns",
		"san antonio spurs":      "Spurs",
		"sa spurs":               "Spurs",
		"dallas mavericks":       "Mavericks",
		"denver nuggets":         "Nuggets",
		"milwaukee bucks":        "Bucks",
		"oklahoma city thunder":  "Thunder",
		"okc thunder":            "Thunder",
		"portland trail blazers": "Trail Blazers",
	},
	"soccer": {
		"man utd":           "Manchester United",
		"man united":        "Manchester United",
		"manchester utd":    "Manchester United",
		"man city":          "Manchester City",
		"spurs":             "Tottenham Hotspur",
		"tottenham":         "Tottenham Hotspur",
		"wolves":            "Wolverhampton Wanderers",
		"wolverhampton":     "Wolverhampton Wanderers",
		"newcastle":         "Newcastle United",
		"newcastle utd":     "Newcastle United",
		"west ham":          "West Ham United",
		"brighton":          "Brighton & Hove Albion",
		"brighton and hove": "Brighton & Hove Albion",
		"nottm forest":      "Nottingham Forest",
		"notts forest":      "Nottingham Forest",
		"psg":               "Paris Saint-Germain",
		"paris sg":          "Paris Saint-Germain",
		"inter":             "Inter Milan",
		"internazionale":    "Inter Milan",
		"bayern":            "Bayern Munich",
		"bayern munchen":    "Bayern Munich",
		"atletico":          "Atletico Madrid",
		"atl madrid":        "Atletico Madrid",
	},
}

// foldName reduces a name to a comparison key: compatibility-decomposed,
// diacritics and punctuation dropped, lower-cased, single-spaced.
func foldName(name string) string {
	decomposed := norm.NFKD.String(name)

	var b strings.Builder
	b.Grow(len(decomposed))
	pendingSpace := false
	for _, r := range decomposed {
		switch {
		case unicode.Is(unicode.Mn, r):
			continue
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if pendingSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pendingSpace = false
			b.WriteRune(unicode.ToLower(r))
		case unicode.IsSpace(r):
			pendingSpace = true
		}
	}
	return b.String()
}

// CanonicalTeamName resolves a known alias for sport, returning name
// unchanged when none matches.
func CanonicalTeamName(name, sport string) string {
	table, ok := teamNameAliases[strings.ToLower(strings.TrimSpace(sport))]
	if !ok {
		return name
	}
	if canonical, ok := table[foldName(name)]; ok {
		return canonical
	}
	return name
}

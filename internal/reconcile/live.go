package reconcile

import (
	"regexp"
	"strings"
	"time"

	"github.com/sourcegraph/conc/panics"

	"github.com/riskibarqy/sports-reconciler/internal/domain/game"
	"github.com/riskibarqy/sports-reconciler/internal/domain/rawdata"
	"github.com/riskibarqy/sports-reconciler/internal/platform/logging"
)

const DefaultGraceWindowMinutes = 15

var (
	liveStatusNeedles    = []string{"live", "progress", "in_progress", "in progress"}
	liveIndicatorNeedles = []string{"quarter", "period", "inning", "half", "overtime", "extra", "q", "p"}

	// periodMarker matches game-clock text such as "Q3 12:04", "2nd Half"
	// or "Top 7th" that only appears while a game is being played.
	periodMarker = regexp.MustCompile(`\b(q[1-4]|p[1-9]|ot|[1-9](st|nd|rd|th)\s*(qtr|quarter|period|half|inning)|(top|bot|bottom|mid|end)\s+(of\s+)?[1-9](st|nd|rd|th)?|halftime|half time|overtime|extra time)\b`)
)

type LiveClassifier struct {
	graceWindow time.Duration
	now         func() time.Time
	logger      *logging.Logger
}

type LiveOption func(*LiveClassifier)

// WithGraceWindowMinutes sets how long after the scheduled start a
// scoreless scheduled game still counts as live. Negative values are
// treated as zero.
func WithGraceWindowMinutes(minutes int) LiveOption {
	return func(c *LiveClassifier) {
		if minutes < 0 {
			minutes = 0
		}
		c.graceWindow = time.Duration(minutes) * time.Minute
	}
}

func WithLiveClock(now func() time.Time) LiveOption {
	return func(c *LiveClassifier) {
		if now != nil {
			c.now = now
		}
	}
}

func WithLiveLogger(logger *logging.Logger) LiveOption {
	return func(c *LiveClassifier) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func NewLiveClassifier(opts ...LiveOption) *LiveClassifier {
	c := &LiveClassifier{
		graceWindow: DefaultGraceWindowMinutes * time.Minute,
		now:         time.Now,
		logger:      logging.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// With returns a copy of c with opts applied.
func (c *LiveClassifier) With(opts ...LiveOption) *LiveClassifier {
	clone := *c
	for _, opt := range opts {
		opt(&clone)
	}
	return &clone
}

func (c *LiveClassifier) GraceWindow() time.Duration {
	return c.graceWindow
}

// liveSnapshot is the subset of a game the classifier reads.
type liveSnapshot struct {
	status    any
	homeScore int
	awayScore int
	start     time.Time
	hasStart  bool
}

// IsLive evaluates a canonical game.
func (c *LiveClassifier) IsLive(g game.Game) bool {
	snap := liveSnapshot{
		status:   string(g.Status),
		start:    g.GameDate,
		hasStart: !g.GameDate.IsZero() && !g.DateInferred,
	}
	if g.HomeScore != nil {
		snap.homeScore = *g.HomeScore
	}
	if g.AwayScore != nil {
		snap.awayScore = *g.AwayScore
	}
	return c.evaluate(snap)
}

// IsLivePayload evaluates a raw provider record without normalizing it.
// The status may be a string or a provider status object.
func (c *LiveClassifier) IsLivePayload(raw rawdata.Payload) bool {
	snap := liveSnapshot{}
	if value, ok := gameFields.Status.resolve(raw); ok {
		snap.status = value
	}
	if v := gameFields.HomeScore.intPtr(raw); v != nil {
		snap.homeScore = *v
	}
	if v := gameFields.AwayScore.intPtr(raw); v != nil {
		snap.awayScore = *v
	}
	if value, ok := gameFields.GameDate.resolve(raw); ok {
		snap.start, snap.hasStart = ParseDate(value)
	}
	return c.evaluate(snap)
}

func (c *LiveClassifier) evaluate(snap liveSnapshot) bool {
	text, ok := c.extractStatus(snap.status)
	if !ok {
		return false
	}

	lower := strings.ToLower(strings.TrimSpace(text))
	classified := ClassifyStatus(lower)
	if classified == game.StatusCompleted || classified == game.StatusPostponed {
		return false
	}

	withinGrace := c.withinGraceWindow(snap)
	hasLiveStatus := lower == "live" || containsAny(lower, liveStatusNeedles...)
	if hasLiveStatus {
		hasRealScores := snap.homeScore > 0 || snap.awayScore > 0
		if hasRealScores || containsAny(lower, liveIndicatorNeedles...) || withinGrace {
			return true
		}
	}

	if periodMarker.MatchString(lower) {
		return true
	}
	return classified == game.StatusScheduled && withinGrace
}

func (c *LiveClassifier) withinGraceWindow(snap liveSnapshot) bool {
	if !snap.hasStart {
		return false
	}
	elapsed := c.now().Sub(snap.start)
	return elapsed >= 0 && elapsed <= c.graceWindow
}

// extractStatus flattens the status value. A panic during extraction is
// logged and reported as not ok so the game is treated as not live.
func (c *LiveClassifier) extractStatus(status any) (text string, ok bool) {
	var catcher panics.Catcher
	catcher.Try(func() {
		text = statusText(status)
	})
	if recovered := catcher.Recovered(); recovered != nil {
		c.logger.Warn("live status extraction failed", "error", recovered.AsError())
		return "", false
	}
	return text, true
}

package reconcile

import (
	"fmt"
	"strings"

	"github.com/riskibarqy/sports-reconciler/internal/domain/game"
	"github.com/riskibarqy/sports-reconciler/internal/domain/rawdata"
)

type statusRule struct {
	status  game.Status
	needles []string
}

// statusRules are checked in priority order against the lower-cased value.
var statusRules = []statusRule{
	{status: game.StatusInProgress, needles: []string{"live", "in progress", "in_progress"}},
	{status: game.StatusCompleted, needles: []string{"complete", "final", "finished"}},
	{status: game.StatusPostponed, needles: []string{"postponed", "delayed"}},
	{status: game.StatusScheduled, needles: []string{"scheduled", "upcoming"}},
}

// statusObjectKeys are read, in order, when a status arrives as an object.
var statusObjectKeys = []string{"status", "state", "detailedState", "abstractGameState", "codedGameState"}

// ClassifyStatus maps a provider status to a canonical one. Empty input is
// scheduled; anything unrecognized passes through unchanged.
func ClassifyStatus(raw string) game.Status {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return game.StatusScheduled
	}

	lower := strings.ToLower(trimmed)
	for _, rule := range statusRules {
		if containsAny(lower, rule.needles...) {
			return rule.status
		}
	}
	return game.Status(raw)
}

// statusText flattens a raw status value to text. Objects are searched for
// the usual provider keys; other values are stringified.
func statusText(v any) string {
	switch typed := v.(type) {
	case nil:
		return ""
	case string:
		return typed
	case game.Status:
		return string(typed)
	case fmt.Stringer:
		return typed.String()
	}

	if obj, ok := rawdata.AsObject(v); ok {
		for _, key := range statusObjectKeys {
			if inner, exists := obj[key]; exists && inner != nil {
				if text := statusText(inner); text != "" {
					return text
				}
			}
		}
		return ""
	}
	return fmt.Sprint(v)
}

func containsAny(s string, needles ...string) bool {
	for _, needle := range needles {
		if strings.Contains(s, needle) {
			return true
		}
	}
	return false
}

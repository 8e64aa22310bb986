package reconcile

import "strings"

type affixOp int

const (
	trimSuffix affixOp = iota
	replaceSuffix
	trimPrefix
	replaceFirst
)

type affixRule struct {
	op          affixOp
	match       string
	replacement string
}

// clubAffixRules strip club-type designators from team names. Each rule is
// applied at most once, in order.
var clubAffixRules = []affixRule{
	{op: trimSuffix, match: " FC"},
	{op: trimSuffix, match: " FC."},
	{op: trimSuffix, match: " CF"},
	{op: trimSuffix, match: " SC"},
	{op: trimSuffix, match: " AFC"},
	{op: trimSuffix, match: " BFC"},
	{op: replaceSuffix, match: " RFC", replacement: " "},
	{op: trimSuffix, match: " LFC"},
	{op: trimPrefix, match: "IFK "},
	{op: replaceFirst, match: " BK ", replacement: ""},
	{op: replaceFirst, match: " FK ", replacement: " "},
}

func (r affixRule) apply(name string) string {
	switch r.op {
	case trimSuffix:
		return strings.TrimSuffix(name, r.match)
	case replaceSuffix:
		if strings.HasSuffix(name, r.match) {
			return strings.TrimSuffix(name, r.match) + r.replacement
		}
		return name
	case trimPrefix:
		return strings.TrimPrefix(name, r.match)
	case replaceFirst:
		return strings.Replace(name, r.match, r.replacement, 1)
	default:
		return name
	}
}

// StripClubAffixes removes club designators ("FC", "AFC", "IFK" ...) and
// trims surrounding whitespace.
func StripClubAffixes(name string) string {
	for _, rule := range clubAffixRules {
		name = rule.apply(name)
	}
	return strings.TrimSpace(name)
}

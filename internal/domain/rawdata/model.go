package rawdata

import "strings"

// Payload is an untyped record from a provider response or a stored row.
// Field names vary by source; nothing about its shape is guaranteed.
type Payload map[string]any

func (p Payload) IsEmpty() bool {
	return len(p) == 0
}

// Lookup resolves a dotted path (e.g. "score.home") through nested objects.
// The boolean reports whether the final key exists, even when its value is nil.
func (p Payload) Lookup(path string) (any, bool) {
	if p == nil || path == "" {
		return nil, false
	}

	current := map[string]any(p)
	segments := strings.Split(path, ".")
	for i, segment := range segments {
		value, ok := current[segment]
		if !ok {
			return nil, false
		}
		if i == len(segments)-1 {
			return value, true
		}

		next, ok := AsObject(value)
		if !ok {
			return nil, false
		}
		current = next
	}

	return nil, false
}

// AsObject reports whether v is a JSON object and returns it as a plain map.
func AsObject(v any) (map[string]any, bool) {
	switch typed := v.(type) {
	case Payload:
		return map[string]any(typed), true
	case map[string]any:
		return typed, true
	default:
		return nil, false
	}
}

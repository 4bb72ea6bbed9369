package app

import (
	"strings"

	"firesafety-backend/internal/model"
)

// DefaultTitle is the placeholder every session starts with and the result
// whenever no valid history exists to derive something more specific.
const DefaultTitle = "Fire Safety Discussion"

// Responses carrying any of these markers are excluded from derivation.
var invalidTitleMarkers = []string{
	"trouble processing",
	"tools needed",
	"[B_INST]",
}

// Ordered keyword table; the first containment match wins.
var titleKeywords = []struct {
	keyword string
	title   string
}{
	{"electrical", "Electrical Fire Prevention"},
	{"extinguisher", "Fire Extinguisher Usage"},
	{"smoke", "Smoke Detection & Response"},
	{"evacuation", "Fire Evacuation Procedures"},
	{"prevention", "Fire Prevention Tips"},
	{"kitchen", "Kitchen Fire Safety"},
	{"cooking", "Cooking Fire Safety"},
	{"heater", "Space Heater Safety"},
	{"candle", "Candle Fire Safety"},
	{"escape", "Fire Escape Planning"},
	{"surge", "Surge Protector Safety"},
	{"wiring", "Electrical Wiring Safety"},
}

var genericFireKeywords = map[string]struct{}{
	"fire":         {},
	"safety":       {},
	"prevention":   {},
	"emergency":    {},
	"evacuation":   {},
	"extinguisher": {},
	"smoke":        {},
	"alarm":        {},
}

// DeriveTitle maps a session's first valid response to a short topic title.
// Pure and deterministic: identical histories always yield the same title,
// which keeps re-derivation idempotent.
func DeriveTitle(history []model.Message) string {
	first, ok := firstValidResponse(history)
	if !ok {
		return DefaultTitle
	}

	lowered := strings.ToLower(first)
	for _, entry := range titleKeywords {
		if strings.Contains(lowered, entry.keyword) {
			return entry.title
		}
	}

	for _, word := range strings.Split(lowered, " ") {
		if _, found := genericFireKeywords[word]; found {
			return strings.ToUpper(word[:1]) + word[1:] + " Safety"
		}
	}
	return DefaultTitle
}

func firstValidResponse(history []model.Message) (string, bool) {
	for _, msg := range history {
		if validForTitle(msg) {
			return msg.Response, true
		}
	}
	return "", false
}

func validForTitle(msg model.Message) bool {
	if strings.TrimSpace(msg.Response) == "" {
		return false
	}
	for _, marker := range invalidTitleMarkers {
		if strings.Contains(msg.Response, marker) {
			return false
		}
	}
	return true
}

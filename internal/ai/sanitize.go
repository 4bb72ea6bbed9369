package ai

import "strings"

// FallbackResponse stands in for any completion that fails or cleans down to
// nothing. History filtering treats its presence as an invalid exchange.
const FallbackResponse = "I apologize, but I'm having trouble processing your request right now. Please try again. If the problem persists, please rephrase your question about fire safety."

// Cleaned responses shorter than this are considered unusable.
const minResponseLength = 10

// Control markers that instruction-tuned models leak into their output.
var controlMarkers = []string{
	"<s>", "</s>",
	"[s]", "[/s]",
	"[INST]", "[/INST]",
	"[B_INST]", "[E_INST]",
	"<|im_start|>", "<|im_end|>", "<|endoftext|>",
}

// CleanResponse strips known control markers, trims surrounding whitespace and
// substitutes FallbackResponse when too little text survives. It never returns
// the empty string.
func CleanResponse(raw string) string {
	cleaned := raw
	for _, marker := range controlMarkers {
		cleaned = strings.ReplaceAll(cleaned, marker, "")
	}
	cleaned = strings.TrimSpace(cleaned)

	if len(cleaned) < minResponseLength {
		return FallbackResponse
	}
	return cleaned
}

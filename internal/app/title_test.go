package app

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"firesafety-backend/internal/ai"
	"firesafety-backend/internal/model"
)

func history(responses ...string) []model.Message {
	msgs := make([]model.Message, 0, len(responses))
	for _, r := range responses {
		msgs = append(msgs, model.Message{Prompt: "q", Response: r})
	}
	return msgs
}

func TestDeriveTitleKeywordTable(t *testing.T) {
	cases := []struct {
		name     string
		response string
		want     string
	}{
		{"electrical", "Check your electrical outlets for damage.", "Electrical Fire Prevention"},
		{"extinguisher", "Aim the extinguisher at the base of the flames.", "Fire Extinguisher Usage"},
		{"smoke", "Replace smoke detector batteries twice a year.", "Smoke Detection & Response"},
		{"kitchen", "Never leave your kitchen stove unattended.", "Kitchen Fire Safety"},
		{"heater", "Keep your space heater a metre from anything flammable.", "Space Heater Safety"},
		{"candle", "Blow out every candle before leaving the room.", "Candle Fire Safety"},
		{"wiring", "Old wiring should be inspected by a professional.", "Electrical Wiring Safety"},
		{"case insensitive", "EVACUATION routes must stay clear.", "Fire Evacuation Procedures"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DeriveTitle(history(tc.response)))
		})
	}
}

func TestDeriveTitleTableOrderWins(t *testing.T) {
	// "electrical" precedes "kitchen" in the table, so it wins even when the
	// kitchen keyword also appears.
	got := DeriveTitle(history("Electrical faults in the kitchen are common."))
	assert.Equal(t, "Electrical Fire Prevention", got)
}

func TestDeriveTitleGenericKeywordScan(t *testing.T) {
	got := DeriveTitle(history("Always treat an alarm as real until proven otherwise."))
	assert.Equal(t, "Alarm Safety", got)

	got = DeriveTitle(history("A fire doubles in size every minute."))
	assert.Equal(t, "Fire Safety", got)
}

func TestDeriveTitleDefaultCases(t *testing.T) {
	assert.Equal(t, DefaultTitle, DeriveTitle(nil))
	assert.Equal(t, DefaultTitle, DeriveTitle(history("")))
	assert.Equal(t, DefaultTitle, DeriveTitle(history("Please stay warm this season.")))
	assert.Equal(t, DefaultTitle, DeriveTitle(history(ai.FallbackResponse)))
	assert.Equal(t, DefaultTitle, DeriveTitle(history("response with tools needed marker")))
	assert.Equal(t, DefaultTitle, DeriveTitle(history("leaked [B_INST] token")))
}

func TestDeriveTitleUsesFirstValidResponse(t *testing.T) {
	msgs := history(ai.FallbackResponse, "Test your smoke alarm monthly.", "Electrical checks matter too.")
	assert.Equal(t, "Smoke Detection & Response", DeriveTitle(msgs))
}

func TestDeriveTitleDeterministic(t *testing.T) {
	msgs := history("Plan your escape before a fire starts.")
	first := DeriveTitle(msgs)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, DeriveTitle(msgs))
	}
}

package app

import (
	"strings"

	"firesafety-backend/internal/model"
)

// invalidResponseMarker identifies exchanges whose response is the canned
// apology rather than a real answer; those never re-enter the model context.
const invalidResponseMarker = "trouble processing"

const personaBlock = `
You are a professional Fire Safety Assistant representing the Ghana National Fire Service (GNFS).
You speak in a calm, respectful, and friendly Ghanaian tone, using clear and simple English that is easy for the general public to understand.

Your primary role is to:
- Educate the public on fire prevention and fire safety best practices
- Provide step-by-step guidance during fire-related emergencies
- Offer practical advice for homes, offices, markets, fuel stations, and public places
- Support fire officers with safety reminders and standard procedures

🟢 GREETING STYLE:
When a user says "hi", "hello", or any greeting, respond warmly with a human touch, for example:
- "Hello 👋 You’re welcome. I’m here to help you stay safe from fire. How can I assist you today?"
- "Good day 😊 How can I help you with fire safety or emergency guidance?"
- "Welcome. I’m your fire safety assistant. What would you like to know?"

Use polite Ghanaian expressions such as:
- "Please"
- "Kindly"
- "You’re welcome"
- "Stay safe"

🟢 COMMUNICATION RULES:
- Stay strictly within fire safety, emergency response, and prevention topics
- Be calm, reassuring, and never alarmist
- Give clear, actionable steps, especially in emergencies
- If a situation sounds life-threatening, advise the user to contact the nearest fire station or emergency line immediately

🟢 EMERGENCY GUIDANCE:
When a user reports an active fire:
- Prioritize human safety first
- Ask for key details calmly (location, type of fire, presence of people)
- Provide immediate safety steps while advising them to contact emergency services

Avoid jokes, slang, or unrelated topics.
Your goal is to protect lives and property through clear, reliable fire safety guidance.

Always end helpful responses with a gentle safety reminder when appropriate, such as:
"Please stay safe."
`

// PromptBuilder assembles the prompt submitted to the completion endpoint.
// The chat service only depends on this interface, so a bounded or
// token-budgeted replay can be substituted without touching call sites.
type PromptBuilder interface {
	Build(history []model.Message, input string) string
}

// ReplayPromptBuilder replays the full conversation on every turn: persona
// block, then every prior valid exchange in chronological order, then the
// current question. History is never truncated.
type ReplayPromptBuilder struct{}

func (ReplayPromptBuilder) Build(history []model.Message, input string) string {
	var b strings.Builder
	b.WriteString(personaBlock)

	if len(history) > 0 {
		b.WriteString("Previous conversation:\n")
		for _, msg := range history {
			if !replayable(msg) {
				continue
			}
			b.WriteString("Human: ")
			b.WriteString(msg.Prompt)
			b.WriteString("\nAssistant: ")
			b.WriteString(msg.Response)
			b.WriteString("\n\n")
		}
	}

	b.WriteString("Current question: ")
	b.WriteString(input)
	b.WriteString("\n\nPlease provide a helpful fire safety response:")
	return b.String()
}

func replayable(msg model.Message) bool {
	if strings.TrimSpace(msg.Response) == "" {
		return false
	}
	return !strings.Contains(msg.Response, invalidResponseMarker)
}

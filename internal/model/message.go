package model

import (
	"encoding/json"
	"time"
)

// Feedback is the requesting user's recorded reaction to a message.
// The wire format uses JSON null for the empty state.
type Feedback string

const (
	FeedbackNone    Feedback = ""
	FeedbackLike    Feedback = "like"
	FeedbackDislike Feedback = "dislike"
)

func (f Feedback) Valid() bool {
	return f == FeedbackLike || f == FeedbackDislike
}

func (f Feedback) MarshalJSON() ([]byte, error) {
	if f == FeedbackNone {
		return []byte("null"), nil
	}
	return json.Marshal(string(f))
}

func (f *Feedback) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = FeedbackNone
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*f = Feedback(s)
	return nil
}

type Message struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	SessionID    string    `gorm:"size:36;not null;index" json:"-"`
	Prompt       string    `gorm:"type:text;not null" json:"prompt"`
	Response     string    `gorm:"type:text;not null" json:"response"`
	Likes        int       `gorm:"not null;default:0" json:"likes"`
	Dislikes     int       `gorm:"not null;default:0" json:"dislikes"`
	UserFeedback Feedback  `gorm:"size:16;not null;default:''" json:"userFeedback"`
	CreatedAt    time.Time `gorm:"index" json:"timestamp"`
}

// ApplyFeedback mutates counts and state for one like/dislike action:
// repeating the current state toggles it off, the opposite action flips it,
// and from the empty state only the requested counter moves. Counts never go
// below zero. The MySQL repository issues the same transition as a single
// conditional UPDATE; this in-memory form exists for fakes and tests.
func (m *Message) ApplyFeedback(action Feedback) {
	switch {
	case m.UserFeedback == action:
		m.decrement(action)
		m.UserFeedback = FeedbackNone
	case m.UserFeedback == FeedbackNone:
		m.increment(action)
		m.UserFeedback = action
	default:
		m.decrement(m.UserFeedback)
		m.increment(action)
		m.UserFeedback = action
	}
}

func (m *Message) increment(f Feedback) {
	if f == FeedbackLike {
		m.Likes++
	} else if f == FeedbackDislike {
		m.Dislikes++
	}
}

func (m *Message) decrement(f Feedback) {
	if f == FeedbackLike && m.Likes > 0 {
		m.Likes--
	} else if f == FeedbackDislike && m.Dislikes > 0 {
		m.Dislikes--
	}
}

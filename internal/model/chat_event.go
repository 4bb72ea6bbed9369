package model

import "time"

const (
	EventSessionCreated  = "session_created"
	EventMessageAppended = "message_appended"
	EventMessageEdited   = "message_edited"
	EventRegenerated     = "response_regenerated"
	EventFeedback        = "feedback"
	EventTitleUpdated    = "title_updated"
)

// ChatEvent is an audit record of a chat mutation, persisted asynchronously
// off a queue so request latency never depends on the audit write.
type ChatEvent struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	SessionID string    `gorm:"size:36;not null;index" json:"session_id"`
	MessageID string    `gorm:"size:36;index" json:"message_id"`
	Kind      string    `gorm:"size:32;not null" json:"kind"`
	Detail    string    `gorm:"type:text" json:"detail"`
	CreatedAt time.Time `json:"created_at"`
}

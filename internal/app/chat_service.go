package app

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"firesafety-backend/internal/model"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrMessageNotFound = errors.New("message not found")
	ErrTextRequired    = errors.New("text is required")
	ErrUserIDRequired  = errors.New("user id is required")
	ErrPromptRequired  = errors.New("new prompt is required")
	ErrInvalidFeedback = errors.New("feedback action must be like or dislike")
)

// SessionStore and MessageStore are the persistence contracts the chat
// service needs; the gorm repositories satisfy them.
type SessionStore interface {
	Create(ctx context.Context, session *model.Session) error
	GetByID(ctx context.Context, sessionID string) (*model.Session, error)
	List(ctx context.Context, userID string) ([]model.Session, error)
	UpdateTitle(ctx context.Context, sessionID, title string) error
	Touch(ctx context.Context, sessionID, lastMessage string) error
}

type MessageStore interface {
	Create(ctx context.Context, message *model.Message) error
	UpdateResponse(ctx context.Context, sessionID, messageID, response string) error
	UpdatePromptAndResponse(ctx context.Context, sessionID, messageID, prompt, response string) error
	ApplyFeedback(ctx context.Context, sessionID, messageID string, action model.Feedback) (*model.Message, error)
}

// Completer produces a response for an assembled prompt. Implementations
// never fail: upstream errors are masked with fallback text.
type Completer interface {
	Complete(ctx context.Context, prompt string) string
}

// EventPublisher emits audit events for chat mutations. Publishing is
// best-effort; failures are logged and never surfaced to the caller.
type EventPublisher interface {
	Publish(ctx context.Context, event model.ChatEvent) error
}

type SessionCache interface {
	GetSession(ctx context.Context, sessionID string) (*model.Session, bool, error)
	SetSession(ctx context.Context, session *model.Session) error
	DeleteSession(ctx context.Context, sessionID string) error
	MarkDirty(ctx context.Context, sessionID string) error
	IsDirty(ctx context.Context, sessionID string) (bool, error)
}

type ChatService struct {
	sessions  SessionStore
	messages  MessageStore
	completer Completer
	prompts   PromptBuilder
	publisher EventPublisher
	cache     SessionCache
	log       *zap.Logger
}

func NewChatService(
	sessions SessionStore,
	messages MessageStore,
	completer Completer,
	prompts PromptBuilder,
	publisher EventPublisher,
	cache SessionCache,
	log *zap.Logger,
) *ChatService {
	if prompts == nil {
		prompts = ReplayPromptBuilder{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &ChatService{
		sessions:  sessions,
		messages:  messages,
		completer: completer,
		prompts:   prompts,
		publisher: publisher,
		cache:     cache,
		log:       log,
	}
}

// CreateSession opens a new session for the user's first question. The first
// message is answered against an empty history and the title stays at the
// placeholder until regeneration is requested.
func (s *ChatService) CreateSession(ctx context.Context, userID, text string) (*model.Session, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrTextRequired
	}
	if strings.TrimSpace(userID) == "" {
		return nil, ErrUserIDRequired
	}

	response := s.completer.Complete(ctx, s.prompts.Build(nil, text))

	session := &model.Session{
		ID:          uuid.NewString(),
		UserID:      strings.TrimSpace(userID),
		Title:       DefaultTitle,
		LastMessage: response,
		Messages: []model.Message{{
			ID:        uuid.NewString(),
			Prompt:    text,
			Response:  response,
			CreatedAt: time.Now(),
		}},
	}
	session.Messages[0].SessionID = session.ID

	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}

	s.audit(ctx, model.EventSessionCreated, session.ID, session.Messages[0].ID, text)
	return session, nil
}

// AddMessage appends one exchange to an existing session: the reply is built
// from the full prior history, then the session's activity timestamp and
// preview move forward.
func (s *ChatService) AddMessage(ctx context.Context, sessionID, text string) (*model.Message, *model.Session, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil, ErrTextRequired
	}

	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	if session == nil {
		return nil, nil, ErrSessionNotFound
	}

	response := s.completer.Complete(ctx, s.prompts.Build(session.Messages, text))

	message := &model.Message{
		ID:        uuid.NewString(),
		SessionID: session.ID,
		Prompt:    text,
		Response:  response,
		CreatedAt: time.Now(),
	}
	if err := s.messages.Create(ctx, message); err != nil {
		return nil, nil, err
	}
	if err := s.sessions.Touch(ctx, session.ID, response); err != nil {
		return nil, nil, err
	}

	s.invalidate(ctx, session.ID)
	s.audit(ctx, model.EventMessageAppended, session.ID, message.ID, text)

	updated, err := s.sessions.GetByID(ctx, session.ID)
	if err != nil {
		return nil, nil, err
	}
	return message, updated, nil
}

func (s *ChatService) ListSessions(ctx context.Context, userID string) ([]model.Session, error) {
	return s.sessions.List(ctx, strings.TrimSpace(userID))
}

// GetSession reads through the cache when it is clean, refilling it on miss.
func (s *ChatService) GetSession(ctx context.Context, sessionID string) (*model.Session, error) {
	if s.cache != nil {
		if dirty, err := s.cache.IsDirty(ctx, sessionID); err == nil && !dirty {
			if cached, hit, cacheErr := s.cache.GetSession(ctx, sessionID); cacheErr == nil && hit {
				return cached, nil
			}
		}
	}

	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	if s.cache != nil {
		if dirty, err := s.cache.IsDirty(ctx, sessionID); err == nil && !dirty {
			_ = s.cache.SetSession(ctx, session)
		}
	}
	return session, nil
}

// RegenerateMessage re-answers the existing prompt of one message against the
// current full history and swaps the response in place. Prompt and creation
// timestamp are untouched.
//
// TODO: the history handed to the prompt builder still contains the target
// message's own stale response; decide with product whether it should be
// excluded before regeneration.
func (s *ChatService) RegenerateMessage(ctx context.Context, sessionID, messageID string) (*model.Message, *model.Session, error) {
	session, target, err := s.findMessage(ctx, sessionID, messageID)
	if err != nil {
		return nil, nil, err
	}

	response := s.completer.Complete(ctx, s.prompts.Build(session.Messages, target.Prompt))
	if err := s.messages.UpdateResponse(ctx, sessionID, target.ID, response); err != nil {
		return nil, nil, err
	}
	if latestMessage(session) == target.ID {
		if err := s.sessions.Touch(ctx, sessionID, response); err != nil {
			return nil, nil, err
		}
	}

	s.invalidate(ctx, sessionID)
	s.audit(ctx, model.EventRegenerated, sessionID, target.ID, target.Prompt)

	updated, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	target.Response = response
	return target, updated, nil
}

// UpdatePrompt replaces a message's prompt and regenerates its response the
// same way RegenerateMessage does, with the new prompt already in place.
func (s *ChatService) UpdatePrompt(ctx context.Context, sessionID, messageID, newPrompt string) error {
	newPrompt = strings.TrimSpace(newPrompt)
	if newPrompt == "" {
		return ErrPromptRequired
	}

	session, target, err := s.findMessage(ctx, sessionID, messageID)
	if err != nil {
		return err
	}

	for i := range session.Messages {
		if session.Messages[i].ID == target.ID {
			session.Messages[i].Prompt = newPrompt
		}
	}
	response := s.completer.Complete(ctx, s.prompts.Build(session.Messages, newPrompt))
	if err := s.messages.UpdatePromptAndResponse(ctx, sessionID, target.ID, newPrompt, response); err != nil {
		return err
	}
	if latestMessage(session) == target.ID {
		if err := s.sessions.Touch(ctx, sessionID, response); err != nil {
			return err
		}
	}

	s.invalidate(ctx, sessionID)
	s.audit(ctx, model.EventMessageEdited, sessionID, target.ID, newPrompt)
	return nil
}

// ApplyFeedback records a like/dislike with toggle semantics. The counter and
// state transition happens in a single conditional UPDATE at the store, so
// concurrent actions cannot double-count.
func (s *ChatService) ApplyFeedback(ctx context.Context, sessionID, messageID string, action model.Feedback) (*model.Message, error) {
	if !action.Valid() {
		return nil, ErrInvalidFeedback
	}

	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	message, err := s.messages.ApplyFeedback(ctx, sessionID, messageID, action)
	if err != nil {
		return nil, err
	}
	if message == nil {
		return nil, ErrMessageNotFound
	}

	s.invalidate(ctx, sessionID)
	s.audit(ctx, model.EventFeedback, sessionID, messageID, string(action))
	return message, nil
}

// RegenerateTitle derives a topic title from the session's history and
// persists it. Re-running over unchanged history yields the same title.
func (s *ChatService) RegenerateTitle(ctx context.Context, sessionID string) (string, error) {
	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return "", err
	}
	if session == nil {
		return "", ErrSessionNotFound
	}

	title := DeriveTitle(session.Messages)
	if err := s.sessions.UpdateTitle(ctx, sessionID, title); err != nil {
		return "", err
	}

	s.invalidate(ctx, sessionID)
	s.audit(ctx, model.EventTitleUpdated, sessionID, "", title)
	return title, nil
}

func (s *ChatService) findMessage(ctx context.Context, sessionID, messageID string) (*model.Session, *model.Message, error) {
	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	if session == nil {
		return nil, nil, ErrSessionNotFound
	}
	for i := range session.Messages {
		if session.Messages[i].ID == messageID {
			return session, &session.Messages[i], nil
		}
	}
	return nil, nil, ErrMessageNotFound
}

func latestMessage(session *model.Session) string {
	if len(session.Messages) == 0 {
		return ""
	}
	return session.Messages[len(session.Messages)-1].ID
}

func (s *ChatService) invalidate(ctx context.Context, sessionID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.MarkDirty(ctx, sessionID); err != nil {
		s.log.Warn("mark session dirty failed", zap.String("session_id", sessionID), zap.Error(err))
	}
	if err := s.cache.DeleteSession(ctx, sessionID); err != nil {
		s.log.Warn("drop cached session failed", zap.String("session_id", sessionID), zap.Error(err))
	}
}

func (s *ChatService) audit(ctx context.Context, kind, sessionID, messageID, detail string) {
	if s.publisher == nil {
		return
	}
	event := model.ChatEvent{
		SessionID: sessionID,
		MessageID: messageID,
		Kind:      kind,
		Detail:    detail,
		CreatedAt: time.Now(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.log.Warn("publish chat event failed",
			zap.String("kind", kind),
			zap.String("session_id", sessionID),
			zap.Error(err))
	}
}

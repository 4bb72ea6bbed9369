package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"firesafety-backend/internal/model"
)

type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(ctx context.Context, session *model.Session) error {
	if err := r.db.WithContext(ctx).Create(session).Error; err != nil {
		return fmt.Errorf("create session failed: %w", err)
	}
	return nil
}

// GetByID loads a session with its messages in chronological order; returns
// nil without error when the session does not exist.
func (r *SessionRepository) GetByID(ctx context.Context, sessionID string) (*model.Session, error) {
	var session model.Session
	err := r.db.WithContext(ctx).
		Preload("Messages", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("created_at ASC")
		}).
		Where("id = ?", sessionID).
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get session failed: %w", err)
	}
	return &session, nil
}

// List returns sessions most-recently-active first; an empty userID lists all.
func (r *SessionRepository) List(ctx context.Context, userID string) ([]model.Session, error) {
	query := r.db.WithContext(ctx).
		Preload("Messages", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("created_at ASC")
		}).
		Order("updated_at DESC")
	if userID != "" {
		query = query.Where("user_id = ?", userID)
	}

	var sessions []model.Session
	if err := query.Find(&sessions).Error; err != nil {
		return nil, fmt.Errorf("list sessions failed: %w", err)
	}
	return sessions, nil
}

func (r *SessionRepository) UpdateTitle(ctx context.Context, sessionID, title string) error {
	err := r.db.WithContext(ctx).
		Model(&model.Session{}).
		Where("id = ?", sessionID).
		Update("title", title).Error
	if err != nil {
		return fmt.Errorf("update session title failed: %w", err)
	}
	return nil
}

// Touch records new activity: the preview follows the latest response and
// gorm bumps updated_at.
func (r *SessionRepository) Touch(ctx context.Context, sessionID, lastMessage string) error {
	err := r.db.WithContext(ctx).
		Model(&model.Session{}).
		Where("id = ?", sessionID).
		Update("last_message", lastMessage).Error
	if err != nil {
		return fmt.Errorf("touch session failed: %w", err)
	}
	return nil
}

package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"firesafety-backend/internal/model"
)

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(ctx context.Context, message *model.Message) error {
	if err := r.db.WithContext(ctx).Create(message).Error; err != nil {
		return fmt.Errorf("create message failed: %w", err)
	}
	return nil
}

func (r *MessageRepository) GetByID(ctx context.Context, sessionID, messageID string) (*model.Message, error) {
	var message model.Message
	err := r.db.WithContext(ctx).
		Where("id = ? AND session_id = ?", messageID, sessionID).
		First(&message).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get message failed: %w", err)
	}
	return &message, nil
}

func (r *MessageRepository) UpdateResponse(ctx context.Context, sessionID, messageID, response string) error {
	err := r.db.WithContext(ctx).
		Model(&model.Message{}).
		Where("id = ? AND session_id = ?", messageID, sessionID).
		Update("response", response).Error
	if err != nil {
		return fmt.Errorf("update message response failed: %w", err)
	}
	return nil
}

func (r *MessageRepository) UpdatePromptAndResponse(ctx context.Context, sessionID, messageID, prompt, response string) error {
	err := r.db.WithContext(ctx).
		Model(&model.Message{}).
		Where("id = ? AND session_id = ?", messageID, sessionID).
		Updates(map[string]interface{}{
			"prompt":   prompt,
			"response": response,
		}).Error
	if err != nil {
		return fmt.Errorf("update message prompt failed: %w", err)
	}
	return nil
}

// ApplyFeedback performs the like/dislike transition as one conditional
// UPDATE so concurrent actions on the same message cannot double-count.
// MySQL evaluates SET clauses left to right; gorm orders map keys
// alphabetically, so both counters read the pre-update user_feedback before
// it is rewritten. Returns nil when the message does not exist.
func (r *MessageRepository) ApplyFeedback(ctx context.Context, sessionID, messageID string, action model.Feedback) (*model.Message, error) {
	act := string(action)
	res := r.db.WithContext(ctx).
		Model(&model.Message{}).
		Where("id = ? AND session_id = ?", messageID, sessionID).
		Updates(map[string]interface{}{
			"dislikes": gorm.Expr(
				"CASE WHEN user_feedback = 'dislike' THEN GREATEST(dislikes - 1, 0) WHEN ? = 'dislike' THEN dislikes + 1 ELSE dislikes END", act),
			"likes": gorm.Expr(
				"CASE WHEN user_feedback = 'like' THEN GREATEST(likes - 1, 0) WHEN ? = 'like' THEN likes + 1 ELSE likes END", act),
			"user_feedback": gorm.Expr(
				"CASE WHEN user_feedback = ? THEN '' ELSE ? END", act, act),
		})
	if res.Error != nil {
		return nil, fmt.Errorf("apply message feedback failed: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return r.GetByID(ctx, sessionID, messageID)
}

package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"firesafety-backend/internal/model"
)

type ChatEventRepository struct {
	db *gorm.DB
}

func NewChatEventRepository(db *gorm.DB) *ChatEventRepository {
	return &ChatEventRepository{db: db}
}

func (r *ChatEventRepository) Create(ctx context.Context, event *model.ChatEvent) error {
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return fmt.Errorf("create chat event failed: %w", err)
	}
	return nil
}

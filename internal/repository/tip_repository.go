package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"firesafety-backend/internal/model"
)

type TipRepository struct {
	db *gorm.DB
}

func NewTipRepository(db *gorm.DB) *TipRepository {
	return &TipRepository{db: db}
}

func (r *TipRepository) Create(ctx context.Context, tip *model.SafetyTip) error {
	if err := r.db.WithContext(ctx).Create(tip).Error; err != nil {
		return fmt.Errorf("create safety tip failed: %w", err)
	}
	return nil
}

func (r *TipRepository) List(ctx context.Context) ([]model.SafetyTip, error) {
	var tips []model.SafetyTip
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&tips).Error; err != nil {
		return nil, fmt.Errorf("list safety tips failed: %w", err)
	}
	return tips, nil
}

func (r *TipRepository) GetByID(ctx context.Context, id string) (*model.SafetyTip, error) {
	var tip model.SafetyTip
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&tip).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get safety tip failed: %w", err)
	}
	return &tip, nil
}

func (r *TipRepository) Update(ctx context.Context, id, title, content string) (*model.SafetyTip, error) {
	res := r.db.WithContext(ctx).
		Model(&model.SafetyTip{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"title":   title,
			"content": content,
		})
	if res.Error != nil {
		return nil, fmt.Errorf("update safety tip failed: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		// distinguish missing row from unchanged content
		existing, err := r.GetByID(ctx, id)
		if err != nil || existing == nil {
			return nil, err
		}
		return existing, nil
	}
	return r.GetByID(ctx, id)
}

func (r *TipRepository) Delete(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.SafetyTip{})
	if res.Error != nil {
		return false, fmt.Errorf("delete safety tip failed: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

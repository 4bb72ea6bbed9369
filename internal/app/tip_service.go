package app

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"firesafety-backend/internal/model"
)

var (
	ErrTipNotFound     = errors.New("fire safety tip not found")
	ErrTitleRequired   = errors.New("title is required")
	ErrTitleTooLong    = errors.New("title cannot exceed 200 characters")
	ErrContentRequired = errors.New("content is required")
)

type TipStore interface {
	Create(ctx context.Context, tip *model.SafetyTip) error
	List(ctx context.Context) ([]model.SafetyTip, error)
	GetByID(ctx context.Context, id string) (*model.SafetyTip, error)
	Update(ctx context.Context, id, title, content string) (*model.SafetyTip, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type TipService struct {
	tips TipStore
}

func NewTipService(tips TipStore) *TipService {
	return &TipService{tips: tips}
}

func (s *TipService) Create(ctx context.Context, title, content string) (*model.SafetyTip, error) {
	title, content, err := validateTip(title, content)
	if err != nil {
		return nil, err
	}

	tip := &model.SafetyTip{
		ID:      uuid.NewString(),
		Title:   title,
		Content: content,
	}
	if err := s.tips.Create(ctx, tip); err != nil {
		return nil, err
	}
	return tip, nil
}

func (s *TipService) List(ctx context.Context) ([]model.SafetyTip, error) {
	return s.tips.List(ctx)
}

func (s *TipService) Get(ctx context.Context, id string) (*model.SafetyTip, error) {
	tip, err := s.tips.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tip == nil {
		return nil, ErrTipNotFound
	}
	return tip, nil
}

func (s *TipService) Update(ctx context.Context, id, title, content string) (*model.SafetyTip, error) {
	title, content, err := validateTip(title, content)
	if err != nil {
		return nil, err
	}

	tip, err := s.tips.Update(ctx, id, title, content)
	if err != nil {
		return nil, err
	}
	if tip == nil {
		return nil, ErrTipNotFound
	}
	return tip, nil
}

func (s *TipService) Delete(ctx context.Context, id string) error {
	deleted, err := s.tips.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrTipNotFound
	}
	return nil
}

func validateTip(title, content string) (string, string, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if title == "" {
		return "", "", ErrTitleRequired
	}
	if len(title) > 200 {
		return "", "", ErrTitleTooLong
	}
	if content == "" {
		return "", "", ErrContentRequired
	}
	return title, content, nil
}

package app

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"firesafety-backend/internal/model"
)

type fakeTipStore struct {
	tips map[string]*model.SafetyTip
}

func newFakeTipStore() *fakeTipStore {
	return &fakeTipStore{tips: map[string]*model.SafetyTip{}}
}

func (s *fakeTipStore) Create(_ context.Context, tip *model.SafetyTip) error {
	cp := *tip
	s.tips[tip.ID] = &cp
	return nil
}

func (s *fakeTipStore) List(_ context.Context) ([]model.SafetyTip, error) {
	out := make([]model.SafetyTip, 0, len(s.tips))
	for _, tip := range s.tips {
		out = append(out, *tip)
	}
	return out, nil
}

func (s *fakeTipStore) GetByID(_ context.Context, id string) (*model.SafetyTip, error) {
	if tip, ok := s.tips[id]; ok {
		cp := *tip
		return &cp, nil
	}
	return nil, nil
}

func (s *fakeTipStore) Update(_ context.Context, id, title, content string) (*model.SafetyTip, error) {
	tip, ok := s.tips[id]
	if !ok {
		return nil, nil
	}
	tip.Title = title
	tip.Content = content
	cp := *tip
	return &cp, nil
}

func (s *fakeTipStore) Delete(_ context.Context, id string) (bool, error) {
	if _, ok := s.tips[id]; !ok {
		return false, nil
	}
	delete(s.tips, id)
	return true, nil
}

func TestTipCreateAndGet(t *testing.T) {
	svc := NewTipService(newFakeTipStore())

	tip, err := svc.Create(context.Background(), "  Smoke Alarms  ", " Test them monthly. ")
	require.NoError(t, err)
	assert.NotEmpty(t, tip.ID)
	assert.Equal(t, "Smoke Alarms", tip.Title)
	assert.Equal(t, "Test them monthly.", tip.Content)

	got, err := svc.Get(context.Background(), tip.ID)
	require.NoError(t, err)
	assert.Equal(t, tip.Title, got.Title)

	_, err = svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrTipNotFound)
}

func TestTipValidation(t *testing.T) {
	svc := NewTipService(newFakeTipStore())

	_, err := svc.Create(context.Background(), "", "content")
	assert.ErrorIs(t, err, ErrTitleRequired)

	_, err = svc.Create(context.Background(), strings.Repeat("x", 201), "content")
	assert.ErrorIs(t, err, ErrTitleTooLong)

	_, err = svc.Create(context.Background(), "title", "   ")
	assert.ErrorIs(t, err, ErrContentRequired)

	// 200 characters is still accepted.
	_, err = svc.Create(context.Background(), strings.Repeat("x", 200), "content")
	assert.NoError(t, err)
}

func TestTipUpdate(t *testing.T) {
	svc := NewTipService(newFakeTipStore())
	tip, err := svc.Create(context.Background(), "Old title", "Old content")
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), tip.ID, "New title", "New content")
	require.NoError(t, err)
	assert.Equal(t, "New title", updated.Title)
	assert.Equal(t, "New content", updated.Content)

	_, err = svc.Update(context.Background(), "missing", "t", "c")
	assert.ErrorIs(t, err, ErrTipNotFound)
}

func TestTipDelete(t *testing.T) {
	svc := NewTipService(newFakeTipStore())
	tip, err := svc.Create(context.Background(), "Title", "Content")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), tip.ID))
	assert.ErrorIs(t, svc.Delete(context.Background(), tip.ID), ErrTipNotFound)
}

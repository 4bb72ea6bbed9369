package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyFeedbackTransitions(t *testing.T) {
	cases := []struct {
		name         string
		start        Message
		action       Feedback
		wantLikes    int
		wantDislikes int
		wantState    Feedback
	}{
		{"none to like", Message{}, FeedbackLike, 1, 0, FeedbackLike},
		{"none to dislike", Message{}, FeedbackDislike, 0, 1, FeedbackDislike},
		{"like toggles off", Message{Likes: 1, UserFeedback: FeedbackLike}, FeedbackLike, 0, 0, FeedbackNone},
		{"dislike toggles off", Message{Dislikes: 1, UserFeedback: FeedbackDislike}, FeedbackDislike, 0, 0, FeedbackNone},
		{"like flips to dislike", Message{Likes: 1, UserFeedback: FeedbackLike}, FeedbackDislike, 0, 1, FeedbackDislike},
		{"dislike flips to like", Message{Dislikes: 1, UserFeedback: FeedbackDislike}, FeedbackLike, 1, 0, FeedbackLike},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			msg := tc.start
			msg.ApplyFeedback(tc.action)
			assert.Equal(t, tc.wantLikes, msg.Likes)
			assert.Equal(t, tc.wantDislikes, msg.Dislikes)
			assert.Equal(t, tc.wantState, msg.UserFeedback)
		})
	}
}

func TestApplyFeedbackToggleRoundTrip(t *testing.T) {
	var msg Message
	msg.ApplyFeedback(FeedbackLike)
	msg.ApplyFeedback(FeedbackLike)
	assert.Equal(t, 0, msg.Likes)
	assert.Equal(t, 0, msg.Dislikes)
	assert.Equal(t, FeedbackNone, msg.UserFeedback)
}

func TestApplyFeedbackCountsNeverNegative(t *testing.T) {
	// Inconsistent start state: marked liked but counter already at zero.
	msg := Message{UserFeedback: FeedbackLike}
	msg.ApplyFeedback(FeedbackLike)
	assert.Equal(t, 0, msg.Likes)

	msg = Message{UserFeedback: FeedbackDislike}
	msg.ApplyFeedback(FeedbackLike)
	assert.Equal(t, 0, msg.Dislikes)
	assert.Equal(t, 1, msg.Likes)
}

func TestFeedbackValid(t *testing.T) {
	assert.True(t, FeedbackLike.Valid())
	assert.True(t, FeedbackDislike.Valid())
	assert.False(t, FeedbackNone.Valid())
	assert.False(t, Feedback("maybe").Valid())
}

func TestFeedbackJSONNullForEmpty(t *testing.T) {
	raw, err := json.Marshal(Message{ID: "m1"})
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "null", string(decoded["userFeedback"]))

	raw, err = json.Marshal(Message{ID: "m1", UserFeedback: FeedbackLike})
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, `"like"`, string(decoded["userFeedback"]))
}

func TestFeedbackUnmarshalNull(t *testing.T) {
	var f Feedback
	require.NoError(t, json.Unmarshal([]byte("null"), &f))
	assert.Equal(t, FeedbackNone, f)

	require.NoError(t, json.Unmarshal([]byte(`"dislike"`), &f))
	assert.Equal(t, FeedbackDislike, f)
}

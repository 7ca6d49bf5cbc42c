package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/quizzical-bot/internal/domain/entities"
)

func TestSessionStorageRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewSessionStorage()

	_, err := s.Get(ctx, 1)
	require.ErrorIs(t, err, entities.ErrSessionNotFound)

	session := entities.NewQuizSession(1, 2)
	require.NoError(t, session.Begin("tok"))
	require.NoError(t, session.Populate("tok", []entities.Question{{
		Prompt:        "q",
		Answers:       []string{"a", "b"},
		CorrectAnswer: "a",
	}}))
	require.NoError(t, s.Save(ctx, session))

	got, err := s.Get(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, session, got)

	require.NoError(t, s.Delete(ctx, 1))
	_, err = s.Get(ctx, 1)
	require.ErrorIs(t, err, entities.ErrSessionNotFound)
}

func TestSessionStorageCopies(t *testing.T) {
	ctx := context.Background()
	s := NewSessionStorage()

	session := entities.NewQuizSession(1, 2)
	require.NoError(t, session.Begin("tok"))
	require.NoError(t, session.Populate("tok", []entities.Question{{
		Answers:       []string{"a", "b"},
		CorrectAnswer: "a",
	}}))
	require.NoError(t, s.Save(ctx, session))

	got, err := s.Get(ctx, 1)
	require.NoError(t, err)
	require.NoError(t, got.SelectAnswer(0, "b"))
	got.Questions[0].Answers[0] = "changed"

	again, err := s.Get(ctx, 1)
	require.NoError(t, err)
	require.False(t, again.Questions[0].Answered)
	require.Equal(t, []string{"a", "b"}, again.Questions[0].Answers)
}

func TestSessionStorageDeleteIdle(t *testing.T) {
	ctx := context.Background()
	s := NewSessionStorage()

	old := entities.NewQuizSession(1, 1)
	old.UpdatedAt = time.Now().Add(-2 * time.Hour)
	fresh := entities.NewQuizSession(2, 2)

	require.NoError(t, s.Save(ctx, old))
	require.NoError(t, s.Save(ctx, fresh))

	n, err := s.DeleteIdle(ctx, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Equal(t, 1, s.Len())

	_, err = s.Get(ctx, 2)
	require.NoError(t, err)
}

func TestMessageStorage(t *testing.T) {
	s := NewMessageStorage()

	_, ok := s.Get(1)
	require.False(t, ok)

	s.Store(1, QuizMessages{Questions: []int{10, 11}, Control: 12})
	m, ok := s.Get(1)
	require.True(t, ok)
	require.Equal(t, []int{10, 11}, m.Questions)
	require.Equal(t, 12, m.Control)

	s.Delete(1)
	_, ok = s.Get(1)
	require.False(t, ok)
}

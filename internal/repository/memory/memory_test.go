package memory

import (
	"context"
	"testing"
	"time"

	"study-assistant-be/internal/entity"
	"study-assistant-be/pkg/exam"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenBlocklist(t *testing.T) {
	ctx := context.Background()
	bl := NewTokenBlocklist()

	revoked, err := bl.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, bl.Revoke(ctx, "jti-1", time.Minute))
	revoked, _ = bl.IsRevoked(ctx, "jti-1")
	assert.True(t, revoked)

	require.NoError(t, bl.Revoke(ctx, "jti-expired", 0))
	revoked, _ = bl.IsRevoked(ctx, "jti-expired")
	assert.False(t, revoked)
}

func TestAttemptRepository(t *testing.T) {
	repo := NewAttemptRepository(time.Minute)
	userID := uuid.New()

	a, err := exam.NewAttempt(userID, &entity.Exam{
		Id:        uuid.New(),
		Questions: []entity.Question{{Type: entity.QuestionTypeShort, Question: "q"}},
	})
	require.NoError(t, err)

	repo.Save(a)

	got, ok := repo.Get(userID, a.Exam.Id)
	require.True(t, ok)
	assert.Same(t, a, got)

	_, ok = repo.Get(uuid.New(), a.Exam.Id)
	assert.False(t, ok, "attempts are per user")

	repo.Delete(userID, a.Exam.Id)
	_, ok = repo.Get(userID, a.Exam.Id)
	assert.False(t, ok)
}

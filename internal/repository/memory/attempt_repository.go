package memory

import (
	"time"

	"study-assistant-be/pkg/exam"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// AttemptRepository keeps in-progress exam attempts. Nothing here survives a
// restart and entries expire, which matches the no-resume behavior.
type AttemptRepository struct {
	cache *cache.Cache
}

func NewAttemptRepository(ttl time.Duration) *AttemptRepository {
	return &AttemptRepository{
		cache: cache.New(ttl, 10*time.Minute),
	}
}

func attemptKey(userID, examID uuid.UUID) string {
	return userID.String() + ":" + examID.String()
}

func (r *AttemptRepository) Save(attempt *exam.Attempt) {
	r.cache.Set(attemptKey(attempt.UserID, attempt.Exam.Id), attempt, cache.DefaultExpiration)
}

func (r *AttemptRepository) Get(userID, examID uuid.UUID) (*exam.Attempt, bool) {
	if x, found := r.cache.Get(attemptKey(userID, examID)); found {
		return x.(*exam.Attempt), true
	}
	return nil, false
}

func (r *AttemptRepository) Delete(userID, examID uuid.UUID) {
	r.cache.Delete(attemptKey(userID, examID))
}

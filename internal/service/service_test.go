package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"study-assistant-be/internal/model"
	"study-assistant-be/internal/pkg/apperror"
	"study-assistant-be/internal/repository/unitofwork"
	"study-assistant-be/pkg/database"
	"study-assistant-be/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFactory(t *testing.T) unitofwork.RepositoryFactory {
	t.Helper()
	db, err := database.NewSQLiteMemory()
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(model.All()...))
	return unitofwork.NewRepositoryFactory(db)
}

func assertCode(t *testing.T, err error, code apperror.Code) {
	t.Helper()
	var appErr *apperror.Error
	require.True(t, errors.As(err, &appErr), "expected app error, got %v", err)
	assert.Equal(t, code, appErr.Code)
}

type changeRecorder struct {
	mu      sync.Mutex
	changes []CollectionChangedMessage
}

func (r *changeRecorder) CollectionChanged(ctx context.Context, userId uuid.UUID, collections ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.changes = append(r.changes, CollectionChangedMessage{UserId: userId, Collections: collections})
}

func (r *changeRecorder) collections() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, c := range r.changes {
		out = append(out, c.Collections...)
	}
	return out
}

type eventRecorder struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (r *eventRecorder) Publish(ctx context.Context, event events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return r.err
}

func (r *eventRecorder) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, e := range r.events {
		out = append(out, e.EventType())
	}
	return out
}

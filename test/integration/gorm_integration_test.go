package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"study-assistant-be/internal/entity"
	"study-assistant-be/internal/model"
	"study-assistant-be/internal/repository/specification"
	"study-assistant-be/internal/repository/unitofwork"
	"study-assistant-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}
	driver := os.Getenv("DB_DRIVER")

	gormDB, err := database.NewGormDBFromDSN(driver, dsn)
	require.NoError(t, err)
	require.NoError(t, gormDB.AutoMigrate(model.All()...))

	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	assert.NoError(t, sqlDB.Ping())

	ctx := context.Background()
	uow := unitofwork.NewRepositoryFactory(gormDB).NewUnitOfWork(ctx)

	t.Run("Check User Repository", func(t *testing.T) {
		count, err := uow.UserRepository().Count(ctx)
		assert.NoError(t, err)
		t.Logf("User count: %d", count)
	})

	t.Run("Session round trip", func(t *testing.T) {
		userId := uuid.New()
		session := &entity.StudySession{
			Id:     uuid.New(),
			UserId: userId,
			Title:  "Integration",
			Type:   entity.SessionTypeStudy,
			Messages: []entity.Message{
				{Sender: entity.SenderUser, Content: "hello", Timestamp: time.Now()},
			},
			SessionNotes: []entity.SessionNote{{Title: "Note", Content: "body", CreatedAt: time.Now()}},
			CreatedAt:    time.Now(),
		}
		require.NoError(t, uow.StudySessionRepository().Create(ctx, session))
		t.Cleanup(func() { _ = uow.StudySessionRepository().Delete(ctx, session.Id) })

		found, err := uow.StudySessionRepository().FindOne(ctx, specification.ByID{ID: session.Id}, specification.UserOwnedBy{UserID: userId})
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Len(t, found.Messages, 1)
		assert.Len(t, found.SessionNotes, 1)
	})
}

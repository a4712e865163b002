package contract

import (
	"context"

	"study-assistant-be/internal/entity"
	"study-assistant-be/internal/repository/specification"

	"github.com/google/uuid"
)

type StudySessionRepository interface {
	Create(ctx context.Context, session *entity.StudySession) error
	Update(ctx context.Context, session *entity.StudySession) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.StudySession, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.StudySession, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

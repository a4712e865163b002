package contract

import (
	"context"

	"study-assistant-be/internal/entity"
	"study-assistant-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ExamRepository interface {
	Create(ctx context.Context, exam *entity.Exam) error
	Update(ctx context.Context, exam *entity.Exam) error
	Complete(ctx context.Context, exam *entity.Exam) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Exam, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Exam, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

package implementation

import (
	"context"
	"errors"

	"study-assistant-be/internal/entity"
	"study-assistant-be/internal/mapper"
	"study-assistant-be/internal/model"
	"study-assistant-be/internal/repository/contract"
	"study-assistant-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ExamRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ExamMapper
}

func NewExamRepository(db *gorm.DB) contract.ExamRepository {
	return &ExamRepositoryImpl{
		db:     db,
		mapper: mapper.NewExamMapper(),
	}
}

func (r *ExamRepositoryImpl) Create(ctx context.Context, exam *entity.Exam) error {
	if exam.Id == uuid.Nil {
		exam.Id = uuid.New()
	}
	m := r.mapper.ToModel(exam)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*exam = *r.mapper.ToEntity(m)
	return nil
}

func (r *ExamRepositoryImpl) Update(ctx context.Context, exam *entity.Exam) error {
	m := r.mapper.ToModel(exam)
	result := r.db.WithContext(ctx).Model(m).Where("user_id = ?", m.UserId).Select("*").Omit("created_at").Updates(m)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return contract.ErrNotFound
	}
	*exam = *r.mapper.ToEntity(m)
	return nil
}

// Complete writes the outcome of an attempt and nothing else. Only an open
// exam of the owner is touched, so the outcome is stored once.
func (r *ExamRepositoryImpl) Complete(ctx context.Context, exam *entity.Exam) error {
	result := r.db.WithContext(ctx).Model(&model.Exam{}).
		Where("id = ? AND user_id = ? AND completed = ?", exam.Id, exam.UserId, false).
		Updates(map[string]interface{}{
			"completed":       true,
			"score":           exam.Score,
			"total_questions": exam.TotalQuestions,
			"user_answers":    datatypes.JSONSlice[entity.AnswerRecord](exam.UserAnswers),
			"completed_at":    exam.CompletedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Exam{}).
		Where("id = ? AND user_id = ?", exam.Id, exam.UserId).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return contract.ErrNotFound
	}
	return contract.ErrAlreadyCompleted
}

func (r *ExamRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Exam{}, "id = ?", id).Error
}

func (r *ExamRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Exam, error) {
	var m model.Exam
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ExamRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Exam, error) {
	var models []*model.Exam
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ExamRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.Exam{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

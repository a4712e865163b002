package mapper

import (
	"study-assistant-be/internal/entity"
	"study-assistant-be/internal/model"

	"gorm.io/datatypes"
)

type ExamMapper struct{}

func NewExamMapper() *ExamMapper {
	return &ExamMapper{}
}

func (m *ExamMapper) ToEntity(e *model.Exam) *entity.Exam {
	if e == nil {
		return nil
	}
	updatedAt := e.UpdatedAt
	return &entity.Exam{
		Id:             e.Id,
		UserId:         e.UserId,
		Title:          e.Title,
		Questions:      []entity.Question(e.Questions),
		Completed:      e.Completed,
		Score:          e.Score,
		TotalQuestions: e.TotalQuestions,
		UserAnswers:    []entity.AnswerRecord(e.UserAnswers),
		CompletedAt:    e.CompletedAt,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      &updatedAt,
	}
}

func (m *ExamMapper) ToModel(e *entity.Exam) *model.Exam {
	if e == nil {
		return nil
	}
	questions := e.Questions
	if questions == nil {
		questions = []entity.Question{}
	}
	answers := e.UserAnswers
	if answers == nil {
		answers = []entity.AnswerRecord{}
	}
	res := &model.Exam{
		Id:             e.Id,
		UserId:         e.UserId,
		Title:          e.Title,
		Questions:      datatypes.JSONSlice[entity.Question](questions),
		Completed:      e.Completed,
		Score:          e.Score,
		TotalQuestions: e.TotalQuestions,
		UserAnswers:    datatypes.JSONSlice[entity.AnswerRecord](answers),
		CompletedAt:    e.CompletedAt,
		CreatedAt:      e.CreatedAt,
	}
	if e.UpdatedAt != nil {
		res.UpdatedAt = *e.UpdatedAt
	}
	return res
}

func (m *ExamMapper) ToEntities(exams []*model.Exam) []*entity.Exam {
	entities := make([]*entity.Exam, len(exams))
	for i, e := range exams {
		entities[i] = m.ToEntity(e)
	}
	return entities
}

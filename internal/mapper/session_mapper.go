package mapper

import (
	"study-assistant-be/internal/entity"
	"study-assistant-be/internal/model"

	"gorm.io/datatypes"
)

type SessionMapper struct{}

func NewSessionMapper() *SessionMapper {
	return &SessionMapper{}
}

func (m *SessionMapper) ToEntity(s *model.StudySession) *entity.StudySession {
	if s == nil {
		return nil
	}
	updatedAt := s.UpdatedAt
	return &entity.StudySession{
		Id:           s.Id,
		UserId:       s.UserId,
		Title:        s.Title,
		Type:         entity.SessionType(s.Type),
		Messages:     []entity.Message(s.Messages),
		SessionNotes: []entity.SessionNote(s.SessionNotes),
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    &updatedAt,
	}
}

func (m *SessionMapper) ToModel(s *entity.StudySession) *model.StudySession {
	if s == nil {
		return nil
	}
	messages := s.Messages
	if messages == nil {
		messages = []entity.Message{}
	}
	notes := s.SessionNotes
	if notes == nil {
		notes = []entity.SessionNote{}
	}
	res := &model.StudySession{
		Id:           s.Id,
		UserId:       s.UserId,
		Title:        s.Title,
		Type:         string(s.Type),
		Messages:     datatypes.JSONSlice[entity.Message](messages),
		SessionNotes: datatypes.JSONSlice[entity.SessionNote](notes),
		CreatedAt:    s.CreatedAt,
	}
	if s.UpdatedAt != nil {
		res.UpdatedAt = *s.UpdatedAt
	}
	return res
}

func (m *SessionMapper) ToEntities(sessions []*model.StudySession) []*entity.StudySession {
	entities := make([]*entity.StudySession, len(sessions))
	for i, s := range sessions {
		entities[i] = m.ToEntity(s)
	}
	return entities
}

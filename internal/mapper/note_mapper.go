package mapper

import (
	"study-assistant-be/internal/entity"
	"study-assistant-be/internal/model"
)

type NoteMapper struct{}

func NewNoteMapper() *NoteMapper {
	return &NoteMapper{}
}

func (m *NoteMapper) ToEntity(n *model.Note) *entity.Note {
	if n == nil {
		return nil
	}
	updatedAt := n.UpdatedAt
	return &entity.Note{
		Id:        n.Id,
		UserId:    n.UserId,
		SessionId: n.SessionId,
		Title:     n.Title,
		Content:   n.Content,
		Topic:     n.Topic,
		Type:      entity.NoteType(n.Type),
		CreatedAt: n.CreatedAt,
		UpdatedAt: &updatedAt,
	}
}

func (m *NoteMapper) ToModel(n *entity.Note) *model.Note {
	if n == nil {
		return nil
	}
	res := &model.Note{
		Id:        n.Id,
		UserId:    n.UserId,
		SessionId: n.SessionId,
		Title:     n.Title,
		Content:   n.Content,
		Topic:     n.Topic,
		Type:      string(n.Type),
		CreatedAt: n.CreatedAt,
	}
	if n.UpdatedAt != nil {
		res.UpdatedAt = *n.UpdatedAt
	}
	return res
}

func (m *NoteMapper) ToEntities(notes []*model.Note) []*entity.Note {
	entities := make([]*entity.Note, len(notes))
	for i, n := range notes {
		entities[i] = m.ToEntity(n)
	}
	return entities
}

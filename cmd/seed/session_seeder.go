package main

import (
	"log"
	"time"

	"study-assistant-be/internal/entity"
	"study-assistant-be/internal/model"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type sessionSeed struct {
	Title    string
	Exchange []entity.Message
	Notes    []entity.SessionNote
}

// SeedStudySessions gives the demo user enough session notes to generate an exam.
func SeedStudySessions(db *gorm.DB, userId uuid.UUID) {
	now := time.Now()

	seeds := []sessionSeed{
		{
			Title: "What is photosynthesis?",
			Exchange: []entity.Message{
				{Sender: entity.SenderUser, Content: "What is photosynthesis?", Timestamp: now.Add(-2 * time.Hour)},
				{Sender: entity.SenderAI, Content: "Photosynthesis is how plants turn light, water and carbon dioxide into glucose and oxygen.", Timestamp: now.Add(-2 * time.Hour)},
			},
			Notes: []entity.SessionNote{
				{Title: "Photosynthesis basics", Content: "Plants convert light energy into chemical energy. Chlorophyll in the chloroplast absorbs light. Outputs are glucose and oxygen.", CreatedAt: now.Add(-2 * time.Hour)},
			},
		},
		{
			Title: "Explain Newton's second law",
			Exchange: []entity.Message{
				{Sender: entity.SenderUser, Content: "Explain Newton's second law", Timestamp: now.Add(-time.Hour)},
				{Sender: entity.SenderAI, Content: "Force equals mass times acceleration, so heavier objects need more force to speed up.", Timestamp: now.Add(-time.Hour)},
			},
			Notes: []entity.SessionNote{
				{Title: "Newton's second law", Content: "F = m * a. Acceleration grows with force and shrinks with mass. Force is measured in newtons.", CreatedAt: now.Add(-time.Hour)},
			},
		},
	}

	for _, s := range seeds {
		var count int64
		db.Model(&model.StudySession{}).Where("user_id = ? AND title = ?", userId, s.Title).Count(&count)
		if count > 0 {
			log.Printf("Session '%s' already exists, skipping...", s.Title)
			continue
		}

		row := model.StudySession{
			Id:           uuid.New(),
			UserId:       userId,
			Title:        s.Title,
			Type:         string(entity.SessionTypeStudy),
			Messages:     datatypes.NewJSONSlice(s.Exchange),
			SessionNotes: datatypes.NewJSONSlice(s.Notes),
		}
		if err := db.Create(&row).Error; err != nil {
			log.Printf("Error creating session '%s': %v", s.Title, err)
		} else {
			log.Printf("Created session: %s", s.Title)
		}
	}
}

package specification

import (
	"study-assistant-be/internal/entity"

	"gorm.io/gorm"
)

type BySessionType struct {
	Type entity.SessionType
}

func (s BySessionType) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("type = ?", string(s.Type))
}

package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByExperimentID struct {
	ExperimentID uuid.UUID
}

func (s ByExperimentID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("experiment_id = ?", s.ExperimentID)
}

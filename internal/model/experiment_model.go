package model

import (
	"time"

	"github.com/google/uuid"
)

type Experiment struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId      uuid.UUID `gorm:"type:uuid;not null;index"`
	Title       string    `gorm:"type:varchar(255);not null"`
	Hypothesis  string    `gorm:"type:text;not null"`
	Materials   string    `gorm:"type:text"`
	Methods     string    `gorm:"type:text;not null"`
	Results     string    `gorm:"type:text"`
	Conclusion  string    `gorm:"type:text"`
	References  string    `gorm:"type:text"`
	Status      string    `gorm:"type:varchar(50);not null;default:'planned'"`
	StartedAt   *time.Time
	CompletedAt *time.Time
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (Experiment) TableName() string {
	return "experiments"
}

type ExperimentStep struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ExperimentId uuid.UUID `gorm:"type:uuid;not null;index"`
	StepNumber   int       `gorm:"not null"`
	Description  string    `gorm:"type:text;not null"`
	Observation  string    `gorm:"type:text"`
	StartedAt    *time.Time
	CompletedAt  *time.Time
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

func (ExperimentStep) TableName() string {
	return "experiment_steps"
}

type ExperimentAttachment struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ExperimentId uuid.UUID `gorm:"type:uuid;not null;index"`
	FileName     string    `gorm:"type:varchar(255);not null"`
	FileType     string    `gorm:"type:varchar(100);not null"`
	FilePath     string    `gorm:"type:varchar(500);not null"`
	Description  string    `gorm:"type:text"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

func (ExperimentAttachment) TableName() string {
	return "experiment_attachments"
}

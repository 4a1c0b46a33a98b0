package entity

import (
	"time"

	"github.com/google/uuid"
)

type ExperimentStatus string

const (
	ExperimentStatusPlanned    ExperimentStatus = "planned"
	ExperimentStatusInProgress ExperimentStatus = "in_progress"
	ExperimentStatusCompleted  ExperimentStatus = "completed"
	ExperimentStatusFailed     ExperimentStatus = "failed"
)

type Experiment struct {
	Id          uuid.UUID
	UserId      uuid.UUID
	Title       string
	Hypothesis  string
	Materials   string
	Methods     string
	Results     string
	Conclusion  string
	References  string
	Status      ExperimentStatus
	StartedAt   *time.Time
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Children are loaded explicitly by the service, not by the ORM.
	Steps       []*ExperimentStep
	Attachments []*ExperimentAttachment
}

type ExperimentStep struct {
	Id           uuid.UUID
	ExperimentId uuid.UUID
	StepNumber   int
	Description  string
	Observation  string
	StartedAt    *time.Time
	CompletedAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type ExperimentAttachment struct {
	Id           uuid.UUID
	ExperimentId uuid.UUID
	FileName     string
	FileType     string
	FilePath     string
	Description  string
	CreatedAt    time.Time
}

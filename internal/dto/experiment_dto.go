package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateExperimentRequest struct {
	Title      string             `json:"title" validate:"required"`
	Hypothesis string             `json:"hypothesis" validate:"required"`
	Materials  string             `json:"materials"`
	Methods    string             `json:"methods" validate:"required"`
	Steps      []StepInputRequest `json:"steps"`
}

// StepInputRequest is one element of a steps array, both at experiment
// creation and on full replacement. Timestamps are ISO-8601 strings.
type StepInputRequest struct {
	Description string  `json:"description" validate:"required"`
	Observation string  `json:"observation"`
	StartedAt   *string `json:"started_at"`
	CompletedAt *string `json:"completed_at"`
}

// UpdateExperimentRequest is fully partial. A non-nil Steps slice replaces
// every existing step; nil leaves the step set untouched.
type UpdateExperimentRequest struct {
	Id         uuid.UUID
	Title      *string             `json:"title"`
	Hypothesis *string             `json:"hypothesis"`
	Materials  *string             `json:"materials"`
	Methods    *string             `json:"methods"`
	Results    *string             `json:"results"`
	Conclusion *string             `json:"conclusion"`
	References *string             `json:"references"`
	Status     *string             `json:"status"`
	Steps      *[]StepInputRequest `json:"steps"`
}

type AddStepRequest struct {
	Description string `json:"description" validate:"required"`
	Observation string `json:"observation"`
}

type UpdateStepRequest struct {
	Description *string `json:"description"`
	Observation *string `json:"observation"`
	StartedAt   *string `json:"started_at"`
	CompletedAt *string `json:"completed_at"`
}

type AddAttachmentRequest struct {
	FileName    string `json:"file_name" validate:"required"`
	FileType    string `json:"file_type" validate:"required"`
	FilePath    string `json:"file_path"`
	Description string `json:"description"`
}

type ExperimentResponse struct {
	Id          uuid.UUID             `json:"id"`
	UserId      uuid.UUID             `json:"user_id"`
	Title       string                `json:"title"`
	Hypothesis  string                `json:"hypothesis"`
	Materials   string                `json:"materials"`
	Methods     string                `json:"methods"`
	Results     string                `json:"results"`
	Conclusion  string                `json:"conclusion"`
	References  string                `json:"references"`
	Status      string                `json:"status"`
	StartedAt   *time.Time            `json:"started_at"`
	CompletedAt *time.Time            `json:"completed_at"`
	CreatedAt   time.Time             `json:"created_at"`
	UpdatedAt   time.Time             `json:"updated_at"`
	Steps       []*StepResponse       `json:"steps"`
	Attachments []*AttachmentResponse `json:"attachments"`
}

type StepResponse struct {
	Id           uuid.UUID  `json:"id"`
	ExperimentId uuid.UUID  `json:"experiment_id"`
	StepNumber   int        `json:"step_number"`
	Description  string     `json:"description"`
	Observation  string     `json:"observation"`
	StartedAt    *time.Time `json:"started_at"`
	CompletedAt  *time.Time `json:"completed_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type AttachmentResponse struct {
	Id           uuid.UUID `json:"id"`
	ExperimentId uuid.UUID `json:"experiment_id"`
	FileName     string    `json:"file_name"`
	FileType     string    `json:"file_type"`
	FilePath     string    `json:"file_path"`
	Description  string    `json:"description"`
	CreatedAt    time.Time `json:"created_at"`
}

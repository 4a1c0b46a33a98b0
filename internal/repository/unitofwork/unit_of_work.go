package unitofwork

import (
	"context"

	"labnotebook-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	NoteRepository() contract.NoteRepository
	ExperimentRepository() contract.ExperimentRepository
	ExperimentStepRepository() contract.ExperimentStepRepository
	ExperimentAttachmentRepository() contract.ExperimentAttachmentRepository
	ActivityLogRepository() contract.ActivityLogRepository
}

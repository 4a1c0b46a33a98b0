package service_test

import (
	"context"
	"sync"
	"testing"

	"labnotebook-be/internal/dto"
	"labnotebook-be/internal/repository/unitofwork"
	"labnotebook-be/internal/service"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// testSchema mirrors the migrated Postgres tables minus the server-side
// uuid defaults, which sqlite cannot evaluate. IDs are assigned app-side
// anyway, so the defaults never fire in production either.
var testSchema = []string{
	`CREATE TABLE users (
		id text PRIMARY KEY,
		username varchar(80) NOT NULL UNIQUE,
		email varchar(120) NOT NULL UNIQUE,
		password_hash varchar(255) NOT NULL,
		created_at datetime,
		updated_at datetime
	)`,
	`CREATE TABLE notes (
		id text PRIMARY KEY,
		user_id text NOT NULL,
		title varchar(255) NOT NULL,
		content text NOT NULL,
		tags text,
		created_at datetime,
		updated_at datetime
	)`,
	`CREATE TABLE experiments (
		id text PRIMARY KEY,
		user_id text NOT NULL,
		title varchar(255) NOT NULL,
		hypothesis text NOT NULL,
		materials text,
		methods text NOT NULL,
		results text,
		conclusion text,
		"references" text,
		status varchar(50) NOT NULL DEFAULT 'planned',
		started_at datetime,
		completed_at datetime,
		created_at datetime,
		updated_at datetime
	)`,
	`CREATE TABLE experiment_steps (
		id text PRIMARY KEY,
		experiment_id text NOT NULL,
		step_number integer NOT NULL,
		description text NOT NULL,
		observation text,
		started_at datetime,
		completed_at datetime,
		created_at datetime,
		updated_at datetime
	)`,
	`CREATE TABLE experiment_attachments (
		id text PRIMARY KEY,
		experiment_id text NOT NULL,
		file_name varchar(255) NOT NULL,
		file_type varchar(100) NOT NULL,
		file_path varchar(500) NOT NULL,
		description text,
		created_at datetime
	)`,
	`CREATE TABLE activity_logs (
		id text PRIMARY KEY,
		user_id text NOT NULL,
		action varchar(100) NOT NULL,
		resource_type varchar(50) NOT NULL,
		resource_id text NOT NULL,
		detail text,
		created_at datetime
	)`,
}

func newTestFactory(t *testing.T) unitofwork.RepositoryFactory {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// A single connection keeps every query on the same in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	for _, stmt := range testSchema {
		require.NoError(t, db.Exec(stmt).Error)
	}

	return unitofwork.NewRepositoryFactory(db)
}

// capturePublisher records payloads instead of hitting the event bus.
type capturePublisher struct {
	mu       sync.Mutex
	payloads [][]byte
}

func (p *capturePublisher) Publish(_ context.Context, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.payloads = append(p.payloads, payload)
	return nil
}

func (p *capturePublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.payloads)
}

func signupTestUser(t *testing.T, authService service.IAuthService, username, email string) uuid.UUID {
	t.Helper()

	resp, err := authService.Signup(context.Background(), &dto.SignupRequest{
		Username: username,
		Email:    email,
		Password: "secret123",
	})
	require.NoError(t, err)
	return resp.User.Id
}

func strPtr(s string) *string {
	return &s
}

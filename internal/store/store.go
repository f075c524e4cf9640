package store

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"

	"github.com/launchpad-ai/launchpad/internal/database"
)

// ErrNotFound se devuelve cuando la fila no existe; los callers deciden si es error.
var ErrNotFound = errors.New("store: not found")

// Store persiste los datos de carrera. La implementación Postgres envuelve las
// queries sqlc; la in-memory sirve para tests y arranques sin DB_URL.
type Store interface {
	UpsertProfile(ctx context.Context, p database.Profile) error
	GetProfile(ctx context.Context, userID string) (database.Profile, error)

	SaveConversation(ctx context.Context, c database.Conversation) error
	// RecentConversations returns the newest exchanges first.
	RecentConversations(ctx context.Context, userID, sessionID string, limit int) ([]database.Conversation, error)

	SavePlan(ctx context.Context, p database.CareerPlan) error
	PlansByUser(ctx context.Context, userID string) ([]database.CareerPlan, error)

	SaveApplication(ctx context.Context, a database.Application) error
	ApplicationsByUser(ctx context.Context, userID string) ([]database.Application, error)
	UpdateApplicationStatus(ctx context.Context, id uuid.UUID, status, notes string) error

	CreateResumeJob(ctx context.Context, j database.ResumeJob) error
	GetResumeJob(ctx context.Context, id uuid.UUID) (database.ResumeJob, error)
	UpdateResumeJobStatus(ctx context.Context, id uuid.UUID, status string) error
	SaveResumeAnalysis(ctx context.Context, jobID uuid.UUID, results json.RawMessage) error
	GetResumeAnalysis(ctx context.Context, jobID uuid.UUID) (database.ResumeAnalysis, error)
}

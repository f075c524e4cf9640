package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/launchpad-ai/launchpad/internal/database"
	"github.com/launchpad-ai/launchpad/internal/metrics"
)

type Postgres struct {
	db *sql.DB
	q  *database.Queries
}

var _ Store = (*Postgres)(nil)

// OpenPostgres abre la conexión y la deja lista para las queries sqlc.
func OpenPostgres(dbURL string) (*Postgres, error) {
	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		return nil, fmt.Errorf("opening db: %w", err)
	}
	return &Postgres{db: db, q: database.New(db)}, nil
}

// NewPostgres wraps an existing handle (tests inject their own).
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db, q: database.New(db)}
}

func (s *Postgres) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Postgres) Close() error {
	return s.db.Close()
}

// track cuenta la query por entidad; not-found es un resultado, no un fallo.
func track(entity string, err error) {
	outcome := "ok"
	if err != nil && !errors.Is(err, ErrNotFound) {
		outcome = "error"
	}
	metrics.DBQueries.Inc(map[string]string{"entity": entity, "outcome": outcome})
}

func mapNoRows(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func (s *Postgres) UpsertProfile(ctx context.Context, p database.Profile) error {
	err := s.q.UpsertProfile(ctx, database.UpsertProfileParams{
		UserID:     p.UserID,
		Skills:     p.Skills,
		Interests:  p.Interests,
		Experience: p.Experience,
		Goals:      p.Goals,
		Summary:    p.Summary,
	})
	track("profiles", err)
	return err
}

func (s *Postgres) GetProfile(ctx context.Context, userID string) (database.Profile, error) {
	p, err := s.q.GetProfile(ctx, userID)
	err = mapNoRows(err)
	track("profiles", err)
	return p, err
}

func (s *Postgres) SaveConversation(ctx context.Context, c database.Conversation) error {
	err := s.q.CreateConversation(ctx, database.CreateConversationParams{
		UserID:           c.UserID,
		SessionID:        c.SessionID,
		UserMessage:      c.UserMessage,
		AssistantMessage: c.AssistantMessage,
	})
	track("conversations", err)
	return err
}

func (s *Postgres) RecentConversations(ctx context.Context, userID, sessionID string, limit int) ([]database.Conversation, error) {
	if limit <= 0 {
		limit = 3
	}
	items, err := s.q.GetRecentConversations(ctx, database.GetRecentConversationsParams{
		UserID:    userID,
		SessionID: sessionID,
		Limit:     int32(limit),
	})
	track("conversations", err)
	return items, err
}

func (s *Postgres) SavePlan(ctx context.Context, p database.CareerPlan) error {
	err := s.q.CreateCareerPlan(ctx, database.CreateCareerPlanParams{
		ID:      p.ID,
		UserID:  p.UserID,
		Title:   p.Title,
		Content: p.Content,
		Status:  p.Status,
	})
	track("career_plans", err)
	return err
}

func (s *Postgres) PlansByUser(ctx context.Context, userID string) ([]database.CareerPlan, error) {
	items, err := s.q.GetCareerPlansByUser(ctx, userID)
	track("career_plans", err)
	return items, err
}

func (s *Postgres) SaveApplication(ctx context.Context, a database.Application) error {
	err := s.q.CreateApplication(ctx, database.CreateApplicationParams{
		ID:       a.ID,
		UserID:   a.UserID,
		JobTitle: a.JobTitle,
		Company:  a.Company,
		Location: a.Location,
		Status:   a.Status,
		Notes:    a.Notes,
	})
	track("applications", err)
	return err
}

func (s *Postgres) ApplicationsByUser(ctx context.Context, userID string) ([]database.Application, error) {
	items, err := s.q.GetApplicationsByUser(ctx, userID)
	track("applications", err)
	return items, err
}

func (s *Postgres) UpdateApplicationStatus(ctx context.Context, id uuid.UUID, status, notes string) error {
	err := s.q.UpdateApplicationStatus(ctx, database.UpdateApplicationStatusParams{
		Status: status,
		Notes:  notes,
		ID:     id,
	})
	track("applications", err)
	return err
}

func (s *Postgres) CreateResumeJob(ctx context.Context, j database.ResumeJob) error {
	err := s.q.CreateResumeJob(ctx, database.CreateResumeJobParams{
		ID:        j.ID,
		UserID:    j.UserID,
		ObjectKey: j.ObjectKey,
		Mime:      j.Mime,
		Goal:      j.Goal,
		Status:    j.Status,
	})
	track("resume_jobs", err)
	return err
}

func (s *Postgres) GetResumeJob(ctx context.Context, id uuid.UUID) (database.ResumeJob, error) {
	j, err := s.q.GetResumeJob(ctx, id)
	err = mapNoRows(err)
	track("resume_jobs", err)
	return j, err
}

func (s *Postgres) UpdateResumeJobStatus(ctx context.Context, id uuid.UUID, status string) error {
	err := s.q.UpdateResumeJobStatus(ctx, database.UpdateResumeJobStatusParams{
		Status: status,
		ID:     id,
	})
	track("resume_jobs", err)
	return err
}

func (s *Postgres) SaveResumeAnalysis(ctx context.Context, jobID uuid.UUID, results json.RawMessage) error {
	err := s.q.CreateOrUpdateResumeAnalysis(ctx, database.CreateOrUpdateResumeAnalysisParams{
		JobID:   jobID,
		Results: results,
	})
	track("resume_analyses", err)
	return err
}

func (s *Postgres) GetResumeAnalysis(ctx context.Context, jobID uuid.UUID) (database.ResumeAnalysis, error) {
	a, err := s.q.GetResumeAnalysis(ctx, jobID)
	err = mapNoRows(err)
	track("resume_analyses", err)
	return a, err
}

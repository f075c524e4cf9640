package store

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/launchpad-ai/launchpad/internal/database"
)

// Mem keeps everything in maps behind one mutex. Arranca cuando DB_URL está
// vacío; los datos viven lo que viva el proceso.
type Mem struct {
	mu            sync.Mutex
	profiles      map[string]database.Profile
	conversations map[string][]database.Conversation // clave user|session
	convSeq       int64
	plans         map[string][]database.CareerPlan
	applications  []database.Application
	resumeJobs    map[uuid.UUID]database.ResumeJob
	analyses      map[uuid.UUID]database.ResumeAnalysis
}

var _ Store = (*Mem)(nil)

func NewMem() *Mem {
	return &Mem{
		profiles:      make(map[string]database.Profile),
		conversations: make(map[string][]database.Conversation),
		plans:         make(map[string][]database.CareerPlan),
		resumeJobs:    make(map[uuid.UUID]database.ResumeJob),
		analyses:      make(map[uuid.UUID]database.ResumeAnalysis),
	}
}

func convKey(userID, sessionID string) string {
	return userID + "|" + sessionID
}

func (m *Mem) UpsertProfile(ctx context.Context, p database.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now().UTC()
	if prev, ok := m.profiles[p.UserID]; ok {
		p.CreatedAt = prev.CreatedAt
	} else {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	m.profiles[p.UserID] = p
	return nil
}

func (m *Mem) GetProfile(ctx context.Context, userID string) (database.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.profiles[userID]
	if !ok {
		return database.Profile{}, ErrNotFound
	}
	return p, nil
}

func (m *Mem) SaveConversation(ctx context.Context, c database.Conversation) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.convSeq++
	c.ID = m.convSeq
	c.CreatedAt = time.Now().UTC()
	key := convKey(c.UserID, c.SessionID)
	m.conversations[key] = append(m.conversations[key], c)
	return nil
}

func (m *Mem) RecentConversations(ctx context.Context, userID, sessionID string, limit int) ([]database.Conversation, error) {
	if limit <= 0 {
		limit = 3
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	all := m.conversations[convKey(userID, sessionID)]
	// newest first, igual que el ORDER BY ... DESC de Postgres
	out := make([]database.Conversation, 0, limit)
	for i := len(all) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, all[i])
	}
	return out, nil
}

func (m *Mem) SavePlan(ctx context.Context, p database.CareerPlan) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p.CreatedAt = time.Now().UTC()
	m.plans[p.UserID] = append(m.plans[p.UserID], p)
	return nil
}

func (m *Mem) PlansByUser(ctx context.Context, userID string) ([]database.CareerPlan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]database.CareerPlan, len(m.plans[userID]))
	copy(out, m.plans[userID])
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *Mem) SaveApplication(ctx context.Context, a database.Application) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now().UTC()
	a.AppliedAt = now
	a.UpdatedAt = now
	m.applications = append(m.applications, a)
	return nil
}

func (m *Mem) ApplicationsByUser(ctx context.Context, userID string) ([]database.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []database.Application
	for _, a := range m.applications {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AppliedAt.After(out[j].AppliedAt) })
	return out, nil
}

func (m *Mem) UpdateApplicationStatus(ctx context.Context, id uuid.UUID, status, notes string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.applications {
		if m.applications[i].ID == id {
			m.applications[i].Status = status
			m.applications[i].Notes = notes
			m.applications[i].UpdatedAt = time.Now().UTC()
			return nil
		}
	}
	return ErrNotFound
}

func (m *Mem) CreateResumeJob(ctx context.Context, j database.ResumeJob) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now().UTC()
	j.CreatedAt = now
	j.UpdatedAt = now
	m.resumeJobs[j.ID] = j
	return nil
}

func (m *Mem) GetResumeJob(ctx context.Context, id uuid.UUID) (database.ResumeJob, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	j, ok := m.resumeJobs[id]
	if !ok {
		return database.ResumeJob{}, ErrNotFound
	}
	return j, nil
}

func (m *Mem) UpdateResumeJobStatus(ctx context.Context, id uuid.UUID, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	j, ok := m.resumeJobs[id]
	if !ok {
		return ErrNotFound
	}
	j.Status = status
	j.UpdatedAt = time.Now().UTC()
	m.resumeJobs[id] = j
	return nil
}

func (m *Mem) SaveResumeAnalysis(ctx context.Context, jobID uuid.UUID, results json.RawMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now().UTC()
	a, ok := m.analyses[jobID]
	if !ok {
		a = database.ResumeAnalysis{JobID: jobID, CreatedAt: now}
	}
	a.Results = append(json.RawMessage(nil), results...)
	a.UpdatedAt = now
	m.analyses[jobID] = a
	return nil
}

func (m *Mem) GetResumeAnalysis(ctx context.Context, jobID uuid.UUID) (database.ResumeAnalysis, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.analyses[jobID]
	if !ok {
		return database.ResumeAnalysis{}, ErrNotFound
	}
	return a, nil
}

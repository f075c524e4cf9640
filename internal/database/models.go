package database

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Profile struct {
	UserID     string
	Skills     string
	Interests  string
	Experience string
	Goals      string
	Summary    string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type CareerPlan struct {
	ID        uuid.UUID
	UserID    string
	Title     string
	Content   string
	Status    string
	CreatedAt time.Time
}

type Application struct {
	ID        uuid.UUID
	UserID    string
	JobTitle  string
	Company   string
	Location  string
	Status    string
	Notes     string
	AppliedAt time.Time
	UpdatedAt time.Time
}

type Conversation struct {
	ID               int64
	UserID           string
	SessionID        string
	UserMessage      string
	AssistantMessage string
	CreatedAt        time.Time
}

type ResumeJob struct {
	ID        uuid.UUID
	UserID    string
	ObjectKey string
	Mime      string
	Goal      string
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type ResumeAnalysis struct {
	JobID     uuid.UUID
	Results   json.RawMessage
	CreatedAt time.Time
	UpdatedAt time.Time
}

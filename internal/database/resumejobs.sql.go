package database

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
)

const createResumeJob = `-- name: CreateResumeJob :exec
INSERT INTO resume_jobs (
id, user_id, object_key, mime, goal, status)
VALUES ($1, $2, $3, $4, $5, $6)
`

type CreateResumeJobParams struct {
	ID        uuid.UUID
	UserID    string
	ObjectKey string
	Mime      string
	Goal      string
	Status    string
}

func (q *Queries) CreateResumeJob(ctx context.Context, arg CreateResumeJobParams) error {
	_, err := q.db.ExecContext(ctx, createResumeJob,
		arg.ID,
		arg.UserID,
		arg.ObjectKey,
		arg.Mime,
		arg.Goal,
		arg.Status,
	)
	return err
}

const getResumeJob = `-- name: GetResumeJob :one
SELECT id, user_id, object_key, mime, goal, status, created_at, updated_at FROM resume_jobs WHERE id=$1
`

func (q *Queries) GetResumeJob(ctx context.Context, id uuid.UUID) (ResumeJob, error) {
	row := q.db.QueryRowContext(ctx, getResumeJob, id)
	var i ResumeJob
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.ObjectKey,
		&i.Mime,
		&i.Goal,
		&i.Status,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const updateResumeJobStatus = `-- name: UpdateResumeJobStatus :exec
UPDATE resume_jobs
SET status=$1, updated_at=CURRENT_TIMESTAMP
WHERE id=$2
`

type UpdateResumeJobStatusParams struct {
	Status string
	ID     uuid.UUID
}

func (q *Queries) UpdateResumeJobStatus(ctx context.Context, arg UpdateResumeJobStatusParams) error {
	_, err := q.db.ExecContext(ctx, updateResumeJobStatus, arg.Status, arg.ID)
	return err
}

const createOrUpdateResumeAnalysis = `-- name: CreateOrUpdateResumeAnalysis :exec
INSERT INTO resume_analyses (
job_id, results)
VALUES ($1, $2)
ON CONFLICT (job_id)
DO UPDATE SET
    results = EXCLUDED.results,
    updated_at = CURRENT_TIMESTAMP
`

type CreateOrUpdateResumeAnalysisParams struct {
	JobID   uuid.UUID
	Results json.RawMessage
}

func (q *Queries) CreateOrUpdateResumeAnalysis(ctx context.Context, arg CreateOrUpdateResumeAnalysisParams) error {
	_, err := q.db.ExecContext(ctx, createOrUpdateResumeAnalysis, arg.JobID, arg.Results)
	return err
}

const getResumeAnalysis = `-- name: GetResumeAnalysis :one
SELECT job_id, results, created_at, updated_at FROM resume_analyses WHERE job_id=$1
`

func (q *Queries) GetResumeAnalysis(ctx context.Context, jobID uuid.UUID) (ResumeAnalysis, error) {
	row := q.db.QueryRowContext(ctx, getResumeAnalysis, jobID)
	var i ResumeAnalysis
	err := row.Scan(
		&i.JobID,
		&i.Results,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

package database

import (
	"context"

	"github.com/google/uuid"
)

const createApplication = `-- name: CreateApplication :exec
INSERT INTO applications (
id, user_id, job_title, company, location, status, notes)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`

type CreateApplicationParams struct {
	ID       uuid.UUID
	UserID   string
	JobTitle string
	Company  string
	Location string
	Status   string
	Notes    string
}

func (q *Queries) CreateApplication(ctx context.Context, arg CreateApplicationParams) error {
	_, err := q.db.ExecContext(ctx, createApplication,
		arg.ID,
		arg.UserID,
		arg.JobTitle,
		arg.Company,
		arg.Location,
		arg.Status,
		arg.Notes,
	)
	return err
}

const getApplicationsByUser = `-- name: GetApplicationsByUser :many
SELECT id, user_id, job_title, company, location, status, notes, applied_at, updated_at FROM applications WHERE user_id=$1 ORDER BY applied_at DESC
`

func (q *Queries) GetApplicationsByUser(ctx context.Context, userID string) ([]Application, error) {
	rows, err := q.db.QueryContext(ctx, getApplicationsByUser, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Application
	for rows.Next() {
		var i Application
		if err := rows.Scan(
			&i.ID,
			&i.UserID,
			&i.JobTitle,
			&i.Company,
			&i.Location,
			&i.Status,
			&i.Notes,
			&i.AppliedAt,
			&i.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const updateApplicationStatus = `-- name: UpdateApplicationStatus :exec
UPDATE applications
SET status=$1, notes=$2, updated_at=CURRENT_TIMESTAMP
WHERE id=$3
`

type UpdateApplicationStatusParams struct {
	Status string
	Notes  string
	ID     uuid.UUID
}

func (q *Queries) UpdateApplicationStatus(ctx context.Context, arg UpdateApplicationStatusParams) error {
	_, err := q.db.ExecContext(ctx, updateApplicationStatus, arg.Status, arg.Notes, arg.ID)
	return err
}

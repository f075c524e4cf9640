package database

import (
	"context"

	"github.com/google/uuid"
)

const createCareerPlan = `-- name: CreateCareerPlan :exec
INSERT INTO career_plans (
id, user_id, title, content, status)
VALUES ($1, $2, $3, $4, $5)
`

type CreateCareerPlanParams struct {
	ID      uuid.UUID
	UserID  string
	Title   string
	Content string
	Status  string
}

func (q *Queries) CreateCareerPlan(ctx context.Context, arg CreateCareerPlanParams) error {
	_, err := q.db.ExecContext(ctx, createCareerPlan,
		arg.ID,
		arg.UserID,
		arg.Title,
		arg.Content,
		arg.Status,
	)
	return err
}

const getCareerPlansByUser = `-- name: GetCareerPlansByUser :many
SELECT id, user_id, title, content, status, created_at FROM career_plans WHERE user_id=$1 ORDER BY created_at DESC
`

func (q *Queries) GetCareerPlansByUser(ctx context.Context, userID string) ([]CareerPlan, error) {
	rows, err := q.db.QueryContext(ctx, getCareerPlansByUser, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []CareerPlan
	for rows.Next() {
		var i CareerPlan
		if err := rows.Scan(
			&i.ID,
			&i.UserID,
			&i.Title,
			&i.Content,
			&i.Status,
			&i.CreatedAt,
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

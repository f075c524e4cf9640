package database

import (
	"context"
)

const upsertProfile = `-- name: UpsertProfile :exec
INSERT INTO profiles (
user_id, skills, interests, experience, goals, summary)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (user_id)
DO UPDATE SET
    skills = EXCLUDED.skills,
    interests = EXCLUDED.interests,
    experience = EXCLUDED.experience,
    goals = EXCLUDED.goals,
    summary = EXCLUDED.summary,
    updated_at = CURRENT_TIMESTAMP
`

type UpsertProfileParams struct {
	UserID     string
	Skills     string
	Interests  string
	Experience string
	Goals      string
	Summary    string
}

func (q *Queries) UpsertProfile(ctx context.Context, arg UpsertProfileParams) error {
	_, err := q.db.ExecContext(ctx, upsertProfile,
		arg.UserID,
		arg.Skills,
		arg.Interests,
		arg.Experience,
		arg.Goals,
		arg.Summary,
	)
	return err
}

const getProfile = `-- name: GetProfile :one
SELECT user_id, skills, interests, experience, goals, summary, created_at, updated_at FROM profiles WHERE user_id=$1
`

func (q *Queries) GetProfile(ctx context.Context, userID string) (Profile, error) {
	row := q.db.QueryRowContext(ctx, getProfile, userID)
	var i Profile
	err := row.Scan(
		&i.UserID,
		&i.Skills,
		&i.Interests,
		&i.Experience,
		&i.Goals,
		&i.Summary,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

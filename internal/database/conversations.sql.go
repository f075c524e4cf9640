package database

import (
	"context"
)

const createConversation = `-- name: CreateConversation :exec
INSERT INTO conversations (
user_id, session_id, user_message, assistant_message)
VALUES ($1, $2, $3, $4)
`

type CreateConversationParams struct {
	UserID           string
	SessionID        string
	UserMessage      string
	AssistantMessage string
}

func (q *Queries) CreateConversation(ctx context.Context, arg CreateConversationParams) error {
	_, err := q.db.ExecContext(ctx, createConversation,
		arg.UserID,
		arg.SessionID,
		arg.UserMessage,
		arg.AssistantMessage,
	)
	return err
}

const getRecentConversations = `-- name: GetRecentConversations :many
SELECT id, user_id, session_id, user_message, assistant_message, created_at FROM conversations
WHERE user_id=$1 AND session_id=$2
ORDER BY created_at DESC, id DESC
LIMIT $3
`

type GetRecentConversationsParams struct {
	UserID    string
	SessionID string
	Limit     int32
}

func (q *Queries) GetRecentConversations(ctx context.Context, arg GetRecentConversationsParams) ([]Conversation, error) {
	rows, err := q.db.QueryContext(ctx, getRecentConversations, arg.UserID, arg.SessionID, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Conversation
	for rows.Next() {
		var i Conversation
		if err := rows.Scan(
			&i.ID,
			&i.UserID,
			&i.SessionID,
			&i.UserMessage,
			&i.AssistantMessage,
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

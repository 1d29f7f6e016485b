package domain

import "time"

// User is the minimal profile record kept for rendering notification actors.
// Authentication happens upstream; this service never stores credentials.
type User struct {
	UserID    string    `json:"id" dynamodbav:"user_id"`
	TeamID    string    `json:"team_id" dynamodbav:"team_id"`
	Name      string    `json:"name" dynamodbav:"name"`
	Email     string    `json:"email" dynamodbav:"email"`
	AvatarURL *string   `json:"avatar_url" dynamodbav:"avatar_url"`
	CreatedAt time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt time.Time `json:"updated" dynamodbav:"updated_at"`
}

// Actor is the authenticated caller of a request, as asserted by the JWT
// issued upstream. The service trusts these fields and does not re-verify
// identity.
type Actor struct {
	UserID string
	TeamID string
	Name   string
}

// Comment is carried only as a notification relation; this service does not
// store or mutate comments.
type Comment struct {
	CommentID   string    `json:"id" dynamodbav:"comment_id"`
	DocumentID  string    `json:"document_id" dynamodbav:"document_id"`
	CreatedByID string    `json:"created_by_id" dynamodbav:"created_by_id"`
	Body        string    `json:"body" dynamodbav:"body"`
	CreatedAt   time.Time `json:"created" dynamodbav:"created_at"`
}

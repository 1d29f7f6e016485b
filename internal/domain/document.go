package domain

import "time"

// Document is the minimal document record this service needs: enough to
// resolve a subscription target, scope it to the actor's team, and render a
// summary.
type Document struct {
	DocumentID   string     `json:"id" dynamodbav:"document_id"`
	TeamID       string     `json:"team_id" dynamodbav:"team_id"`
	CollectionID *string    `json:"collection_id" dynamodbav:"collection_id"`
	Title        string     `json:"title" dynamodbav:"title"`
	Text         string     `json:"text" dynamodbav:"text"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty" dynamodbav:"deleted_at"`
	CreatedAt    time.Time  `json:"created" dynamodbav:"created_at"`
	UpdatedAt    time.Time  `json:"updated" dynamodbav:"updated_at"`
}

type UpdateDocumentRequest struct {
	ID    string  `json:"id" validate:"required,ulid"`
	Title *string `json:"title"`
	Text  *string `json:"text"`
}

package domain

import "time"

// Notification is one user's record of a specific occurrence of an event.
// Which foreign references are set depends on the event kind; every relation
// is independently optional and must be probed through its Relation wrapper
// before use.
type Notification struct {
	NotificationID string     `json:"id" dynamodbav:"notification_id"`
	Event          string     `json:"event" dynamodbav:"event"`
	UserID         string     `json:"user_id" dynamodbav:"user_id"`
	ActorID        string     `json:"actor_id" dynamodbav:"actor_id"`
	CommentID      *string    `json:"comment_id" dynamodbav:"comment_id"`
	DocumentID     *string    `json:"document_id" dynamodbav:"document_id"`
	RevisionID     *string    `json:"revision_id" dynamodbav:"revision_id"`
	CollectionID   *string    `json:"collection_id" dynamodbav:"collection_id"`
	ViewedAt       *time.Time `json:"viewed_at" dynamodbav:"viewed_at"`
	ArchivedAt     *time.Time `json:"archived_at" dynamodbav:"archived_at"`
	CreatedAt      time.Time  `json:"created" dynamodbav:"created_at"`
	UpdatedAt      time.Time  `json:"updated" dynamodbav:"updated_at"`

	// In-memory associations, loaded (or deliberately omitted) by the caller.
	Actor    Relation[User]     `json:"-" dynamodbav:"-"`
	Comment  Relation[Comment]  `json:"-" dynamodbav:"-"`
	Document Relation[Document] `json:"-" dynamodbav:"-"`
}

type UpdateNotificationRequest struct {
	ID       string `json:"id" validate:"required,ulid"`
	Viewed   *bool  `json:"viewed"`
	Archived *bool  `json:"archived"`
}

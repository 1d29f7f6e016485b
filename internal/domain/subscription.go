package domain

import "time"

// Subscription records one user's interest in one event kind on one document.
// At most one live row exists per (user_id, document_id, event); the
// subscriptions store enforces this with a conditional write, not an
// application-level check.
type Subscription struct {
	SubscriptionID string    `json:"id" dynamodbav:"subscription_id"`
	UserID         string    `json:"user_id" dynamodbav:"user_id"`
	DocumentID     string    `json:"document_id" dynamodbav:"document_id"`
	Event          string    `json:"event" dynamodbav:"event"`
	CreatedAt      time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt      time.Time `json:"updated" dynamodbav:"updated_at"`
}

type CreateSubscriptionRequest struct {
	DocumentID string `json:"documentId" validate:"required,ulid"`
	Event      string `json:"event" validate:"required"`
}

type DeleteSubscriptionRequest struct {
	ID string `json:"id" validate:"required,ulid"`
}

// ListSubscriptionsRequest is shared by subscriptions.list and
// subscriptions.info, which take identical parameters.
type ListSubscriptionsRequest struct {
	DocumentID string `json:"documentId" validate:"required,ulid"`
	Event      string `json:"event" validate:"required"`
}

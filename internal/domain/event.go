package domain

import "time"

// Event kinds recognized by the platform. Subscriptions on documents accept
// exactly the documents set; the list grows as new resource kinds gain
// subscribable events.
const (
	EventDocumentsUpdate = "documents.update"

	EventSubscriptionsCreate = "subscriptions.create"
	EventSubscriptionsDelete = "subscriptions.delete"
)

var documentSubscriptionEvents = map[string]struct{}{
	EventDocumentsUpdate: {},
}

// ValidDocumentSubscriptionEvent reports whether event is a subscribable
// event kind for documents.
func ValidDocumentSubscriptionEvent(event string) bool {
	_, ok := documentSubscriptionEvents[event]
	return ok
}

// Event is an append-only audit record written in the same transaction as
// the mutation it describes. It is never rolled back independently of that
// mutation and never updated after creation.
type Event struct {
	EventID    string    `json:"id" dynamodbav:"event_id"`
	Name       string    `json:"name" dynamodbav:"name"`
	ActorID    string    `json:"actor_id" dynamodbav:"actor_id"`
	UserID     string    `json:"user_id" dynamodbav:"user_id"`
	ModelID    string    `json:"model_id" dynamodbav:"model_id"`
	DocumentID string    `json:"document_id" dynamodbav:"document_id"`
	IP         string    `json:"ip" dynamodbav:"ip"`
	CreatedAt  time.Time `json:"created" dynamodbav:"created_at"`
}

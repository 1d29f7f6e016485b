package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/docnotify-api/internal/domain"
	"github.com/docnotify-api/internal/pkg/id"
	"github.com/docnotify-api/internal/pkg/validate"
	"github.com/docnotify-api/internal/policy"
)

type Service interface {
	// List returns the actor's notifications newest first, with the actor
	// and document relations resolved where the rows reference them.
	List(ctx context.Context, actor domain.Actor, offset, limit int) ([]domain.Notification, error)
	// Update sets viewed/archived timestamps. Only the recipient may update.
	Update(ctx context.Context, actor domain.Actor, req domain.UpdateNotificationRequest) (*domain.Notification, error)
	// FanOutDocumentUpdate creates one notification per subscriber of
	// (document, documents.update), skipping the acting user. It returns the
	// number created. Delivery is the downstream dispatcher's job.
	FanOutDocumentUpdate(ctx context.Context, doc *domain.Document, actorID string) (int, error)
}

type notificationStore interface {
	Get(ctx context.Context, notificationID string) (*domain.Notification, error)
	ListByUser(ctx context.Context, userID string, offset, limit int) ([]domain.Notification, error)
	Put(ctx context.Context, n *domain.Notification) error
	Update(ctx context.Context, notificationID string, updates map[string]interface{}) error
}

type subscriptionStore interface {
	ListByDocumentEvent(ctx context.Context, documentID, event string) ([]domain.Subscription, error)
}

type userStore interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
}

type documentStore interface {
	Get(ctx context.Context, documentID string) (*domain.Document, error)
}

type service struct {
	repo          notificationStore
	subscriptions subscriptionStore
	users         userStore
	documents     documentStore
}

type ServiceDeps struct {
	NotificationRepo notificationStore
	SubscriptionRepo subscriptionStore
	UserRepo         userStore
	DocumentRepo     documentStore
}

func NewService(deps ServiceDeps) Service {
	return &service{
		repo:          deps.NotificationRepo,
		subscriptions: deps.SubscriptionRepo,
		users:         deps.UserRepo,
		documents:     deps.DocumentRepo,
	}
}

func (s *service) List(ctx context.Context, actor domain.Actor, offset, limit int) ([]domain.Notification, error) {
	notifications, err := s.repo.ListByUser(ctx, actor.UserID, offset, limit)
	if err != nil {
		return nil, err
	}
	// Relations resolve independently; a missing related row leaves that
	// relation unresolved rather than failing the list.
	actorCache := map[string]*domain.User{}
	docCache := map[string]*domain.Document{}
	for i := range notifications {
		n := &notifications[i]
		if n.ActorID != "" {
			u, ok := actorCache[n.ActorID]
			if !ok {
				u, _ = s.users.Get(ctx, n.ActorID)
				actorCache[n.ActorID] = u
			}
			if u != nil {
				n.Actor = domain.Resolved(u)
			}
		}
		if n.DocumentID != nil {
			d, ok := docCache[*n.DocumentID]
			if !ok {
				d, _ = s.documents.Get(ctx, *n.DocumentID)
				docCache[*n.DocumentID] = d
			}
			if d != nil {
				n.Document = domain.Resolved(d)
			}
		}
	}
	return notifications, nil
}

func (s *service) Update(ctx context.Context, actor domain.Actor, req domain.UpdateNotificationRequest) (*domain.Notification, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%s: %w", err, domain.ErrBadRequest)
	}
	if req.Viewed == nil && req.Archived == nil {
		return nil, fmt.Errorf("nothing to update: %w", domain.ErrBadRequest)
	}
	n, err := s.repo.Get(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(actor, policy.ActionUpdate, policy.ForNotification(n)); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	updates := map[string]interface{}{}
	if req.Viewed != nil {
		if *req.Viewed {
			n.ViewedAt = &now
		} else {
			n.ViewedAt = nil
		}
		updates["viewed_at"] = n.ViewedAt
	}
	if req.Archived != nil {
		if *req.Archived {
			n.ArchivedAt = &now
		} else {
			n.ArchivedAt = nil
		}
		updates["archived_at"] = n.ArchivedAt
	}
	if err := s.repo.Update(ctx, n.NotificationID, updates); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *service) FanOutDocumentUpdate(ctx context.Context, doc *domain.Document, actorID string) (int, error) {
	subs, err := s.subscriptions.ListByDocumentEvent(ctx, doc.DocumentID, domain.EventDocumentsUpdate)
	if err != nil {
		return 0, err
	}
	created := 0
	var firstErr error
	for _, sub := range subs {
		if sub.UserID == actorID {
			continue
		}
		now := time.Now().UTC()
		docID := doc.DocumentID
		n := &domain.Notification{
			NotificationID: id.New(),
			Event:          domain.EventDocumentsUpdate,
			UserID:         sub.UserID,
			ActorID:        actorID,
			DocumentID:     &docID,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := s.repo.Put(ctx, n); err != nil {
			// Keep fanning out; one failed recipient should not starve the
			// rest. The first failure is still reported.
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		created++
	}
	if firstErr != nil && created == 0 {
		return 0, firstErr
	}
	return created, firstErr
}

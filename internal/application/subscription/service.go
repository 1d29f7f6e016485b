// Package subscription implements the command and query layer for document
// subscriptions. Commands participate in an ambient transaction supplied by
// the API surface; the service never commits or rolls back on its own.
package subscription

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/docnotify-api/internal/domain"
	"github.com/docnotify-api/internal/infrastructure/dynamo"
	"github.com/docnotify-api/internal/pkg/id"
	"github.com/docnotify-api/internal/pkg/validate"
	"github.com/docnotify-api/internal/policy"
)

type Service interface {
	// Create registers the actor's interest in an event on a document. It is
	// idempotent: an existing subscription for the same triple is returned
	// as-is. A concurrent create that loses the storage-layer uniqueness
	// check surfaces as domain.ErrConflict from the transaction commit; the
	// caller recovers by re-reading with Info.
	Create(ctx context.Context, tx *dynamo.Tx, actor domain.Actor, req domain.CreateSubscriptionRequest, ip string) (*domain.Subscription, error)
	// Delete removes the subscription by id. Only the owner may delete.
	Delete(ctx context.Context, tx *dynamo.Tx, actor domain.Actor, subscriptionID, ip string) error
	// List returns the actor's subscriptions on (document, event), newest
	// first, sliced by offset/limit.
	List(ctx context.Context, actor domain.Actor, documentID, event string, offset, limit int) ([]domain.Subscription, error)
	// Info returns the actor's single subscription on (document, event), or
	// domain.ErrNotFound. The uniqueness invariant rules out more than one.
	Info(ctx context.Context, actor domain.Actor, documentID, event string) (*domain.Subscription, error)
}

type subscriptionStore interface {
	Get(ctx context.Context, subscriptionID string) (*domain.Subscription, error)
	GetByTriple(ctx context.Context, userID, documentID, event string) (*domain.Subscription, error)
	ListByUser(ctx context.Context, userID, documentID, event string, offset, limit int) ([]domain.Subscription, error)
	PutTx(tx *dynamo.Tx, s *domain.Subscription) error
	DeleteTx(tx *dynamo.Tx, s *domain.Subscription) error
}

type documentStore interface {
	Get(ctx context.Context, documentID string) (*domain.Document, error)
}

type eventStore interface {
	PutTx(tx *dynamo.Tx, e *domain.Event) error
}

type service struct {
	repo      subscriptionStore
	documents documentStore
	events    eventStore
}

type ServiceDeps struct {
	SubscriptionRepo subscriptionStore
	DocumentRepo     documentStore
	EventRepo        eventStore
}

func NewService(deps ServiceDeps) Service {
	return &service{
		repo:      deps.SubscriptionRepo,
		documents: deps.DocumentRepo,
		events:    deps.EventRepo,
	}
}

func (s *service) Create(ctx context.Context, tx *dynamo.Tx, actor domain.Actor, req domain.CreateSubscriptionRequest, ip string) (*domain.Subscription, error) {
	if err := validateDocumentEvent(req.DocumentID, req.Event); err != nil {
		return nil, err
	}
	doc, err := s.resolveDocument(ctx, actor, req.DocumentID)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(actor, policy.ActionSubscribe, policy.ForDocument(doc)); err != nil {
		return nil, err
	}

	// Fast path: the triple already exists, return it unchanged. The
	// conditional marker write below is the real guard; this only avoids a
	// wasted transaction in the common repeated-create case.
	existing, err := s.repo.GetByTriple(ctx, actor.UserID, doc.DocumentID, req.Event)
	if err == nil {
		return existing, nil
	}
	if !isNotFound(err) {
		return nil, err
	}

	now := time.Now().UTC()
	sub := &domain.Subscription{
		SubscriptionID: id.New(),
		UserID:         actor.UserID,
		DocumentID:     doc.DocumentID,
		Event:          req.Event,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.repo.PutTx(tx, sub); err != nil {
		return nil, err
	}
	if err := s.audit(tx, domain.EventSubscriptionsCreate, actor, sub, ip); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *service) Delete(ctx context.Context, tx *dynamo.Tx, actor domain.Actor, subscriptionID, ip string) error {
	if err := validate.Struct(domain.DeleteSubscriptionRequest{ID: subscriptionID}); err != nil {
		return fmt.Errorf("%s: %w", err, domain.ErrBadRequest)
	}
	sub, err := s.repo.Get(ctx, subscriptionID)
	if err != nil {
		return err
	}
	if err := policy.Authorize(actor, policy.ActionDelete, policy.ForSubscription(sub)); err != nil {
		return err
	}
	if err := s.repo.DeleteTx(tx, sub); err != nil {
		return err
	}
	return s.audit(tx, domain.EventSubscriptionsDelete, actor, sub, ip)
}

func (s *service) List(ctx context.Context, actor domain.Actor, documentID, event string, offset, limit int) ([]domain.Subscription, error) {
	if err := validateDocumentEvent(documentID, event); err != nil {
		return nil, err
	}
	doc, err := s.resolveDocument(ctx, actor, documentID)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(actor, policy.ActionRead, policy.ForDocument(doc)); err != nil {
		return nil, err
	}
	return s.repo.ListByUser(ctx, actor.UserID, doc.DocumentID, event, offset, limit)
}

func (s *service) Info(ctx context.Context, actor domain.Actor, documentID, event string) (*domain.Subscription, error) {
	if err := validateDocumentEvent(documentID, event); err != nil {
		return nil, err
	}
	doc, err := s.resolveDocument(ctx, actor, documentID)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(actor, policy.ActionRead, policy.ForDocument(doc)); err != nil {
		return nil, err
	}
	return s.repo.GetByTriple(ctx, actor.UserID, doc.DocumentID, event)
}

// resolveDocument fetches the document scoped to the actor's visibility.
// Absent and invisible are indistinguishable to the caller.
func (s *service) resolveDocument(ctx context.Context, actor domain.Actor, documentID string) (*domain.Document, error) {
	doc, err := s.documents.Get(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if doc.DeletedAt != nil || doc.TeamID != actor.TeamID {
		return nil, fmt.Errorf("document %s: %w", documentID, domain.ErrNotFound)
	}
	return doc, nil
}

func (s *service) audit(tx *dynamo.Tx, name string, actor domain.Actor, sub *domain.Subscription, ip string) error {
	return s.events.PutTx(tx, &domain.Event{
		EventID:    id.New(),
		Name:       name,
		ActorID:    actor.UserID,
		UserID:     sub.UserID,
		ModelID:    sub.SubscriptionID,
		DocumentID: sub.DocumentID,
		IP:         ip,
		CreatedAt:  time.Now().UTC(),
	})
}

// validateDocumentEvent checks identifier shape and the event whitelist
// before any authorization or store access happens.
func validateDocumentEvent(documentID, event string) error {
	if err := validate.Struct(domain.ListSubscriptionsRequest{DocumentID: documentID, Event: event}); err != nil {
		return fmt.Errorf("%s: %w", err, domain.ErrBadRequest)
	}
	if !domain.ValidDocumentSubscriptionEvent(event) {
		return fmt.Errorf("%q is not a valid subscription event for documents: %w", event, domain.ErrBadRequest)
	}
	return nil
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}

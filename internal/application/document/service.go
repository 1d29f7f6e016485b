// Package document carries the slice of document behavior the subscription
// engine needs: actor-scoped resolution and the update command whose audit
// event shares the caller's transaction.
package document

import (
	"context"
	"fmt"
	"time"

	"github.com/docnotify-api/internal/domain"
	"github.com/docnotify-api/internal/infrastructure/dynamo"
	"github.com/docnotify-api/internal/pkg/id"
	"github.com/docnotify-api/internal/pkg/validate"
	"github.com/docnotify-api/internal/policy"
)

type Service interface {
	// Get resolves a document scoped to the actor's visibility. Absent and
	// invisible both read as domain.ErrNotFound.
	Get(ctx context.Context, actor domain.Actor, documentID string) (*domain.Document, error)
	// Update applies a partial edit. The document write and its audit event
	// are staged in the caller's transaction and commit together.
	Update(ctx context.Context, tx *dynamo.Tx, actor domain.Actor, req domain.UpdateDocumentRequest, ip string) (*domain.Document, error)
}

type documentStore interface {
	Get(ctx context.Context, documentID string) (*domain.Document, error)
	UpdateTx(tx *dynamo.Tx, documentID string, updates map[string]interface{}) error
}

type eventStore interface {
	PutTx(tx *dynamo.Tx, e *domain.Event) error
}

type service struct {
	repo   documentStore
	events eventStore
}

type ServiceDeps struct {
	DocumentRepo documentStore
	EventRepo    eventStore
}

func NewService(deps ServiceDeps) Service {
	return &service{repo: deps.DocumentRepo, events: deps.EventRepo}
}

func (s *service) Get(ctx context.Context, actor domain.Actor, documentID string) (*domain.Document, error) {
	doc, err := s.repo.Get(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if doc.DeletedAt != nil || doc.TeamID != actor.TeamID {
		return nil, fmt.Errorf("document %s: %w", documentID, domain.ErrNotFound)
	}
	return doc, nil
}

func (s *service) Update(ctx context.Context, tx *dynamo.Tx, actor domain.Actor, req domain.UpdateDocumentRequest, ip string) (*domain.Document, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%s: %w", err, domain.ErrBadRequest)
	}
	doc, err := s.Get(ctx, actor, req.ID)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(actor, policy.ActionUpdate, policy.ForDocument(doc)); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		doc.Title = *req.Title
		updates["title"] = *req.Title
	}
	if req.Text != nil {
		doc.Text = *req.Text
		updates["text"] = *req.Text
	}
	if len(updates) == 0 {
		return doc, nil
	}
	if err := s.repo.UpdateTx(tx, doc.DocumentID, updates); err != nil {
		return nil, err
	}
	err = s.events.PutTx(tx, &domain.Event{
		EventID:    id.New(),
		Name:       domain.EventDocumentsUpdate,
		ActorID:    actor.UserID,
		ModelID:    doc.DocumentID,
		DocumentID: doc.DocumentID,
		IP:         ip,
		CreatedAt:  time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

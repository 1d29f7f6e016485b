// Package presenter projects domain records into the flat shapes the API
// returns. Presenters are pure: they never fetch relations, they only render
// what the caller resolved.
package presenter

import (
	"context"
	"strings"
	"time"

	"github.com/docnotify-api/internal/domain"
	"github.com/docnotify-api/internal/pkg/palette"
)

// summaryLength caps the derived document summary.
const summaryLength = 280

type Subscription struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	DocumentID string    `json:"documentId"`
	Event      string    `json:"event"`
	CreatedAt  time.Time `json:"createdAt"`
}

func PresentSubscription(s *domain.Subscription) Subscription {
	return Subscription{
		ID:         s.SubscriptionID,
		UserID:     s.UserID,
		DocumentID: s.DocumentID,
		Event:      s.Event,
		CreatedAt:  s.CreatedAt,
	}
}

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	AvatarURL *string   `json:"avatarUrl"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"createdAt"`
}

func PresentUser(u *domain.User, pal palette.Palette) User {
	return User{
		ID:        u.UserID,
		Name:      u.Name,
		AvatarURL: u.AvatarURL,
		Color:     pal.ColorFor(u.UserID),
		CreatedAt: u.CreatedAt,
	}
}

type Comment struct {
	ID          string    `json:"id"`
	DocumentID  string    `json:"documentId"`
	CreatedByID string    `json:"createdById"`
	Body        string    `json:"body"`
	CreatedAt   time.Time `json:"createdAt"`
}

func PresentComment(c *domain.Comment) Comment {
	return Comment{
		ID:          c.CommentID,
		DocumentID:  c.DocumentID,
		CreatedByID: c.CreatedByID,
		Body:        c.Body,
		CreatedAt:   c.CreatedAt,
	}
}

type Document struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Summary   string    `json:"summary"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PresentDocument derives the summary from the document text. It takes a
// context because summary derivation may grow a lookup; callers already
// treat it as fallible.
func PresentDocument(ctx context.Context, d *domain.Document) (Document, error) {
	return Document{
		ID:        d.DocumentID,
		Title:     d.Title,
		Summary:   summarize(d.Text),
		UpdatedAt: d.UpdatedAt,
	}, nil
}

func summarize(text string) string {
	text = strings.TrimSpace(text)
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i]
	}
	if len(text) > summaryLength {
		text = text[:summaryLength]
	}
	return text
}

type Notification struct {
	ID           string     `json:"id"`
	Event        string     `json:"event"`
	UserID       string     `json:"userId"`
	ActorID      string     `json:"actorId"`
	CommentID    *string    `json:"commentId"`
	DocumentID   *string    `json:"documentId"`
	RevisionID   *string    `json:"revisionId"`
	CollectionID *string    `json:"collectionId"`
	ViewedAt     *time.Time `json:"viewedAt"`
	ArchivedAt   *time.Time `json:"archivedAt"`
	CreatedAt    time.Time  `json:"createdAt"`
	Actor        *User      `json:"actor,omitempty"`
	Comment      *Comment   `json:"comment,omitempty"`
	Document     *Document  `json:"document,omitempty"`
}

// PresentNotification renders every scalar unconditionally and each relation
// only when the caller resolved it. An unresolved relation never fails the
// projection.
func PresentNotification(ctx context.Context, n *domain.Notification, pal palette.Palette) (Notification, error) {
	out := Notification{
		ID:           n.NotificationID,
		Event:        n.Event,
		UserID:       n.UserID,
		ActorID:      n.ActorID,
		CommentID:    n.CommentID,
		DocumentID:   n.DocumentID,
		RevisionID:   n.RevisionID,
		CollectionID: n.CollectionID,
		ViewedAt:     n.ViewedAt,
		ArchivedAt:   n.ArchivedAt,
		CreatedAt:    n.CreatedAt,
	}
	if u, ok := n.Actor.Value(); ok {
		actor := PresentUser(u, pal)
		out.Actor = &actor
	}
	if c, ok := n.Comment.Value(); ok {
		comment := PresentComment(c)
		out.Comment = &comment
	}
	if d, ok := n.Document.Value(); ok {
		doc, err := PresentDocument(ctx, d)
		if err != nil {
			return Notification{}, err
		}
		out.Document = &doc
	}
	return out, nil
}

package presenter

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/docnotify-api/internal/domain"
	"github.com/docnotify-api/internal/pkg/palette"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresentNotification_AllRelationsAbsent(t *testing.T) {
	n := &domain.Notification{
		NotificationID: "n1",
		Event:          domain.EventDocumentsUpdate,
		UserID:         "userA",
		ActorID:        "userB",
		CreatedAt:      time.Now(),
	}

	out, err := PresentNotification(context.Background(), n, palette.Default())

	require.NoError(t, err)
	assert.Equal(t, "n1", out.ID)
	assert.Equal(t, "userB", out.ActorID)
	assert.Nil(t, out.Actor)
	assert.Nil(t, out.Comment)
	assert.Nil(t, out.Document)
	assert.Nil(t, out.ViewedAt)
	assert.Nil(t, out.ArchivedAt)
}

func TestPresentNotification_OnlyDocumentResolved(t *testing.T) {
	docID := "doc1"
	n := &domain.Notification{
		NotificationID: "n1",
		Event:          domain.EventDocumentsUpdate,
		UserID:         "userA",
		ActorID:        "userB",
		DocumentID:     &docID,
		Document: domain.Resolved(&domain.Document{
			DocumentID: docID,
			Title:      "Welcome",
			Text:       "First line.\nSecond line is dropped.",
		}),
	}

	out, err := PresentNotification(context.Background(), n, palette.Default())

	require.NoError(t, err)
	require.NotNil(t, out.Document)
	assert.Equal(t, "Welcome", out.Document.Title)
	assert.Equal(t, "First line.", out.Document.Summary)
	assert.Nil(t, out.Actor)
	assert.Nil(t, out.Comment)
}

func TestPresentNotification_ResolvedToNilStaysAbsent(t *testing.T) {
	n := &domain.Notification{
		NotificationID: "n1",
		Actor:          domain.Resolved[domain.User](nil),
	}

	out, err := PresentNotification(context.Background(), n, palette.Default())

	require.NoError(t, err)
	assert.Nil(t, out.Actor)
}

func TestPresentDocument_SummaryCapped(t *testing.T) {
	long := strings.Repeat("a", 500)
	out, err := PresentDocument(context.Background(), &domain.Document{DocumentID: "d1", Text: long})

	require.NoError(t, err)
	assert.Len(t, out.Summary, 280)
}

func TestPresentUser_StableColor(t *testing.T) {
	u := &domain.User{UserID: "userA", Name: "Alice"}
	pal := palette.Default()

	first := PresentUser(u, pal)
	second := PresentUser(u, pal)

	assert.NotEmpty(t, first.Color)
	assert.Equal(t, first.Color, second.Color)
}

func TestPresentSubscription(t *testing.T) {
	now := time.Now()
	s := &domain.Subscription{
		SubscriptionID: "s1",
		UserID:         "userA",
		DocumentID:     "doc1",
		Event:          domain.EventDocumentsUpdate,
		CreatedAt:      now,
	}

	out := PresentSubscription(s)

	assert.Equal(t, "s1", out.ID)
	assert.Equal(t, "userA", out.UserID)
	assert.Equal(t, "doc1", out.DocumentID)
	assert.Equal(t, domain.EventDocumentsUpdate, out.Event)
	assert.Equal(t, now, out.CreatedAt)
}

package policy

import (
	"errors"
	"testing"
	"time"

	"github.com/docnotify-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthorize_DocumentSameTeam(t *testing.T) {
	doc := &domain.Document{DocumentID: "doc1", TeamID: "team1"}
	actor := domain.Actor{UserID: "u1", TeamID: "team1"}

	assert.NoError(t, Authorize(actor, ActionRead, ForDocument(doc)))
	assert.NoError(t, Authorize(actor, ActionSubscribe, ForDocument(doc)))
	assert.NoError(t, Authorize(actor, ActionUpdate, ForDocument(doc)))
}

func TestAuthorize_DocumentOtherTeam(t *testing.T) {
	doc := &domain.Document{DocumentID: "doc1", TeamID: "team1"}
	actor := domain.Actor{UserID: "u2", TeamID: "team2"}

	err := Authorize(actor, ActionRead, ForDocument(doc))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrForbidden))
}

func TestAuthorize_DeletedDocumentDeniesAll(t *testing.T) {
	now := time.Now()
	doc := &domain.Document{DocumentID: "doc1", TeamID: "team1", DeletedAt: &now}
	actor := domain.Actor{UserID: "u1", TeamID: "team1"}

	for _, action := range []Action{ActionRead, ActionSubscribe, ActionUpdate} {
		err := Authorize(actor, action, ForDocument(doc))
		assert.True(t, errors.Is(err, domain.ErrForbidden), "action %s", action)
	}
}

func TestAuthorize_UndeclaredActionDenies(t *testing.T) {
	// Documents declare no delete capability here; denial must not depend on
	// the rule set containing an explicit deny.
	doc := &domain.Document{DocumentID: "doc1", TeamID: "team1"}
	actor := domain.Actor{UserID: "u1", TeamID: "team1"}

	err := Authorize(actor, ActionDelete, ForDocument(doc))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrForbidden))
}

func TestAuthorize_SubscriptionOwnerOnly(t *testing.T) {
	sub := &domain.Subscription{SubscriptionID: "s1", UserID: "u1"}
	owner := domain.Actor{UserID: "u1", TeamID: "team1"}
	other := domain.Actor{UserID: "u2", TeamID: "team1"}

	assert.NoError(t, Authorize(owner, ActionDelete, ForSubscription(sub)))
	err := Authorize(other, ActionDelete, ForSubscription(sub))
	assert.True(t, errors.Is(err, domain.ErrForbidden))
}

func TestAuthorize_NotificationRecipientOnly(t *testing.T) {
	n := &domain.Notification{NotificationID: "n1", UserID: "u1"}
	recipient := domain.Actor{UserID: "u1"}
	other := domain.Actor{UserID: "u2"}

	assert.NoError(t, Authorize(recipient, ActionUpdate, ForNotification(n)))
	err := Authorize(other, ActionUpdate, ForNotification(n))
	assert.True(t, errors.Is(err, domain.ErrForbidden))
}

func TestAuthorize_NilRecordDenies(t *testing.T) {
	actor := domain.Actor{UserID: "u1", TeamID: "team1"}

	err := Authorize(actor, ActionRead, ForDocument(nil))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrForbidden))

	err = Authorize(actor, ActionRead, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

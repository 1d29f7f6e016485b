package notification

import (
	"context"
	"errors"
	"testing"

	"github.com/docnotify-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockNotificationStore struct{ mock.Mock }

func (m *mockNotificationStore) Get(ctx context.Context, notificationID string) (*domain.Notification, error) {
	args := m.Called(ctx, notificationID)
	if n, _ := args.Get(0).(*domain.Notification); n != nil {
		return n, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockNotificationStore) ListByUser(ctx context.Context, userID string, offset, limit int) ([]domain.Notification, error) {
	args := m.Called(ctx, userID, offset, limit)
	return args.Get(0).([]domain.Notification), args.Error(1)
}
func (m *mockNotificationStore) Put(ctx context.Context, n *domain.Notification) error {
	return m.Called(ctx, n).Error(0)
}
func (m *mockNotificationStore) Update(ctx context.Context, notificationID string, updates map[string]interface{}) error {
	return m.Called(ctx, notificationID, updates).Error(0)
}

type mockSubscriptionStore struct{ mock.Mock }

func (m *mockSubscriptionStore) ListByDocumentEvent(ctx context.Context, documentID, event string) ([]domain.Subscription, error) {
	args := m.Called(ctx, documentID, event)
	return args.Get(0).([]domain.Subscription), args.Error(1)
}

type mockUserStore struct{ mock.Mock }

func (m *mockUserStore) Get(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockDocumentStore struct{ mock.Mock }

func (m *mockDocumentStore) Get(ctx context.Context, documentID string) (*domain.Document, error) {
	args := m.Called(ctx, documentID)
	if d, _ := args.Get(0).(*domain.Document); d != nil {
		return d, args.Error(1)
	}
	return nil, args.Error(1)
}

// --- helpers ---

const (
	notifID = "01HZXK5W8441Q2M3N4P5Q6R7V1"
	docID   = "01HZXK5W8441Q2M3N4P5Q6R7S8"
)

func newService(ns *mockNotificationStore, ss *mockSubscriptionStore, us *mockUserStore, ds *mockDocumentStore) Service {
	return NewService(ServiceDeps{
		NotificationRepo: ns,
		SubscriptionRepo: ss,
		UserRepo:         us,
		DocumentRepo:     ds,
	})
}

func boolPtr(b bool) *bool { return &b }

// --- List ---

func TestList_ResolvesRelationsIndependently(t *testing.T) {
	d := docID
	rows := []domain.Notification{
		{NotificationID: "n1", UserID: "userA", ActorID: "userB", DocumentID: &d, Event: domain.EventDocumentsUpdate},
		{NotificationID: "n2", UserID: "userA", ActorID: "ghost", Event: domain.EventDocumentsUpdate},
	}
	ns := &mockNotificationStore{}
	us := &mockUserStore{}
	ds := &mockDocumentStore{}
	ns.On("ListByUser", mock.Anything, "userA", 0, 15).Return(rows, nil)
	us.On("Get", mock.Anything, "userB").Return(&domain.User{UserID: "userB", Name: "Bea"}, nil)
	us.On("Get", mock.Anything, "ghost").Return(nil, domain.ErrNotFound)
	ds.On("Get", mock.Anything, docID).Return(&domain.Document{DocumentID: docID, Title: "Welcome"}, nil)

	svc := newService(ns, &mockSubscriptionStore{}, us, ds)
	got, err := svc.List(context.Background(), domain.Actor{UserID: "userA"}, 0, 15)

	require.NoError(t, err)
	require.Len(t, got, 2)

	actor, ok := got[0].Actor.Value()
	require.True(t, ok)
	assert.Equal(t, "Bea", actor.Name)
	doc, ok := got[0].Document.Value()
	require.True(t, ok)
	assert.Equal(t, "Welcome", doc.Title)

	// The second row's actor no longer exists: relation stays unresolved,
	// the list call itself does not fail.
	_, ok = got[1].Actor.Value()
	assert.False(t, ok)
	_, ok = got[1].Document.Value()
	assert.False(t, ok)
}

// --- Update ---

func TestUpdate_MarkViewed(t *testing.T) {
	n := &domain.Notification{NotificationID: notifID, UserID: "userA"}
	ns := &mockNotificationStore{}
	ns.On("Get", mock.Anything, notifID).Return(n, nil)
	ns.On("Update", mock.Anything, notifID, mock.Anything).Return(nil)

	svc := newService(ns, &mockSubscriptionStore{}, &mockUserStore{}, &mockDocumentStore{})
	got, err := svc.Update(context.Background(), domain.Actor{UserID: "userA"}, domain.UpdateNotificationRequest{ID: notifID, Viewed: boolPtr(true)})

	require.NoError(t, err)
	assert.NotNil(t, got.ViewedAt)
	assert.Nil(t, got.ArchivedAt)
	ns.AssertExpectations(t)
}

func TestUpdate_OtherRecipient_Forbidden(t *testing.T) {
	n := &domain.Notification{NotificationID: notifID, UserID: "userB"}
	ns := &mockNotificationStore{}
	ns.On("Get", mock.Anything, notifID).Return(n, nil)

	svc := newService(ns, &mockSubscriptionStore{}, &mockUserStore{}, &mockDocumentStore{})
	_, err := svc.Update(context.Background(), domain.Actor{UserID: "userA"}, domain.UpdateNotificationRequest{ID: notifID, Archived: boolPtr(true)})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrForbidden))
	ns.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdate_NoFields_BadRequest(t *testing.T) {
	svc := newService(&mockNotificationStore{}, &mockSubscriptionStore{}, &mockUserStore{}, &mockDocumentStore{})
	_, err := svc.Update(context.Background(), domain.Actor{UserID: "userA"}, domain.UpdateNotificationRequest{ID: notifID})
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

// --- FanOutDocumentUpdate ---

func TestFanOut_SkipsActor(t *testing.T) {
	subs := []domain.Subscription{
		{SubscriptionID: "s1", UserID: "userA", DocumentID: docID, Event: domain.EventDocumentsUpdate},
		{SubscriptionID: "s2", UserID: "userB", DocumentID: docID, Event: domain.EventDocumentsUpdate},
		{SubscriptionID: "s3", UserID: "userC", DocumentID: docID, Event: domain.EventDocumentsUpdate},
	}
	ns := &mockNotificationStore{}
	ss := &mockSubscriptionStore{}
	ss.On("ListByDocumentEvent", mock.Anything, docID, domain.EventDocumentsUpdate).Return(subs, nil)
	ns.On("Put", mock.Anything, mock.AnythingOfType("*domain.Notification")).Return(nil)

	svc := newService(ns, ss, &mockUserStore{}, &mockDocumentStore{})
	created, err := svc.FanOutDocumentUpdate(context.Background(), &domain.Document{DocumentID: docID, TeamID: "team1"}, "userB")

	require.NoError(t, err)
	assert.Equal(t, 2, created)
	ns.AssertNumberOfCalls(t, "Put", 2)
}

func TestFanOut_NoSubscribers(t *testing.T) {
	ss := &mockSubscriptionStore{}
	ss.On("ListByDocumentEvent", mock.Anything, docID, domain.EventDocumentsUpdate).Return([]domain.Subscription{}, nil)

	svc := newService(&mockNotificationStore{}, ss, &mockUserStore{}, &mockDocumentStore{})
	created, err := svc.FanOutDocumentUpdate(context.Background(), &domain.Document{DocumentID: docID}, "userB")

	require.NoError(t, err)
	assert.Equal(t, 0, created)
}

// Package policy gates every mutation and read behind a single Authorize
// call. Targets declare their own action set; call sites never switch on
// concrete types, so new target kinds slot in without touching callers.
package policy

import (
	"fmt"

	"github.com/docnotify-api/internal/domain"
)

// Action names a capability an actor may hold on a target.
type Action string

const (
	ActionRead      Action = "read"
	ActionSubscribe Action = "subscribe"
	ActionUpdate    Action = "update"
	ActionDelete    Action = "delete"
)

// Rule decides whether an actor may perform one declared action.
type Rule func(actor domain.Actor) bool

// Target is any record wrapped with its declared capability set.
type Target interface {
	Rules() map[Action]Rule
}

// Authorize allows the action when the target declares it and its rule
// passes. An undeclared action denies: targets opt in to capabilities, they
// do not opt out.
func Authorize(actor domain.Actor, action Action, target Target) error {
	if target == nil {
		return fmt.Errorf("authorize %s: no target: %w", action, domain.ErrNotFound)
	}
	rule, ok := target.Rules()[action]
	if !ok || !rule(actor) {
		return fmt.Errorf("authorize %s: %w", action, domain.ErrForbidden)
	}
	return nil
}

type documentTarget struct {
	doc *domain.Document
}

// ForDocument wraps a document with its capability set. Visibility is
// team-scoped; a deleted document supports no actions at all.
func ForDocument(d *domain.Document) Target {
	return documentTarget{doc: d}
}

func (t documentTarget) Rules() map[Action]Rule {
	member := func(a domain.Actor) bool {
		return t.doc != nil && t.doc.DeletedAt == nil && t.doc.TeamID == a.TeamID
	}
	return map[Action]Rule{
		ActionRead:      member,
		ActionSubscribe: member,
		ActionUpdate:    member,
	}
}

type subscriptionTarget struct {
	sub *domain.Subscription
}

// ForSubscription wraps a subscription with its capability set. Only the
// owning user may inspect or delete it.
func ForSubscription(s *domain.Subscription) Target {
	return subscriptionTarget{sub: s}
}

func (t subscriptionTarget) Rules() map[Action]Rule {
	owner := func(a domain.Actor) bool {
		return t.sub != nil && t.sub.UserID == a.UserID
	}
	return map[Action]Rule{
		ActionRead:   owner,
		ActionDelete: owner,
	}
}

type notificationTarget struct {
	n *domain.Notification
}

// ForNotification wraps a notification with its capability set. Notifications
// are private to their recipient.
func ForNotification(n *domain.Notification) Target {
	return notificationTarget{n: n}
}

func (t notificationTarget) Rules() map[Action]Rule {
	recipient := func(a domain.Actor) bool {
		return t.n != nil && t.n.UserID == a.UserID
	}
	return map[Action]Rule{
		ActionRead:   recipient,
		ActionUpdate: recipient,
	}
}

package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/docnotify-api/internal/application/subscription"
	"github.com/docnotify-api/internal/domain"
	"github.com/docnotify-api/internal/infrastructure/dynamo"
	"github.com/docnotify-api/internal/infrastructure/sns"
	"github.com/docnotify-api/internal/presenter"
	"github.com/docnotify-api/internal/transport/http/middleware"
)

// SubscriptionHandler handles the subscriptions.* endpoints.
type SubscriptionHandler struct {
	svc    subscription.Service
	runner *dynamo.Runner
	pub    sns.Publisher
}

// NewSubscriptionHandler wires the handler. pub may be nil, in which case
// domain events are not published.
func NewSubscriptionHandler(svc subscription.Service, runner *dynamo.Runner, pub sns.Publisher) *SubscriptionHandler {
	return &SubscriptionHandler{svc: svc, runner: runner, pub: pub}
}

func (h *SubscriptionHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req domain.CreateSubscriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	ip := middleware.RealIP(r)

	var sub *domain.Subscription
	err := h.runner.WithTransaction(r.Context(), func(tx *dynamo.Tx) error {
		var err error
		sub, err = h.svc.Create(r.Context(), tx, actor, req, ip)
		return err
	})
	if errors.Is(err, domain.ErrConflict) {
		// A concurrent request won the uniqueness race. The subscription now
		// exists, which is what the caller asked for. Re-read and return it.
		sub, err = h.svc.Info(r.Context(), actor, req.DocumentID, req.Event)
	}
	if err != nil {
		httpError(w, err)
		return
	}
	h.publish(r, domain.EventSubscriptionsCreate, sub)
	writeJSON(w, http.StatusOK, DataEnvelope{Data: presenter.PresentSubscription(sub)})
}

func (h *SubscriptionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req domain.DeleteSubscriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	ip := middleware.RealIP(r)

	err := h.runner.WithTransaction(r.Context(), func(tx *dynamo.Tx) error {
		return h.svc.Delete(r.Context(), tx, actor, req.ID, ip)
	})
	if err != nil {
		httpError(w, err)
		return
	}
	h.publish(r, domain.EventSubscriptionsDelete, map[string]string{"id": req.ID})
	writeJSON(w, http.StatusOK, SuccessEnvelope{Success: true})
}

func (h *SubscriptionHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req domain.ListSubscriptionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	page := middleware.PageFromContext(r.Context())

	subs, err := h.svc.List(r.Context(), actor, req.DocumentID, req.Event, page.Offset, page.Limit)
	if err != nil {
		httpError(w, err)
		return
	}
	out := make([]presenter.Subscription, len(subs))
	for i := range subs {
		out[i] = presenter.PresentSubscription(&subs[i])
	}
	writeJSON(w, http.StatusOK, ListEnvelope{
		Pagination: Pagination{Offset: page.Offset, Limit: page.Limit},
		Data:       out,
	})
}

func (h *SubscriptionHandler) Info(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req domain.ListSubscriptionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	sub, err := h.svc.Info(r.Context(), actor, req.DocumentID, req.Event)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, DataEnvelope{Data: presenter.PresentSubscription(sub)})
}

// publish sends the domain event to SNS after commit. Failures are
// best-effort and do not affect the response.
func (h *SubscriptionHandler) publish(r *http.Request, name string, payload interface{}) {
	if h.pub == nil {
		return
	}
	_ = h.pub.Publish(r.Context(), name, payload)
}

package handler

import (
	"encoding/json"
	"net/http"

	"github.com/docnotify-api/internal/application/notification"
	"github.com/docnotify-api/internal/domain"
	"github.com/docnotify-api/internal/pkg/palette"
	"github.com/docnotify-api/internal/presenter"
	"github.com/docnotify-api/internal/transport/http/middleware"
)

// NotificationHandler handles the notifications.* endpoints.
type NotificationHandler struct {
	svc notification.Service
	pal palette.Palette
}

func NewNotificationHandler(svc notification.Service, pal palette.Palette) *NotificationHandler {
	return &NotificationHandler{svc: svc, pal: pal}
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	page := middleware.PageFromContext(r.Context())

	notifs, err := h.svc.List(r.Context(), actor, page.Offset, page.Limit)
	if err != nil {
		httpError(w, err)
		return
	}
	out := make([]presenter.Notification, 0, len(notifs))
	for i := range notifs {
		n, err := presenter.PresentNotification(r.Context(), &notifs[i], h.pal)
		if err != nil {
			httpError(w, err)
			return
		}
		out = append(out, n)
	}
	writeJSON(w, http.StatusOK, ListEnvelope{
		Pagination: Pagination{Offset: page.Offset, Limit: page.Limit},
		Data:       out,
	})
}

func (h *NotificationHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req domain.UpdateNotificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	n, err := h.svc.Update(r.Context(), actor, req)
	if err != nil {
		httpError(w, err)
		return
	}
	out, err := presenter.PresentNotification(r.Context(), n, h.pal)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, DataEnvelope{Data: out})
}

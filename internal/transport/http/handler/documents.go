package handler

import (
	"encoding/json"
	"net/http"

	"github.com/docnotify-api/internal/application/document"
	"github.com/docnotify-api/internal/application/notification"
	"github.com/docnotify-api/internal/domain"
	"github.com/docnotify-api/internal/infrastructure/dynamo"
	"github.com/docnotify-api/internal/infrastructure/sns"
	"github.com/docnotify-api/internal/presenter"
	"github.com/docnotify-api/internal/transport/http/middleware"
)

// DocumentHandler handles the documents.* endpoints.
type DocumentHandler struct {
	docs   document.Service
	notifs notification.Service
	runner *dynamo.Runner
	pub    sns.Publisher
}

func NewDocumentHandler(docs document.Service, notifs notification.Service, runner *dynamo.Runner, pub sns.Publisher) *DocumentHandler {
	return &DocumentHandler{docs: docs, notifs: notifs, runner: runner, pub: pub}
}

func (h *DocumentHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req domain.UpdateDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	ip := middleware.RealIP(r)

	var doc *domain.Document
	err := h.runner.WithTransaction(r.Context(), func(tx *dynamo.Tx) error {
		var err error
		doc, err = h.docs.Update(r.Context(), tx, actor, req, ip)
		return err
	})
	if err != nil {
		httpError(w, err)
		return
	}

	// Fan out after the edit is durable. Notification rows are independent
	// of the document write, so a partial fan-out does not roll it back.
	if _, err := h.notifs.FanOutDocumentUpdate(r.Context(), doc, actor.UserID); err != nil {
		httpError(w, err)
		return
	}
	if h.pub != nil {
		_ = h.pub.Publish(r.Context(), domain.EventDocumentsUpdate, map[string]string{
			"documentId": doc.DocumentID,
			"actorId":    actor.UserID,
		})
	}

	out, err := presenter.PresentDocument(r.Context(), doc)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, DataEnvelope{Data: out})
}

package http

import (
	"net/http"

	"github.com/docnotify-api/internal/application/document"
	"github.com/docnotify-api/internal/application/notification"
	"github.com/docnotify-api/internal/application/subscription"
	"github.com/docnotify-api/internal/config"
	"github.com/docnotify-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/docnotify-api/internal/infrastructure/jwt"
	"github.com/docnotify-api/internal/infrastructure/sns"
	"github.com/docnotify-api/internal/pkg/palette"
	"github.com/docnotify-api/internal/transport/http/handler"
	appmiddleware "github.com/docnotify-api/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	SubscriptionRepo *dynamo.SubscriptionRepo
	NotificationRepo *dynamo.NotificationRepo
	DocumentRepo     *dynamo.DocumentRepo
	UserRepo         *dynamo.UserRepo
	EventRepo        *dynamo.EventRepo
	Runner           *dynamo.Runner
	Publisher        sns.Publisher
	JWTProvider      *jwtinfra.Provider
}

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	var authMw func(http.Handler) http.Handler
	if deps.JWTProvider != nil {
		authMw = appmiddleware.Auth(deps.JWTProvider)
	} else {
		authMw = func(next http.Handler) http.Handler { return next }
	}

	// 10 requests/second, burst of 20 — applied to write endpoints.
	writeRL := appmiddleware.NewRateLimiter(rate.Limit(10), 20)

	subSvc := subscription.NewService(subscription.ServiceDeps{
		SubscriptionRepo: deps.SubscriptionRepo,
		DocumentRepo:     deps.DocumentRepo,
		EventRepo:        deps.EventRepo,
	})
	notifSvc := notification.NewService(notification.ServiceDeps{
		NotificationRepo: deps.NotificationRepo,
		SubscriptionRepo: deps.SubscriptionRepo,
		UserRepo:         deps.UserRepo,
		DocumentRepo:     deps.DocumentRepo,
	})
	docSvc := document.NewService(document.ServiceDeps{
		DocumentRepo: deps.DocumentRepo,
		EventRepo:    deps.EventRepo,
	})

	pal := palette.Default()

	healthH := handler.NewHealthHandler()
	subH := handler.NewSubscriptionHandler(subSvc, deps.Runner, deps.Publisher)
	notifH := handler.NewNotificationHandler(notifSvc, pal)
	docH := handler.NewDocumentHandler(docSvc, notifSvc, deps.Runner, deps.Publisher)

	r.Route("/v1", func(r chi.Router) {
		// ── Public routes (no auth) ──────────────────────────────────────────
		r.Get("/health-check", healthH.Check)
		r.Post("/health-check", healthH.Check)

		// ── Authenticated routes ─────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(authMw)

			r.With(writeRL.Limit).Post("/subscriptions.create", subH.Create)
			r.With(writeRL.Limit).Post("/subscriptions.delete", subH.Delete)
			r.With(appmiddleware.Pagination).Post("/subscriptions.list", subH.List)
			r.Post("/subscriptions.info", subH.Info)

			r.With(appmiddleware.Pagination).Post("/notifications.list", notifH.List)
			r.With(writeRL.Limit).Post("/notifications.update", notifH.Update)

			r.With(writeRL.Limit).Post("/documents.update", docH.Update)
		})
	})

	return r
}

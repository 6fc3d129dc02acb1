package api

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/OpsDesk-io/opsdesk/internal/auth"
	"github.com/OpsDesk-io/opsdesk/internal/config"
	"github.com/OpsDesk-io/opsdesk/internal/storage"
	"github.com/OpsDesk-io/opsdesk/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Api wires the HTTP layer to its collaborators. Everything is constructed
// once at startup and read-only afterwards.
type Api struct {
	Config  *config.Config
	Store   *store.Store
	Tokens  *auth.TokenManager
	Storage storage.Storage
	Router  *chi.Mux
}

// NewApi creates the API and mounts all routes.
func NewApi(cfg *config.Config, st *store.Store, tokens *auth.TokenManager, docs storage.Storage) (*Api, error) {
	if cfg.APIPort == 0 {
		return nil, errors.New("must have at least a port to start API")
	}

	api := &Api{
		Config:  cfg,
		Store:   st,
		Tokens:  tokens,
		Storage: docs,
		Router:  chi.NewRouter(),
	}
	api.setupRoutes()
	return api, nil
}

func (api *Api) setupRoutes() {
	r := api.Router

	// CORS first so the SPA's preflights never hit auth.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   api.Config.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/heartbeat"))

	// Public routes. Login and register share a per-IP rate limit.
	r.Group(func(r chi.Router) {
		r.Use(RateLimit(api.Config.LoginRateLimit, api.Config.LoginRateBurst))
		r.Post("/auth/register", api.RegisterHandler)
		r.Post("/auth/login", api.LoginHandler)
	})

	// Protected routes.
	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware(api.Tokens, api.Store))

		r.Get("/users/me", api.MeHandler)
		r.Put("/users/me/password", api.ChangePasswordHandler)
		r.Get("/users/me/settings", api.GetSettingsHandler)
		r.Put("/users/me/settings", api.UpdateSettingsHandler)

		r.Route("/clients", func(r chi.Router) {
			r.Get("/", api.ListClientsHandler)
			r.Post("/", api.CreateClientHandler)
			r.Get("/{clientID}", api.GetClientHandler)
			r.Put("/{clientID}", api.UpdateClientHandler)
			r.Delete("/{clientID}", api.DeleteClientHandler)

			r.Route("/{clientID}/documents", func(r chi.Router) {
				r.Get("/", api.ListDocumentsHandler)
				r.Post("/", api.UploadDocumentHandler)
				r.Get("/{docID}", api.DownloadDocumentHandler)
				r.Delete("/{docID}", api.DeleteDocumentHandler)
			})
		})

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", api.ListProjectsHandler)
			r.Post("/", api.CreateProjectHandler)
			r.Get("/{projectID}", api.GetProjectHandler)
			r.Put("/{projectID}", api.UpdateProjectHandler)
			r.Delete("/{projectID}", api.DeleteProjectHandler)
		})

		r.Route("/services", func(r chi.Router) {
			r.Get("/", api.ListServicesHandler)
			r.Post("/", api.CreateServiceHandler)
			r.Get("/{serviceID}", api.GetServiceHandler)
			r.Put("/{serviceID}", api.UpdateServiceHandler)
			r.Delete("/{serviceID}", api.DeleteServiceHandler)
		})

		r.Route("/hosting", func(r chi.Router) {
			r.Get("/", api.ListHostingHandler)
			r.Post("/", api.CreateHostingHandler)
			r.Get("/{hostingID}", api.GetHostingHandler)
			r.Put("/{hostingID}", api.UpdateHostingHandler)
			r.Delete("/{hostingID}", api.DeleteHostingHandler)
		})

		r.Route("/calendar", func(r chi.Router) {
			r.Get("/", api.ListEventsHandler)
			r.Post("/", api.CreateEventHandler)
			r.Get("/{eventID}", api.GetEventHandler)
			r.Put("/{eventID}", api.UpdateEventHandler)
			r.Delete("/{eventID}", api.DeleteEventHandler)
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", api.ListNotificationsHandler)
			r.Get("/unread-count", api.UnreadCountHandler)
			r.Put("/read", api.MarkAllNotificationsReadHandler)
			r.Put("/{notificationID}/read", api.MarkNotificationReadHandler)
			r.Delete("/{notificationID}", api.DeleteNotificationHandler)

			r.With(auth.RequireAdmin).Post("/broadcast", api.BroadcastNotificationHandler)
		})

		// Admin-only user management.
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAdmin)
			r.Get("/users", api.ListUsersHandler)
			r.Post("/users", api.CreateUserHandler)
			r.Delete("/users/{userID}", api.DeleteUserHandler)
		})
	})
}

// Serve runs the HTTP server until ctx is cancelled, then shuts down
// gracefully.
func (api *Api) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf("0.0.0.0:%d", api.Config.APIPort),
		Handler:           api.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting API server on %s", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/taskify-api/internal/api"
	"github.com/phrazzld/taskify-api/internal/api/middleware"
	"github.com/phrazzld/taskify-api/internal/api/shared"
	"github.com/phrazzld/taskify-api/internal/platform/storage"
)

// routeHandlers groups what setupRouter mounts.
type routeHandlers struct {
	auth       *api.AuthHandler
	tasks      *api.TaskHandler
	users      *api.UserHandler
	middleware *middleware.AuthMiddleware
	metrics    *middleware.Metrics
}

// setupRouter creates the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	h := app.handlers()
	authn := h.middleware

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.TraceMiddleware(app.logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.CORS(app.config.Server.ClientURL))
	r.Use(h.metrics.Middleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithData(w, r, http.StatusOK, "Taskify server is running", nil)
	})
	r.Method(http.MethodGet, "/metrics", h.metrics.Handler())

	uploads := http.StripPrefix(storage.PublicPrefix, http.FileServer(http.Dir(app.uploadDir)))
	r.Method(http.MethodGet, storage.PublicPrefix+"/*", uploads)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.auth.Login)
			r.Post("/register", h.auth.Register)
			r.Post("/refresh-token", h.auth.RefreshToken)
			r.Post("/forgot-password", h.auth.ForgotPassword)
			r.Post("/reset-password", h.auth.ResetPassword)

			r.Group(func(r chi.Router) {
				r.Use(authn.Authenticate)
				r.With(authn.Require(middleware.ResourceProfile, middleware.ActionUpdate)).
					Post("/change-password", h.auth.ChangePassword)
				r.With(authn.Require(middleware.ResourceProfile, middleware.ActionRead)).
					Get("/profile", h.auth.GetMyProfile)
				r.With(authn.Require(middleware.ResourceProfile, middleware.ActionUpdate)).
					Put("/profile", h.auth.UpdateMyProfile)
			})
		})

		r.Route("/tasks", func(r chi.Router) {
			r.Use(authn.Authenticate)
			r.With(authn.Require(middleware.ResourceTask, middleware.ActionCreate)).Post("/", h.tasks.Create)
			r.With(authn.Require(middleware.ResourceTask, middleware.ActionRead)).Get("/", h.tasks.List)
			r.With(authn.Require(middleware.ResourceTask, middleware.ActionRead)).
				Get("/statistics", h.tasks.Statistics)
			r.With(authn.Require(middleware.ResourceTask, middleware.ActionRead)).Get("/{id}", h.tasks.Get)
			r.With(authn.Require(middleware.ResourceTask, middleware.ActionUpdate)).Put("/{id}", h.tasks.Update)
			r.With(authn.Require(middleware.ResourceTask, middleware.ActionDelete)).
				Delete("/{id}", h.tasks.Remove)
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(authn.Authenticate)
			r.With(authn.Require(middleware.ResourceUser, middleware.ActionList)).Get("/", h.users.List)
			r.With(authn.Require(middleware.ResourceUser, middleware.ActionUpdate)).Patch("/{id}", h.users.Update)
			r.With(authn.Require(middleware.ResourceUser, middleware.ActionUpdate)).
				Patch("/{id}/status", h.users.ChangeStatus)
			r.With(authn.Require(middleware.ResourceUser, middleware.ActionDelete)).
				Delete("/{id}", h.users.Delete)
		})
	})

	r.NotFound(notFound)
	r.MethodNotAllowed(notFound)

	return r
}

// notFound writes the envelope for a path no route serves.
func notFound(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithErrorAndLog(w, r, http.StatusNotFound, "API NOT FOUND!", nil,
		shared.WithDetail(&shared.ErrorDetail{
			Path:    r.URL.Path,
			Message: "Your requested path is not found!",
		}))
}

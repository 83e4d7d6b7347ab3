package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewHandler(
	authHandler *AuthHandler,
	authMiddleware *AuthMiddleware,
	gymHandler *GymHandler,
	routineHandler *RoutineHandler,
	logHandler *WorkoutLogHandler,
	userHandler *UserHandler,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", authHandler.Signup)
		r.Post("/login", authHandler.Login)
		r.Post("/logout", authHandler.Logout)
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(authMiddleware.RequireAuth)

		r.Route("/gyms", func(r chi.Router) {
			r.Get("/", gymHandler.List)
			r.Post("/", gymHandler.Create)
			r.Delete("/all", gymHandler.DeleteAll)
			r.Patch("/{id}", gymHandler.Update)
			r.Delete("/{id}", gymHandler.Delete)
		})

		r.Route("/routines", func(r chi.Router) {
			r.Get("/", routineHandler.List)
			r.Post("/", routineHandler.Create)
			r.Delete("/", routineHandler.DeleteAll)
			r.Post("/logs", routineHandler.Use)
			r.Patch("/{id}", routineHandler.Update)
			r.Delete("/{id}", routineHandler.Delete)
		})

		r.Route("/logs", func(r chi.Router) {
			r.Get("/", logHandler.List)
			r.Delete("/{id}", logHandler.Delete)
		})

		r.Route("/user", func(r chi.Router) {
			r.Get("/info", userHandler.Info)
			r.Patch("/update", userHandler.Update)
		})
	})

	return r
}

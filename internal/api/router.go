package api

import (
	"net/http"
	"time"

	"algojudge/internal/api/handler"
	"algojudge/internal/app/service"
	"algojudge/internal/common/security"
	"algojudge/internal/judge/registry"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	executionService *service.ExecutionService,
	starterCodeService *service.StarterCodeService,
	reg *registry.Registry,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(120 * time.Second))

	// Parses a bearer token when present; enforcement happens per-route.
	r.Use(jwtauth.Verifier(security.TokenAuth))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	r.Route("/api/v1", func(v1 chi.Router) {
		executeHandler := handler.NewExecuteHandler(executionService)
		v1.Route("/execute", executeHandler.RegisterRoutes)

		starterCodeHandler := handler.NewStarterCodeHandler(starterCodeService)
		v1.Route("/starter-code", starterCodeHandler.RegisterRoutes)

		languageHandler := handler.NewLanguageHandler(reg)
		v1.Route("/languages", languageHandler.RegisterRoutes)
	})

	return r
}

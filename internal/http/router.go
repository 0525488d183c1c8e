package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/iconnecthq/iconnect/internal/auth"
	accountHandler "github.com/iconnecthq/iconnect/internal/http/account"
	catalogHandler "github.com/iconnecthq/iconnect/internal/http/catalog"
	leadHandler "github.com/iconnecthq/iconnect/internal/http/lead"
	ledgerHandler "github.com/iconnecthq/iconnect/internal/http/ledger"
	requestHandler "github.com/iconnecthq/iconnect/internal/http/request"
)

func New(
	verifier *auth.Verifier,
	corsOrigins []string,
	ledgerV1 *ledgerHandler.Handler,
	requestsV1 *requestHandler.Handler,
	accountsV1 *accountHandler.Handler,
	leadsV1 *leadHandler.Handler,
	catalogV1 *catalogHandler.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))
	router.Use(metricsMiddleware)
	router.Use(auth.Middleware(verifier))

	router.Handle("/metrics", promhttp.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/ledger", func(r chi.Router) {
			ledgerV1.Routes(r)
		})

		r.Route("/requests", func(r chi.Router) {
			requestsV1.Routes(r)
		})

		r.Route("/users", func(r chi.Router) {
			accountsV1.Routes(r)
		})

		r.Route("/leads", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			leadsV1.Routes(r)
		})

		r.Route("/providers", catalogV1.ProviderRoutes)
		r.Route("/services", catalogV1.ServiceRoutes)
	})

	return router
}

package httpapi

import (
	"expvar"
	"net/http"

	"github.com/fairyhunter13/versioned-product-api/internal/version"
	"github.com/gorilla/mux"
)

// NewRouter registers HTTP routes and returns the handler with middleware.
func NewRouter(app *App) http.Handler {
	d := NewDispatcher(
		version.NewResolver(app.Cfg.DefaultAPIVersion),
		app.Cfg.VersionHeader,
		app.Cfg.VersionQuery,
		app.closing.Load,
	)
	d.Register(version.V1, app.routesV1())
	d.Register(version.V2, app.routesV2())

	r := mux.NewRouter()
	r.HandleFunc("/healthz", app.healthHandler).Methods(http.MethodGet)
	r.HandleFunc("/debug/metrics", app.metricsHandler).Methods(http.MethodGet)
	r.HandleFunc("/debug/events", app.eventsHandler).Methods(http.MethodGet)
	r.Handle("/debug/vars", expvar.Handler())
	r.HandleFunc("/openapi.yaml", app.openapiHandler).Methods(http.MethodGet)
	r.HandleFunc("/docs", app.docsHandler).Methods(http.MethodGet)
	r.PathPrefix("/v{version}/products").Handler(d)
	r.PathPrefix("/products").Handler(d)
	r.NotFoundHandler = noRouteHandler()
	r.MethodNotAllowedHandler = methodNotAllowedHandler()

	return WithRequestID(WithLogging(WithSupportedVersions(r, d.Versions())))
}

// productRoutes builds the route table shared by every version. Paths are
// relative to the version prefix.
func productRoutes(list, create, get, update, remove http.HandlerFunc) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/products", list).Methods(http.MethodGet)
	r.HandleFunc("/products", create).Methods(http.MethodPost)
	r.HandleFunc("/products/{id}", get).Methods(http.MethodGet)
	r.HandleFunc("/products/{id}", update).Methods(http.MethodPut)
	r.HandleFunc("/products/{id}", remove).Methods(http.MethodDelete)
	r.NotFoundHandler = noRouteHandler()
	r.MethodNotAllowedHandler = methodNotAllowedHandler()
	return r
}

package httpapi

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/fairyhunter13/versioned-product-api/internal/version"
	"github.com/gorilla/mux"
)

// Dispatcher resolves the API version of a request and hands it to the
// route table registered for that version. It serves both
// /v{version}/products... and unprefixed /products... paths; the prefix is
// stripped before the version's routes see the request.
type Dispatcher struct {
	resolver version.Resolver
	header   string
	query    string
	routes   map[version.Version]http.Handler
	closing  func() bool
}

func NewDispatcher(resolver version.Resolver, header, query string, closing func() bool) *Dispatcher {
	if closing == nil {
		closing = func() bool { return false }
	}
	return &Dispatcher{
		resolver: resolver,
		header:   header,
		query:    query,
		routes:   make(map[version.Version]http.Handler),
		closing:  closing,
	}
}

// Register serves v with h.
func (d *Dispatcher) Register(v version.Version, h http.Handler) {
	d.routes[v] = h
}

// Versions lists registered versions in ascending order.
func (d *Dispatcher) Versions() []version.Version {
	out := make([]version.Version, 0, len(d.routes))
	for v := range d.routes {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Resolve returns the version r targets.
func (d *Dispatcher) Resolve(r *http.Request) version.Version {
	return d.resolver.Resolve(version.Signals{
		Path:   mux.Vars(r)["version"],
		Header: r.Header.Get(d.header),
		Query:  r.URL.Query().Get(d.query),
	})
}

func (d *Dispatcher) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	v := d.Resolve(r)
	noteAPIVersion(r.Context(), v)
	h, ok := d.routes[v]
	if !ok {
		WriteJSONError(w, http.StatusNotFound, "no_matching_route", fmt.Sprintf("api version %q is not supported", v))
		return
	}
	if d.closing() && r.Method != http.MethodGet && r.Method != http.MethodHead {
		WriteJSONError(w, http.StatusServiceUnavailable, "shutting_down", "")
		return
	}
	if seg := mux.Vars(r)["version"]; seg != "" {
		r = r.Clone(r.Context())
		r.URL.Path = strings.TrimPrefix(r.URL.Path, "/v"+seg)
		r.URL.RawPath = ""
	}
	h.ServeHTTP(w, r)
}

func noRouteHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		WriteJSONError(w, http.StatusNotFound, "no_matching_route", "")
	})
}

func methodNotAllowedHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		WriteJSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", "")
	})
}

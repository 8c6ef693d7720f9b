package httpapi

import (
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/fairyhunter13/versioned-product-api/internal/audit"
	"github.com/fairyhunter13/versioned-product-api/internal/catalog"
	"github.com/fairyhunter13/versioned-product-api/internal/config"
	httpopenapi "github.com/fairyhunter13/versioned-product-api/internal/http/openapi"
	"github.com/fairyhunter13/versioned-product-api/internal/queue"
)

// App wires the product handlers of every version to the HTTP surface.
type App struct {
	Cfg     config.Config
	Stores  catalog.Stores
	V1      *catalog.V1
	V2      *catalog.V2
	Feed    *queue.Manager
	Journal *audit.Journal
	closing atomic.Bool
	started time.Time
}

// NewApp builds the V1 and V2 handlers over stores. Their change events go
// to feed; extra options (for instance a fixed clock) apply to both.
func NewApp(cfg config.Config, stores catalog.Stores, feed *queue.Manager, journal *audit.Journal, opts ...catalog.Option) *App {
	opts = append([]catalog.Option{catalog.WithPublisher(feed)}, opts...)
	return &App{
		Cfg:     cfg,
		Stores:  stores,
		V1:      catalog.NewV1(stores.V1, opts...),
		V2:      catalog.NewV2(stores.V2, opts...),
		Feed:    feed,
		Journal: journal,
		started: time.Now(),
	}
}

// StartShutdown rejects further mutations and closes the change feed intake.
func (a *App) StartShutdown() {
	a.closing.Store(true)
	a.Feed.CloseIntake()
}

func (a *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *App) metricsHandler(w http.ResponseWriter, r *http.Request) {
	st := a.Feed.Stats()
	m := map[string]any{
		"events_enqueued":  st.Enqueued,
		"events_processed": st.Processed,
		"backlog_size":     st.Backlog,
		"queue_depth":      st.Depth,
		"worker_count":     a.Feed.WorkerCount(),
		"event_counts":     a.Journal.Counts(),
		"store_layout":     a.Cfg.StoreLayout,
		"products_v1":      a.Stores.V1.Len(),
		"products_v2":      a.Stores.V2.Len(),
		"uptime_sec":       time.Since(a.started).Seconds(),
	}
	writeJSON(w, http.StatusOK, m)
}

// eventsHandler lists recent change events, newest first. ?limit=N caps it.
func (a *App) eventsHandler(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			WriteJSONError(w, http.StatusBadRequest, "validation_error", "limit must be a non-negative integer")
			return
		}
		limit = n
	}
	writeJSON(w, http.StatusOK, a.Journal.Recent(limit))
}

func (a *App) openapiHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(httpopenapi.YAML)
}

func (a *App) docsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(docsPage))
}

const docsPage = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>Product API</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({ url: '/openapi.yaml', dom_id: '#swagger-ui' });
    </script>
  </body>
</html>`

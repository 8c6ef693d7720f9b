package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/fairyhunter13/versioned-product-api/internal/obs"
	"github.com/fairyhunter13/versioned-product-api/internal/version"
	"github.com/google/uuid"
)

type ctxKey int

const (
	ctxKeyRequestID ctxKey = iota
	ctxKeyAPIVersion
)

func RequestIDFromContext(ctx context.Context) string {
	v, _ := ctx.Value(ctxKeyRequestID).(string)
	return v
}

// versionSlot lets the dispatcher report the resolved version back to the
// access log, which runs outside of it.
type versionSlot struct{ v version.Version }

func noteAPIVersion(ctx context.Context, v version.Version) {
	if s, ok := ctx.Value(ctxKeyAPIVersion).(*versionSlot); ok {
		s.v = v
	}
}

// APIVersionFromContext returns the version resolved for the request, if any.
func APIVersionFromContext(ctx context.Context) version.Version {
	if s, ok := ctx.Value(ctxKeyAPIVersion).(*versionSlot); ok {
		return s.v
	}
	return ""
}

type statusRecorder struct {
	w      http.ResponseWriter
	status int
	bytes  int
}

func (sr *statusRecorder) Header() http.Header { return sr.w.Header() }
func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.w.WriteHeader(code)
}
func (sr *statusRecorder) Write(b []byte) (int, error) {
	n, err := sr.w.Write(b)
	sr.bytes += n
	return n, err
}

func WithRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get("X-Request-Id")
		if reqID == "" {
			reqID = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", reqID)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKeyRequestID, reqID)))
	})
}

func WithLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		slot := &versionSlot{}
		sr := &statusRecorder{w: w, status: http.StatusOK}
		next.ServeHTTP(sr, r.WithContext(context.WithValue(r.Context(), ctxKeyAPIVersion, slot)))
		obs.Logger.Info("http_request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", sr.status,
			"bytes", sr.bytes,
			"latency_ms", float64(time.Since(start).Microseconds())/1000.0,
			"request_id", RequestIDFromContext(r.Context()),
			"api_version", slot.v.String(),
		)
	})
}

// WithSupportedVersions advertises the served API versions on every response.
func WithSupportedVersions(next http.Handler, versions []version.Version) http.Handler {
	names := make([]string, 0, len(versions))
	for _, v := range versions {
		names = append(names, v.String())
	}
	header := strings.Join(names, ", ")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Api-Supported-Versions", header)
		next.ServeHTTP(w, r)
	})
}

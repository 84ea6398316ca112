// Package httpapi assembles the public HTTP surface. It wires module handlers
// onto a shared router; business logic stays behind the handler interfaces.
package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"gatehouse/internal/errlog"
	"gatehouse/internal/platform/metrics"
	visitorhandler "gatehouse/internal/visitor/handler"
	"gatehouse/pkg/platform/middleware/requestid"
	"gatehouse/pkg/platform/middleware/requesttime"
)

// Handlers collects the module handlers mounted on the router.
type Handlers struct {
	Visitors *visitorhandler.Handler
	ErrorLog *errlog.Handler
}

// NewRouter builds the full router: shared middleware, module routes, and the
// operational endpoints. Metrics may be nil in tests.
func NewRouter(h Handlers, m *metrics.Metrics) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(requestid.Middleware)
	r.Use(requesttime.Middleware)
	r.Use(chimiddleware.Recoverer)
	r.Use(metrics.LatencyMiddleware(m))

	h.Visitors.Register(r)
	h.ErrorLog.Register(r)

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return r
}

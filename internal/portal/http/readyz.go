package http

import (
	"net/http"
	"time"

	"github.com/greensoulit/portal-auth/internal/portal/store"
	"github.com/greensoulit/portal-auth/pkg/httpx"
	"github.com/greensoulit/portal-auth/pkg/portalapi"
)

// ReadyzHandler is the readiness probe. It reports degraded with 503
// when the database is unreachable.
func ReadyzHandler(startTime time.Time, version string, st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &portalapi.HealthChecks{
			Database: "ok",
		}
		overallStatus := "ok"
		statusCode := http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			checks.Database = "error: " + err.Error()
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, statusCode, portalapi.HealthResponse{
			Status:  overallStatus,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}

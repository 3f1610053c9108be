package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/vfg2006/sales-report-api/pkg/log"
)

// Pinger verifica a disponibilidade do banco de histórico
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthcheckHandler responde 503 apenas quando o histórico está habilitado e o banco não responde
func HealthcheckHandler(db Pinger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		status := http.StatusOK
		body := map[string]string{
			"status":   "ok",
			"database": "disabled",
			"time":     time.Now().UTC().Format(time.RFC3339),
		}

		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()

			body["database"] = "up"
			if err := db.Ping(ctx); err != nil {
				log.ForContext(r.Context()).WithError(err).Warn("Banco de dados indisponível no healthcheck")
				status = http.StatusServiceUnavailable
				body["status"] = "degraded"
				body["database"] = "down"
			}
		}

		writeJSON(w, r, status, body)
	})
}

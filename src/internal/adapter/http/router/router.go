package router

import (
	"context"
	"net/http"
	"time"

	"github.com/api-sage/remittance-wallet/src/internal/adapter/http/middleware"
	"github.com/api-sage/remittance-wallet/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/remittance-wallet/src/internal/commons"
	"github.com/api-sage/remittance-wallet/src/internal/logger"
)

const healthTimeout = 2 * time.Second

type WalletRouteRegistrar interface {
	RegisterRoutes(mux *http.ServeMux, mw func(http.Handler) http.Handler)
}

func New(
	walletController WalletRouteRegistrar,
	health repo_interfaces.HealthChecker,
	staticDir string,
	mw func(http.Handler) http.Handler,
) *http.ServeMux {
	mux := http.NewServeMux()
	registerSwaggerRoutes(mux)
	registerHealthRoute(mux, health)

	if walletController != nil {
		walletController.RegisterRoutes(mux, mw)
	}
	if staticDir != "" {
		mux.Handle("/", spaHandler(staticDir))
	}

	return mux
}

// Handler wraps the mux with the middleware every request goes through.
func Handler(mux *http.ServeMux, allowedOrigins []string) http.Handler {
	return middleware.CORS(allowedOrigins)(middleware.RequestID(mux))
}

func registerHealthRoute(mux *http.ServeMux, health repo_interfaces.HealthChecker) {
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if health != nil {
			ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
			defer cancel()

			if err := health.Ping(ctx); err != nil {
				logger.Error("health check failed", err, logger.Fields{"path": r.URL.Path})
				writeJSON(w, http.StatusServiceUnavailable, commons.ErrorResponse[struct{}]("unavailable", "storage is not reachable"))
				return
			}
		}

		writeJSON(w, http.StatusOK, commons.MessageResponse("ok"))
	})
}

package httpapi

import (
	"net/http"

	"github.com/riskibarqy/tournament-ledger/internal/platform/id"
	"github.com/riskibarqy/tournament-ledger/internal/platform/logging"
)

type RouterConfig struct {
	CORSAllowedOrigins []string
	InternalJobToken   string
	RequestIDs         id.Generator
}

func NewRouter(handler *Handler, logger *logging.Logger, cfg RouterConfig) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}
	requestIDs := cfg.RequestIDs
	if requestIDs == nil {
		requestIDs = id.NewRandomGenerator()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler)
	registerTournamentRoutes(mux, handler)
	registerTeamRoutes(mux, handler)
	registerMatchRoutes(mux, handler)
	registerInternalJobRoutes(mux, handler, cfg.InternalJobToken)

	return RequestTracing(RequestID(requestIDs, RequestLogging(logger, CORS(cfg.CORSAllowedOrigins, recoverPanic(logger, mux)))))
}

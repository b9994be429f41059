package handler

import (
	"net/http"

	"github.com/zeromicro/go-zero/rest"

	"pulse-api/internal/svc"
)

func RegisterHandlers(server *rest.Server, serverCtx *svc.ServiceContext) {
	server.AddRoutes(
		[]rest.Route{
			{
				Method:  http.MethodGet,
				Path:    "/health",
				Handler: HealthHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/eth/analysis",
				Handler: EthAnalysisHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/eth/analysis/latest",
				Handler: EthAnalysisLatestHandler(serverCtx),
			},
			{
				Method:  http.MethodPost,
				Path:    "/rewrite",
				Handler: RewriteHandler(serverCtx),
			},
		},
	)
}

package handler

import (
	"errors"
	"net/http"

	"github.com/zeromicro/go-zero/rest/httpx"

	"pulse-api/internal/logic"
	"pulse-api/internal/repo"
	"pulse-api/internal/svc"
)

func EthAnalysisLatestHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l := logic.NewEthAnalysisLatestLogic(r.Context(), svcCtx)
		resp, err := l.EthAnalysisLatest()
		if err != nil {
			switch {
			case errors.Is(err, repo.ErrNoAnalyses):
				httpx.WriteJsonCtx(r.Context(), w, http.StatusNotFound, errorBody(err))
			case errors.Is(err, logic.ErrStorageNotConfigured):
				httpx.WriteJsonCtx(r.Context(), w, http.StatusServiceUnavailable, errorBody(err))
			default:
				httpx.ErrorCtx(r.Context(), w, err)
			}
			return
		}
		httpx.OkJsonCtx(r.Context(), w, resp)
	}
}

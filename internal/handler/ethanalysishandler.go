package handler

import (
	"errors"
	"net/http"

	"github.com/zeromicro/go-zero/rest/httpx"

	"pulse-api/internal/logic"
	"pulse-api/internal/svc"
)

func EthAnalysisHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l := logic.NewEthAnalysisLogic(r.Context(), svcCtx)
		resp, err := l.EthAnalysis()
		if err != nil {
			if errors.Is(err, logic.ErrAnalysisNotConfigured) {
				httpx.WriteJsonCtx(r.Context(), w, http.StatusServiceUnavailable, errorBody(err))
				return
			}
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}
		httpx.OkJsonCtx(r.Context(), w, resp)
	}
}

func errorBody(err error) map[string]string {
	return map[string]string{"error": err.Error()}
}

package handler

import (
	"errors"
	"net/http"

	"github.com/zeromicro/go-zero/rest/httpx"

	"pulse-api/internal/logic"
	"pulse-api/internal/svc"
	"pulse-api/internal/types"
)

func RewriteHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.RewriteRequest
		if err := httpx.Parse(r, &req); err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}

		l := logic.NewRewriteLogic(r.Context(), svcCtx)
		resp, err := l.Rewrite(&req)
		if err != nil {
			if errors.Is(err, logic.ErrRewriteNotConfigured) {
				httpx.WriteJsonCtx(r.Context(), w, http.StatusServiceUnavailable, errorBody(err))
				return
			}
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}
		httpx.OkJsonCtx(r.Context(), w, resp)
	}
}

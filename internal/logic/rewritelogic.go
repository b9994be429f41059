package logic

import (
	"context"
	"errors"
	"strings"

	"github.com/zeromicro/go-zero/core/logx"

	"pulse-api/internal/svc"
	"pulse-api/internal/types"
	rewriterpkg "pulse-api/pkg/rewriter"
)

// ErrRewriteNotConfigured means no generation provider was configured.
var ErrRewriteNotConfigured = errors.New("text rewriting is not configured")

type RewriteLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewRewriteLogic(ctx context.Context, svcCtx *svc.ServiceContext) *RewriteLogic {
	return &RewriteLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *RewriteLogic) Rewrite(req *types.RewriteRequest) (*types.RewriteResponse, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, errors.New("text is required")
	}

	rw := l.svcCtx.Rewriter
	if req.Model != "" {
		if l.svcCtx.Provider == nil {
			return nil, ErrRewriteNotConfigured
		}
		override, err := rewriterpkg.New(l.svcCtx.Provider, req.Model)
		if err != nil {
			return nil, err
		}
		rw = override
	}
	if rw == nil {
		return nil, ErrRewriteNotConfigured
	}

	out, err := rw.Rewrite(l.ctx, rewriterpkg.Request{
		Text:              req.Text,
		Style:             req.Style,
		ExtraInstructions: req.ExtraInstructions,
	})
	if err != nil {
		return nil, err
	}

	return &types.RewriteResponse{
		RewrittenText: out,
		Style:         rewriterpkg.NormalizeStyle(req.Style),
	}, nil
}

package logic

import (
	"context"
	"time"

	"github.com/zeromicro/go-zero/core/logx"

	"pulse-api/internal/svc"
	"pulse-api/internal/types"
)

type HealthLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewHealthLogic(ctx context.Context, svcCtx *svc.ServiceContext) *HealthLogic {
	return &HealthLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *HealthLogic) Health() (*types.HealthResponse, error) {
	return &types.HealthResponse{
		Status:     "ok",
		ServerTime: time.Now().UnixMilli(),
	}, nil
}

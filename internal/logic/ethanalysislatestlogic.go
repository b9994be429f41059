package logic

import (
	"context"
	"errors"

	"github.com/zeromicro/go-zero/core/logx"

	"pulse-api/internal/svc"
	"pulse-api/internal/types"
)

// ErrStorageNotConfigured means no Postgres DSN was provided.
var ErrStorageNotConfigured = errors.New("analysis storage is not configured")

type EthAnalysisLatestLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewEthAnalysisLatestLogic(ctx context.Context, svcCtx *svc.ServiceContext) *EthAnalysisLatestLogic {
	return &EthAnalysisLatestLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// EthAnalysisLatest serves the most recent stored analysis without running
// the pipeline.
func (l *EthAnalysisLatestLogic) EthAnalysisLatest() (*types.AnalysisResponse, error) {
	if l.svcCtx.Analyses == nil {
		return nil, ErrStorageNotConfigured
	}

	rec, err := l.svcCtx.Analyses.Latest(l.ctx)
	if err != nil {
		return nil, err
	}

	return &types.AnalysisResponse{
		Metrics: types.PriceMetrics{
			CurrentPrice: rec.CurrentPrice,
			HourlyChange: rec.HourlyChange,
			DailyChange:  rec.DailyChange,
			High24h:      rec.High24h,
			Low24h:       rec.Low24h,
		},
		Summary:     rec.Summary,
		GeneratedAt: rec.CreatedAt.UnixMilli(),
	}, nil
}

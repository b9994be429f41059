package logic

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/zeromicro/go-zero/core/logx"

	"pulse-api/internal/model"
	"pulse-api/internal/svc"
	"pulse-api/internal/types"
	"pulse-api/pkg/analyzer"
)

// ErrAnalysisNotConfigured means no market data source was configured.
var ErrAnalysisNotConfigured = errors.New("analysis pipeline is not configured")

type EthAnalysisLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewEthAnalysisLogic(ctx context.Context, svcCtx *svc.ServiceContext) *EthAnalysisLogic {
	return &EthAnalysisLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// EthAnalysis runs one full analysis pass and stores the result when storage
// is configured. Storage failures are logged, never surfaced to the caller.
func (l *EthAnalysisLogic) EthAnalysis() (*types.AnalysisResponse, error) {
	if l.svcCtx.Analyzer == nil {
		return nil, ErrAnalysisNotConfigured
	}

	result, err := l.svcCtx.Analyzer.Analyze(l.ctx)
	if err != nil {
		return nil, err
	}

	l.persist(result)

	return &types.AnalysisResponse{
		Metrics:     toMetricsView(result.Metrics),
		Summary:     result.Summary,
		GeneratedAt: time.Now().UnixMilli(),
	}, nil
}

func (l *EthAnalysisLogic) persist(result *analyzer.AnalysisResult) {
	if l.svcCtx.Analyses == nil {
		return
	}

	rec := &model.Analysis{
		CreatedAt:    time.Now().UTC(),
		CurrentPrice: result.Metrics.CurrentPrice,
		HourlyChange: result.Metrics.HourlyChange,
		DailyChange:  result.Metrics.DailyChange,
		High24h:      result.Metrics.High24h,
		Low24h:       result.Metrics.Low24h,
		Summary:      result.Summary,
	}
	if m := l.svcCtx.Config.Analysis.Model; m != "" {
		rec.Model = sql.NullString{String: m, Valid: true}
	}

	if err := l.svcCtx.Analyses.Save(l.ctx, rec); err != nil {
		l.Errorf("persist analysis: %v", err)
	}
}

func toMetricsView(m analyzer.PriceMetrics) types.PriceMetrics {
	return types.PriceMetrics{
		CurrentPrice: m.CurrentPrice,
		HourlyChange: m.HourlyChange,
		DailyChange:  m.DailyChange,
		High24h:      m.High24h,
		Low24h:       m.Low24h,
	}
}

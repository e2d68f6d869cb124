package service

import (
	"context"

	"github.com/vivahlink/console/internal/domain/stats"
)

type StatsService interface {
	Dashboard(ctx context.Context) (*stats.Dashboard, error)
}

type statsService struct {
	ServiceParams
}

func NewStatsService(params ServiceParams) StatsService {
	return &statsService{ServiceParams: params}
}

func (s *statsService) Dashboard(ctx context.Context) (*stats.Dashboard, error) {
	return readThrough[stats.Dashboard](ctx, s.Cache, stats.DashboardKey(), func(ctx context.Context) (any, error) {
		return s.StatsRepo.Dashboard(ctx)
	})
}

package rest

import (
	"context"

	domainStats "github.com/vivahlink/console/internal/domain/stats"
	"github.com/vivahlink/console/internal/logger"
	"github.com/vivahlink/console/internal/upstream"
)

const pathStats = "/api/admin/stats"

type statsRepository struct {
	client upstream.Client
	log    *logger.Logger
}

func NewStatsRepository(client upstream.Client, log *logger.Logger) domainStats.Repository {
	return &statsRepository{client: client, log: log}
}

func (r *statsRepository) Dashboard(ctx context.Context) (*domainStats.Dashboard, error) {
	var d domainStats.Dashboard
	if err := r.client.Get(ctx, pathStats, nil, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/vacei/admin-dashboard/internal/core/domain"
	"github.com/vacei/admin-dashboard/internal/core/ports"
	"github.com/vacei/admin-dashboard/internal/pkg/metrics"
)

type DashboardService struct {
	stats  ports.StatsGateway
	logger zerolog.Logger
}

func NewDashboardService(stats ports.StatsGateway, logger zerolog.Logger) *DashboardService {
	return &DashboardService{stats: stats, logger: logger}
}

// Stats falls back to zero counts when the API cannot answer.
func (s *DashboardService) Stats(ctx context.Context, token string) domain.DashboardStats {
	stats, err := s.stats.DashboardStats(ctx, token)
	if err != nil {
		metrics.ListingFallbacksTotal.WithLabelValues("dashboard_stats").Inc()
		s.logger.Error().Err(err).Msg("dashboard stats fetch failed, showing zeros")
		return domain.DashboardStats{}
	}
	return stats
}

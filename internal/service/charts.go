package service

import (
	"context"
	"time"

	"github.com/nmoreaux/instalens-go/internal/api"
	"github.com/nmoreaux/instalens-go/internal/domain"
	"go.uber.org/zap"
)

// ChartService fetches chart series. The backend returns full history;
// day-range narrowing happens here, client-side.
type ChartService struct {
	client *api.Client
	logger *zap.Logger

	// now is swappable for tests.
	now func() time.Time
}

func NewChartService(client *api.Client, logger *zap.Logger) *ChartService {
	return &ChartService{client: client, logger: logger, now: time.Now}
}

// GetEngagementChart returns the raw point series of the engagement chart,
// optionally narrowed to the last `days` days.
func (s *ChartService) GetEngagementChart(ctx context.Context, days int) ([]domain.EngagementChartPoint, error) {
	resp, err := api.GetJSON[domain.EngagementChartResponse](ctx, s.client, api.EndpointEngagementChart, nil)
	if err != nil {
		return nil, err
	}
	points := resp.Raw
	if points == nil {
		points = []domain.EngagementChartPoint{}
	}
	return domain.FilterSinceDays(points, days, s.now()), nil
}

// GetFollowersGrowth returns the followers series, optionally narrowed to
// the last `days` days.
func (s *ChartService) GetFollowersGrowth(ctx context.Context, days int) ([]domain.FollowerPoint, error) {
	points, err := api.GetJSON[[]domain.FollowerPoint](ctx, s.client, api.EndpointFollowersGrowth, nil)
	if err != nil {
		return nil, err
	}
	return domain.FilterSinceDays(points, days, s.now()), nil
}

// GrowthPercent summarizes a followers series as the percent change between
// its first and last sample.
func (s *ChartService) GrowthPercent(points []domain.FollowerPoint) float64 {
	if len(points) < 2 {
		return 0
	}
	first := points[0].Followers
	last := points[len(points)-1].Followers
	return domain.PercentChange(float64(first), float64(last))
}

func (s *ChartService) GetContentBreakdown(ctx context.Context) ([]domain.ContentBreakdown, error) {
	return api.GetJSON[[]domain.ContentBreakdown](ctx, s.client, api.EndpointContentBreakdown, nil)
}

func (s *ChartService) GetGrowthSimulation(ctx context.Context) (domain.GrowthSimulation, error) {
	return api.GetJSON[domain.GrowthSimulation](ctx, s.client, api.EndpointGrowthSimulation, nil)
}

package service

import (
	"context"

	"github.com/nmoreaux/instalens-go/internal/api"
	"github.com/nmoreaux/instalens-go/internal/domain"
	"go.uber.org/zap"
)

type AnalyticsService struct {
	client *api.Client
	logger *zap.Logger
}

func NewAnalyticsService(client *api.Client, logger *zap.Logger) *AnalyticsService {
	return &AnalyticsService{client: client, logger: logger}
}

func (s *AnalyticsService) GetEngagementTrends(ctx context.Context) (domain.EngagementTrends, error) {
	return api.GetJSON[domain.EngagementTrends](ctx, s.client, api.EndpointEngagementTrends, nil)
}

func (s *AnalyticsService) GetContentPerformance(ctx context.Context) (domain.ContentPerformance, error) {
	return api.GetJSON[domain.ContentPerformance](ctx, s.client, api.EndpointContentPerformance, nil)
}

func (s *AnalyticsService) GetPostingPatterns(ctx context.Context) (domain.PostingPatterns, error) {
	return api.GetJSON[domain.PostingPatterns](ctx, s.client, api.EndpointPostingPatterns, nil)
}

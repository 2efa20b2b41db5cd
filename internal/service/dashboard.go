package service

import (
	"context"

	"github.com/nmoreaux/instalens-go/internal/api"
	"github.com/nmoreaux/instalens-go/internal/domain"
	"go.uber.org/zap"
)

type DashboardService struct {
	client *api.Client
	logger *zap.Logger
}

func NewDashboardService(client *api.Client, logger *zap.Logger) *DashboardService {
	return &DashboardService{client: client, logger: logger}
}

func (s *DashboardService) GetDashboard(ctx context.Context) (domain.DashboardData, error) {
	return api.GetJSON[domain.DashboardData](ctx, s.client, api.EndpointDashboard, nil)
}

func (s *DashboardService) GetProfile(ctx context.Context) (domain.ProfileWithEngagement, error) {
	return api.GetJSON[domain.ProfileWithEngagement](ctx, s.client, api.EndpointProfile, nil)
}

func (s *DashboardService) GetCompleteAnalytics(ctx context.Context) (domain.CompleteAnalytics, error) {
	return api.GetJSON[domain.CompleteAnalytics](ctx, s.client, api.EndpointComplete, nil)
}

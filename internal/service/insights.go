package service

import (
	"context"

	"github.com/nmoreaux/instalens-go/internal/api"
	"github.com/nmoreaux/instalens-go/internal/domain"
	"go.uber.org/zap"
)

// InsightsService serves hashtags, predictions and the account value. These
// feeds are decorative rather than critical, so every accessor recovers from
// backend failure with a fallback value; callers can treat them as
// infallible.
type InsightsService struct {
	client   *api.Client
	fallback FallbackProvider
	logger   *zap.Logger
}

func NewInsightsService(client *api.Client, fallback FallbackProvider, logger *zap.Logger) *InsightsService {
	if fallback == nil {
		fallback = NewStaticFallbacks()
	}
	return &InsightsService{client: client, fallback: fallback, logger: logger}
}

func (s *InsightsService) GetHashtags(ctx context.Context) []domain.HashtagPerformance {
	tags, err := api.GetJSON[[]domain.HashtagPerformance](ctx, s.client, api.EndpointHashtags, nil)
	if err != nil {
		s.logger.Warn("Hashtags fetch failed, using fallback", zap.Error(err))
		return s.fallback.Hashtags()
	}
	return tags
}

func (s *InsightsService) GetPredictions(ctx context.Context) domain.GrowthPredictions {
	predictions, err := api.GetJSON[domain.GrowthPredictions](ctx, s.client, api.EndpointPredictions, nil)
	if err != nil {
		s.logger.Warn("Predictions fetch failed, using fallback", zap.Error(err))
		return s.fallback.Predictions()
	}
	return predictions
}

func (s *InsightsService) GetAccountValue(ctx context.Context) domain.AccountValue {
	value, err := api.GetJSON[domain.AccountValue](ctx, s.client, api.EndpointAccountValue, nil)
	if err != nil {
		s.logger.Warn("Account value fetch failed, using fallback", zap.Error(err))
		return s.fallback.AccountValue()
	}
	return value
}

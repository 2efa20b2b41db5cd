package app

import (
	"context"
	"time"

	"github.com/nmoreaux/instalens-go/internal/domain"
	"github.com/nmoreaux/instalens-go/internal/query"
	"github.com/nmoreaux/instalens-go/internal/service"
)

// Staleness windows per resource: slow-changing resources cache longer.
const (
	ttlAuth        = 5 * time.Minute
	ttlDashboard   = 2 * time.Minute
	ttlProfile     = 5 * time.Minute
	ttlComplete    = 2 * time.Minute
	ttlMedia       = 2 * time.Minute
	ttlTrends      = 5 * time.Minute
	ttlContent     = 5 * time.Minute
	ttlPosting     = 5 * time.Minute
	ttlEngChart    = 2 * time.Minute
	ttlGrowthChart = 2 * time.Minute
	ttlBreakdown   = 5 * time.Minute
	ttlSimulation  = 10 * time.Minute
	ttlHashtags    = 10 * time.Minute
	ttlPredictions = 30 * time.Minute
	ttlAccountVal  = 30 * time.Minute
)

// Resources are the typed cache handles the UI layer consumes, one per
// backend resource, each bound to its staleness window.
type Resources struct {
	AuthStatus         *query.Resource[domain.AuthStatus]
	Dashboard          *query.Resource[domain.DashboardData]
	Profile            *query.Resource[domain.ProfileWithEngagement]
	Complete           *query.Resource[domain.CompleteAnalytics]
	Media              *query.Resource[[]domain.MediaPost]
	EngagementTrends   *query.Resource[domain.EngagementTrends]
	ContentPerformance *query.Resource[domain.ContentPerformance]
	PostingPatterns    *query.Resource[domain.PostingPatterns]
	EngagementChart    *query.Resource[[]domain.EngagementChartPoint]
	FollowersGrowth    *query.Resource[[]domain.FollowerPoint]
	ContentBreakdown   *query.Resource[[]domain.ContentBreakdown]
	GrowthSimulation   *query.Resource[domain.GrowthSimulation]
	Hashtags           *query.Resource[[]domain.HashtagPerformance]
	Predictions        *query.Resource[domain.GrowthPredictions]
	AccountValue       *query.Resource[domain.AccountValue]
}

type resourceServices struct {
	auth      *service.AuthService
	dashboard *service.DashboardService
	media     *service.MediaService
	analytics *service.AnalyticsService
	charts    *service.ChartService
	insights  *service.InsightsService
}

func buildResources(cache *query.Cache, svc resourceServices) *Resources {
	return &Resources{
		AuthStatus: query.NewResource(cache, "auth.status", "", ttlAuth, svc.auth.GetStatus),
		Dashboard:  query.NewResource(cache, "dashboard", "", ttlDashboard, svc.dashboard.GetDashboard),
		Profile:    query.NewResource(cache, "dashboard.profile", "", ttlProfile, svc.dashboard.GetProfile),
		Complete:   query.NewResource(cache, "dashboard.complete", "", ttlComplete, svc.dashboard.GetCompleteAnalytics),
		Media: query.NewResource(cache, "media", "", ttlMedia, func(ctx context.Context) ([]domain.MediaPost, error) {
			return svc.media.GetAllMedia(ctx, 0)
		}),
		EngagementTrends:   query.NewResource(cache, "analytics.engagement", "", ttlTrends, svc.analytics.GetEngagementTrends),
		ContentPerformance: query.NewResource(cache, "analytics.content", "", ttlContent, svc.analytics.GetContentPerformance),
		PostingPatterns:    query.NewResource(cache, "analytics.posting", "", ttlPosting, svc.analytics.GetPostingPatterns),
		EngagementChart: query.NewResource(cache, "charts.engagement", "", ttlEngChart, func(ctx context.Context) ([]domain.EngagementChartPoint, error) {
			return svc.charts.GetEngagementChart(ctx, 0)
		}),
		FollowersGrowth: query.NewResource(cache, "charts.growth", "", ttlGrowthChart, func(ctx context.Context) ([]domain.FollowerPoint, error) {
			return svc.charts.GetFollowersGrowth(ctx, 0)
		}),
		ContentBreakdown: query.NewResource(cache, "charts.breakdown", "", ttlBreakdown, svc.charts.GetContentBreakdown),
		GrowthSimulation: query.NewResource(cache, "charts.simulation", "", ttlSimulation, svc.charts.GetGrowthSimulation),
		Hashtags: query.NewResource(cache, "insights.hashtags", "", ttlHashtags, func(ctx context.Context) ([]domain.HashtagPerformance, error) {
			return svc.insights.GetHashtags(ctx), nil
		}),
		Predictions: query.NewResource(cache, "insights.predictions", "", ttlPredictions, func(ctx context.Context) (domain.GrowthPredictions, error) {
			return svc.insights.GetPredictions(ctx), nil
		}),
		AccountValue: query.NewResource(cache, "insights.accountValue", "", ttlAccountVal, func(ctx context.Context) (domain.AccountValue, error) {
			return svc.insights.GetAccountValue(ctx), nil
		}),
	}
}

// warmFuncs lists every resource fetch for the concurrent warm-up pass.
func (r *Resources) warmFuncs() []func(ctx context.Context) error {
	return []func(ctx context.Context) error{
		func(ctx context.Context) error { _, err := r.AuthStatus.Get(ctx); return err },
		func(ctx context.Context) error { _, err := r.Dashboard.Get(ctx); return err },
		func(ctx context.Context) error { _, err := r.Profile.Get(ctx); return err },
		func(ctx context.Context) error { _, err := r.Media.Get(ctx); return err },
		func(ctx context.Context) error { _, err := r.EngagementTrends.Get(ctx); return err },
		func(ctx context.Context) error { _, err := r.ContentPerformance.Get(ctx); return err },
		func(ctx context.Context) error { _, err := r.PostingPatterns.Get(ctx); return err },
		func(ctx context.Context) error { _, err := r.EngagementChart.Get(ctx); return err },
		func(ctx context.Context) error { _, err := r.FollowersGrowth.Get(ctx); return err },
		func(ctx context.Context) error { _, err := r.ContentBreakdown.Get(ctx); return err },
		func(ctx context.Context) error { _, err := r.GrowthSimulation.Get(ctx); return err },
		func(ctx context.Context) error { _, err := r.Hashtags.Get(ctx); return err },
		func(ctx context.Context) error { _, err := r.Predictions.Get(ctx); return err },
		func(ctx context.Context) error { _, err := r.AccountValue.Get(ctx); return err },
	}
}

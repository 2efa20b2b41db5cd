package api

import "fmt"

// Stats/dashboard backend endpoints.
const (
	EndpointAuthStatus         = "/auth/status"
	EndpointAuthRefresh        = "/auth/refresh"
	EndpointAuthLogin          = "/auth/login"
	EndpointDashboard          = "/stats/dashboard"
	EndpointProfile            = "/stats/profile"
	EndpointComplete           = "/stats/complete"
	EndpointMedia              = "/stats/media"
	EndpointEngagementTrends   = "/stats/engagement-trends"
	EndpointContentPerformance = "/stats/content-performance"
	EndpointPostingPatterns    = "/stats/posting-patterns"
	EndpointEngagementChart    = "/stats/charts/engagement"
	EndpointFollowersGrowth    = "/stats/charts/followers-growth"
	EndpointContentBreakdown   = "/stats/charts/content-breakdown"
	EndpointGrowthSimulation   = "/stats/charts/growth-simulation"
	EndpointHashtags           = "/stats/hashtags"
	EndpointPredictions        = "/stats/predictions"
	EndpointAccountValue       = "/stats/account-value"
)

// LLM backend endpoints.
const (
	EndpointChat       = "/chat"
	EndpointChatStream = "/chat/stream"
)

func EndpointMediaByID(id string) string {
	return fmt.Sprintf("%s/%s", EndpointMedia, id)
}

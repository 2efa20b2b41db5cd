package domain

type HashtagPerformance struct {
	Hashtag       string  `json:"hashtag"`
	Usage         int     `json:"usage"`
	AvgEngagement float64 `json:"avgEngagement"`
	Reach         int64   `json:"reach,omitempty"`
}

type FollowerGrowthPrediction struct {
	Current    int64   `json:"current"`
	Predicted  int64   `json:"predicted"`
	Timeframe  string  `json:"timeframe"`
	Confidence float64 `json:"confidence"`
}

type EngagementForecast struct {
	Current   float64 `json:"current"`
	Predicted float64 `json:"predicted"`
	Trend     string  `json:"trend"`
}

type GrowthPredictions struct {
	FollowerGrowth     FollowerGrowthPrediction `json:"followerGrowth"`
	EngagementForecast EngagementForecast       `json:"engagementForecast"`
	Recommendations    []string                 `json:"recommendations"`
}

// AccountValue is the monetization estimate shown on the monetisation tab.
// Monetary fields are preformatted strings straight from the backend.
type AccountValue struct {
	Tier             string `json:"tier"`
	PerPost          string `json:"perPost"`
	PerReel          string `json:"perReel"`
	MonthlyPotential string `json:"monthlyPotential"`
	YearlyPotential  string `json:"yearlyPotential"`
	Factors          struct {
		Followers      int64  `json:"followers"`
		EngagementRate string `json:"engagementRate"`
		Niche          string `json:"niche,omitempty"`
	} `json:"factors"`
}

// CompleteAnalytics bundles every resource in one payload for the settings
// tab's export view.
type CompleteAnalytics struct {
	Profile      ProfileWithEngagement `json:"profile"`
	Dashboard    DashboardData         `json:"dashboard"`
	Engagement   EngagementTrends      `json:"engagement"`
	Content      ContentPerformance    `json:"content"`
	Posting      PostingPatterns       `json:"posting"`
	Hashtags     []HashtagPerformance  `json:"hashtags"`
	Predictions  GrowthPredictions     `json:"predictions"`
	AccountValue AccountValue          `json:"accountValue"`
}

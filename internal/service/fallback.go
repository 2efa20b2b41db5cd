package service

import (
	"strings"

	"github.com/nmoreaux/instalens-go/internal/domain"
	"github.com/nmoreaux/instalens-go/internal/util"
)

// FallbackProvider supplies the values shown when the backend is down. It is
// injectable so tests can substitute deterministic fixtures; the default is
// the static set below. Chat replies are the terminal error boundary of the
// assistant and must always be non-empty.
type FallbackProvider interface {
	ChatReply(question string, mode domain.ChatMode) string
	AccountValue() domain.AccountValue
	Predictions() domain.GrowthPredictions
	Hashtags() []domain.HashtagPerformance
	Profile() domain.ProfileData
}

// StaticFallbacks is the deterministic default provider. The figures are the
// dashboard's canonical placeholder account; nothing here is randomized.
type StaticFallbacks struct{}

func NewStaticFallbacks() *StaticFallbacks {
	return &StaticFallbacks{}
}

const (
	fallbackReplyPerformance = "Your top performing post this month gathered 4,521 likes and 234 comments. " +
		"Carousel posts are your strongest format right now, averaging 25% more likes than single images. " +
		"Posting between 6 and 8 PM continues to give your content the best first-hour reach."

	fallbackReplyMonetization = "With around 45.9K followers and a 4.8% engagement rate, your account sits in the " +
		"micro-influencer tier. A sponsored post is worth roughly $180-320 and a reel $250-420. " +
		"Two to three partnerships per month would put your monthly potential near $900."

	fallbackReplyDefault = "Based on your analytics, your follower growth rate increased by 2.8% this month and your " +
		"engagement rate is at 4.8%, above the industry average. Keep posting during peak hours (6-8 PM) " +
		"and lean on carousel posts for maximum impact."
)

// ChatReply picks a canned answer by keyword: questions about posts or top
// content get the performance reply, monetization questions (English or
// French) get the monetization reply, everything else falls back by mode.
func (f *StaticFallbacks) ChatReply(question string, mode domain.ChatMode) string {
	q := util.Normalize(question)

	switch {
	case strings.Contains(q, "post") || strings.Contains(q, "top"):
		return fallbackReplyPerformance
	case strings.Contains(q, "monetiz") || strings.Contains(q, "argent"):
		return fallbackReplyMonetization
	case mode == domain.ModeMonetization:
		return fallbackReplyMonetization
	default:
		return fallbackReplyDefault
	}
}

func (f *StaticFallbacks) AccountValue() domain.AccountValue {
	v := domain.AccountValue{
		Tier:             "Micro-influencer",
		PerPost:          "$180 - $320",
		PerReel:          "$250 - $420",
		MonthlyPotential: "$900",
		YearlyPotential:  "$10,800",
	}
	v.Factors.Followers = 45892
	v.Factors.EngagementRate = "4.8%"
	v.Factors.Niche = "Photography & Design"
	return v
}

func (f *StaticFallbacks) Predictions() domain.GrowthPredictions {
	return domain.GrowthPredictions{
		FollowerGrowth: domain.FollowerGrowthPrediction{
			Current:    45892,
			Predicted:  47200,
			Timeframe:  "30 days",
			Confidence: 0.72,
		},
		EngagementForecast: domain.EngagementForecast{
			Current:   4.8,
			Predicted: 5.1,
			Trend:     "up",
		},
		Recommendations: []string{
			"Post more carousel content",
			"Keep publishing between 6 and 8 PM",
			"Reply to comments within the first hour",
		},
	}
}

func (f *StaticFallbacks) Hashtags() []domain.HashtagPerformance {
	return []domain.HashtagPerformance{
		{Hashtag: "#photography", Usage: 48, AvgEngagement: 5.2, Reach: 32400},
		{Hashtag: "#design", Usage: 36, AvgEngagement: 4.6, Reach: 28900},
		{Hashtag: "#creative", Usage: 29, AvgEngagement: 4.1, Reach: 25600},
	}
}

func (f *StaticFallbacks) Profile() domain.ProfileData {
	return domain.ProfileData{
		ID:          "0",
		Username:    "creative_studio",
		Name:        "Creative Studio",
		AccountType: "BUSINESS",
		Stats: domain.ProfileStats{
			Followers: 45892,
			Following: 1247,
			Posts:     342,
		},
	}
}

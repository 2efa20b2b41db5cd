package domain

import "time"

type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

func (t Trend) String() string {
	return string(t)
}

// EngagementChartPoint is one x-axis sample of the engagement series.
// Date carries the display label; FullDate is the sortable key ("2006-01-02").
type EngagementChartPoint struct {
	Date       string `json:"date"`
	FullDate   string `json:"fullDate"`
	Likes      int64  `json:"likes"`
	Comments   int64  `json:"comments"`
	Engagement int64  `json:"engagement"`
}

// EngagementChartResponse is the chart endpoint's shape: pre-split label and
// dataset arrays for the chart library, plus the raw point series.
type EngagementChartResponse struct {
	Labels   []string `json:"labels"`
	Datasets struct {
		Likes      []int64 `json:"likes"`
		Comments   []int64 `json:"comments"`
		Engagement []int64 `json:"engagement"`
	} `json:"datasets"`
	Raw []EngagementChartPoint `json:"raw"`
}

// FollowerPoint is one sample of the followers-growth series.
type FollowerPoint struct {
	Date      string `json:"date"`
	FullDate  string `json:"fullDate"`
	Followers int64  `json:"followers"`
}

type ContentBreakdown struct {
	Type          string  `json:"type"`
	Count         int     `json:"count"`
	Percentage    float64 `json:"percentage"`
	AvgEngagement float64 `json:"avgEngagement"`
}

type GrowthSimulation struct {
	Current   int64 `json:"current"`
	Projected struct {
		OneMonth    int64 `json:"oneMonth"`
		ThreeMonths int64 `json:"threeMonths"`
		SixMonths   int64 `json:"sixMonths"`
		OneYear     int64 `json:"oneYear"`
	} `json:"projected"`
	GrowthRate float64 `json:"growthRate"`
}

type EngagementTrends struct {
	Daily              []EngagementChartPoint `json:"daily"`
	Weekly             []EngagementChartPoint `json:"weekly"`
	AvgLikesPerPost    float64                `json:"avgLikesPerPost"`
	AvgCommentsPerPost float64                `json:"avgCommentsPerPost"`
	Trend              Trend                  `json:"trend"`
}

type ContentPerformance struct {
	ByType              []ContentBreakdown `json:"byType"`
	BestPerformingType  string             `json:"bestPerformingType"`
	WorstPerformingType string             `json:"worstPerformingType"`
}

type DayPattern struct {
	Day           string  `json:"day"`
	AvgEngagement float64 `json:"avgEngagement"`
}

type HourPattern struct {
	Hour          int     `json:"hour"`
	AvgEngagement float64 `json:"avgEngagement"`
}

type PostingPatterns struct {
	BestDays       []DayPattern  `json:"bestDays"`
	BestHours      []HourPattern `json:"bestHours"`
	Recommendation string        `json:"recommendation"`
}

const fullDateLayout = "2006-01-02"

// PercentChange computes the relative change between two samples as a
// percentage. A zero baseline yields 0 rather than a division error.
func PercentChange(oldValue, newValue float64) float64 {
	if oldValue == 0 {
		return 0
	}
	return (newValue - oldValue) / oldValue * 100
}

// Dated is satisfied by chart points that carry a sortable full date.
type Dated interface {
	SortableDate() string
}

func (p EngagementChartPoint) SortableDate() string { return p.FullDate }
func (p FollowerPoint) SortableDate() string        { return p.FullDate }

// FilterSinceDays keeps the points whose full date falls within the last
// `days` days. The backend returns full history; range selection is a
// client-side concern. Points without a parseable full date are kept, and
// days <= 0 disables filtering. Filtering preserves order and is idempotent.
func FilterSinceDays[P Dated](points []P, days int, now time.Time) []P {
	if days <= 0 {
		return points
	}

	cutoff := now.AddDate(0, 0, -days)
	filtered := make([]P, 0, len(points))
	for _, p := range points {
		ts, err := time.Parse(fullDateLayout, p.SortableDate())
		if err != nil {
			filtered = append(filtered, p)
			continue
		}
		if !ts.Before(cutoff) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/nmoreaux/instalens-go/internal/api"
	"github.com/nmoreaux/instalens-go/internal/domain"
	"go.uber.org/zap"
)

func newChartService(t *testing.T, handler http.HandlerFunc) *ChartService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := api.NewClient(server.URL, server.Client(), zap.NewNop())
	svc := NewChartService(client, zap.NewNop())
	svc.now = func() time.Time {
		return time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC)
	}
	return svc
}

func TestGetEngagementChartUsesRawSeries(t *testing.T) {
	svc := newChartService(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != api.EndpointEngagementChart {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{
			"labels": ["Jun 28", "Jun 29"],
			"datasets": {"likes": [120, 140], "comments": [10, 12], "engagement": [130, 152]},
			"raw": [
				{"date": "Jun 28", "fullDate": "2025-06-28", "likes": 120, "comments": 10, "engagement": 130},
				{"date": "Jun 29", "fullDate": "2025-06-29", "likes": 140, "comments": 12, "engagement": 152}
			]
		}`))
	})

	points, err := svc.GetEngagementChart(context.Background(), 0)
	if err != nil {
		t.Fatalf("GetEngagementChart returned error: %v", err)
	}
	if len(points) != 2 {
		t.Fatalf("Expected 2 raw points, got %d", len(points))
	}
	if points[1].Likes != 140 || points[1].Engagement != 152 {
		t.Errorf("Raw point not decoded: %+v", points[1])
	}
}

func TestGetEngagementChartFiltersByDays(t *testing.T) {
	svc := newChartService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"raw": [
				{"date": "Jun 1", "fullDate": "2025-06-01", "likes": 90},
				{"date": "Jun 29", "fullDate": "2025-06-29", "likes": 140}
			]
		}`))
	})

	points, err := svc.GetEngagementChart(context.Background(), 7)
	if err != nil {
		t.Fatalf("GetEngagementChart returned error: %v", err)
	}
	if len(points) != 1 {
		t.Fatalf("Expected the old point filtered out, got %d points", len(points))
	}
	if points[0].FullDate != "2025-06-29" {
		t.Errorf("Wrong point survived: %+v", points[0])
	}
}

func TestGetEngagementChartMissingRaw(t *testing.T) {
	svc := newChartService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"labels": [], "datasets": {}}`))
	})

	points, err := svc.GetEngagementChart(context.Background(), 0)
	if err != nil {
		t.Fatalf("GetEngagementChart returned error: %v", err)
	}
	if points == nil {
		t.Error("Expected empty slice, not nil")
	}
	if len(points) != 0 {
		t.Errorf("Expected no points, got %d", len(points))
	}
}

func TestGetFollowersGrowthFiltersAndUnwraps(t *testing.T) {
	svc := newChartService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": true, "data": [
			{"date": "Jun 1", "fullDate": "2025-06-01", "followers": 45000},
			{"date": "Jun 29", "fullDate": "2025-06-29", "followers": 45892}
		]}`))
	})

	points, err := svc.GetFollowersGrowth(context.Background(), 7)
	if err != nil {
		t.Fatalf("GetFollowersGrowth returned error: %v", err)
	}
	if len(points) != 1 || points[0].Followers != 45892 {
		t.Errorf("Unexpected filtered series: %+v", points)
	}
}

func TestGrowthPercent(t *testing.T) {
	svc := NewChartService(nil, zap.NewNop())

	points := []domain.FollowerPoint{
		{Followers: 40000},
		{Followers: 44000},
	}
	if got := svc.GrowthPercent(points); got != 10 {
		t.Errorf("Expected 10%% growth, got %v", got)
	}

	if got := svc.GrowthPercent(nil); got != 0 {
		t.Errorf("Expected 0 for empty series, got %v", got)
	}
	if got := svc.GrowthPercent(points[:1]); got != 0 {
		t.Errorf("Expected 0 for single sample, got %v", got)
	}
}

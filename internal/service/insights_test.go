package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nmoreaux/instalens-go/internal/api"
	"go.uber.org/zap"
)

func newInsightsService(t *testing.T, handler http.HandlerFunc) *InsightsService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := api.NewClient(server.URL, server.Client(), zap.NewNop())
	return NewInsightsService(client, NewStaticFallbacks(), zap.NewNop())
}

func TestGetHashtagsFromBackend(t *testing.T) {
	svc := newInsightsService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"hashtag": "#travel", "usage": 12, "avgEngagement": 3.4, "reach": 15000}]`))
	})

	tags := svc.GetHashtags(context.Background())
	if len(tags) != 1 || tags[0].Hashtag != "#travel" {
		t.Errorf("Expected backend hashtags, got %+v", tags)
	}
}

func TestGetHashtagsFallsBack(t *testing.T) {
	svc := newInsightsService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	tags := svc.GetHashtags(context.Background())
	if len(tags) == 0 {
		t.Fatal("Hashtags must fall back, never come up empty")
	}
}

func TestGetPredictionsFallsBack(t *testing.T) {
	svc := newInsightsService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	predictions := svc.GetPredictions(context.Background())
	if predictions.FollowerGrowth.Current == 0 {
		t.Error("Expected fallback predictions, got zero value")
	}
}

func TestGetAccountValueFallsBack(t *testing.T) {
	svc := newInsightsService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	value := svc.GetAccountValue(context.Background())
	if value.Tier == "" {
		t.Error("Expected fallback account value, got zero value")
	}
}

func TestGetAccountValueFromBackend(t *testing.T) {
	svc := newInsightsService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": true, "data": {"tier": "Mid-tier", "perPost": "$500 - $800"}}`))
	})

	value := svc.GetAccountValue(context.Background())
	if value.Tier != "Mid-tier" {
		t.Errorf("Expected backend value, got %+v", value)
	}
}

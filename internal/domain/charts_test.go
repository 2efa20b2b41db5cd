package domain

import (
	"testing"
	"time"
)

func TestPercentChange(t *testing.T) {
	tests := []struct {
		name     string
		oldValue float64
		newValue float64
		want     float64
	}{
		{"growth", 100, 150, 50},
		{"decline", 100, 80, -20},
		{"flat", 100, 100, 0},
		{"zero baseline", 0, 50, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PercentChange(tt.oldValue, tt.newValue); got != tt.want {
				t.Errorf("PercentChange(%v, %v) = %v, want %v", tt.oldValue, tt.newValue, got, tt.want)
			}
		})
	}
}

func TestFilterSinceDays(t *testing.T) {
	now := time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC)

	points := []FollowerPoint{
		{FullDate: "2025-06-01", Followers: 100},
		{FullDate: "2025-06-25", Followers: 200},
		{FullDate: "2025-06-29", Followers: 300},
	}

	got := FilterSinceDays(points, 7, now)
	if len(got) != 2 {
		t.Fatalf("Expected 2 points within 7 days, got %d", len(got))
	}
	if got[0].FullDate != "2025-06-25" || got[1].FullDate != "2025-06-29" {
		t.Errorf("Expected order preserved, got %v", got)
	}
}

func TestFilterSinceDaysDisabled(t *testing.T) {
	now := time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC)
	points := []FollowerPoint{
		{FullDate: "2020-01-01"},
		{FullDate: "2025-06-29"},
	}

	if got := FilterSinceDays(points, 0, now); len(got) != 2 {
		t.Errorf("Expected days=0 to disable filtering, got %d points", len(got))
	}
	if got := FilterSinceDays(points, -5, now); len(got) != 2 {
		t.Errorf("Expected negative days to disable filtering, got %d points", len(got))
	}
}

func TestFilterSinceDaysKeepsUnparseableDates(t *testing.T) {
	now := time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC)
	points := []EngagementChartPoint{
		{Date: "Jun 29", FullDate: "2025-06-29"},
		{Date: "???", FullDate: "not-a-date"},
		{Date: "Jan 1", FullDate: "2025-01-01"},
	}

	got := FilterSinceDays(points, 7, now)
	if len(got) != 2 {
		t.Fatalf("Expected unparseable date to be kept, got %d points", len(got))
	}
	if got[1].FullDate != "not-a-date" {
		t.Errorf("Expected the unparseable point in place, got %v", got)
	}
}

func TestFilterSinceDaysIdempotent(t *testing.T) {
	now := time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC)
	points := []FollowerPoint{
		{FullDate: "2025-06-01"},
		{FullDate: "2025-06-29"},
	}

	once := FilterSinceDays(points, 7, now)
	twice := FilterSinceDays(once, 7, now)

	if len(once) != len(twice) {
		t.Fatalf("Filtering is not idempotent: %d vs %d", len(once), len(twice))
	}
	for i := range once {
		if once[i] != twice[i] {
			t.Errorf("Point %d changed on second filter: %v vs %v", i, once[i], twice[i])
		}
	}
}

package service

import (
	"strings"
	"testing"

	"github.com/nmoreaux/instalens-go/internal/domain"
)

func TestChatReplyKeywordSelection(t *testing.T) {
	fallbacks := NewStaticFallbacks()

	tests := []struct {
		name     string
		question string
		mode     domain.ChatMode
		want     string
	}{
		{"post keyword", "How are my posts doing?", domain.ModeStrategy, fallbackReplyPerformance},
		{"top keyword", "show my TOP content", domain.ModeStrategy, fallbackReplyPerformance},
		{"monetization keyword", "monetization tips?", domain.ModeStrategy, fallbackReplyMonetization},
		{"french money keyword", "comment gagner de l'argent ?", domain.ModeStrategy, fallbackReplyMonetization},
		{"monetization mode", "what should I do next?", domain.ModeMonetization, fallbackReplyMonetization},
		{"default", "tell me about my audience", domain.ModeAudience, fallbackReplyDefault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fallbacks.ChatReply(tt.question, tt.mode)
			if got != tt.want {
				t.Errorf("ChatReply(%q, %s) picked the wrong reply", tt.question, tt.mode)
			}
			if got == "" {
				t.Error("Fallback reply must never be empty")
			}
		})
	}
}

func TestChatReplyDeterministic(t *testing.T) {
	fallbacks := NewStaticFallbacks()

	first := fallbacks.ChatReply("anything", domain.ModeStrategy)
	for i := 0; i < 5; i++ {
		if got := fallbacks.ChatReply("anything", domain.ModeStrategy); got != first {
			t.Fatal("Fallback replies must be deterministic")
		}
	}
}

func TestStaticAccountValue(t *testing.T) {
	value := NewStaticFallbacks().AccountValue()

	if value.Tier != "Micro-influencer" {
		t.Errorf("Unexpected tier %q", value.Tier)
	}
	if !strings.HasPrefix(value.PerPost, "$") {
		t.Errorf("Expected preformatted money string, got %q", value.PerPost)
	}
	if value.Factors.Followers == 0 {
		t.Error("Expected follower factor to be populated")
	}
}

func TestStaticPredictions(t *testing.T) {
	predictions := NewStaticFallbacks().Predictions()

	if predictions.FollowerGrowth.Predicted <= predictions.FollowerGrowth.Current {
		t.Error("Placeholder predictions should show growth")
	}
	if len(predictions.Recommendations) == 0 {
		t.Error("Expected placeholder recommendations")
	}
}

func TestStaticHashtags(t *testing.T) {
	tags := NewStaticFallbacks().Hashtags()

	if len(tags) == 0 {
		t.Fatal("Expected placeholder hashtags")
	}
	for _, tag := range tags {
		if !strings.HasPrefix(tag.Hashtag, "#") {
			t.Errorf("Hashtag %q missing # prefix", tag.Hashtag)
		}
	}
}

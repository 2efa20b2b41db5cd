package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nmoreaux/instalens-go/internal/api"
	"go.uber.org/zap"
)

func newMediaService(t *testing.T, handler http.HandlerFunc) *MediaService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := api.NewClient(server.URL, server.Client(), zap.NewNop())
	return NewMediaService(client, zap.NewNop())
}

func TestGetAllMediaForwardsLimit(t *testing.T) {
	svc := newMediaService(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("limit"); got != "25" {
			t.Errorf("Expected limit=25, got %q", got)
		}
		w.Write([]byte(`{"success": true, "data": [{"id": "1", "likes": 10}]}`))
	})

	posts, err := svc.GetAllMedia(context.Background(), 25)
	if err != nil {
		t.Fatalf("GetAllMedia returned error: %v", err)
	}
	if len(posts) != 1 || posts[0].ID != "1" {
		t.Errorf("Unexpected posts: %+v", posts)
	}
}

func TestGetAllMediaOmitsZeroLimit(t *testing.T) {
	svc := newMediaService(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.RawQuery != "" {
			t.Errorf("Expected no query params, got %q", r.URL.RawQuery)
		}
		w.Write([]byte(`[]`))
	})

	if _, err := svc.GetAllMedia(context.Background(), 0); err != nil {
		t.Fatalf("GetAllMedia returned error: %v", err)
	}
}

func TestGetTopPostsSortsClientSide(t *testing.T) {
	svc := newMediaService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"id": "a", "likes": 10},
			{"id": "b", "likes": 50},
			{"id": "c", "likes": 30}
		]`))
	})

	top, err := svc.GetTopPosts(context.Background(), 2)
	if err != nil {
		t.Fatalf("GetTopPosts returned error: %v", err)
	}
	if len(top) != 2 || top[0].ID != "b" || top[1].ID != "c" {
		t.Errorf("Unexpected top posts: %+v", top)
	}
}

func TestGetMediaByID(t *testing.T) {
	svc := newMediaService(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/stats/media/42" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"id": "42", "likes": 99}`))
	})

	post, err := svc.GetMediaByID(context.Background(), "42")
	if err != nil {
		t.Fatalf("GetMediaByID returned error: %v", err)
	}
	if post.ID != "42" || post.Likes != 99 {
		t.Errorf("Unexpected post: %+v", post)
	}
}

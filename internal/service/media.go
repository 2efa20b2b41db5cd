package service

import (
	"context"
	"net/url"
	"strconv"

	"github.com/nmoreaux/instalens-go/internal/api"
	"github.com/nmoreaux/instalens-go/internal/domain"
	"go.uber.org/zap"
)

type MediaService struct {
	client *api.Client
	logger *zap.Logger
}

func NewMediaService(client *api.Client, logger *zap.Logger) *MediaService {
	return &MediaService{client: client, logger: logger}
}

// GetAllMedia fetches the media list; limit <= 0 fetches everything.
func (s *MediaService) GetAllMedia(ctx context.Context, limit int) ([]domain.MediaPost, error) {
	var params url.Values
	if limit > 0 {
		params = url.Values{"limit": []string{strconv.Itoa(limit)}}
	}
	return api.GetJSON[[]domain.MediaPost](ctx, s.client, api.EndpointMedia, params)
}

func (s *MediaService) GetMediaByID(ctx context.Context, id string) (domain.MediaPost, error) {
	return api.GetJSON[domain.MediaPost](ctx, s.client, api.EndpointMediaByID(id), nil)
}

// GetTopPosts fetches media and returns the n best posts by likes. The sort
// happens client-side; the backend has no top-posts contract.
func (s *MediaService) GetTopPosts(ctx context.Context, n int) ([]domain.MediaPost, error) {
	posts, err := s.GetAllMedia(ctx, 0)
	if err != nil {
		return nil, err
	}
	return domain.TopPosts(posts, n), nil
}

package domain

import "sort"

type MediaType string

const (
	MediaTypeImage    MediaType = "IMAGE"
	MediaTypeVideo    MediaType = "VIDEO"
	MediaTypeCarousel MediaType = "CAROUSEL_ALBUM"
)

func (m MediaType) String() string {
	return string(m)
}

func (m MediaType) IsValid() bool {
	switch m {
	case MediaTypeImage, MediaTypeVideo, MediaTypeCarousel:
		return true
	default:
		return false
	}
}

// MediaPost is a single published post as the stats API reports it.
type MediaPost struct {
	ID         string `json:"id"`
	Type       string `json:"type"`
	Caption    string `json:"caption,omitempty"`
	Likes      int64  `json:"likes"`
	Comments   int64  `json:"comments"`
	Engagement int64  `json:"engagement"`
	Date       string `json:"date"`
	Thumbnail  string `json:"thumbnail,omitempty"`
	Permalink  string `json:"permalink,omitempty"`
}

// TopPosts returns the n best posts by likes, descending. The sort is stable
// so posts with equal likes keep their fetch order. The input slice is not
// mutated; "top posts" is a client-side view, never materialized server-side.
func TopPosts(posts []MediaPost, n int) []MediaPost {
	sorted := make([]MediaPost, len(posts))
	copy(sorted, posts)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Likes > sorted[j].Likes
	})

	if n < 0 {
		n = 0
	}
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}

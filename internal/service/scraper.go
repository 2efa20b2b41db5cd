package service

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/nmoreaux/instalens-go/internal/domain"
	"github.com/nmoreaux/instalens-go/pkg/errors"
	"go.uber.org/zap"
)

const scraperTimeout = 15 * time.Second

// ProfileScraper recovers a degraded profile from the public profile page
// when the account connection is down. It only reads what the page exposes
// in its meta tags: the display name and the follower/following/post counts.
type ProfileScraper struct {
	httpClient *http.Client
	baseURL    string
	logger     *zap.Logger
}

func NewProfileScraper(baseURL string, logger *zap.Logger) *ProfileScraper {
	return &ProfileScraper{
		httpClient: &http.Client{Timeout: scraperTimeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		logger:     logger,
	}
}

// FetchPublicProfile scrapes the public page of username. The result carries
// no engagement data; it keeps the settings tab populated while the user
// reconnects.
func (s *ProfileScraper) FetchPublicProfile(ctx context.Context, username string) (domain.ProfileData, error) {
	var profile domain.ProfileData

	pageURL := fmt.Sprintf("%s/%s/", s.baseURL, username)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return profile, errors.NewServiceError("failed to build scrape request", "scraper", "fetch", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; instalens/1.0)")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return profile, errors.NewServiceError("profile page fetch failed", "scraper", "fetch", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return profile, errors.NewServiceError(
			fmt.Sprintf("profile page returned status %d", resp.StatusCode), "scraper", "fetch", nil)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return profile, errors.NewServiceError("failed to parse profile page", "scraper", "parse", err)
	}

	profile.Username = username
	profile.AccountType = "PUBLIC"

	if title, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok {
		profile.Name = cleanTitle(title)
	}
	if desc, ok := doc.Find(`meta[property="og:description"]`).Attr("content"); ok {
		profile.Stats = parseProfileStats(desc)
	}
	if image, ok := doc.Find(`meta[property="og:image"]`).Attr("content"); ok {
		profile.ProfilePicture = image
	}

	s.logger.Info("Scraped public profile",
		zap.String("username", username),
		zap.Int64("followers", profile.Stats.Followers),
	)

	return profile, nil
}

// cleanTitle strips the "(@user) • Instagram ..." suffix from an og:title.
func cleanTitle(title string) string {
	if idx := strings.Index(title, "(@"); idx > 0 {
		return strings.TrimSpace(title[:idx])
	}
	return strings.TrimSpace(title)
}

// parseProfileStats reads counts from an og:description of the form
// "45.9K Followers, 1,247 Following, 342 Posts - ...".
func parseProfileStats(desc string) domain.ProfileStats {
	var stats domain.ProfileStats

	for _, field := range strings.Split(desc, ",") {
		words := strings.Fields(strings.TrimSpace(field))
		if len(words) < 2 {
			continue
		}
		count, err := ParseCompactCount(words[0])
		if err != nil {
			continue
		}
		switch strings.ToLower(words[1]) {
		case "followers":
			stats.Followers = count
		case "following":
			stats.Following = count
		case "posts":
			stats.Posts = count
		}
	}

	return stats
}

// ParseCompactCount parses "45.9K", "1.2M" or "1,247" style counters.
func ParseCompactCount(s string) (int64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, fmt.Errorf("empty count")
	}

	multiplier := int64(1)
	switch s[len(s)-1] {
	case 'K', 'k':
		multiplier = 1_000
		s = s[:len(s)-1]
	case 'M', 'm':
		multiplier = 1_000_000
		s = s[:len(s)-1]
	}

	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("unparseable count %q: %w", s, err)
	}

	return int64(value * float64(multiplier)), nil
}

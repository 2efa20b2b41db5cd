package app

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/nmoreaux/instalens-go/internal/api"
	"github.com/nmoreaux/instalens-go/internal/chat"
	"github.com/nmoreaux/instalens-go/internal/config"
	"github.com/nmoreaux/instalens-go/internal/domain"
	"github.com/nmoreaux/instalens-go/internal/live"
	"github.com/nmoreaux/instalens-go/internal/query"
	"github.com/nmoreaux/instalens-go/internal/service"
	"go.uber.org/zap"
)

// Container bundles the assembled clients, services and cache handles. All
// heavy-weight initialization (Redis, websocket, HTTP clients) happens in
// Build so the Agent stays focused on orchestration.
type Container struct {
	Config *config.Config
	Logger *zap.Logger

	StatsClient *api.Client
	LLMClient   *api.Client

	Cache     *query.Cache
	Resources *Resources

	Auth      *service.AuthService
	Dashboard *service.DashboardService
	Media     *service.MediaService
	Analytics *service.AnalyticsService
	Charts    *service.ChartService
	Insights  *service.InsightsService
	Chat      *service.ChatService
	Scraper   *service.ProfileScraper

	Feed    *live.Feed
	Monitor *live.Monitor

	closers        []func()
	nextSessionSeq int
}

func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger) (container *Container, err error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger must not be nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var closers []func()
	defer func() {
		if err != nil {
			for i := len(closers) - 1; i >= 0; i-- {
				closers[i]()
			}
		}
	}()

	httpClient := &http.Client{Timeout: cfg.StatsAPI.Timeout}
	statsClient := api.NewClient(cfg.StatsAPI.BaseURL, httpClient, logger)

	// Streaming replies must not be cut short by the request timeout.
	llmClient := api.NewClient(cfg.LLM.BaseURL, &http.Client{}, logger)

	var store query.Store
	if cfg.Redis.Enabled {
		redisStore, redisErr := query.NewRedisStore(query.RedisConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, logger)
		if redisErr != nil {
			return nil, fmt.Errorf("failed to create redis store: %w", redisErr)
		}
		closers = append(closers, func() {
			_ = redisStore.Close()
		})
		store = redisStore
	} else {
		store = query.NewMemoryStore()
	}

	cache := query.NewCache(store, logger)
	fallbacks := service.NewStaticFallbacks()

	authSvc := service.NewAuthService(statsClient, logger)
	dashboardSvc := service.NewDashboardService(statsClient, logger)
	mediaSvc := service.NewMediaService(statsClient, logger)
	analyticsSvc := service.NewAnalyticsService(statsClient, logger)
	chartSvc := service.NewChartService(statsClient, logger)
	insightsSvc := service.NewInsightsService(statsClient, fallbacks, logger)
	chatSvc := service.NewChatService(llmClient, fallbacks, service.ChatOptions{
		MaxTokens:   cfg.LLM.MaxTokens,
		Temperature: cfg.LLM.Temperature,
		NPosts:      cfg.LLM.NPosts,
	}, logger)

	var scraper *service.ProfileScraper
	if cfg.Scraper.Enabled {
		scraper = service.NewProfileScraper(cfg.Scraper.BaseURL, logger)
	}

	var feed *live.Feed
	if cfg.Live.Enabled {
		feed = live.NewFeed(cfg.Live.WSURL, 5, 5*time.Second, logger)
	}

	resources := buildResources(cache, resourceServices{
		auth:      authSvc,
		dashboard: dashboardSvc,
		media:     mediaSvc,
		analytics: analyticsSvc,
		charts:    chartSvc,
		insights:  insightsSvc,
	})

	return &Container{
		Config:      cfg,
		Logger:      logger,
		StatsClient: statsClient,
		LLMClient:   llmClient,
		Cache:       cache,
		Resources:   resources,
		Auth:        authSvc,
		Dashboard:   dashboardSvc,
		Media:       mediaSvc,
		Analytics:   analyticsSvc,
		Charts:      chartSvc,
		Insights:    insightsSvc,
		Chat:        chatSvc,
		Scraper:     scraper,
		Feed:        feed,
		Monitor:     live.NewMonitor(200, 5),
		closers:     closers,
	}, nil
}

// NewChatSession opens a conversation in the given assistant mode, wired to
// the streaming chat service. The service downgrades failures to fallback
// replies, so session turns only error out on programmer misuse.
func (c *Container) NewChatSession(mode domain.ChatMode, onUpdate chat.UpdateFunc) *chat.Session {
	c.nextSessionSeq++
	id := "conv-" + strconv.Itoa(c.nextSessionSeq)

	stream := func(ctx context.Context, question string, onChunk func(chunk string)) (string, error) {
		return c.Chat.SendStream(ctx, question, mode, onChunk), nil
	}

	return chat.NewSession(id, stream, onUpdate, c.Logger)
}

// PublicProfile serves the scraped public profile through the query cache,
// so repeated renders of the settings tab do not re-hit the profile page.
func (c *Container) PublicProfile(ctx context.Context, username string) (domain.ProfileData, error) {
	var profile domain.ProfileData
	if c.Scraper == nil {
		return profile, fmt.Errorf("profile scraper is disabled")
	}

	key := query.Key{Resource: "scraper.profile", Params: username}
	raw, err := c.Cache.Fetch(ctx, key, time.Hour, func(ctx context.Context) ([]byte, error) {
		scraped, err := c.Scraper.FetchPublicProfile(ctx, username)
		if err != nil {
			return nil, err
		}
		return json.Marshal(scraped)
	})
	if err != nil {
		return profile, err
	}
	return profile, json.Unmarshal(raw, &profile)
}

// Close releases held connections in reverse acquisition order.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}

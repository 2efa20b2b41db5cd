package service

import (
	"context"
	"time"

	"github.com/nmoreaux/instalens-go/internal/api"
	"github.com/nmoreaux/instalens-go/internal/domain"
	"go.uber.org/zap"
)

// ChatRequest is the LLM backend's request contract.
type ChatRequest struct {
	Question    string  `json:"question"`
	Mode        string  `json:"mode"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
	NPosts      int     `json:"n_posts"`
}

// ChatResponse is the LLM backend's reply for the non-streaming call.
type ChatResponse struct {
	Response           string `json:"response"`
	Mode               string `json:"mode"`
	ModeDescription    string `json:"mode_description"`
	Question           string `json:"question"`
	RelevantPostsCount int    `json:"relevant_posts_count"`
}

// ChatOptions are the generation knobs forwarded with every question.
type ChatOptions struct {
	MaxTokens   int
	Temperature float64
	NPosts      int
}

// ChatService talks to the LLM backend. The assistant is best-effort, not a
// critical path: both Send and SendStream downgrade any failure to a canned
// fallback reply after a short latency pause, and never return an error.
type ChatService struct {
	client   *api.Client
	fallback FallbackProvider
	options  ChatOptions
	logger   *zap.Logger

	// fallbackDelay emulates assistant latency when the backend is down so
	// the reply does not pop in unnaturally fast. Tests set it to zero.
	fallbackDelay time.Duration
}

func NewChatService(client *api.Client, fallback FallbackProvider, options ChatOptions, logger *zap.Logger) *ChatService {
	if fallback == nil {
		fallback = NewStaticFallbacks()
	}
	if options.MaxTokens == 0 {
		options.MaxTokens = 1000
	}
	if options.Temperature == 0 {
		options.Temperature = 0.7
	}
	if options.NPosts == 0 {
		options.NPosts = 5
	}
	return &ChatService{
		client:        client,
		fallback:      fallback,
		options:       options,
		logger:        logger,
		fallbackDelay: 1200 * time.Millisecond,
	}
}

func (s *ChatService) request(question string, mode domain.ChatMode) ChatRequest {
	return ChatRequest{
		Question:    question,
		Mode:        mode.String(),
		MaxTokens:   s.options.MaxTokens,
		Temperature: s.options.Temperature,
		NPosts:      s.options.NPosts,
	}
}

// Send asks the assistant and returns the full reply at once.
func (s *ChatService) Send(ctx context.Context, question string, mode domain.ChatMode) ChatResponse {
	resp, err := api.PostRawJSON[ChatResponse](ctx, s.client, api.EndpointChat, s.request(question, mode))
	if err != nil {
		s.logger.Warn("Chat request failed, using fallback reply",
			zap.String("mode", mode.String()),
			zap.Error(err),
		)
		return s.fallbackResponse(ctx, question, mode)
	}
	return resp
}

// SendStream asks the assistant and delivers the reply incrementally via
// onChunk, returning the assembled text. On failure the fallback reply is
// delivered through the same callback so the caller's streaming path stays
// uniform.
func (s *ChatService) SendStream(ctx context.Context, question string, mode domain.ChatMode, onChunk func(chunk string)) string {
	full, err := s.client.PostStream(ctx, api.EndpointChatStream, s.request(question, mode), onChunk)
	if err != nil {
		s.logger.Warn("Chat stream failed, using fallback reply",
			zap.String("mode", mode.String()),
			zap.Error(err),
		)
		reply := s.fallbackResponse(ctx, question, mode).Response
		if onChunk != nil {
			onChunk(reply)
		}
		return reply
	}
	return full
}

func (s *ChatService) fallbackResponse(ctx context.Context, question string, mode domain.ChatMode) ChatResponse {
	if s.fallbackDelay > 0 {
		select {
		case <-time.After(s.fallbackDelay):
		case <-ctx.Done():
		}
	}

	return ChatResponse{
		Response:        s.fallback.ChatReply(question, mode),
		Mode:            mode.String(),
		ModeDescription: "offline fallback",
		Question:        question,
	}
}

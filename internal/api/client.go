package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/nmoreaux/instalens-go/internal/metrics"
	"github.com/nmoreaux/instalens-go/pkg/errors"
	"go.uber.org/zap"
)

// bypassHeader tells the tunneling proxy in front of the backend to skip its
// interstitial inspection page.
const bypassHeader = "ngrok-skip-browser-warning"

const streamBufferSize = 4096

// apiErrorBody is the structured error shape the backend uses for non-2xx
// responses.
type apiErrorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Client is a thin wrapper over one backend base URL. It attaches the fixed
// header set, normalizes the response envelope and surfaces typed errors.
// Requests are single-shot: no retry, no circuit breaking.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(baseURL string, httpClient *http.Client, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     logger,
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get issues a GET and returns the envelope-unwrapped body.
func (c *Client) Get(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	body, err := c.do(ctx, http.MethodGet, endpoint, params, nil)
	if err != nil {
		return nil, err
	}
	return UnwrapEnvelope(body)
}

// Post issues a POST and returns the envelope-unwrapped body.
func (c *Client) Post(ctx context.Context, endpoint string, payload any) ([]byte, error) {
	body, err := c.do(ctx, http.MethodPost, endpoint, nil, payload)
	if err != nil {
		return nil, err
	}
	return UnwrapEnvelope(body)
}

// PostRaw issues a POST and returns the body verbatim, skipping envelope
// unwrapping. Used for endpoints that never wrap, like the LLM chat call.
func (c *Client) PostRaw(ctx context.Context, endpoint string, payload any) ([]byte, error) {
	return c.do(ctx, http.MethodPost, endpoint, nil, payload)
}

func (c *Client) do(ctx context.Context, method, endpoint string, params url.Values, payload any) ([]byte, error) {
	resp, err := c.send(ctx, method, endpoint, params, payload)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.APIFailures.WithLabelValues(endpoint).Inc()
		return nil, errors.NewAPIError("failed to read response body", resp.StatusCode, nil).WithCause(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.APIFailures.WithLabelValues(endpoint).Inc()
		return nil, c.statusError(resp, endpoint, body)
	}

	return body, nil
}

// PostStream issues a POST and reads the response body incrementally,
// invoking onChunk for every decoded fragment in arrival order. The fully
// assembled text is returned once the stream closes. A response without a
// readable body fails explicitly instead of yielding an empty string.
func (c *Client) PostStream(ctx context.Context, endpoint string, payload any, onChunk func(chunk string)) (string, error) {
	resp, err := c.send(ctx, http.MethodPost, endpoint, nil, payload)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		metrics.APIFailures.WithLabelValues(endpoint).Inc()
		return "", c.statusError(resp, endpoint, body)
	}

	if resp.Body == http.NoBody {
		metrics.APIFailures.WithLabelValues(endpoint).Inc()
		return "", errors.NewStreamError("no response body for streaming", nil)
	}

	var full bytes.Buffer
	buf := make([]byte, streamBufferSize)
	for {
		n, err := resp.Body.Read(buf)
		if n > 0 {
			chunk := string(buf[:n])
			full.WriteString(chunk)
			metrics.StreamChunks.Inc()
			if onChunk != nil {
				onChunk(chunk)
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			if ctx.Err() != nil {
				return full.String(), ctx.Err()
			}
			return full.String(), errors.NewStreamError("stream read failed", err)
		}
	}

	return full.String(), nil
}

func (c *Client) send(ctx context.Context, method, endpoint string, params url.Values, payload any) (*http.Response, error) {
	reqURL := c.baseURL + endpoint
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	var reqBody io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, errors.NewAPIError("failed to encode request body", 0, nil).WithCause(err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return nil, errors.NewAPIError("failed to build request", 0, nil).WithCause(err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(bypassHeader, "true")

	metrics.APIRequests.WithLabelValues(endpoint).Inc()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.APIFailures.WithLabelValues(endpoint).Inc()
		c.logger.Warn("Request failed",
			zap.String("method", method),
			zap.String("endpoint", endpoint),
			zap.Error(err),
		)
		return nil, errors.NewAPIError("request failed", 0, map[string]any{
			"url": reqURL,
		}).WithCause(err)
	}

	return resp, nil
}

// statusError builds an APIError from a non-2xx response: the structured
// {error, message} body when present, otherwise one synthesized from the
// status line.
func (c *Client) statusError(resp *http.Response, endpoint string, body []byte) error {
	message := fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))

	var parsed apiErrorBody
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Message != "" {
		message = parsed.Message
	}

	c.logger.Warn("Backend error response",
		zap.String("endpoint", endpoint),
		zap.Int("status", resp.StatusCode),
	)

	return errors.NewAPIError(message, resp.StatusCode, map[string]any{
		"endpoint": endpoint,
	})
}

// GetJSON fetches and decodes an envelope-unwrapped GET response.
func GetJSON[T any](ctx context.Context, c *Client, endpoint string, params url.Values) (T, error) {
	var out T
	body, err := c.Get(ctx, endpoint, params)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return out, errors.NewDecodeError(fmt.Sprintf("failed to decode %s response", endpoint), err)
	}
	return out, nil
}

// PostJSON posts and decodes an envelope-unwrapped response.
func PostJSON[T any](ctx context.Context, c *Client, endpoint string, payload any) (T, error) {
	var out T
	body, err := c.Post(ctx, endpoint, payload)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return out, errors.NewDecodeError(fmt.Sprintf("failed to decode %s response", endpoint), err)
	}
	return out, nil
}

// PostRawJSON posts and decodes a response that never carries the envelope.
func PostRawJSON[T any](ctx context.Context, c *Client, endpoint string, payload any) (T, error) {
	var out T
	body, err := c.PostRaw(ctx, endpoint, payload)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return out, errors.NewDecodeError(fmt.Sprintf("failed to decode %s response", endpoint), err)
	}
	return out, nil
}

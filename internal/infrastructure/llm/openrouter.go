// Package llm is the client for an OpenRouter-compatible chat-completions API.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/Abh1nav7/AgenticSprint/internal/core/domain"
)

const DefaultBaseURL = "https://openrouter.ai/api/v1"

// Config describes the upstream endpoint and the attribution headers it expects.
type Config struct {
	BaseURL string
	APIKey  string
	Model   string
	Referer string
	Title   string
}

// Client issues one synchronous completion call per request. It performs no
// retries and adds no timeout beyond the transport's.
type Client struct {
	http *http.Client
	cfg  Config
}

func NewClient(cfg Config, httpClient *http.Client) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("completion API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{http: httpClient, cfg: cfg}, nil
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string               `json:"model"`
	Messages       []domain.ChatMessage `json:"messages"`
	Temperature    float64              `json:"temperature"`
	ResponseFormat *responseFormat      `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message *struct {
			Content *string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete returns the first choice's message content. A non-200 answer is a
// *domain.UpstreamError; a 200 without choices[0].message.content is
// domain.ErrInvalidUpstreamResponse.
func (c *Client) Complete(ctx context.Context, req domain.CompletionRequest) (string, error) {
	status, body, err := c.post(ctx, req)
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		return "", &domain.UpstreamError{StatusCode: status, Body: string(body)}
	}

	var resp chatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidUpstreamResponse, err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message == nil || resp.Choices[0].Message.Content == nil {
		return "", domain.ErrInvalidUpstreamResponse
	}
	return *resp.Choices[0].Message.Content, nil
}

// Probe returns whatever the upstream answered.
func (c *Client) Probe(ctx context.Context, req domain.CompletionRequest) (*domain.ProbeResult, error) {
	status, body, err := c.post(ctx, req)
	if err != nil {
		return nil, err
	}
	return &domain.ProbeResult{Status: status, Body: string(body)}, nil
}

func (c *Client) post(ctx context.Context, req domain.CompletionRequest) (int, []byte, error) {
	payload := chatRequest{
		Model:       c.cfg.Model,
		Messages:    req.Messages,
		Temperature: req.Temperature,
	}
	if req.JSONOutput {
		payload.ResponseFormat = &responseFormat{Type: "json_object"}
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, fmt.Errorf("encode completion request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/chat/completions", bytes.NewReader(data))
	if err != nil {
		return 0, nil, fmt.Errorf("build completion request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")
	if c.cfg.Referer != "" {
		httpReq.Header.Set("HTTP-Referer", c.cfg.Referer)
	}
	if c.cfg.Title != "" {
		httpReq.Header.Set("X-Title", c.cfg.Title)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return 0, nil, fmt.Errorf("completion request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("read completion response: %w", err)
	}
	return resp.StatusCode, body, nil
}

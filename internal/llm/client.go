// Package llm implements the retrying client for an OpenAI-compatible
// chat-completions endpoint. Every call independently retries up to the
// configured bound; there is no circuit breaker, so a sustained outage costs
// the full retry budget per call.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"go.uber.org/ratelimit"

	"github.com/newspulse/newsgen/config"
)

// systemPrompt pins the model to machine-readable output. The low sampling
// temperature comes from config for the same reason.
const systemPrompt = "You are a news generation engine. " +
	"Respond with valid JSON only: no markdown, no code fences, no commentary."

var (
	ErrExhausted = errors.New("llm attempts exhausted")
	ErrEnvelope  = errors.New("malformed response envelope")
)

// Generator is the single round-trip contract the orchestrator depends on.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	TopP        float64       `json:"top_p"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type Client struct {
	cfg    *config.LLMCfg
	http   *http.Client
	pacer  ratelimit.Limiter
	logger *slog.Logger
}

func New(cfg *config.LLMCfg, logger *slog.Logger) *Client {
	return &Client{
		cfg:    cfg,
		http:   &http.Client{},
		pacer:  ratelimit.New(cfg.RequestsPerSec),
		logger: logger,
	}
}

// Generate performs one prompt/response round trip, retrying transient
// failures with exponential backoff (1s, 2s, 4s by default, no jitter).
// After exhausting attempts it surfaces a single terminal error wrapping the
// last failure.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	var lastErr error

	for attempt := 1; attempt <= c.cfg.MaxAttempts; attempt++ {
		c.pacer.Take()

		content, err := c.attempt(ctx, prompt)
		if err == nil {
			if attempt > 1 {
				c.logger.Info("llm call succeeded after retry", "attempt", attempt)
			}
			return content, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return "", fmt.Errorf("llm generate cancelled: %w", ctx.Err())
		}

		c.logger.Warn("llm attempt failed",
			"attempt", attempt,
			"max_attempts", c.cfg.MaxAttempts,
			"error", err)

		if attempt == c.cfg.MaxAttempts {
			break
		}

		delay := Delay(c.cfg.BackoffBase, attempt)
		select {
		case <-ctx.Done():
			return "", fmt.Errorf("llm generate cancelled: %w", ctx.Err())
		case <-time.After(delay):
		}
	}

	return "", fmt.Errorf("%w after %d attempts: %w", ErrExhausted, c.cfg.MaxAttempts, lastErr)
}

// attempt performs exactly one network call bounded by the request timeout.
func (c *Client) attempt(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature: c.cfg.Temperature,
		TopP:        c.cfg.TopP,
	})
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	reqCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("post chat request: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.Error("close llm response body", "error", err)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("llm endpoint status %d: %s", resp.StatusCode, snippet)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read llm response: %w", err)
	}

	var parsed chatResponse
	if err = json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("%w: %v", ErrEnvelope, err)
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("%w: missing message content", ErrEnvelope)
	}

	return parsed.Choices[0].Message.Content, nil
}

package review

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tteslee/fundamental/internal"
)

// Generator produces an AIReview from a normalized request. Implementations
// may fail; callers are expected to fall back to BuildFallback.
type Generator interface {
	Generate(ctx context.Context, req *Request) (*AIReview, error)
}

const systemPrompt = "You are a health coach analyzing a user's sleep, food and medication records. Always answer with valid JSON in exactly the requested shape."

// OpenAIClient generates reviews through the chat completions API.
type OpenAIClient struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
	logger  internal.Logger
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type chatError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

func NewOpenAIClient(apiKey, baseURL, model string, timeout time.Duration, logger internal.Logger) *OpenAIClient {
	return &OpenAIClient{
		apiKey:  apiKey,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		model:   model,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

func (c *OpenAIClient) Generate(ctx context.Context, req *Request) (*AIReview, error) {
	if c.apiKey == "" {
		return nil, errors.New("review: no API key configured")
	}

	payload, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: req.Prompt()},
		},
		Temperature: 0.7,
		MaxTokens:   2000,
	})
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		c.logger.Errorf("review: generator call failed: %v", err)
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr chatError
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error.Message != "" {
			c.logger.Errorf("review: generator returned %d: %s", resp.StatusCode, apiErr.Error.Message)
			return nil, fmt.Errorf("review: generator error: %s", apiErr.Error.Message)
		}
		c.logger.Errorf("review: generator returned %d", resp.StatusCode)
		return nil, fmt.Errorf("review: generator returned status %d", resp.StatusCode)
	}

	var chat chatResponse
	if err := json.Unmarshal(body, &chat); err != nil {
		return nil, err
	}
	if len(chat.Choices) == 0 || chat.Choices[0].Message.Content == "" {
		return nil, errors.New("review: empty generator response")
	}

	return parseReview(chat.Choices[0].Message.Content)
}

// parseReview decodes the model output into an AIReview, tolerating a
// markdown code fence around the JSON.
func parseReview(content string) (*AIReview, error) {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
		content = strings.TrimSpace(content)
	}

	var review AIReview
	if err := json.Unmarshal([]byte(content), &review); err != nil {
		return nil, fmt.Errorf("review: unparsable generator output: %w", err)
	}
	if review.OverallReview.Summary == "" {
		return nil, errors.New("review: generator output missing summary")
	}
	return &review, nil
}

var _ Generator = (*OpenAIClient)(nil)

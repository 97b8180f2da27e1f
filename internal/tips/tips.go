// Package tips proxies typing-performance stats to the Together AI chat
// completions API and returns short improvement tips. Failures are not
// retried; callers surface them as an upstream error.
package tips

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const (
	defaultURL   = "https://api.together.xyz/v1/chat/completions"
	defaultModel = "mistralai/Mistral-7B-Instruct-v0.1"
)

type Client struct {
	apiKey string
	url    string
	model  string
	http   *http.Client
}

func New(apiKey string) *Client {
	return &Client{
		apiKey: apiKey,
		url:    defaultURL,
		model:  defaultModel,
		http:   &http.Client{Timeout: 30 * time.Second},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Generate asks for three short personalized tips for the given stats.
func (c *Client) Generate(ctx context.Context, wpm, accuracy float64, mistakes int) (string, error) {
	prompt := fmt.Sprintf(
		"My typing speed was %.0f WPM with %.0f%% accuracy and %d mistakes.\n"+
			"Give me 3 short personalized tips to improve my typing performance. Be concise and practical.",
		wpm, accuracy, mistakes)

	body, err := json.Marshal(chatRequest{
		Model:    c.model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("together request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("together status %d", resp.StatusCode)
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("together decode: %w", err)
	}
	if len(out.Choices) == 0 {
		return "No tips returned.", nil
	}
	return out.Choices[0].Message.Content, nil
}

package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/matheuskafuri/mednews/internal/config"
)

// Result holds the output from an LLM summarization call.
type Result struct {
	Summary string
	Tags    []string
}

// Summarizer generates short summaries and tags for articles.
type Summarizer interface {
	Summarize(ctx context.Context, title, description string) (Result, error)
}

// New creates a Summarizer from the given AI config.
func New(cfg *config.AIConfig, apiKey string) (Summarizer, error) {
	if cfg == nil || apiKey == "" {
		return nil, fmt.Errorf("AI not configured")
	}

	client := &http.Client{Timeout: 30 * time.Second}

	switch cfg.Provider {
	case "claude":
		model := cfg.Model
		if model == "" {
			model = "claude-haiku-4-5-20251001"
		}
		return &claudeProvider{apiKey: apiKey, model: model, client: client, endpoint: claudeEndpoint}, nil
	case "openai":
		model := cfg.Model
		if model == "" {
			model = "gpt-4o-mini"
		}
		return &openaiProvider{apiKey: apiKey, model: model, client: client, endpoint: openaiEndpoint}, nil
	default:
		return nil, fmt.Errorf("unknown AI provider: %q (valid: claude, openai)", cfg.Provider)
	}
}

const (
	claudeEndpoint = "https://api.anthropic.com/v1/messages"
	openaiEndpoint = "https://api.openai.com/v1/chat/completions"
)

const summarizePrompt = `Summarize this article about AI in medicine in one sentence (max 120 chars) and provide up to 3 topic tags (single words like: imaging, diagnostics, genomics, oncology, radiology, cardiology, ehr, trials, regulation, wearables).

Format your response EXACTLY like this:
SUMMARY: <one sentence summary>
TAGS: tag1, tag2, tag3

Title: %s
Description: %s`

func parseSummaryResponse(text string) Result {
	var r Result
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "SUMMARY:") {
			r.Summary = strings.TrimSpace(strings.TrimPrefix(line, "SUMMARY:"))
		} else if strings.HasPrefix(line, "TAGS:") {
			tagStr := strings.TrimSpace(strings.TrimPrefix(line, "TAGS:"))
			for _, t := range strings.Split(tagStr, ",") {
				t = strings.TrimSpace(strings.ToLower(t))
				if t != "" {
					r.Tags = append(r.Tags, t)
				}
			}
			if len(r.Tags) > 3 {
				r.Tags = r.Tags[:3]
			}
		}
	}
	return r
}

// --- Claude provider ---

type claudeProvider struct {
	apiKey   string
	model    string
	client   *http.Client
	endpoint string
}

type claudeRequest struct {
	Model     string          `json:"model"`
	MaxTokens int             `json:"max_tokens"`
	Messages  []claudeMessage `json:"messages"`
}

type claudeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type claudeResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

func (c *claudeProvider) Summarize(ctx context.Context, title, description string) (Result, error) {
	prompt := fmt.Sprintf(summarizePrompt, title, description)
	text, err := c.call(ctx, prompt)
	if err != nil {
		return Result{}, err
	}
	return parseSummaryResponse(text), nil
}

func (c *claudeProvider) call(ctx context.Context, prompt string) (string, error) {
	body, _ := json.Marshal(claudeRequest{
		Model:     c.model,
		MaxTokens: 256,
		Messages:  []claudeMessage{{Role: "user", Content: prompt}},
	})

	req, err := http.NewRequestWithContext(ctx, "POST", c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("claude API error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("claude API %d: %s", resp.StatusCode, string(b))
	}

	var cr claudeResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", err
	}
	if len(cr.Content) == 0 {
		return "", fmt.Errorf("empty claude response")
	}
	return cr.Content[0].Text, nil
}

// --- OpenAI provider ---

type openaiProvider struct {
	apiKey   string
	model    string
	client   *http.Client
	endpoint string
}

type openaiRequest struct {
	Model    string          `json:"model"`
	Messages []openaiMessage `json:"messages"`
}

type openaiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openaiResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (o *openaiProvider) Summarize(ctx context.Context, title, description string) (Result, error) {
	prompt := fmt.Sprintf(summarizePrompt, title, description)
	text, err := o.call(ctx, prompt)
	if err != nil {
		return Result{}, err
	}
	return parseSummaryResponse(text), nil
}

func (o *openaiProvider) call(ctx context.Context, prompt string) (string, error) {
	body, _ := json.Marshal(openaiRequest{
		Model:    o.model,
		Messages: []openaiMessage{{Role: "user", Content: prompt}},
	})

	req, err := http.NewRequestWithContext(ctx, "POST", o.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+o.apiKey)

	resp, err := o.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("openai API error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("openai API %d: %s", resp.StatusCode, string(b))
	}

	var or openaiResponse
	if err := json.NewDecoder(resp.Body).Decode(&or); err != nil {
		return "", err
	}
	if len(or.Choices) == 0 {
		return "", fmt.Errorf("empty openai response")
	}
	return or.Choices[0].Message.Content, nil
}

package insight

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"mizan/internal/cache"
	"mizan/internal/core"
	"mizan/internal/locale"
)

const (
	// DefaultAPIURL is the OpenRouter chat-completions endpoint.
	DefaultAPIURL = "https://openrouter.ai/api/v1/chat/completions"
	// DefaultModel balances quality and latency for short narratives.
	DefaultModel = "google/gemini-2.0-flash-001"

	requestTimeout = 30 * time.Second
)

// Client calls OpenRouter and caches responses per transaction-set digest
// and language so repeated identical requests do not hit the model again.
type Client struct {
	httpClient *http.Client
	apiURL     string
	apiKey     string
	model      string
	cache      *cache.LRUCache[Analysis]
}

var _ Analyzer = (*Client)(nil)

func NewClient(apiURL, apiKey, model string) *Client {
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	if model == "" {
		model = DefaultModel
	}
	return &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
		apiURL:     apiURL,
		apiKey:     apiKey,
		model:      model,
		cache:      cache.NewLRUCache[Analysis](64, 10*time.Minute),
	}
}

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	ResponseFormat respFormat    `json:"response_format"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type respFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Analyze summarizes the transaction set, asks the model for a structured
// JSON narrative in the requested language, and falls back to the static
// localized text when anything goes wrong. It never returns an error to the
// caller.
func (c *Client) Analyze(ctx context.Context, txs []core.Transaction, lang locale.Lang) Analysis {
	summary := summarize(txs)
	key := cache.DigestKey(summary, string(lang))
	if cached, ok := c.cache.Get(key); ok {
		slog.DebugContext(ctx, "Insight served from cache", "lang", lang)
		return cached
	}

	analysis, err := c.request(ctx, summary, lang)
	if err != nil {
		slog.ErrorContext(ctx, "Insight request failed, serving fallback",
			"error", err,
			"lang", lang,
			"transactions", len(txs))
		return Fallback(lang)
	}

	c.cache.Set(key, analysis)
	return analysis
}

func (c *Client) request(ctx context.Context, summary string, lang locale.Lang) (Analysis, error) {
	role, instruction := promptParts(lang)
	prompt := fmt.Sprintf(`%s
%s

Analyze the following financial data:
%s

JSON Structure:
{
  "summary": "overview text",
  "hotspots": ["point 1", "point 2"],
  "ratioAdvice": "advice about income/expense ratio",
  "savingsSuggestions": ["suggestion 1", "suggestion 2"],
  "riskAlerts": ["alert 1"]
}`, role, instruction, summary)

	payload := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: role + " You always respond in valid JSON."},
			{Role: "user", Content: prompt},
		},
		ResponseFormat: respFormat{Type: "json_object"},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return Analysis{}, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return Analysis{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("HTTP-Referer", "https://mizan.app")
	req.Header.Set("X-Title", "Mizan Financial Advisor")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Analysis{}, fmt.Errorf("call insight api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Analysis{}, fmt.Errorf("insight api status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Analysis{}, fmt.Errorf("read response: %w", err)
	}

	var cr chatResponse
	if err := json.Unmarshal(raw, &cr); err != nil {
		return Analysis{}, fmt.Errorf("decode response: %w", err)
	}
	if len(cr.Choices) == 0 {
		return Analysis{}, fmt.Errorf("empty choices in response")
	}

	var analysis Analysis
	if err := json.Unmarshal([]byte(cr.Choices[0].Message.Content), &analysis); err != nil {
		return Analysis{}, fmt.Errorf("decode analysis content: %w", err)
	}
	return analysis, nil
}

// summarize renders the transaction set as the fixed one-line-per-entry
// digest the prompt expects.
func summarize(txs []core.Transaction) string {
	var b strings.Builder
	for i, tx := range txs {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "- %s: %s (%g %s) category: %s",
			tx.Type, tx.Title, tx.Amount, locale.CurrencyCode, tx.Category)
	}
	return b.String()
}

func promptParts(lang locale.Lang) (role, instruction string) {
	if lang == locale.English {
		return "You are a financial advisor.",
			"Respond exclusively in JSON format and in English."
	}
	return "بصفتك مستشارًا ماليًا خبيرًا.",
		"قم بالرد حصرياً بتنسيق JSON وباللغة العربية."
}

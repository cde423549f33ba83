package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/alemhq/alem/pkg/llm"
	"github.com/alemhq/alem/pkg/resilience"
)

const defaultModel = "gemini-2.5-flash"

// Adapter calls the Gemini generateContent API. Classification requests run
// with a low temperature and a 10-token output cap; completions use the model
// defaults.
type Adapter struct {
	APIKey  string
	Model   string
	BaseURL string
	Client  *http.Client
}

func NewAdapter(apiKey, model string) *Adapter {
	if model == "" {
		model = defaultModel
	}
	return &Adapter{
		APIKey:  apiKey,
		Model:   model,
		BaseURL: "https://generativelanguage.googleapis.com/v1beta",
		Client:  &http.Client{Timeout: 60 * time.Second},
	}
}

func (a *Adapter) Name() string { return "gemini" }

func (a *Adapter) Classify(ctx context.Context, prompt string) (string, error) {
	return a.generate(ctx, prompt, map[string]any{
		"temperature":     0.1,
		"maxOutputTokens": 10,
	})
}

func (a *Adapter) Complete(ctx context.Context, prompt string) (string, error) {
	return a.generate(ctx, prompt, nil)
}

func (a *Adapter) generate(ctx context.Context, prompt string, genConfig map[string]any) (string, error) {
	payload := map[string]any{
		"contents": []map[string]any{
			{"parts": []map[string]any{{"text": prompt}}},
		},
	}
	if genConfig != nil {
		payload["generationConfig"] = genConfig
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	url := a.BaseURL + "/models/" + a.Model + ":generateContent"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", a.APIKey)

	resp, err := a.client().Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusTooManyRequests {
		msg, _ := io.ReadAll(resp.Body)
		return "", resilience.RateLimitError{Provider: "gemini", Message: string(msg)}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(resp.Body)
		return "", errors.New(string(msg))
	}

	var parsed struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", err
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("gemini: empty candidate list")
	}
	var out strings.Builder
	for _, part := range parsed.Candidates[0].Content.Parts {
		out.WriteString(part.Text)
	}
	return strings.TrimSpace(out.String()), nil
}

func (a *Adapter) client() *http.Client {
	if a.Client != nil {
		return a.Client
	}
	return http.DefaultClient
}

var _ llm.Service = (*Adapter)(nil)

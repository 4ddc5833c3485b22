// Gemini adapter for the Generative Language REST API.
// Endpoints used:
//   - POST {base}/models/{model}:generateContent  (single-shot generation)
//   - GET  {base}/models/{model}                  (health check)
//
// The API key travels in the x-goog-api-key header so it never appears in
// URLs or access logs.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"
)

const headerGoogAPIKey = "x-goog-api-key"

// maxErrorBody caps how much of a failed response body ends up in an error.
const maxErrorBody = 512

// ErrNoCandidates is returned when Gemini answers 200 without any text candidate,
// typically because the prompt was blocked by a safety filter.
var ErrNoCandidates = errors.New("gemini: no candidates returned")

// GeminiConfig captures the runtime settings required to talk to Gemini.
type GeminiConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// GeminiProvider implements LLMProvider against the Gemini REST API.
type GeminiProvider struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

// GeminiOption customizes the provider.
type GeminiOption func(*GeminiProvider)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) GeminiOption {
	return func(p *GeminiProvider) {
		if client != nil {
			p.httpClient = client
		}
	}
}

// NewGeminiProvider builds a provider bound to cfg.Model.
func NewGeminiProvider(cfg GeminiConfig, opts ...GeminiOption) *GeminiProvider {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	p := &GeminiProvider{
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		model:      cfg.Model,
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ─── internal Gemini JSON types ──────────────────────────────────────────────

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	Temperature     float32 `json:"temperature,omitempty"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

type geminiRequest struct {
	Contents          []geminiContent         `json:"contents"`
	SystemInstruction *geminiContent          `json:"systemInstruction,omitempty"`
	GenerationConfig  *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiCandidate struct {
	Content      geminiContent `json:"content"`
	FinishReason string        `json:"finishReason"`
}

type geminiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

type geminiResponse struct {
	Candidates    []geminiCandidate `json:"candidates"`
	UsageMetadata struct {
		TotalTokenCount int `json:"totalTokenCount"`
	} `json:"usageMetadata"`
	ModelVersion string       `json:"modelVersion"`
	Error        *geminiError `json:"error,omitempty"`
}

// ─── LLMProvider implementation ─────────────────────────────────────────────

// ChatCompletion sends one generateContent call. No retries are attempted.
func (p *GeminiProvider) ChatCompletion(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	if p.apiKey == "" {
		return nil, errors.New("gemini: API key not configured")
	}

	model := req.Model
	if model == "" {
		model = p.model
	}

	body, err := json.Marshal(buildGeminiRequest(req))
	if err != nil {
		return nil, fmt.Errorf("gemini: marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent", p.baseURL, url.PathEscape(model))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("gemini: build request: %w", err)
	}
	httpReq.Header.Set(headerContentType, mimeJSON)
	httpReq.Header.Set(headerGoogAPIKey, p.apiKey)

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("gemini: generateContent: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("gemini: read response: %w", err)
	}

	var gr geminiResponse
	decodeErr := json.Unmarshal(raw, &gr)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if decodeErr == nil && gr.Error != nil {
			return nil, fmt.Errorf("gemini: status %d: %s", resp.StatusCode, gr.Error.Message)
		}
		return nil, fmt.Errorf("gemini: status %d: %s", resp.StatusCode, truncate(string(raw), maxErrorBody))
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("gemini: decode response: %w", decodeErr)
	}
	if gr.Error != nil {
		return nil, fmt.Errorf("gemini: api error %d: %s", gr.Error.Code, gr.Error.Message)
	}
	if len(gr.Candidates) == 0 {
		return nil, ErrNoCandidates
	}

	cand := gr.Candidates[0]
	var text strings.Builder
	for _, part := range cand.Content.Parts {
		text.WriteString(part.Text)
	}

	if gr.ModelVersion != "" {
		model = gr.ModelVersion
	}
	return &ChatResponse{
		Content:    text.String(),
		Model:      model,
		StopReason: cand.FinishReason,
		Tokens:     gr.UsageMetadata.TotalTokenCount,
	}, nil
}

// buildGeminiRequest maps provider-agnostic messages onto Gemini contents.
// System messages become the systemInstruction; assistant turns use role "model".
func buildGeminiRequest(req ChatRequest) geminiRequest {
	var out geminiRequest
	var system []geminiPart
	for _, m := range req.Messages {
		switch m.Role {
		case RoleSystem:
			system = append(system, geminiPart{Text: m.Content})
		case RoleAssistant:
			out.Contents = append(out.Contents, geminiContent{Role: "model", Parts: []geminiPart{{Text: m.Content}}})
		default:
			out.Contents = append(out.Contents, geminiContent{Role: RoleUser, Parts: []geminiPart{{Text: m.Content}}})
		}
	}
	if len(system) > 0 {
		out.SystemInstruction = &geminiContent{Parts: system}
	}
	if req.Temperature != 0 || req.MaxTokens != 0 {
		out.GenerationConfig = &geminiGenerationConfig{
			Temperature:     req.Temperature,
			MaxOutputTokens: req.MaxTokens,
		}
	}
	return out
}

// ModelInfo returns static metadata for this provider/model.
func (p *GeminiProvider) ModelInfo() ModelMeta {
	return ModelMeta{ID: p.model, Provider: "gemini"}
}

// HealthCheck fetches the model resource; a 200 means the key and model are usable.
func (p *GeminiProvider) HealthCheck(ctx context.Context) error {
	endpoint := fmt.Sprintf("%s/models/%s", p.baseURL, url.PathEscape(p.model))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("gemini healthcheck: build request: %w", err)
	}
	req.Header.Set(headerGoogAPIKey, p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("gemini healthcheck: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("gemini healthcheck: status %d", resp.StatusCode)
	}
	return nil
}

// truncate caps s at n bytes without splitting a multi-byte rune.
func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}

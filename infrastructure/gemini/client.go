//go:generate go run go.uber.org/mock/mockgen -source=client.go -destination=../../mocks/mock_generator.go -package=mocks
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	apperrors "vitamed/errors"
)

// DefaultBaseURL points at the public generative language API.
const DefaultBaseURL = "https://generativelanguage.googleapis.com"

// Gemini role vocabulary. Assistant turns are spelled "model" upstream.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

type IGenerator interface {
	Generate(ctx context.Context, systemInstruction string, contents []Content) (string, error)
}

type Part struct {
	Text string `json:"text"`
}

type Content struct {
	Role  string `json:"role"`
	Parts []Part `json:"parts"`
}

type generateRequest struct {
	Contents          []Content          `json:"contents"`
	SystemInstruction *systemInstruction `json:"systemInstruction,omitempty"`
}

type systemInstruction struct {
	Parts []Part `json:"parts"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []Part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Client calls the generateContent endpoint over plain HTTP.
// It is stateless and safe for concurrent use; the API key is the only
// shared resource and is read-only.
type Client struct {
	log     *slog.Logger
	apiKey  string
	model   string
	baseURL string
	http    *http.Client
}

// NewClient builds a Gemini client with an explicit upstream timeout.
// An empty baseURL falls back to the public endpoint.
func NewClient(log *slog.Logger, apiKey, model, baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		log:     log,
		apiKey:  apiKey,
		model:   model,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Generate sends the constructed contents plus system instruction upstream
// and extracts the first candidate's first text part.
func (c *Client) Generate(ctx context.Context, instruction string, contents []Content) (string, error) {
	if c.apiKey == "" {
		return "", apperrors.ErrMissingCredential
	}

	payload := generateRequest{Contents: contents}
	if instruction != "" {
		payload.SystemInstruction = &systemInstruction{Parts: []Part{{Text: instruction}}}
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		c.baseURL, c.model, url.QueryEscape(c.apiKey))
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	request.Header.Set("Content-Type", "application/json")

	response, err := c.http.Do(request)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrUpstreamCall, err)
	}
	defer func() { _ = response.Body.Close() }()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(response.Body, 4096))
		return "", fmt.Errorf("%w: upstream responded with %d: %s",
			apperrors.ErrUpstreamCall, response.StatusCode, strings.TrimSpace(string(detail)))
	}

	var decoded generateResponse
	if err := json.NewDecoder(response.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrUpstreamFormat, err)
	}

	text := extractText(decoded)
	if text == "" {
		c.log.Error("Upstream response carried no candidate text")
		return "", apperrors.ErrUpstreamFormat
	}
	return text, nil
}

func extractText(decoded generateResponse) string {
	if len(decoded.Candidates) == 0 {
		return ""
	}
	parts := decoded.Candidates[0].Content.Parts
	if len(parts) == 0 {
		return ""
	}
	return parts[0].Text
}

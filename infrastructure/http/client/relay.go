//go:generate go run go.uber.org/mock/mockgen -source=relay.go -destination=../../../mocks/mock_relay_client.go -package=mocks
package client

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

	"vitamed/domain"
)

// IRelayClient is the client side of the relay's single call:
// prompt plus prior turns in, reply text out.
type IRelayClient interface {
	Generate(ctx context.Context, prompt string, history []domain.Turn) (string, error)
}

type generateRequest struct {
	Prompt  string        `json:"prompt"`
	History []domain.Turn `json:"history"`
}

type generateResponse struct {
	Text  string `json:"text"`
	Error string `json:"error"`
}

// RelayClient talks JSON over HTTP to the relay service.
type RelayClient struct {
	log     *slog.Logger
	baseURL string
	http    *http.Client
}

func NewRelayClient(log *slog.Logger, baseURL string, timeout time.Duration) *RelayClient {
	return &RelayClient{
		log:     log,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *RelayClient) Generate(ctx context.Context, prompt string, history []domain.Turn) (string, error) {
	payload, err := json.Marshal(generateRequest{Prompt: prompt, History: history})
	if err != nil {
		return "", err
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/generate", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	request.Header.Set("Content-Type", "application/json")

	response, err := c.http.Do(request)
	if err != nil {
		return "", fmt.Errorf("relay request failed: %w", err)
	}
	defer func() { _ = response.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(response.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("relay response could not be read: %w", err)
	}

	var decoded generateResponse
	decodeErr := json.Unmarshal(body, &decoded)

	if response.StatusCode < 200 || response.StatusCode > 299 {
		if decodeErr == nil && decoded.Error != "" {
			return "", fmt.Errorf("relay responded with %d: %s", response.StatusCode, decoded.Error)
		}
		return "", fmt.Errorf("relay responded with %d", response.StatusCode)
	}
	if decodeErr != nil {
		return "", fmt.Errorf("relay sent an unreadable response: %w", decodeErr)
	}
	if decoded.Text == "" {
		return "", fmt.Errorf("relay response is missing its text field")
	}
	return decoded.Text, nil
}

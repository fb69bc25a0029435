/**
* Name: 			client.go
* Description: 		HTTP client for the Ollama inference endpoint
* Workflow: 		Build JSON payload, single POST, classify failures
 */

package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"

	"FinanceAdvisor/internal/config"
)

// Failure taxonomy for a model call. Exactly one of these wraps every
// error returned by Generate.
var (
	ErrUnreachable = errors.New("ollama: endpoint unreachable")
	ErrTimeout     = errors.New("ollama: request timed out")
	ErrBadResponse = errors.New("ollama: bad response")
)

// IsModelError reports whether err came from the model call itself, as
// opposed to a caller-side problem. All kinds surface to the user as the
// same "advisor unavailable" message.
func IsModelError(err error) bool {
	return errors.Is(err, ErrUnreachable) || errors.Is(err, ErrTimeout) || errors.Is(err, ErrBadResponse)
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
}

type Client struct {
	url        string
	model      string
	httpClient *http.Client
}

func New(cfg config.Config) *Client {
	return &Client{
		url:        cfg.OllamaURL,
		model:      cfg.OllamaModel,
		httpClient: &http.Client{Timeout: cfg.OllamaTimeout},
	}
}

// Generate sends one prompt and returns the raw completion text.
// A single attempt, no retries: the caller decides what the user sees.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	reqBody, err := json.Marshal(generateRequest{
		Model:  c.model,
		Prompt: prompt,
		Stream: false,
	})
	if err != nil {
		return "", fmt.Errorf("%w: marshal request: %v", ErrBadResponse, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewBuffer(reqBody))
	if err != nil {
		return "", fmt.Errorf("%w: build request: %v", ErrBadResponse, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", classifyTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: status %s", ErrBadResponse, resp.Status)
	}

	var genResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return "", fmt.Errorf("%w: decode body: %v", ErrBadResponse, err)
	}
	// An empty completion means the model never finished; partial output
	// is never surfaced.
	if genResp.Response == "" {
		return "", fmt.Errorf("%w: empty response field", ErrBadResponse)
	}
	return genResp.Response, nil
}

func classifyTransportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrUnreachable, err)
}

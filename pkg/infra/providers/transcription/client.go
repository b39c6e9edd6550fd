package transcription

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/modshield/modgate/pkg/infra/httpx"
	"github.com/modshield/modgate/pkg/infra/providers"
	"github.com/valyala/fastjson"
)

const transcribePath = "/v1/transcriptions"

// Client calls a speech-to-text provider. The transcript feeds the text
// analyzer, so transcription failures surface as provider unavailability and
// degrade the whole audio analysis.
type Client struct {
	httpClient httpx.Client
	baseURL    string
	apiKey     string
}

func NewClient(httpClient httpx.Client, baseURL, apiKey string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     apiKey,
	}
}

func (c *Client) Transcribe(ctx context.Context, payloadRef string) (string, error) {
	body, err := json.Marshal(map[string]string{"payloadRef": payloadRef})
	if err != nil {
		return "", fmt.Errorf("failed to marshal transcription request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+transcribePath, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build transcription request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", providers.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: reading response: %v", providers.ErrUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: provider returned status %d", providers.ErrUnavailable, resp.StatusCode)
	}

	v, err := fastjson.ParseBytes(respBody)
	if err != nil {
		return "", fmt.Errorf("%w: %v", providers.ErrMalformedResponse, err)
	}
	text := v.GetStringBytes("text")
	if text == nil {
		return "", fmt.Errorf("%w: missing transcript text", providers.ErrMalformedResponse)
	}
	return string(text), nil
}

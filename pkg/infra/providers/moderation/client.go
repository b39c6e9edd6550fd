package moderation

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

const analyzePath = "/v1/analyze"

// Client calls an HTTP JSON inference provider implementing the analyze
// contract: POST /v1/analyze {contentType, payloadRef, context} ->
// {categoryScores, confidence, reasoning, detectedObjects?}.
type Client struct {
	httpClient httpx.Client
	baseURL    string
	apiKey     string
	parserPool fastjson.ParserPool
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

func (c *Client) Analyze(ctx context.Context, req *providers.AnalysisRequest) (*providers.RawAnalysis, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal analysis request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+analyzePath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build analysis request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", providers.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", providers.ErrUnavailable, err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("%w: provider quota exhausted", providers.ErrUnavailable)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: provider returned status %d", providers.ErrUnavailable, resp.StatusCode)
	}

	return c.parseAnalysis(respBody)
}

// parseAnalysis tolerates partially valid provider output: any JSON that does
// not carry a categoryScores object is malformed, everything else is read
// field by field with zero-value fallbacks.
func (c *Client) parseAnalysis(body []byte) (*providers.RawAnalysis, error) {
	parser := c.parserPool.Get()
	defer c.parserPool.Put(parser)

	v, err := parser.ParseBytes(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", providers.ErrMalformedResponse, err)
	}

	scoresObj := v.GetObject("categoryScores")
	if scoresObj == nil {
		return nil, fmt.Errorf("%w: missing categoryScores", providers.ErrMalformedResponse)
	}

	scores := make(map[string]float64)
	scoresObj.Visit(func(key []byte, value *fastjson.Value) {
		score, err := value.Float64()
		if err != nil {
			return
		}
		if score < 0 {
			score = 0
		}
		if score > 1 {
			score = 1
		}
		scores[string(key)] = score
	})
	if len(scores) == 0 {
		return nil, fmt.Errorf("%w: empty categoryScores", providers.ErrMalformedResponse)
	}

	analysis := &providers.RawAnalysis{
		CategoryScores: scores,
		Confidence:     v.GetFloat64("confidence"),
		Reasoning:      string(v.GetStringBytes("reasoning")),
	}
	for _, obj := range v.GetArray("detectedObjects") {
		if b, err := obj.StringBytes(); err == nil {
			analysis.DetectedObjects = append(analysis.DetectedObjects, string(b))
		}
	}
	return analysis, nil
}

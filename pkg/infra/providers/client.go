package providers

import (
	"context"
	"errors"
)

// Failure classes the analyzer adapters contain. Anything else a provider
// client returns is treated as unavailability.
var (
	ErrUnavailable       = errors.New("provider unavailable")
	ErrMalformedResponse = errors.New("malformed provider response")
)

type AnalysisRequest struct {
	ContentType string `json:"contentType"`
	PayloadRef  string `json:"payloadRef"`
	Context     string `json:"context,omitempty"`
}

// RawAnalysis is the provider's verdict before normalization into a
// RiskSignal. All scores are in [0,1].
type RawAnalysis struct {
	CategoryScores  map[string]float64 `json:"categoryScores"`
	Confidence      float64            `json:"confidence"`
	Reasoning       string             `json:"reasoning"`
	DetectedObjects []string           `json:"detectedObjects,omitempty"`
}

//go:generate mockery --name=Client --dir=. --output=./mocks --filename=client_mock.go --case=underscore --with-expecter

type Client interface {
	Analyze(ctx context.Context, req *AnalysisRequest) (*RawAnalysis, error)
}

//go:generate mockery --name=Transcriber --dir=. --output=./mocks --filename=transcriber_mock.go --case=underscore --with-expecter

type Transcriber interface {
	Transcribe(ctx context.Context, payloadRef string) (string, error)
}

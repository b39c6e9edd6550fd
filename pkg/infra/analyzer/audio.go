package analyzer

import (
	"context"
	"time"

	"github.com/modshield/modgate/pkg/domain"
	"github.com/modshield/modgate/pkg/domain/signal"
	"github.com/modshield/modgate/pkg/infra/httpx"
	"github.com/modshield/modgate/pkg/infra/providers"
	"github.com/sirupsen/logrus"
)

const AudioAnalyzerName = "audio"

// AudioAnalyzer is two-staged: transcribe, then run the text analyzer over
// the transcript. The resulting signal carries the transcript for audit.
type AudioAnalyzer struct {
	transcriber providers.Transcriber
	text        *TextAnalyzer
	breaker     httpx.CircuitBreaker
	logger      *logrus.Logger
	timeout     time.Duration
}

func NewAudioAnalyzer(
	logger *logrus.Logger,
	transcriber providers.Transcriber,
	text *TextAnalyzer,
	breaker httpx.CircuitBreaker,
	timeout time.Duration,
) *AudioAnalyzer {
	return &AudioAnalyzer{
		transcriber: transcriber,
		text:        text,
		breaker:     breaker,
		logger:      logger,
		timeout:     timeout,
	}
}

func (a *AudioAnalyzer) Name() string {
	return AudioAnalyzerName
}

func (a *AudioAnalyzer) Analyze(ctx context.Context, req *Request) (*signal.RiskSignal, error) {
	if req.Item.PayloadRef == "" {
		return nil, domain.ErrMissingPayloadRef
	}

	start := time.Now()

	var transcript string
	err := a.breaker.Execute(func() error {
		callCtx, cancel := context.WithTimeout(ctx, a.timeout)
		defer cancel()

		var callErr error
		transcript, callErr = a.transcriber.Transcribe(callCtx, req.Item.PayloadRef)
		return callErr
	})
	if err != nil {
		failureClass := classifyFailure(err)
		a.logger.WithError(err).WithFields(logrus.Fields{
			"analyzer":      AudioAnalyzerName,
			"content_id":    req.Item.ID,
			"failure_class": failureClass,
		}).Warn("transcription degraded")
		return degradedSignal(AudioAnalyzerName, req.Item, failureClass, time.Since(start)), nil
	}

	sig := a.text.AnalyzeText(ctx, req, transcript)
	sig.Analyzer = AudioAnalyzerName
	sig.Transcript = transcript
	sig.ProcessingTime = time.Since(start)
	return sig, nil
}

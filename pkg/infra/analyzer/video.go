package analyzer

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/modshield/modgate/pkg/domain"
	"github.com/modshield/modgate/pkg/domain/signal"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const VideoAnalyzerName = "video"

// VideoAnalyzer samples key frames at a fixed cadence (capped) and reduces
// them to one signal by taking the maximum risk across frames. Sampling, not
// full-frame analysis: a deliberate cost/latency trade-off.
type VideoAnalyzer struct {
	image        *ImageAnalyzer
	logger       *logrus.Logger
	frameCadence time.Duration
	maxFrames    int
}

func NewVideoAnalyzer(
	logger *logrus.Logger,
	image *ImageAnalyzer,
	frameCadence time.Duration,
	maxFrames int,
) *VideoAnalyzer {
	if maxFrames <= 0 {
		maxFrames = 10
	}
	if frameCadence <= 0 {
		frameCadence = 30 * time.Second
	}
	return &VideoAnalyzer{
		image:        image,
		logger:       logger,
		frameCadence: frameCadence,
		maxFrames:    maxFrames,
	}
}

func (a *VideoAnalyzer) Name() string {
	return VideoAnalyzerName
}

func (a *VideoAnalyzer) Analyze(ctx context.Context, req *Request) (*signal.RiskSignal, error) {
	if req.Item.PayloadRef == "" {
		return nil, domain.ErrMissingPayloadRef
	}

	start := time.Now()
	offsets := a.frameOffsets(req.Item.DurationSeconds)

	frameSignals := make([]*signal.RiskSignal, len(offsets))
	g, groupCtx := errgroup.WithContext(ctx)
	for i, offset := range offsets {
		frameRef := fmt.Sprintf("%s#t=%d", req.Item.PayloadRef, int(offset.Seconds()))
		g.Go(func() error {
			frameSignals[i] = a.image.AnalyzeFrame(groupCtx, req, frameRef)
			return nil
		})
	}
	// Frame calls degrade individually and never error, so the only wait here
	// is the join barrier.
	_ = g.Wait() //nolint:errcheck

	return a.reduce(req, frameSignals, time.Since(start)), nil
}

// frameOffsets returns one sample per cadence interval, capped. Unknown
// duration yields a single leading frame.
func (a *VideoAnalyzer) frameOffsets(durationSeconds int) []time.Duration {
	if durationSeconds <= 0 {
		return []time.Duration{0}
	}
	var offsets []time.Duration
	for offset := time.Duration(0); offset <= time.Duration(durationSeconds)*time.Second; offset += a.frameCadence {
		offsets = append(offsets, offset)
		if len(offsets) == a.maxFrames {
			break
		}
	}
	return offsets
}

func (a *VideoAnalyzer) reduce(req *Request, frames []*signal.RiskSignal, elapsed time.Duration) *signal.RiskSignal {
	reduced := &signal.RiskSignal{
		ID:             uuid.New(),
		ContentID:      req.Item.ID,
		Analyzer:       VideoAnalyzerName,
		CategoryScores: map[string]float64{},
		Confidence:     1.0,
		ProcessingTime: elapsed,
		CreatedAt:      time.Now(),
	}

	degradedFrames := 0
	for _, frame := range frames {
		if frame.Degraded {
			degradedFrames++
		}
		if frame.RiskScore > reduced.RiskScore {
			reduced.RiskScore = frame.RiskScore
		}
		if frame.Confidence < reduced.Confidence {
			reduced.Confidence = frame.Confidence
		}
		for category, score := range frame.CategoryScores {
			if score > reduced.CategoryScores[category] {
				reduced.CategoryScores[category] = score
			}
		}
	}

	if degradedFrames == len(frames) {
		reduced.Degraded = true
		reduced.Reasoning = "manual review required — analysis degraded (all sampled frames failed)"
		return reduced
	}

	reduced.Degraded = degradedFrames > 0
	reduced.Reasoning = fmt.Sprintf("max risk across %d sampled frames (%d degraded)", len(frames), degradedFrames)
	return reduced
}

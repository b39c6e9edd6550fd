package telemetry

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event is the wire form of an emitted moderation decision, published to the
// configured exporter for downstream analytics.
type Event struct {
	DecisionID     uuid.UUID `json:"decision_id"`
	ContentID      uuid.UUID `json:"content_id"`
	TenantID       string    `json:"tenant_id"`
	ContentType    string    `json:"content_type"`
	Pass           string    `json:"pass"`
	Recommendation string    `json:"recommendation"`
	Severity       string    `json:"severity"`
	RiskScore      float64   `json:"risk_score"`
	Confidence     float64   `json:"confidence"`
	Degraded       bool      `json:"degraded"`
	EmittedAt      time.Time `json:"emitted_at"`
}

type Exporter interface {
	Name() string
	ValidateConfig(settings map[string]interface{}) error
	Handle(ctx context.Context, evt *Event) error
	WithSettings(settings map[string]interface{}) (Exporter, error)
	Close()
}

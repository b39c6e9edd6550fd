package decision

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/modshield/modgate/pkg/domain"
	"gorm.io/gorm"
)

type Recommendation string

const (
	RecommendationApprove Recommendation = "approve"
	RecommendationReview  Recommendation = "review"
	RecommendationBlock   Recommendation = "block"
)

type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

type Pass string

const (
	PassInitial Pass = "initial"
	PassAppeal  Pass = "appeal"
)

// Decision is the fused output of one analysis pass over a content item. A
// content item accumulates one Decision per pass (initial, appeal re-pass).
type Decision struct {
	ID                uuid.UUID             `json:"id" gorm:"type:uuid;primaryKey"`
	ContentID         uuid.UUID             `json:"content_id" gorm:"type:uuid;index"`
	TenantID          string                `json:"tenant_id" gorm:"index"`
	Pass              Pass                  `json:"pass"`
	Recommendation    Recommendation        `json:"recommendation"`
	RiskScore         float64               `json:"risk_score"`
	Confidence        float64               `json:"confidence"`
	Severity          Severity              `json:"severity"`
	FlaggedCategories domain.CategoriesJSON `json:"flagged_categories" gorm:"type:jsonb"`
	Signals           domain.SignalsJSON    `json:"signals" gorm:"type:jsonb"`
	AnalysisFailed    bool                  `json:"analysis_failed"`
	Reasoning         string                `json:"reasoning"`
	CreatedAt         time.Time             `json:"created_at"`
}

func (d *Decision) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now()
	}
	return d.Validate()
}

func (d *Decision) Validate() error {
	switch d.Recommendation {
	case RecommendationApprove, RecommendationReview, RecommendationBlock:
	default:
		return fmt.Errorf("invalid recommendation: %q", d.Recommendation)
	}
	if d.RiskScore < 0 || d.RiskScore > 1 {
		return fmt.Errorf("risk score out of range: %f", d.RiskScore)
	}
	if len(d.Signals) == 0 && !d.AnalysisFailed {
		return fmt.Errorf("decision must reference at least one signal or be marked as failed analysis")
	}
	return nil
}

func (d *Decision) Restrictive() bool {
	return d.Recommendation == RecommendationBlock || d.Recommendation == RecommendationReview
}

func (d *Decision) TableName() string {
	return "public.decisions"
}

package appeal

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/modshield/modgate/pkg/domain"
	"gorm.io/gorm"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusReviewing Status = "reviewing"
	StatusResolved  Status = "resolved"
	StatusDismissed Status = "dismissed"
)

type Outcome string

const (
	OutcomeUpheld           Outcome = "upheld"
	OutcomeOverturned       Outcome = "overturned"
	OutcomeNeedsHumanReview Outcome = "needs_human_review"
)

// Appeal re-opens a Decision at the request of the uploader. Lifecycle:
// pending -> reviewing -> resolved | dismissed, with needs_human_review as a
// terminal hand-off to the human queue.
type Appeal struct {
	ID                 uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	ContentID          uuid.UUID  `json:"content_id" gorm:"type:uuid;index"`
	OriginalDecisionID uuid.UUID  `json:"original_decision_id" gorm:"type:uuid;index"`
	TenantID           string     `json:"tenant_id" gorm:"index"`
	UserReason         string     `json:"user_reason"`
	Status             Status     `json:"status"`
	Outcome            Outcome    `json:"outcome,omitempty"`
	OutcomeConfidence  float64    `json:"outcome_confidence,omitempty"`
	OutcomeReasoning   string     `json:"outcome_reasoning,omitempty"`
	ReviewDecisionID   uuid.UUID  `json:"review_decision_id,omitempty" gorm:"type:uuid"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
	ResolvedAt         *time.Time `json:"resolved_at,omitempty"`
}

func (a *Appeal) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	now := time.Now()
	a.CreatedAt = now
	a.UpdatedAt = now
	if a.Status == "" {
		a.Status = StatusPending
	}
	return a.Validate()
}

func (a *Appeal) BeforeUpdate(tx *gorm.DB) error {
	a.UpdatedAt = time.Now()
	return a.Validate()
}

func (a *Appeal) Validate() error {
	if a.ContentID == uuid.Nil {
		return fmt.Errorf("content_id is required")
	}
	if a.OriginalDecisionID == uuid.Nil {
		return fmt.Errorf("original_decision_id is required")
	}
	if a.Status == StatusResolved && a.Outcome == "" {
		return domain.ErrInvalidAppealState
	}
	return nil
}

// StartReview moves the appeal into the reviewing state. Only pending appeals
// may be picked up.
func (a *Appeal) StartReview() error {
	if a.Status != StatusPending {
		return domain.ErrInvalidAppealState
	}
	a.Status = StatusReviewing
	return nil
}

// Resolve closes the appeal with the given outcome. The appeal must be in the
// reviewing state; an appeal cannot pass reviewing without an outcome.
func (a *Appeal) Resolve(outcome Outcome, confidence float64, reasoning string, reviewDecisionID uuid.UUID) error {
	if a.Status != StatusReviewing {
		return domain.ErrInvalidAppealState
	}
	a.Outcome = outcome
	a.OutcomeConfidence = confidence
	a.OutcomeReasoning = reasoning
	a.ReviewDecisionID = reviewDecisionID
	switch outcome {
	case OutcomeUpheld, OutcomeOverturned:
		now := time.Now()
		a.ResolvedAt = &now
		a.Status = StatusResolved
	case OutcomeNeedsHumanReview:
		// Terminal hand-off: the appeal stays visible in the human queue and
		// is never retried automatically.
	default:
		return domain.ErrInvalidAppealState
	}
	return nil
}

// Dismiss closes the appeal without a re-evaluation verdict.
func (a *Appeal) Dismiss(reasoning string) error {
	if a.Terminal() {
		return domain.ErrAppealAlreadyClosed
	}
	a.OutcomeReasoning = reasoning
	now := time.Now()
	a.ResolvedAt = &now
	a.Status = StatusDismissed
	return nil
}

func (a *Appeal) Terminal() bool {
	return a.Status == StatusResolved || a.Status == StatusDismissed
}

func (a *Appeal) TableName() string {
	return "public.appeals"
}

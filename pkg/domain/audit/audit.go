package audit

import (
	"time"

	"github.com/google/uuid"
	"github.com/modshield/modgate/pkg/domain"
	"gorm.io/gorm"
)

const (
	ActionDecisionEmitted  = "decision_emitted"
	ActionAppealFiled      = "appeal_filed"
	ActionAppealResolved   = "appeal_resolved"
	ActionHumanReview      = "human_review"
	ActionQueueItemSkipped = "queue_item_skipped"
)

// Log records moderation actions for the audit trail: emitted decisions,
// appeal transitions and human reviewer verdicts.
type Log struct {
	ID         uuid.UUID           `json:"id" gorm:"type:uuid;primaryKey"`
	ActorID    string              `json:"actor_id" gorm:"index"`
	Action     string              `json:"action" gorm:"index"`
	TargetType string              `json:"target_type"`
	TargetID   string              `json:"target_id"`
	Metadata   domain.MetadataJSON `json:"metadata" gorm:"type:jsonb"`
	CreatedAt  time.Time           `json:"created_at" gorm:"index"`
}

func (l *Log) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now()
	}
	return nil
}

func (l *Log) TableName() string {
	return "public.audit_logs"
}

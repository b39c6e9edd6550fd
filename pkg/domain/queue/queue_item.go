package queue

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Item is a content item parked for human review, ordered by priority then
// age. Items are enqueued whenever automation recommends review.
type Item struct {
	ID         uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	ContentID  uuid.UUID  `json:"content_id" gorm:"type:uuid;index"`
	DecisionID uuid.UUID  `json:"decision_id" gorm:"type:uuid"`
	TenantID   string     `json:"tenant_id" gorm:"index"`
	Reason     string     `json:"reason"`
	Priority   int        `json:"priority" gorm:"index"`
	Confidence float64    `json:"ai_confidence"`
	Status     Status     `json:"status" gorm:"index"`
	AssignedTo string     `json:"assigned_to,omitempty"`
	Notes      string     `json:"notes,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	ReviewedAt *time.Time `json:"reviewed_at,omitempty"`
}

func (i *Item) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	if i.CreatedAt.IsZero() {
		i.CreatedAt = time.Now()
	}
	if i.Status == "" {
		i.Status = StatusPending
	}
	return nil
}

// Review records a human verdict over a pending item.
func (i *Item) Review(reviewerID string, verdict Status, notes string) error {
	if i.Status != StatusPending {
		return fmt.Errorf("queue item %s already reviewed", i.ID)
	}
	if verdict != StatusApproved && verdict != StatusRejected {
		return fmt.Errorf("invalid review verdict: %q", verdict)
	}
	now := time.Now()
	i.Status = verdict
	i.AssignedTo = reviewerID
	i.Notes = notes
	i.ReviewedAt = &now
	return nil
}

func (i *Item) TableName() string {
	return "public.moderation_queue"
}

package content

import (
	"time"

	"github.com/google/uuid"
	"github.com/modshield/modgate/pkg/domain"
)

type Type string

const (
	TypeText      Type = "text"
	TypeImage     Type = "image"
	TypeAudio     Type = "audio"
	TypeVideo     Type = "video"
	TypeLiveFrame Type = "live-frame"
)

// Item is the unit of moderation work. It is owned by the ingesting surface
// and must not be mutated once analysis has started.
type Item struct {
	ID         uuid.UUID `json:"id"`
	TenantID   string    `json:"tenant_id"`
	Type       Type      `json:"content_type"`
	PayloadRef string    `json:"payload_ref"`
	UploaderID string    `json:"uploader_id"`
	UploadedAt time.Time `json:"uploaded_at"`

	// Metadata consumed by the predictive pre-screen only.
	PriorViolations  int       `json:"prior_violations"`
	AccountCreatedAt time.Time `json:"account_created_at"`
	PayloadSizeBytes int64     `json:"payload_size_bytes"`

	// DurationSeconds bounds video frame sampling; zero means unknown.
	DurationSeconds int `json:"duration_seconds,omitempty"`
}

func (t Type) Valid() bool {
	switch t {
	case TypeText, TypeImage, TypeAudio, TypeVideo, TypeLiveFrame:
		return true
	}
	return false
}

func (i *Item) Validate() error {
	if !i.Type.Valid() {
		return domain.ErrInvalidContentType
	}
	if i.PayloadRef == "" {
		return domain.ErrMissingPayloadRef
	}
	return nil
}

func (i *Item) AccountAge(now time.Time) time.Duration {
	if i.AccountCreatedAt.IsZero() {
		return 0
	}
	return now.Sub(i.AccountCreatedAt)
}

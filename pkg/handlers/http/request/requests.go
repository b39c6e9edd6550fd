package request

import "time"

type SubmitContentRequest struct {
	ContentID        string    `json:"content_id,omitempty"`
	TenantID         string    `json:"tenant_id"`
	ContentType      string    `json:"content_type"`
	PayloadRef       string    `json:"payload_ref"`
	UploaderID       string    `json:"uploader_id"`
	UploadedAt       time.Time `json:"uploaded_at,omitempty"`
	PriorViolations  int       `json:"prior_violations,omitempty"`
	AccountCreatedAt time.Time `json:"account_created_at,omitempty"`
	PayloadSizeBytes int64     `json:"payload_size_bytes,omitempty"`
	DurationSeconds  int       `json:"duration_seconds,omitempty"`

	AnalysisTypes []string `json:"analysis_types,omitempty"`
	Hint          string   `json:"hint,omitempty"`
	PriorityHint  string   `json:"priority_hint,omitempty"`
}

type FileAppealRequest struct {
	ContentID          string `json:"content_id"`
	OriginalDecisionID string `json:"original_decision_id"`
	UserReason         string `json:"user_reason"`
}

type ResolveAppealRequest struct {
	ContentType     string `json:"content_type"`
	PayloadRef      string `json:"payload_ref"`
	DurationSeconds int    `json:"duration_seconds,omitempty"`
}

type ReviewQueueItemRequest struct {
	ReviewerID string `json:"reviewer_id"`
	Verdict    string `json:"verdict"`
	Notes      string `json:"notes,omitempty"`
}

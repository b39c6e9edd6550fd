package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/modshield/modgate/pkg/app/moderation"
	"github.com/modshield/modgate/pkg/domain"
	"github.com/modshield/modgate/pkg/domain/content"
	"github.com/modshield/modgate/pkg/handlers/http/request"
	"github.com/sirupsen/logrus"
)

type submitContentHandler struct {
	logger       *logrus.Logger
	orchestrator moderation.Orchestrator
}

func NewSubmitContentHandler(logger *logrus.Logger, orchestrator moderation.Orchestrator) Handler {
	return &submitContentHandler{
		logger:       logger,
		orchestrator: orchestrator,
	}
}

// Handle runs the full analysis pipeline synchronously and returns the fused
// decision.
func (s *submitContentHandler) Handle(c *fiber.Ctx) error {
	var req request.SubmitContentRequest
	if err := c.BodyParser(&req); err != nil {
		s.logger.WithError(err).Error("failed to bind request")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrInvalidJsonPayload})
	}

	item, types, err := itemFromRequest(&req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	d, err := s.orchestrator.SubmitForAnalysis(c.Context(), item, types, req.Hint)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidContentType) || errors.Is(err, domain.ErrMissingPayloadRef) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		s.logger.WithError(err).Error("failed to analyze content")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to analyze content"})
	}

	return c.Status(fiber.StatusOK).JSON(d)
}

func itemFromRequest(req *request.SubmitContentRequest) (*content.Item, []content.Type, error) {
	id := uuid.New()
	if req.ContentID != "" {
		parsed, err := uuid.Parse(req.ContentID)
		if err != nil {
			return nil, nil, errors.New("invalid content_id")
		}
		id = parsed
	}

	uploadedAt := req.UploadedAt
	if uploadedAt.IsZero() {
		uploadedAt = time.Now()
	}

	item := &content.Item{
		ID:               id,
		TenantID:         req.TenantID,
		Type:             content.Type(req.ContentType),
		PayloadRef:       req.PayloadRef,
		UploaderID:       req.UploaderID,
		UploadedAt:       uploadedAt,
		PriorViolations:  req.PriorViolations,
		AccountCreatedAt: req.AccountCreatedAt,
		PayloadSizeBytes: req.PayloadSizeBytes,
		DurationSeconds:  req.DurationSeconds,
	}
	if err := item.Validate(); err != nil {
		return nil, nil, err
	}

	types := make([]content.Type, 0, len(req.AnalysisTypes))
	for _, t := range req.AnalysisTypes {
		ct := content.Type(t)
		if !ct.Valid() {
			return nil, nil, domain.ErrInvalidContentType
		}
		types = append(types, ct)
	}
	return item, types, nil
}

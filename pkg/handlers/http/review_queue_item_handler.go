package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/modshield/modgate/pkg/domain/audit"
	domainErrors "github.com/modshield/modgate/pkg/domain/errors"
	"github.com/modshield/modgate/pkg/domain/queue"
	"github.com/modshield/modgate/pkg/handlers/http/request"
	"github.com/sirupsen/logrus"
)

type reviewQueueItemHandler struct {
	logger *logrus.Logger
	items  queue.Repository
	audits audit.Repository
}

func NewReviewQueueItemHandler(logger *logrus.Logger, items queue.Repository, audits audit.Repository) Handler {
	return &reviewQueueItemHandler{
		logger: logger,
		items:  items,
		audits: audits,
	}
}

// Handle records a human verdict over a queued item and appends the audit
// trail entry.
func (s *reviewQueueItemHandler) Handle(c *fiber.Ctx) error {
	itemID, err := uuid.Parse(c.Params("item_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid item_id"})
	}

	var req request.ReviewQueueItemRequest
	if err := c.BodyParser(&req); err != nil {
		s.logger.WithError(err).Error("failed to bind request")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrInvalidJsonPayload})
	}
	if req.ReviewerID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "reviewer_id is required"})
	}

	item, err := s.items.GetByID(c.Context(), itemID)
	if err != nil {
		if domainErrors.IsNotFoundError(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "queue item not found"})
		}
		s.logger.WithError(err).Error("failed to fetch queue item")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch queue item"})
	}

	if err := item.Review(req.ReviewerID, queue.Status(req.Verdict), req.Notes); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	}
	if err := s.items.Update(c.Context(), item); err != nil {
		s.logger.WithError(err).Error("failed to update queue item")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to update queue item"})
	}

	entry := &audit.Log{
		ActorID:    req.ReviewerID,
		Action:     audit.ActionHumanReview,
		TargetType: "moderation_queue_item",
		TargetID:   item.ID.String(),
		Metadata: map[string]interface{}{
			"content_id":  item.ContentID.String(),
			"decision_id": item.DecisionID.String(),
			"verdict":     req.Verdict,
		},
	}
	if err := s.audits.Save(c.Context(), entry); err != nil {
		s.logger.WithError(err).Warn("failed to write human review audit log")
	}

	return c.Status(fiber.StatusOK).JSON(item)
}

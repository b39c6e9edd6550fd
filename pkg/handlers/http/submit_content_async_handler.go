package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/modshield/modgate/pkg/app/moderation"
	"github.com/modshield/modgate/pkg/domain"
	"github.com/modshield/modgate/pkg/domain/prediction"
	"github.com/modshield/modgate/pkg/handlers/http/request"
	"github.com/sirupsen/logrus"
)

type submitContentAsyncHandler struct {
	logger       *logrus.Logger
	orchestrator moderation.Orchestrator
}

func NewSubmitContentAsyncHandler(logger *logrus.Logger, orchestrator moderation.Orchestrator) Handler {
	return &submitContentAsyncHandler{
		logger:       logger,
		orchestrator: orchestrator,
	}
}

// Handle enqueues the item for deferred analysis and returns an analysis id
// the caller can poll decisions with.
func (s *submitContentAsyncHandler) Handle(c *fiber.Ctx) error {
	var req request.SubmitContentRequest
	if err := c.BodyParser(&req); err != nil {
		s.logger.WithError(err).Error("failed to bind request")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrInvalidJsonPayload})
	}

	item, _, err := itemFromRequest(&req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	id, err := s.orchestrator.SubmitAsync(c.Context(), item, req.Hint, prediction.Priority(req.PriorityHint))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidContentType) || errors.Is(err, domain.ErrMissingPayloadRef) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		s.logger.WithError(err).Error("failed to enqueue content for analysis")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to enqueue content"})
	}

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"analysis_id": id})
}

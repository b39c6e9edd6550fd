package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/modshield/modgate/pkg/domain/queue"
	"github.com/sirupsen/logrus"
)

type listModerationQueueHandler struct {
	logger *logrus.Logger
	items  queue.Repository
}

func NewListModerationQueueHandler(logger *logrus.Logger, items queue.Repository) Handler {
	return &listModerationQueueHandler{
		logger: logger,
		items:  items,
	}
}

func (s *listModerationQueueHandler) Handle(c *fiber.Ctx) error {
	status := queue.Status(c.Query("status", string(queue.StatusPending)))
	limit := c.QueryInt("limit", 50)
	if limit <= 0 || limit > 500 {
		limit = 50
	}

	items, err := s.items.ListByStatus(c.Context(), status, limit)
	if err != nil {
		s.logger.WithError(err).Error("failed to list moderation queue")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list moderation queue"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"items": items})
}

package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/modshield/modgate/pkg/domain/audit"
	"github.com/sirupsen/logrus"
)

type listAuditLogsHandler struct {
	logger *logrus.Logger
	audits audit.Repository
}

func NewListAuditLogsHandler(logger *logrus.Logger, audits audit.Repository) Handler {
	return &listAuditLogsHandler{
		logger: logger,
		audits: audits,
	}
}

func (s *listAuditLogsHandler) Handle(c *fiber.Ctx) error {
	filter := audit.Filter{
		Action:     c.Query("action"),
		TargetType: c.Query("target_type"),
		Limit:      c.QueryInt("limit", 100),
	}

	logs, err := s.audits.List(c.Context(), filter)
	if err != nil {
		s.logger.WithError(err).Error("failed to list audit logs")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list audit logs"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"audit_logs": logs})
}

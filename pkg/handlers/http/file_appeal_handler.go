package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	appappeal "github.com/modshield/modgate/pkg/app/appeal"
	"github.com/modshield/modgate/pkg/domain"
	"github.com/modshield/modgate/pkg/domain/content"
	domainErrors "github.com/modshield/modgate/pkg/domain/errors"
	"github.com/modshield/modgate/pkg/handlers/http/request"
	"github.com/sirupsen/logrus"
)

type fileAppealHandler struct {
	logger  *logrus.Logger
	appeals appappeal.Service
}

func NewFileAppealHandler(logger *logrus.Logger, appeals appappeal.Service) Handler {
	return &fileAppealHandler{
		logger:  logger,
		appeals: appeals,
	}
}

func (s *fileAppealHandler) Handle(c *fiber.Ctx) error {
	var req request.FileAppealRequest
	if err := c.BodyParser(&req); err != nil {
		s.logger.WithError(err).Error("failed to bind request")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrInvalidJsonPayload})
	}

	contentID, err := uuid.Parse(req.ContentID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid content_id"})
	}
	decisionID, err := uuid.Parse(req.OriginalDecisionID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid original_decision_id"})
	}

	a, err := s.appeals.File(c.Context(), &content.Item{ID: contentID}, decisionID, req.UserReason)
	if err != nil {
		switch {
		case domainErrors.IsNotFoundError(err):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, domain.ErrInvalidAppealState):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "decision does not belong to content"})
		default:
			s.logger.WithError(err).Error("failed to file appeal")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to file appeal"})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(a)
}

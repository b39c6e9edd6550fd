package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	appappeal "github.com/modshield/modgate/pkg/app/appeal"
	domainErrors "github.com/modshield/modgate/pkg/domain/errors"
	"github.com/sirupsen/logrus"
)

type getAppealHandler struct {
	logger  *logrus.Logger
	appeals appappeal.Service
}

func NewGetAppealHandler(logger *logrus.Logger, appeals appappeal.Service) Handler {
	return &getAppealHandler{
		logger:  logger,
		appeals: appeals,
	}
}

func (s *getAppealHandler) Handle(c *fiber.Ctx) error {
	appealID, err := uuid.Parse(c.Params("appeal_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid appeal_id"})
	}

	a, err := s.appeals.Get(c.Context(), appealID)
	if err != nil {
		if domainErrors.IsNotFoundError(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "appeal not found"})
		}
		s.logger.WithError(err).Error("failed to fetch appeal")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch appeal"})
	}

	return c.Status(fiber.StatusOK).JSON(a)
}

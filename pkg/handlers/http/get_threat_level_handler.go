package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/modshield/modgate/pkg/app/threat"
	"github.com/sirupsen/logrus"
)

type getThreatLevelHandler struct {
	logger     *logrus.Logger
	aggregator threat.Aggregator
}

func NewGetThreatLevelHandler(logger *logrus.Logger, aggregator threat.Aggregator) Handler {
	return &getThreatLevelHandler{
		logger:     logger,
		aggregator: aggregator,
	}
}

func (s *getThreatLevelHandler) Handle(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(s.aggregator.Current())
}

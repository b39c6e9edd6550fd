package http

import (
	"github.com/gofiber/fiber/v2"
	appcorrelation "github.com/modshield/modgate/pkg/app/correlation"
	"github.com/modshield/modgate/pkg/common"
	"github.com/sirupsen/logrus"
)

type getCorrelationFindingsHandler struct {
	logger   *logrus.Logger
	recorder appcorrelation.Recorder
}

func NewGetCorrelationFindingsHandler(logger *logrus.Logger, recorder appcorrelation.Recorder) Handler {
	return &getCorrelationFindingsHandler{
		logger:   logger,
		recorder: recorder,
	}
}

func (s *getCorrelationFindingsHandler) Handle(c *fiber.Ctx) error {
	window := c.QueryInt("window", common.DefaultDecisionWindow)
	if window <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "window must be positive"})
	}

	findings, err := s.recorder.Findings(c.Context(), window)
	if err != nil {
		s.logger.WithError(err).Error("failed to compute correlation findings")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to compute findings"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"findings": findings})
}

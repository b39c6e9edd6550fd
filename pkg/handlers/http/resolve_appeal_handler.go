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

type resolveAppealHandler struct {
	logger  *logrus.Logger
	appeals appappeal.Service
}

func NewResolveAppealHandler(logger *logrus.Logger, appeals appappeal.Service) Handler {
	return &resolveAppealHandler{
		logger:  logger,
		appeals: appeals,
	}
}

// Handle triggers re-evaluation. The caller supplies the payload reference
// again; content bodies are never stored here.
func (s *resolveAppealHandler) Handle(c *fiber.Ctx) error {
	appealID, err := uuid.Parse(c.Params("appeal_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid appeal_id"})
	}

	var req request.ResolveAppealRequest
	if err := c.BodyParser(&req); err != nil {
		s.logger.WithError(err).Error("failed to bind request")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrInvalidJsonPayload})
	}

	a, err := s.appeals.Get(c.Context(), appealID)
	if err != nil {
		if domainErrors.IsNotFoundError(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "appeal not found"})
		}
		s.logger.WithError(err).Error("failed to fetch appeal")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch appeal"})
	}

	item := &content.Item{
		ID:              a.ContentID,
		TenantID:        a.TenantID,
		Type:            content.Type(req.ContentType),
		PayloadRef:      req.PayloadRef,
		DurationSeconds: req.DurationSeconds,
	}

	resolved, err := s.appeals.Resolve(c.Context(), appealID, item)
	if err != nil {
		switch {
		case domainErrors.IsNotFoundError(err):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, domain.ErrAppealAlreadyClosed), errors.Is(err, domain.ErrInvalidAppealState):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, domain.ErrInvalidContentType), errors.Is(err, domain.ErrMissingPayloadRef):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		default:
			s.logger.WithError(err).Error("failed to resolve appeal")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to resolve appeal"})
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"appeal_id":  resolved.ID,
		"status":     resolved.Status,
		"outcome":    resolved.Outcome,
		"confidence": resolved.OutcomeConfidence,
		"reasoning":  resolved.OutcomeReasoning,
	})
}

package http

import (
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/modshield/modgate/pkg/cache"
	"github.com/modshield/modgate/pkg/common"
	"github.com/modshield/modgate/pkg/domain/decision"
	domainErrors "github.com/modshield/modgate/pkg/domain/errors"
	"github.com/sirupsen/logrus"
)

type getDecisionHandler struct {
	logger    *logrus.Logger
	decisions decision.Repository
	cache     *cache.Cache
}

func NewGetDecisionHandler(logger *logrus.Logger, decisions decision.Repository, cache *cache.Cache) Handler {
	return &getDecisionHandler{
		logger:    logger,
		decisions: decisions,
		cache:     cache,
	}
}

func (s *getDecisionHandler) Handle(c *fiber.Ctx) error {
	decisionID, err := uuid.Parse(c.Params("decision_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid decision_id"})
	}

	// Try the cache first; decisions are immutable once persisted
	decisionKey := fmt.Sprintf(cache.DecisionKeyPattern, decisionID)
	if decisionJSON, err := s.cache.Get(c.Context(), decisionKey); err == nil {
		var cached decision.Decision
		if err := json.Unmarshal([]byte(decisionJSON), &cached); err == nil {
			return c.Status(fiber.StatusOK).JSON(cached)
		}
	}

	d, err := s.decisions.GetByID(c.Context(), decisionID)
	if err != nil {
		if domainErrors.IsNotFoundError(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "decision not found"})
		}
		s.logger.WithError(err).Error("failed to fetch decision")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch decision"})
	}

	if payload, err := json.Marshal(d); err == nil {
		if err := s.cache.Set(c.Context(), decisionKey, string(payload), common.DecisionCacheTTL); err != nil {
			s.logger.WithError(err).Warn("failed to cache decision")
		}
	}

	return c.Status(fiber.StatusOK).JSON(d)
}

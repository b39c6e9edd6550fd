package http

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/modshield/modgate/pkg/domain/audit"
	auditMocks "github.com/modshield/modgate/pkg/domain/audit/mocks"
	domainErrors "github.com/modshield/modgate/pkg/domain/errors"
	"github.com/modshield/modgate/pkg/domain/queue"
	queueMocks "github.com/modshield/modgate/pkg/domain/queue/mocks"
	"github.com/modshield/modgate/pkg/handlers/http/request"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestReviewQueueItemHandler_Success(t *testing.T) {
	logger := logrus.New()
	items := new(queueMocks.Repository)
	audits := new(auditMocks.Repository)

	handler := NewReviewQueueItemHandler(logger, items, audits)

	app := fiber.New()
	app.Post("/api/v1/moderation/queue/:item_id/review", handler.Handle)

	itemID := uuid.New()
	pending := &queue.Item{
		ID:         itemID,
		ContentID:  uuid.New(),
		DecisionID: uuid.New(),
		TenantID:   "tenant-1",
		Status:     queue.StatusPending,
	}

	items.On("GetByID", mock.Anything, itemID).Return(pending, nil)
	items.On("Update", mock.Anything, mock.MatchedBy(func(i *queue.Item) bool {
		return i.Status == queue.StatusRejected && i.AssignedTo == "reviewer-7"
	})).Return(nil)
	audits.On("Save", mock.Anything, mock.MatchedBy(func(l *audit.Log) bool {
		return l.Action == audit.ActionHumanReview && l.TargetID == itemID.String()
	})).Return(nil)

	body, err := json.Marshal(request.ReviewQueueItemRequest{
		ReviewerID: "reviewer-7",
		Verdict:    "rejected",
		Notes:      "confirmed policy violation",
	})
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/api/v1/moderation/queue/"+itemID.String()+"/review", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	items.AssertExpectations(t)
	audits.AssertExpectations(t)
}

func TestReviewQueueItemHandler_InvalidVerdict(t *testing.T) {
	logger := logrus.New()
	items := new(queueMocks.Repository)
	audits := new(auditMocks.Repository)

	handler := NewReviewQueueItemHandler(logger, items, audits)

	app := fiber.New()
	app.Post("/api/v1/moderation/queue/:item_id/review", handler.Handle)

	itemID := uuid.New()
	items.On("GetByID", mock.Anything, itemID).Return(&queue.Item{
		ID:     itemID,
		Status: queue.StatusPending,
	}, nil)

	body, err := json.Marshal(request.ReviewQueueItemRequest{
		ReviewerID: "reviewer-7",
		Verdict:    "maybe",
	})
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/api/v1/moderation/queue/"+itemID.String()+"/review", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	items.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestReviewQueueItemHandler_NotFound(t *testing.T) {
	logger := logrus.New()
	items := new(queueMocks.Repository)
	audits := new(auditMocks.Repository)

	handler := NewReviewQueueItemHandler(logger, items, audits)

	app := fiber.New()
	app.Post("/api/v1/moderation/queue/:item_id/review", handler.Handle)

	itemID := uuid.New()
	items.On("GetByID", mock.Anything, itemID).
		Return(nil, domainErrors.NewNotFoundError("queue item", itemID))

	body, err := json.Marshal(request.ReviewQueueItemRequest{
		ReviewerID: "reviewer-7",
		Verdict:    "approved",
	})
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/api/v1/moderation/queue/"+itemID.String()+"/review", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

package http

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	moderationMocks "github.com/modshield/modgate/pkg/app/moderation/mocks"
	"github.com/modshield/modgate/pkg/domain/content"
	"github.com/modshield/modgate/pkg/domain/decision"
	"github.com/modshield/modgate/pkg/handlers/http/request"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSubmitContentHandler_Success(t *testing.T) {
	logger := logrus.New()
	orchestrator := new(moderationMocks.Orchestrator)

	handler := NewSubmitContentHandler(logger, orchestrator)

	app := fiber.New()
	app.Post("/api/v1/moderation/content", handler.Handle)

	contentID := uuid.New()
	expected := &decision.Decision{
		ID:             uuid.New(),
		ContentID:      contentID,
		Recommendation: decision.RecommendationBlock,
		RiskScore:      0.92,
	}

	orchestrator.On("SubmitForAnalysis", mock.Anything, mock.MatchedBy(func(item *content.Item) bool {
		return item.ID == contentID && item.Type == content.TypeText
	}), mock.Anything, "").Return(expected, nil)

	reqBody := request.SubmitContentRequest{
		ContentID:   contentID.String(),
		TenantID:    "tenant-1",
		ContentType: "text",
		PayloadRef:  "s3://uploads/post-1.txt",
		UploaderID:  "user-1",
	}
	body, err := json.Marshal(reqBody)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/api/v1/moderation/content", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var got decision.Decision
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, expected.ID, got.ID)
	assert.Equal(t, decision.RecommendationBlock, got.Recommendation)
	orchestrator.AssertExpectations(t)
}

func TestSubmitContentHandler_InvalidJson(t *testing.T) {
	logger := logrus.New()
	orchestrator := new(moderationMocks.Orchestrator)

	handler := NewSubmitContentHandler(logger, orchestrator)

	app := fiber.New()
	app.Post("/api/v1/moderation/content", handler.Handle)

	req := httptest.NewRequest("POST", "/api/v1/moderation/content", bytes.NewReader([]byte("{not-json")))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	orchestrator.AssertNotCalled(t, "SubmitForAnalysis", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitContentHandler_InvalidContentType(t *testing.T) {
	logger := logrus.New()
	orchestrator := new(moderationMocks.Orchestrator)

	handler := NewSubmitContentHandler(logger, orchestrator)

	app := fiber.New()
	app.Post("/api/v1/moderation/content", handler.Handle)

	reqBody := request.SubmitContentRequest{
		TenantID:    "tenant-1",
		ContentType: "hologram",
		PayloadRef:  "s3://uploads/post-1.bin",
		UploaderID:  "user-1",
	}
	body, err := json.Marshal(reqBody)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/api/v1/moderation/content", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	orchestrator.AssertNotCalled(t, "SubmitForAnalysis", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitContentAsyncHandler_Accepted(t *testing.T) {
	logger := logrus.New()
	orchestrator := new(moderationMocks.Orchestrator)

	handler := NewSubmitContentAsyncHandler(logger, orchestrator)

	app := fiber.New()
	app.Post("/api/v1/moderation/content/async", handler.Handle)

	analysisID := uuid.New()
	orchestrator.On("SubmitAsync", mock.Anything, mock.Anything, "", mock.Anything).Return(analysisID, nil)

	reqBody := request.SubmitContentRequest{
		TenantID:    "tenant-1",
		ContentType: "video",
		PayloadRef:  "s3://uploads/clip-9.mp4",
		UploaderID:  "user-2",
	}
	body, err := json.Marshal(reqBody)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/api/v1/moderation/content/async", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusAccepted, resp.StatusCode)

	var got map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, analysisID.String(), got["analysis_id"])
}

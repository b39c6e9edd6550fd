package http

import "github.com/gofiber/fiber/v2"

const ErrInvalidJsonPayload = "invalid json payload"

type Handler interface {
	Handle(ctx *fiber.Ctx) error
}

type HandlerTransport struct {
	// Moderation
	SubmitContentHandler      Handler
	SubmitContentAsyncHandler Handler
	GetDecisionHandler        Handler

	// Appeals
	FileAppealHandler    Handler
	ResolveAppealHandler Handler
	GetAppealHandler     Handler

	// Platform signals
	GetThreatLevelHandler         Handler
	GetCorrelationFindingsHandler Handler

	// Human review
	ListModerationQueueHandler Handler
	ReviewQueueItemHandler     Handler
	ListAuditLogsHandler       Handler
}

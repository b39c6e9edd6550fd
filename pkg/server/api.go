package server

import (
	"fmt"

	"github.com/modshield/modgate/pkg/config"
	handlers "github.com/modshield/modgate/pkg/handlers/http"
	"github.com/sirupsen/logrus"
)

type (
	APIServerDI struct {
		HandlerTransport handlers.HandlerTransport
		Config           *config.Config
		Logger           *logrus.Logger
	}
	APIServer struct {
		*BaseServer
		handlerTransport handlers.HandlerTransport
	}
)

func NewAPIServer(di APIServerDI) *APIServer {
	return &APIServer{
		BaseServer:       NewBaseServer(di.Config, di.Logger),
		handlerTransport: di.HandlerTransport,
	}
}

func (s *APIServer) Run() error {
	s.setupRoutes()
	s.setupHealthCheck()
	s.setupMetricsEndpoint()

	addr := fmt.Sprintf(":%d", s.Config.Server.Port)
	s.Logger.WithField("addr", addr).Info("starting api server")
	return s.Router.Listen(addr)
}

func (s *APIServer) setupRoutes() {
	v1 := s.Router.Group("/api/v1")
	{
		moderation := v1.Group("/moderation")
		{
			moderation.Post("/content", s.handlerTransport.SubmitContentHandler.Handle)
			moderation.Post("/content/async", s.handlerTransport.SubmitContentAsyncHandler.Handle)

			queue := moderation.Group("/queue")
			{
				queue.Get("", s.handlerTransport.ListModerationQueueHandler.Handle)
				queue.Post("/:item_id/review", s.handlerTransport.ReviewQueueItemHandler.Handle)
			}
		}

		decisions := v1.Group("/decisions")
		{
			decisions.Get("/:decision_id", s.handlerTransport.GetDecisionHandler.Handle)
		}

		appeals := v1.Group("/appeals")
		{
			appeals.Post("", s.handlerTransport.FileAppealHandler.Handle)
			appeals.Get("/:appeal_id", s.handlerTransport.GetAppealHandler.Handle)
			appeals.Post("/:appeal_id/resolve", s.handlerTransport.ResolveAppealHandler.Handle)
		}

		v1.Get("/threat-level", s.handlerTransport.GetThreatLevelHandler.Handle)
		v1.Get("/correlation/findings", s.handlerTransport.GetCorrelationFindingsHandler.Handle)
		v1.Get("/audit-logs", s.handlerTransport.ListAuditLogsHandler.Handle)
	}
}

func (s *APIServer) Shutdown() error {
	return s.Router.Shutdown()
}

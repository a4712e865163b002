package handler

import (
	"study-assistant-be/internal/pkg/logger"
	"study-assistant-be/internal/pkg/serverutils"
	internalWS "study-assistant-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// FeedHandler upgrades authenticated requests to the realtime list feed.
type FeedHandler struct {
	hub            *internalWS.Hub
	authMiddleware fiber.Handler
	logger         logger.ILogger
}

func NewFeedHandler(hub *internalWS.Hub, authMiddleware fiber.Handler, log logger.ILogger) *FeedHandler {
	return &FeedHandler{
		hub:            hub,
		authMiddleware: authMiddleware,
		logger:         log,
	}
}

func (h *FeedHandler) RegisterRoutes(r fiber.Router) {
	g := r.Group("/feed")
	// Browsers cannot set headers on the upgrade, so the token may come as ?token=.
	g.Get("/ws", h.authMiddleware, h.ServeWs)
}

func (h *FeedHandler) ServeWs(c *fiber.Ctx) error {
	userID, err := serverutils.UserID(c)
	if err != nil {
		return err
	}

	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	return websocket.New(func(conn *websocket.Conn) {
		h.logger.Info("FEED", "Starting WebSocket session", map[string]interface{}{"user_id": userID})
		internalWS.ServeWs(h.hub, conn, userID)
		h.logger.Info("FEED", "WebSocket session ended", map[string]interface{}{"user_id": userID})
	})(c)
}

package handlers

import (
	"context"
	"log"
	"strings"
	"time"

	"arcbank/internal/models"
	"arcbank/internal/services/auth"
	"arcbank/internal/services/hub"
	"arcbank/internal/services/transfer"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// WSHandler serves the live notification channel. The credential is
// validated before the upgrade; an unauthenticated socket is refused
// before it ever reaches the connection registry.
type WSHandler struct {
	hub         *hub.Hub
	authService auth.Service
	transferSvc transfer.Service
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(h *hub.Hub, authService auth.Service, transferSvc transfer.Service) *WSHandler {
	return &WSHandler{
		hub:         h,
		authService: authService,
		transferSvc: transferSvc,
	}
}

// Upgrade authenticates the handshake and gates the protocol upgrade.
// The token comes from the Authorization header or, for browser
// websocket clients that cannot set headers, the token query parameter.
func (h *WSHandler) Upgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	tokenString := strings.TrimPrefix(c.Get("Authorization"), "Bearer ")
	if tokenString == "" {
		tokenString = c.Query("token")
	}
	if tokenString == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "missing credentials"})
	}

	claims, err := h.authService.ValidateToken(c.Context(), tokenString)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "invalid credentials"})
	}

	c.Locals("claims", claims)
	return c.Next()
}

// clientMessage is what the client may send over the socket.
type clientMessage struct {
	Event string `json:"event"`
	Since string `json:"since,omitempty"`
	Limit int    `json:"limit,omitempty"`
}

// Serve runs the connection: registers it under the user's group and
// processes client messages until the socket closes.
func (h *WSHandler) Serve(conn *websocket.Conn) {
	claims := conn.Locals("claims").(*models.UserClaims)

	client := h.hub.Register(claims.UserID, conn)
	defer func() {
		h.hub.Unregister(client)
		conn.Close()
	}()

	for {
		var msg clientMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("ws: user %d connection error: %v", claims.UserID, err)
			}
			return
		}

		switch msg.Event {
		case "ping":
			if err := client.Send(hub.EventPong, nil); err != nil {
				return
			}
		case "request_transfer_updates":
			h.sendUpdates(client, claims.UserID, msg)
		default:
			// Unknown client events are ignored.
		}
	}
}

// sendUpdates answers an on-demand pull over the live channel with the
// same payload shape as the polling endpoint.
func (h *WSHandler) sendUpdates(client *hub.Client, userID uint, msg clientMessage) {
	req := transfer.UpdatesRequest{Limit: msg.Limit}
	if msg.Since != "" {
		since, err := time.Parse(time.RFC3339, msg.Since)
		if err == nil {
			req.Since = &since
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	page, err := h.transferSvc.Updates(ctx, userID, req)
	if err != nil {
		log.Printf("ws: updates for user %d failed: %v", userID, err)
		return
	}
	if err := client.Send("transfer_updates", page); err != nil {
		log.Printf("ws: sending updates to user %d failed: %v", userID, err)
	}
}

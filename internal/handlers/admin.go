package handlers

import (
	"arcbank/internal/models"
	"arcbank/internal/services/transfer"
	"arcbank/internal/utils/pagination"
	"arcbank/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

// AdminHandler exposes the transfer review queue for admins.
type AdminHandler struct {
	service transfer.Service
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(s transfer.Service) *AdminHandler {
	return &AdminHandler{service: s}
}

// PendingTransfers handles GET /api/admin/transfers/pending requests.
func (h *AdminHandler) PendingTransfers(c *fiber.Ctx) error {
	p := pagination.ParseFromRequest(c)

	transfers, total, err := h.service.ListPending(c.Context(), p.Limit, p.Offset)
	if err != nil {
		return response.DomainError(c, err)
	}

	p.Total = total
	return c.JSON(pagination.Response(p, transfers))
}

// ReviewTransfer handles POST /api/admin/transfers/:id/review requests.
func (h *AdminHandler) ReviewTransfer(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)

	transferID, err := c.ParamsInt("id")
	if err != nil || transferID <= 0 {
		return response.BadRequest(c, "invalid transfer id")
	}

	var req struct {
		Action string `json:"action"`
		Reason string `json:"reason"`
	}
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request")
	}

	sanitized, err := h.service.Review(c.Context(), uint(transferID), claims.UserID, req.Action, req.Reason)
	if err != nil {
		return response.DomainError(c, err)
	}
	return response.Success(c, "transfer reviewed", fiber.Map{
		"transaction": sanitized,
	})
}

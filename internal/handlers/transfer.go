package handlers

import (
	"time"

	"arcbank/internal/models"
	"arcbank/internal/services/transfer"
	"arcbank/internal/utils/pagination"
	"arcbank/internal/utils/response"
	"arcbank/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// TransferHandler exposes the user-facing external transfer endpoints.
type TransferHandler struct {
	service transfer.Service
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(s transfer.Service) *TransferHandler {
	return &TransferHandler{service: s}
}

// Submit handles POST /api/transfers requests.
func (h *TransferHandler) Submit(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)

	var req transfer.SubmitRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request")
	}

	v := validation.New()
	v.SubmitTransfer(&req)
	if !v.Valid() {
		return response.BadRequest(c, v.Message())
	}

	sanitized, err := h.service.Submit(c.Context(), claims.UserID, req)
	if err != nil {
		return response.DomainError(c, err)
	}
	return response.Success(c, "transfer submitted for review", fiber.Map{
		"transaction": sanitized,
	})
}

// List handles GET /api/transfers requests.
func (h *TransferHandler) List(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)
	p := pagination.ParseFromRequest(c)

	transfers, total, err := h.service.ListByUser(c.Context(), claims.UserID, p.Limit, p.Offset)
	if err != nil {
		return response.DomainError(c, err)
	}

	p.Total = total
	return c.JSON(pagination.Response(p, transfers))
}

// Updates handles GET /api/transfers/updates requests, the polling
// reconciliation feed. `since` filters to updatedAt > since; `limit`
// is clamped server-side.
func (h *TransferHandler) Updates(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)

	req := transfer.UpdatesRequest{
		Limit: c.QueryInt("limit", transfer.DefaultUpdatesPageSize),
	}
	if raw := c.Query("since"); raw != "" {
		since, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return response.BadRequest(c, "since must be an RFC3339 timestamp")
		}
		req.Since = &since
	}

	page, err := h.service.Updates(c.Context(), claims.UserID, req)
	if err != nil {
		return response.DomainError(c, err)
	}
	return response.Success(c, "transfer updates", page)
}

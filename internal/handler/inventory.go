package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"workspacebcn/internal/apierror"
	"workspacebcn/internal/dto"
	"workspacebcn/internal/service"
)

type InventoryHandler struct{ svc service.InventoryService }

func NewInventoryHandler(svc service.InventoryService) *InventoryHandler {
	return &InventoryHandler{svc: svc}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de inventario (admin)
// @Description  entrada/devolucion suman, salida resta (rechazada si deja stock negativo), ajuste fija el stock al valor indicado.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.RegisterMovementRequest true "Movimiento"
// @Success      201  {object} dto.RegisterMovementResponse
// @Failure      400  {object} apierror.APIError
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) RegisterMovement(c *gin.Context) {
	var req dto.RegisterMovementRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegisterMovement(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *InventoryHandler) ListMovements(c *gin.Context) {
	var filter dto.MovementFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.ListMovements(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *InventoryHandler) LowStock(c *gin.Context) {
	resp, err := h.svc.LowStock(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *InventoryHandler) Stats(c *gin.Context) {
	resp, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Overview accepts ?limit= for the low/out-of-stock lists: clamped to 1..20,
// 0 for unlimited, default 5 when missing or unparseable.
func (h *InventoryHandler) Overview(c *gin.Context) {
	limit := 5
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}
	resp, err := h.svc.Overview(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

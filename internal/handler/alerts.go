package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"workspacebcn/internal/service"
)

type AlertsHandler struct{ svc service.AlertService }

func NewAlertsHandler(svc service.AlertService) *AlertsHandler { return &AlertsHandler{svc: svc} }

// List returns the back-office alerts projection: pending counters, lowest
// stock products and the newest alert rows.
func (h *AlertsHandler) List(c *gin.Context) {
	resp, err := h.svc.AdminAlerts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AlertsHandler) Detail(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	resp, err := h.svc.AlertDetail(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

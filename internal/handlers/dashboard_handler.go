package handlers

import (
	"investment-service/internal/middleware"
	"investment-service/internal/services"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	Dashboard *services.DashboardService
}

func NewDashboardHandler(dashboard *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{Dashboard: dashboard}
}

func (h *DashboardHandler) Summary(c *gin.Context) {
	summary, err := h.Dashboard.Summary(middleware.UserId(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, summary, "Dashboard fetched")
}

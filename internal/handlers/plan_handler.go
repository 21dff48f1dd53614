package handlers

import (
	"investment-service/internal/services"

	"github.com/gin-gonic/gin"
)

type PlanHandler struct {
	Plans *services.PlanService
}

func NewPlanHandler(plans *services.PlanService) *PlanHandler {
	return &PlanHandler{Plans: plans}
}

// List returns active plans with derived figures for the packages page.
func (h *PlanHandler) List(c *gin.Context) {
	plans, err := h.Plans.ListActive()
	if err != nil {
		respondError(c, err)
		return
	}

	overviews := make([]services.PlanOverview, 0, len(plans))
	for _, plan := range plans {
		overviews = append(overviews, services.BuildPlanOverview(plan))
	}
	respondOK(c, overviews, "Plans fetched")
}

package handlers

import (
	"investment-service/internal/middleware"
	"investment-service/internal/services"

	"github.com/gin-gonic/gin"
)

type InvestmentHandler struct {
	Investments *services.InvestmentService
}

func NewInvestmentHandler(investments *services.InvestmentService) *InvestmentHandler {
	return &InvestmentHandler{Investments: investments}
}

func (h *InvestmentHandler) Create(c *gin.Context) {
	var req services.CreateInvestmentDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	req.UserId = middleware.UserId(c)

	investment, err := h.Investments.Create(req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, investment, "Investment submitted")
}

func (h *InvestmentHandler) List(c *gin.Context) {
	overviews, err := h.Investments.ListForUser(middleware.UserId(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, overviews, "Investments fetched")
}

package handlers

import (
	"strconv"

	"investment-service/internal/middleware"
	"investment-service/internal/services"
	"investment-service/pkg/common"

	"github.com/gin-gonic/gin"
)

type WithdrawalHandler struct {
	Withdrawals *services.WithdrawalService
}

func NewWithdrawalHandler(withdrawals *services.WithdrawalService) *WithdrawalHandler {
	return &WithdrawalHandler{Withdrawals: withdrawals}
}

func (h *WithdrawalHandler) Create(c *gin.Context) {
	var req services.CreateWithdrawalDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	req.UserId = middleware.UserId(c)

	request, err := h.Withdrawals.Create(req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, request, "Withdrawal request submitted")
}

func (h *WithdrawalHandler) List(c *gin.Context) {
	requests, err := h.Withdrawals.ListForUser(middleware.UserId(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, requests, "Withdrawal requests fetched")
}

func (h *WithdrawalHandler) Cancel(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondBadRequest(c, common.NewValidationError("id", "invalid withdrawal id"))
		return
	}

	request, err := h.Withdrawals.Cancel(id, middleware.UserId(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, request, "Withdrawal request cancelled")
}

package handlers

import (
	"strconv"

	"investment-service/internal/middleware"
	"investment-service/internal/services"
	"investment-service/pkg/common"

	"github.com/gin-gonic/gin"
)

// AdminHandler groups the admin action surface: wallet registry, plan
// catalog, investment transitions and the withdrawal approval workflow.
type AdminHandler struct {
	Wallets     *services.WalletService
	Plans       *services.PlanService
	Investments *services.InvestmentService
	Withdrawals *services.WithdrawalService
	Auth        *services.AuthService
}

func NewAdminHandler(
	wallets *services.WalletService,
	plans *services.PlanService,
	investments *services.InvestmentService,
	withdrawals *services.WithdrawalService,
	auth *services.AuthService,
) *AdminHandler {
	return &AdminHandler{
		Wallets:     wallets,
		Plans:       plans,
		Investments: investments,
		Withdrawals: withdrawals,
		Auth:        auth,
	}
}

func pathId(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		respondBadRequest(c, common.NewValidationError("id", "invalid id"))
		return 0, false
	}
	return id, true
}

// --- Wallet registry ---

func (h *AdminHandler) ListWallets(c *gin.Context) {
	wallets, err := h.Wallets.List()
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, wallets, "Wallets fetched")
}

func (h *AdminHandler) CreateWallet(c *gin.Context) {
	var req services.WalletDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	wallet, err := h.Wallets.Create(req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, wallet, "Wallet created")
}

func (h *AdminHandler) UpdateWallet(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	var req services.WalletDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	wallet, err := h.Wallets.Update(id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, wallet, "Wallet updated")
}

// --- Plan catalog ---

func (h *AdminHandler) ListPlans(c *gin.Context) {
	plans, err := h.Plans.ListAll()
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

func (h *AdminHandler) CreatePlan(c *gin.Context) {
	var req services.PlanDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	plan, err := h.Plans.Create(req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, plan, "Plan created")
}

func (h *AdminHandler) UpdatePlan(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	var req services.PlanDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	plan, err := h.Plans.Update(id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, plan, "Plan updated")
}

// --- Investments ---

func (h *AdminHandler) ListInvestments(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	userId, _ := strconv.Atoi(c.Query("user_id"))

	result, err := h.Investments.AdminList(services.AdminListInvestmentsDTO{
		Status: c.Query("status"),
		UserId: userId,
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, result)
}

func (h *AdminHandler) BulkInvestmentStatus(c *gin.Context) {
	var req services.BulkStatusDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	result, err := h.Investments.BulkUpdateStatus(req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, result, "Investment statuses updated")
}

// --- Withdrawal workflow ---

func (h *AdminHandler) ListWithdrawals(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	userId, _ := strconv.Atoi(c.Query("user_id"))

	result, err := h.Withdrawals.AdminList(services.AdminListWithdrawalsDTO{
		Status: c.Query("status"),
		UserId: userId,
		From:   c.Query("from"),
		To:     c.Query("to"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, result)
}

func (h *AdminHandler) MarkWithdrawalProcessing(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}

	request, err := h.Withdrawals.MarkProcessing(id, middleware.UserId(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, request, "Withdrawal marked processing")
}

func (h *AdminHandler) ApproveWithdrawal(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	var req services.ApproveWithdrawalDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	request, err := h.Withdrawals.Approve(id, middleware.UserId(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, request, "Withdrawal approved")
}

func (h *AdminHandler) RejectWithdrawal(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	var req services.RejectWithdrawalDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	request, err := h.Withdrawals.Reject(id, middleware.UserId(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, request, "Withdrawal rejected")
}

func (h *AdminHandler) BulkApproveWithdrawals(c *gin.Context) {
	var req services.BulkWithdrawalDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	result := h.Withdrawals.BulkApprove(middleware.UserId(c), req)
	respondOK(c, result, "Bulk approve finished")
}

func (h *AdminHandler) BulkRejectWithdrawals(c *gin.Context) {
	var req services.BulkWithdrawalDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	result, err := h.Withdrawals.BulkReject(middleware.UserId(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, result, "Bulk reject finished")
}

func (h *AdminHandler) DisableUserWithdrawals(c *gin.Context) {
	var req services.BulkWithdrawalDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	result := h.Withdrawals.DisableUserWithdrawals(req.Ids)
	respondOK(c, result, "User withdrawals disabled")
}

// --- User profiles ---

type UpdateWithdrawalGateRequest struct {
	WithdrawalEnabled        *bool  `json:"withdrawal_enabled" binding:"required"`
	WithdrawalDisabledReason string `json:"withdrawal_disabled_reason"`
}

func (h *AdminHandler) GetProfile(c *gin.Context) {
	userId, ok := pathId(c)
	if !ok {
		return
	}

	profile, err := h.Auth.GetOrCreateProfile(userId)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, profile, "Profile fetched")
}

// UpdateWithdrawalGate flips a user's withdrawal permission. Disabling
// keeps the supplied reason; enabling clears it.
func (h *AdminHandler) UpdateWithdrawalGate(c *gin.Context) {
	userId, ok := pathId(c)
	if !ok {
		return
	}
	var req UpdateWithdrawalGateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	profile, err := h.Auth.SetWithdrawalGate(userId, *req.WithdrawalEnabled, req.WithdrawalDisabledReason)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, profile, "Profile updated")
}

package services

import (
	"fmt"
	"testing"

	"investment-service/internal/models"
	"investment-service/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeSettler struct {
	calls []WithdrawalSettlementCall
}

type WithdrawalSettlementCall struct {
	WithdrawalId int
	UserId       int
	Amount       float64
}

func (f *fakeSettler) EnqueueWithdrawalSettlement(withdrawalId, userId int, amount float64) error {
	f.calls = append(f.calls, WithdrawalSettlementCall{withdrawalId, userId, amount})
	return nil
}

func newWithdrawalService(db *gorm.DB) (*WithdrawalService, *fakeSettler) {
	auth := NewAuthService(db, []byte("test-secret"))
	balance := NewBalanceService(db)
	settler := &fakeSettler{}
	return NewWithdrawalService(db, auth, balance, settler), settler
}

func fundUser(t *testing.T, svc *WithdrawalService, userId int, amount float64) {
	t.Helper()
	if err := svc.Balance.Credit(userId, amount, "Deposit", "test funding"); err != nil {
		t.Fatalf("Failed to fund user %d: %v", userId, err)
	}
}

func TestCreateWithdrawal(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newWithdrawalService(db)
	fundUser(t, svc, 1, 500)

	request, err := svc.Create(CreateWithdrawalDTO{
		UserId:           1,
		Amount:           200,
		WithdrawalMethod: "BTC",
		AccountDetails:   "bc1quser",
	})
	require.NoError(t, err)

	assert.Equal(t, models.WithdrawalStatusPending, request.Status)
	assert.NotEmpty(t, request.OrderId)
	assert.Nil(t, request.ProcessedAt)
}

func TestCreateWithdrawalInsufficientBalance(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newWithdrawalService(db)
	fundUser(t, svc, 1, 100)

	_, err := svc.Create(CreateWithdrawalDTO{
		UserId:           1,
		Amount:           200,
		WithdrawalMethod: "BTC",
		AccountDetails:   "bc1quser",
	})

	var vErr *common.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "amount", vErr.Field)
}

func TestCreateWithdrawalBlockedByGate(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newWithdrawalService(db)
	fundUser(t, svc, 1, 500)

	_, err := svc.Auth.SetWithdrawalGate(1, false, "Suspicious activity under review")
	require.NoError(t, err)

	_, err = svc.Create(CreateWithdrawalDTO{
		UserId:           1,
		Amount:           100,
		WithdrawalMethod: "BTC",
		AccountDetails:   "bc1quser",
	})

	var pErr *common.PolicyError
	require.ErrorAs(t, err, &pErr)
	assert.Equal(t, "Suspicious activity under review", pErr.Reason)
}

func TestApproveWithdrawal(t *testing.T) {
	db := newTestDB(t)
	svc, settler := newWithdrawalService(db)
	fundUser(t, svc, 1, 500)

	request, err := svc.Create(CreateWithdrawalDTO{
		UserId: 1, Amount: 200, WithdrawalMethod: "BTC", AccountDetails: "bc1quser",
	})
	require.NoError(t, err)

	approved, err := svc.Approve(request.ID, 99, ApproveWithdrawalDTO{AdminNote: "ok"})
	require.NoError(t, err)

	assert.Equal(t, models.WithdrawalStatusCompleted, approved.Status)
	require.NotNil(t, approved.ProcessedAt)
	require.NotNil(t, approved.ProcessedBy)
	assert.Equal(t, 99, *approved.ProcessedBy)
	assert.NotEmpty(t, approved.TransactionId)

	require.Len(t, settler.calls, 1)
	assert.Equal(t, request.ID, settler.calls[0].WithdrawalId)
	assert.Equal(t, 200.0, settler.calls[0].Amount)
}

func TestApproveWithdrawalTwiceIsRefused(t *testing.T) {
	db := newTestDB(t)
	svc, settler := newWithdrawalService(db)
	fundUser(t, svc, 1, 500)

	request, err := svc.Create(CreateWithdrawalDTO{
		UserId: 1, Amount: 200, WithdrawalMethod: "BTC", AccountDetails: "bc1quser",
	})
	require.NoError(t, err)

	first, err := svc.Approve(request.ID, 99, ApproveWithdrawalDTO{})
	require.NoError(t, err)

	_, err = svc.Approve(request.ID, 99, ApproveWithdrawalDTO{})
	var tErr *common.TransitionError
	require.ErrorAs(t, err, &tErr)
	assert.Equal(t, models.WithdrawalStatusCompleted, tErr.Current)

	// The first processed_at stamp survives untouched and settlement only
	// ran once.
	var stored models.WithdrawalRequest
	require.NoError(t, db.First(&stored, request.ID).Error)
	require.NotNil(t, stored.ProcessedAt)
	assert.Equal(t, first.ProcessedAt.Unix(), stored.ProcessedAt.Unix())
	assert.Len(t, settler.calls, 1)
}

func TestCancelWithdrawal(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newWithdrawalService(db)
	fundUser(t, svc, 1, 500)

	request, err := svc.Create(CreateWithdrawalDTO{
		UserId: 1, Amount: 200, WithdrawalMethod: "BTC", AccountDetails: "bc1quser",
	})
	require.NoError(t, err)

	cancelled, err := svc.Cancel(request.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, models.WithdrawalStatusCancelled, cancelled.Status)

	var stored models.WithdrawalRequest
	require.NoError(t, db.First(&stored, request.ID).Error)
	assert.Nil(t, stored.ProcessedAt)
}

func TestCancelSomeoneElsesWithdrawal(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newWithdrawalService(db)
	fundUser(t, svc, 1, 500)

	request, err := svc.Create(CreateWithdrawalDTO{
		UserId: 1, Amount: 200, WithdrawalMethod: "BTC", AccountDetails: "bc1quser",
	})
	require.NoError(t, err)

	_, err = svc.Cancel(request.ID, 2)
	var nfErr *common.NotFoundError
	require.ErrorAs(t, err, &nfErr)
}

func TestTerminalStatesRefuseTransitions(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newWithdrawalService(db)
	fundUser(t, svc, 1, 1000)

	for _, terminal := range []string{
		models.WithdrawalStatusCompleted,
		models.WithdrawalStatusRejected,
		models.WithdrawalStatusCancelled,
	} {
		request, err := svc.Create(CreateWithdrawalDTO{
			UserId: 1, Amount: 10, WithdrawalMethod: "BTC", AccountDetails: "bc1quser",
		})
		require.NoError(t, err)
		require.NoError(t, db.Model(&models.WithdrawalRequest{}).
			Where("id = ?", request.ID).Update("status", terminal).Error)

		var tErr *common.TransitionError

		_, err = svc.Cancel(request.ID, 1)
		assert.ErrorAs(t, err, &tErr, "cancel from %s", terminal)

		_, err = svc.Approve(request.ID, 99, ApproveWithdrawalDTO{})
		assert.ErrorAs(t, err, &tErr, "approve from %s", terminal)

		_, err = svc.Reject(request.ID, 99, RejectWithdrawalDTO{RejectionReason: "no"})
		assert.ErrorAs(t, err, &tErr, "reject from %s", terminal)

		var stored models.WithdrawalRequest
		require.NoError(t, db.First(&stored, request.ID).Error)
		assert.Equal(t, terminal, stored.Status)
	}
}

func TestRejectRequiresReason(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newWithdrawalService(db)
	fundUser(t, svc, 1, 500)

	request, err := svc.Create(CreateWithdrawalDTO{
		UserId: 1, Amount: 100, WithdrawalMethod: "BTC", AccountDetails: "bc1quser",
	})
	require.NoError(t, err)

	_, err = svc.Reject(request.ID, 99, RejectWithdrawalDTO{RejectionReason: "  "})
	var vErr *common.ValidationError
	require.ErrorAs(t, err, &vErr)

	rejected, err := svc.Reject(request.ID, 99, RejectWithdrawalDTO{RejectionReason: "Account mismatch"})
	require.NoError(t, err)
	assert.Equal(t, models.WithdrawalStatusRejected, rejected.Status)
	assert.NotNil(t, rejected.ProcessedAt)
	assert.Equal(t, "Account mismatch", rejected.RejectionReason)
}

func TestBulkApproveMixedStatuses(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newWithdrawalService(db)
	fundUser(t, svc, 1, 1000)

	var ids []int
	for _, status := range []string{
		models.WithdrawalStatusPending,
		models.WithdrawalStatusProcessing,
		models.WithdrawalStatusCompleted,
	} {
		request, err := svc.Create(CreateWithdrawalDTO{
			UserId: 1, Amount: 50, WithdrawalMethod: "BTC", AccountDetails: "bc1quser",
		})
		require.NoError(t, err)
		require.NoError(t, db.Model(&models.WithdrawalRequest{}).
			Where("id = ?", request.ID).Update("status", status).Error)
		ids = append(ids, request.ID)
	}

	result := svc.BulkApprove(99, BulkWithdrawalDTO{Ids: ids})

	assert.Equal(t, 2, result.Processed)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, ids[2], result.Errors[0].Id)
}

func TestBulkApprovePropagatesTransactionId(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newWithdrawalService(db)
	fundUser(t, svc, 1, 500)

	request, err := svc.Create(CreateWithdrawalDTO{
		UserId: 1, Amount: 50, WithdrawalMethod: "BTC", AccountDetails: "bc1quser",
	})
	require.NoError(t, err)

	result := svc.BulkApprove(99, BulkWithdrawalDTO{Ids: []int{request.ID}, TransactionId: "batch-2026-001"})
	assert.Equal(t, 1, result.Processed)

	var stored models.WithdrawalRequest
	require.NoError(t, db.First(&stored, request.ID).Error)
	assert.Equal(t, "batch-2026-001", stored.TransactionId)
}

func TestDisableUserWithdrawals(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newWithdrawalService(db)
	fundUser(t, svc, 1, 500)
	fundUser(t, svc, 2, 500)

	first, err := svc.Create(CreateWithdrawalDTO{
		UserId: 1, Amount: 50, WithdrawalMethod: "BTC", AccountDetails: "bc1quser",
	})
	require.NoError(t, err)
	second, err := svc.Create(CreateWithdrawalDTO{
		UserId: 2, Amount: 50, WithdrawalMethod: "ETH", AccountDetails: "0xuser",
	})
	require.NoError(t, err)

	result := svc.DisableUserWithdrawals([]int{first.ID, second.ID, 9999})
	assert.Equal(t, 2, result.Processed)
	assert.Equal(t, 1, result.Failed)

	profile, err := svc.Auth.GetOrCreateProfile(1)
	require.NoError(t, err)
	assert.False(t, profile.WithdrawalEnabled)
	assert.Equal(t,
		fmt.Sprintf("Disabled via withdrawal request #%d", first.ID),
		profile.WithdrawalDisabledReason)
}

package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func testPlan() *InvestmentPlan {
	return &InvestmentPlan{
		MinimumDeposit:          100,
		DailyEarningsPercentage: 1.8,
		InvestmentDurationDays:  30,
		DepositReturn:           true,
	}
}

func TestInvestmentDerivedEarnings(t *testing.T) {
	inv := Investment{Amount: 500, Plan: testPlan()}

	daily := inv.DailyEarnings()
	if assert.NotNil(t, daily) {
		assert.InDelta(t, 9.0, *daily, 0.0001)
	}

	earnings := inv.ExpectedTotalEarnings()
	if assert.NotNil(t, earnings) {
		assert.InDelta(t, 270.0, *earnings, 0.0001)
	}

	ret := inv.ExpectedTotalReturn()
	if assert.NotNil(t, ret) {
		assert.InDelta(t, 770.0, *ret, 0.0001)
	}
}

func TestInvestmentDerivedEarningsWithoutPlan(t *testing.T) {
	inv := Investment{Amount: 500}

	assert.Nil(t, inv.DailyEarnings())
	assert.Nil(t, inv.ExpectedTotalEarnings())
	assert.Nil(t, inv.ExpectedTotalReturn())
	assert.Nil(t, inv.DaysRemaining(time.Now()))
	assert.Nil(t, inv.ProgressPercentage(time.Now()))
}

func TestInvestmentDaysElapsedUsesCalendarDates(t *testing.T) {
	invested := time.Date(2026, 3, 10, 23, 50, 0, 0, time.UTC)
	inv := Investment{DateInvested: invested}

	// Ten minutes later but on the next calendar day counts as one day.
	assert.Equal(t, 1, inv.DaysElapsed(time.Date(2026, 3, 11, 0, 5, 0, 0, time.UTC)))
	assert.Equal(t, 0, inv.DaysElapsed(time.Date(2026, 3, 10, 23, 59, 0, 0, time.UTC)))
}

func TestInvestmentProgressClamping(t *testing.T) {
	plan := &InvestmentPlan{InvestmentDurationDays: 10, DailyEarningsPercentage: 1.0}
	invested := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	inv := Investment{
		Status:       InvestmentStatusActive,
		DateInvested: invested,
		Plan:         plan,
	}

	cases := []struct {
		elapsed  int
		progress float64
		remains  int
	}{
		{0, 0, 10},
		{5, 50, 5},
		{10, 100, 0},
		{15, 100, 0},
	}
	for _, tc := range cases {
		now := invested.AddDate(0, 0, tc.elapsed)
		progress := inv.ProgressPercentage(now)
		remaining := inv.DaysRemaining(now)
		if assert.NotNil(t, progress) {
			assert.InDelta(t, tc.progress, *progress, 0.0001, "elapsed=%d", tc.elapsed)
		}
		if assert.NotNil(t, remaining) {
			assert.Equal(t, tc.remains, *remaining, "elapsed=%d", tc.elapsed)
		}
	}
}

func TestInvestmentCompletedForcesTerminalMetrics(t *testing.T) {
	plan := &InvestmentPlan{InvestmentDurationDays: 10, DailyEarningsPercentage: 1.0}
	inv := Investment{
		Status:       InvestmentStatusCompleted,
		DateInvested: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Plan:         plan,
	}

	// Completed two days in: progress reports 100 and remaining reports 0.
	now := time.Date(2026, 1, 3, 0, 0, 0, 0, time.UTC)
	progress := inv.ProgressPercentage(now)
	remaining := inv.DaysRemaining(now)
	if assert.NotNil(t, progress) {
		assert.Equal(t, 100.0, *progress)
	}
	if assert.NotNil(t, remaining) {
		assert.Equal(t, 0, *remaining)
	}
}

func TestInvestmentTransitionAllowed(t *testing.T) {
	assert.True(t, InvestmentTransitionAllowed(InvestmentStatusPending))
	assert.True(t, InvestmentTransitionAllowed(InvestmentStatusActive))
	assert.False(t, InvestmentTransitionAllowed(InvestmentStatusCompleted))
	assert.False(t, InvestmentTransitionAllowed(InvestmentStatusCancelled))
}

func TestWithdrawalTransitionAllowed(t *testing.T) {
	assert.True(t, WithdrawalTransitionAllowed(WithdrawalStatusPending))
	assert.True(t, WithdrawalTransitionAllowed(WithdrawalStatusProcessing))
	assert.False(t, WithdrawalTransitionAllowed(WithdrawalStatusCompleted))
	assert.False(t, WithdrawalTransitionAllowed(WithdrawalStatusRejected))
	assert.False(t, WithdrawalTransitionAllowed(WithdrawalStatusCancelled))
}

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlanTotalReturnPercentage(t *testing.T) {
	plan := InvestmentPlan{DailyEarningsPercentage: 1.8, InvestmentDurationDays: 30}

	got := plan.TotalReturnPercentage()
	if assert.NotNil(t, got) {
		assert.InDelta(t, 54.0, *got, 0.0001)
	}

	plan.InvestmentDurationDays = 0
	assert.Nil(t, plan.TotalReturnPercentage())

	plan.InvestmentDurationDays = 30
	plan.DailyEarningsPercentage = 0
	assert.Nil(t, plan.TotalReturnPercentage())
}

func TestPlanEstimatedTotalReturn(t *testing.T) {
	plan := InvestmentPlan{
		MinimumDeposit:          100,
		DailyEarningsPercentage: 1.8,
		InvestmentDurationDays:  30,
		DepositReturn:           true,
	}

	got := plan.EstimatedTotalReturn()
	if assert.NotNil(t, got) {
		assert.InDelta(t, 154.0, *got, 0.0001)
	}

	plan.DepositReturn = false
	got = plan.EstimatedTotalReturn()
	if assert.NotNil(t, got) {
		assert.InDelta(t, 54.0, *got, 0.0001)
	}

	plan.MinimumDeposit = 0
	assert.Nil(t, plan.EstimatedTotalReturn())
}

func TestPlanInvestmentRangeDisplay(t *testing.T) {
	plan := InvestmentPlan{MinimumDeposit: 100}
	assert.Equal(t, "$100+", plan.InvestmentRangeDisplay())

	max := 5000.0
	plan.MaximumDeposit = &max
	assert.Equal(t, "$100 - $5,000", plan.InvestmentRangeDisplay())

	plan.MinimumDeposit = 2500
	max = 1250000
	assert.Equal(t, "$2,500 - $1,250,000", plan.InvestmentRangeDisplay())

	plan.MaximumDeposit = nil
	assert.Equal(t, "$2,500+", plan.InvestmentRangeDisplay())

	plan.MinimumDeposit = 0
	assert.Equal(t, "N/A", plan.InvestmentRangeDisplay())
}

package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFundedPercentage(t *testing.T) {
	p := Project{GoalAmount: 200, CurrentAmount: 50}
	require.InDelta(t, 25, p.FundedPercentage(), 0.001)
}

func TestFundedPercentageZeroGoal(t *testing.T) {
	p := Project{GoalAmount: 0, CurrentAmount: 50}
	require.Zero(t, p.FundedPercentage())
}

func TestEngagementScoreFloorsAgeAtOneDay(t *testing.T) {
	now := time.Now()

	fresh := Project{BackersCount: 10}
	fresh.CreatedAt = now.Add(-time.Hour)
	require.InDelta(t, 10, fresh.EngagementScore(now), 0.001)

	aged := Project{BackersCount: 10}
	aged.CreatedAt = now.Add(-48 * time.Hour)
	require.InDelta(t, 5, aged.EngagementScore(now), 0.001)
}

package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildWavePlan(t *testing.T) {
	plan := BuildWavePlan([]Wave{
		{Enemy: "grunt", Count: 3, Interval: 1},
		{Enemy: "tough", Count: 2, Interval: 0.5},
	}, 4)

	want := []SpawnEntry{
		{0, "grunt"},
		{1, "grunt"},
		{2, "grunt"},
		{6, "tough"},
		{6.5, "tough"},
	}
	assert.Equal(t, len(want), plan.Len())
	for i, w := range want {
		assert.Equal(t, w, plan.Entry(i), "entry %d", i)
	}
}

func TestBuildWavePlan_NegativeGapKeepsOrder(t *testing.T) {
	plan := BuildWavePlan([]Wave{
		{Enemy: "grunt", Count: 2, Interval: 1},
		{Enemy: "tough", Count: 1, Interval: 0},
	}, -10)

	assert.Equal(t, 1.0, plan.Entry(2).Time)
}

func TestWavePlan_DueSpawnsEverythingReached(t *testing.T) {
	plan := BuildWavePlan([]Wave{{Enemy: "grunt", Count: 5, Interval: 0.5}}, 4)

	assert.Len(t, plan.Due(0), 1)
	assert.Len(t, plan.Due(1.6), 3, "several entries due in one call")
	assert.Len(t, plan.Due(10), 1)
	assert.True(t, plan.Exhausted())
	assert.Equal(t, 0, plan.Remaining())
}

func TestWavePlan_DueIsIdempotent(t *testing.T) {
	plan := BuildWavePlan([]Wave{{Enemy: "grunt", Count: 3, Interval: 0}}, 4)

	assert.Len(t, plan.Due(0), 3)
	assert.Empty(t, plan.Due(0))
	assert.Empty(t, plan.Due(0))
	assert.Equal(t, []int{0, 1, 2}, plan.Spawned())
}

func TestWavePlan_Restore(t *testing.T) {
	plan := BuildWavePlan([]Wave{{Enemy: "grunt", Count: 4, Interval: 1}}, 4)

	dropped := plan.Restore([]int{3, 0, 7, -2})

	assert.Equal(t, 2, dropped)
	assert.Equal(t, []int{0, 3}, plan.Spawned())

	due := plan.Due(5)
	assert.Equal(t, []SpawnEntry{{1, "grunt"}, {2, "grunt"}}, due)
}

func TestWaveAt(t *testing.T) {
	waves := []Wave{
		{Enemy: "grunt", Count: 2, Interval: 1},
		{Enemy: "tough", Count: 1, Interval: 1},
	}
	plan := BuildWavePlan(waves, 4)

	assert.Equal(t, 0, WaveAt(waves, plan))
	plan.Due(1)
	assert.Equal(t, 1, WaveAt(waves, plan))
	plan.Due(100)
	assert.Equal(t, 2, WaveAt(waves, plan))
}

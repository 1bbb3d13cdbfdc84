package ingestion

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPickFollowsWeights(t *testing.T) {
	s := &Simulator{rand: rand.New(rand.NewSource(99))} //nolint:gosec

	const draws = 20000

	counts := map[outcome]int{}
	for range draws {
		counts[s.pick()]++
	}

	assert.Len(t, counts, 3)
	assert.InDelta(t, 0.4, float64(counts[outcomeWarning])/draws, 0.02)
	assert.InDelta(t, 0.3, float64(counts[outcomeCritical])/draws, 0.02)
	assert.InDelta(t, 0.3, float64(counts[outcomeSilent])/draws, 0.02)
}

func TestProfilesStayInBand(t *testing.T) {
	s := &Simulator{rand: rand.New(rand.NewSource(3))} //nolint:gosec

	for range 1000 {
		healthy := s.generate(outcomeHealthy)
		assert.LessOrEqual(t, healthy["temperature"].(float64), 50.0)
		assert.LessOrEqual(t, healthy["disk_volume"].(float64), 80.0)

		warning := s.generate(outcomeWarning)
		assert.Greater(t, warning["temperature"].(float64), 60.0)
		assert.Less(t, warning["temperature"].(float64), 80.0)

		critical := s.generate(outcomeCritical)
		assert.Greater(t, critical["temperature"].(float64), 80.0)
	}
}

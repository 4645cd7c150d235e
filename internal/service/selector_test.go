package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/guardia-api/internal/models"
)

func TestSelectLeastLoadedPicksLowestCount(t *testing.T) {
	candidates := teachers("ana@school.test", "bea@school.test", "carl@school.test")
	counters := map[string]models.DutyCounter{
		"ana@school.test":  {NormalCount: 3},
		"bea@school.test":  {NormalCount: 1},
		"carl@school.test": {NormalCount: 2},
	}

	pick, ok := selectLeastLoaded(candidates, counters, models.DutyNormal)
	require.True(t, ok)
	assert.Equal(t, "bea@school.test", pick.Email)
}

func TestSelectLeastLoadedCountsPerTrack(t *testing.T) {
	candidates := teachers("ana@school.test", "bea@school.test")
	counters := map[string]models.DutyCounter{
		"ana@school.test": {NormalCount: 9, SupervisionCount: 0},
		"bea@school.test": {NormalCount: 0, SupervisionCount: 9},
	}

	pick, ok := selectLeastLoaded(candidates, counters, models.DutySupervision)
	require.True(t, ok)
	assert.Equal(t, "ana@school.test", pick.Email)
}

func TestSelectLeastLoadedTieBreaksByEmail(t *testing.T) {
	candidates := teachers("zoe@school.test", "mia@school.test", "abe@school.test")

	pick, ok := selectLeastLoaded(candidates, nil, models.DutyNormal)
	require.True(t, ok)
	assert.Equal(t, "abe@school.test", pick.Email)
}

func TestSelectLeastLoadedIsDeterministic(t *testing.T) {
	counters := map[string]models.DutyCounter{
		"ana@school.test": {ProblematicCount: 1},
		"bea@school.test": {ProblematicCount: 1},
	}

	forward := teachers("ana@school.test", "bea@school.test")
	reversed := teachers("bea@school.test", "ana@school.test")

	first, _ := selectLeastLoaded(forward, counters, models.DutyProblematic)
	second, _ := selectLeastLoaded(reversed, counters, models.DutyProblematic)
	assert.Equal(t, first.Email, second.Email)
}

func TestSelectLeastLoadedEmptyPool(t *testing.T) {
	_, ok := selectLeastLoaded(nil, nil, models.DutyNormal)
	assert.False(t, ok)
}

func TestSelectLeastLoadedMissingCounterReadsAsZero(t *testing.T) {
	candidates := teachers("ana@school.test", "new@school.test")
	counters := map[string]models.DutyCounter{
		"ana@school.test": {NormalCount: 1},
	}

	pick, ok := selectLeastLoaded(candidates, counters, models.DutyNormal)
	require.True(t, ok)
	assert.Equal(t, "new@school.test", pick.Email)
}

func TestRemoveCandidate(t *testing.T) {
	pool := teachers("ana@school.test", "bea@school.test", "carl@school.test")
	pool = removeCandidate(pool, "bea@school.test")
	require.Len(t, pool, 2)
	for _, teacher := range pool {
		assert.NotEqual(t, "bea@school.test", teacher.Email)
	}
}

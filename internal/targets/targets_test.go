package targets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryFromDistanceBanding(t *testing.T) {
	assert.Equal(t, Short, CategoryFromDistance(130))
	assert.Equal(t, Mid, CategoryFromDistance(131))
	assert.Equal(t, Mid, CategoryFromDistance(185))
	assert.Equal(t, Long, CategoryFromDistance(186))
}

func TestByIDBounds(t *testing.T) {
	_, ok := ByID(0)
	assert.False(t, ok)
	_, ok = ByID(9)
	assert.False(t, ok)

	tgt, ok := ByID(4)
	require.True(t, ok)
	assert.Equal(t, 150, tgt.DistanceYds)
	assert.Equal(t, Mid, tgt.Category)
}

func TestPayoutMultiplierBoundaryInvariants(t *testing.T) {
	tgt, _ := ByID(4)
	pMax := 10.0

	assert.Equal(t, pMax, tgt.PayoutMultiplier(0, pMax))
	assert.Zero(t, tgt.PayoutMultiplier(tgt.DMaxFt, pMax))
	assert.Zero(t, tgt.PayoutMultiplier(tgt.DMaxFt+1, pMax))

	// strictly decreasing on [0, dMax]
	prev := tgt.PayoutMultiplier(0, pMax)
	for d := 1.0; d < tgt.DMaxFt; d += 1.0 {
		cur := tgt.PayoutMultiplier(d, pMax)
		assert.Less(t, cur, prev)
		prev = cur
	}
}

func TestBreakevenRadiusMatchesPayoutOfOne(t *testing.T) {
	tgt, _ := ByID(1)
	pMax := 8.0

	d := tgt.BreakevenRadius(pMax)
	require.Greater(t, d, 0.0)
	assert.InDelta(t, 1.0, tgt.PayoutMultiplier(d, pMax), 1e-4)
}

func TestBreakevenRadiusZeroWhenPMaxAtOrBelowOne(t *testing.T) {
	tgt, _ := ByID(1)
	assert.Zero(t, tgt.BreakevenRadius(1.0))
	assert.Zero(t, tgt.BreakevenRadius(0.5))
}

func TestCatalogInvariants(t *testing.T) {
	for _, tgt := range All() {
		assert.Greater(t, tgt.DMaxFt, 0.0)
		assert.Greater(t, tgt.K, 1.0)
		assert.Greater(t, tgt.RTP, 0.0)
		assert.Less(t, tgt.RTP, 1.0)
	}
	assert.Len(t, All(), 8)
}

func TestByCategoryReturnsCatalogOrder(t *testing.T) {
	wedges := ByCategory(Short)
	require.Len(t, wedges, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{wedges[0].ID, wedges[1].ID, wedges[2].ID})
}

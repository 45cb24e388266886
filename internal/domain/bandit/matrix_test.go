package bandit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentityInverse(t *testing.T) {
	m := newIdentity(4)

	inv, err := m.inverse()
	require.NoError(t, err)
	assert.Equal(t, m.a, inv.a)
}

func TestKnownInverse(t *testing.T) {
	m, err := newMatrixFromRows([][]float64{
		{4, 7},
		{2, 6},
	})
	require.NoError(t, err)

	inv, err := m.inverse()
	require.NoError(t, err)

	// Known closed form: 1/10 * [[6,-7],[-2,4]].
	assert.InDelta(t, 0.6, inv.at(0, 0), 1e-12)
	assert.InDelta(t, -0.7, inv.at(0, 1), 1e-12)
	assert.InDelta(t, -0.2, inv.at(1, 0), 1e-12)
	assert.InDelta(t, 0.4, inv.at(1, 1), 1e-12)
}

func TestInverseAfterRankOneUpdates(t *testing.T) {
	m := newIdentity(Dim)
	xs := [][]float64{
		{1, 0.4, 1, 1, 0, 0, 0, 0.3, 0.2, 0.5, 0.1},
		{1, 0.9, 0, 0, 1, 0, 0, 0.7, 0.4, 0.1, 0.6},
		{1, 0.1, 1, 0, 0, 0, 1, 0.2, 0.9, 0.3, 0.2},
	}
	for _, x := range xs {
		m.addOuter(x)
	}

	inv, err := m.inverse()
	require.NoError(t, err)

	// m * inv must reproduce the identity.
	for i := 0; i < Dim; i++ {
		for j := 0; j < Dim; j++ {
			var sum float64
			for k := 0; k < Dim; k++ {
				sum += m.at(i, k) * inv.at(k, j)
			}
			want := 0.0
			if i == j {
				want = 1.0
			}
			assert.InDelta(t, want, sum, 1e-9)
		}
	}
}

func TestSingularMatrixRejected(t *testing.T) {
	m, err := newMatrixFromRows([][]float64{
		{1, 2},
		{2, 4},
	})
	require.NoError(t, err)

	_, err = m.inverse()
	assert.Error(t, err)
}

func TestRaggedRowsRejected(t *testing.T) {
	_, err := newMatrixFromRows([][]float64{
		{1, 2},
		{3},
	})
	assert.Error(t, err)
}

func TestMulVec(t *testing.T) {
	m, err := newMatrixFromRows([][]float64{
		{1, 2},
		{3, 4},
	})
	require.NoError(t, err)

	got := m.mulVec([]float64{5, 6})
	assert.Equal(t, []float64{17, 39}, got)
}

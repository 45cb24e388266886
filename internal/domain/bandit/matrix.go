package bandit

import "fmt"

// matrix is a small square matrix in row-major order. The arm design
// matrices are 11×11, so plain Gauss-Jordan elimination is more than fast
// enough and keeps the package dependency-free.
type matrix struct {
	n int
	a []float64
}

func newIdentity(n int) *matrix {
	m := &matrix{n: n, a: make([]float64, n*n)}
	for i := 0; i < n; i++ {
		m.a[i*n+i] = 1
	}
	return m
}

func newMatrixFromRows(rows [][]float64) (*matrix, error) {
	n := len(rows)
	m := &matrix{n: n, a: make([]float64, n*n)}
	for i, row := range rows {
		if len(row) != n {
			return nil, fmt.Errorf("matrix row %d has %d columns, want %d", i, len(row), n)
		}
		copy(m.a[i*n:(i+1)*n], row)
	}
	return m, nil
}

func (m *matrix) at(i, j int) float64 {
	return m.a[i*m.n+j]
}

func (m *matrix) clone() *matrix {
	out := &matrix{n: m.n, a: make([]float64, len(m.a))}
	copy(out.a, m.a)
	return out
}

func (m *matrix) rows() [][]float64 {
	out := make([][]float64, m.n)
	for i := 0; i < m.n; i++ {
		row := make([]float64, m.n)
		copy(row, m.a[i*m.n:(i+1)*m.n])
		out[i] = row
	}
	return out
}

// addOuter performs the rank-1 update m += x·xᵗ in place.
func (m *matrix) addOuter(x []float64) {
	for i := 0; i < m.n; i++ {
		for j := 0; j < m.n; j++ {
			m.a[i*m.n+j] += x[i] * x[j]
		}
	}
}

// mulVec returns m·v.
func (m *matrix) mulVec(v []float64) []float64 {
	out := make([]float64, m.n)
	for i := 0; i < m.n; i++ {
		var sum float64
		for j := 0; j < m.n; j++ {
			sum += m.a[i*m.n+j] * v[j]
		}
		out[i] = sum
	}
	return out
}

// inverse returns m⁻¹ via Gauss-Jordan elimination with partial pivoting.
// The arm matrices are positive definite by construction (identity plus
// positive semi-definite rank-1 terms), so a zero pivot indicates state
// corruption rather than an expected condition.
func (m *matrix) inverse() (*matrix, error) {
	n := m.n
	aug := m.clone()
	inv := newIdentity(n)

	for col := 0; col < n; col++ {
		pivot := col
		for r := col + 1; r < n; r++ {
			if abs(aug.a[r*n+col]) > abs(aug.a[pivot*n+col]) {
				pivot = r
			}
		}
		if abs(aug.a[pivot*n+col]) == 0 {
			return nil, fmt.Errorf("singular matrix at column %d", col)
		}
		if pivot != col {
			swapRows(aug.a, n, pivot, col)
			swapRows(inv.a, n, pivot, col)
		}

		p := aug.a[col*n+col]
		for j := 0; j < n; j++ {
			aug.a[col*n+j] /= p
			inv.a[col*n+j] /= p
		}

		for r := 0; r < n; r++ {
			if r == col {
				continue
			}
			f := aug.a[r*n+col]
			if f == 0 {
				continue
			}
			for j := 0; j < n; j++ {
				aug.a[r*n+j] -= f * aug.a[col*n+j]
				inv.a[r*n+j] -= f * inv.a[col*n+j]
			}
		}
	}
	return inv, nil
}

func dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

func swapRows(a []float64, n, r1, r2 int) {
	for j := 0; j < n; j++ {
		a[r1*n+j], a[r2*n+j] = a[r2*n+j], a[r1*n+j]
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

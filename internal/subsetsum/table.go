package subsetsum

// Table is a fully populated reachability table. Reachable(i, j) is true
// when some subset of the first i magnitudes sums exactly to j.
// A Table is immutable once returned.
type Table struct {
	cells []bool
	rows  int
	cols  int
}

// Rows returns n+1.
func (t *Table) Rows() int { return t.rows }

// Cols returns target+1.
func (t *Table) Cols() int { return t.cols }

// Reachable returns table[i][j]; out-of-range coordinates are unreachable.
func (t *Table) Reachable(i, j int) bool {
	if i < 0 || i >= t.rows || j < 0 || j >= t.cols {
		return false
	}
	return t.cells[i*t.cols+j]
}

// Verdict returns table[n][target].
func (t *Table) Verdict() bool {
	return t.cells[len(t.cells)-1]
}

// ReachableSums returns every sum in [0, target] reachable using all n magnitudes.
func (t *Table) ReachableSums() []int {
	last := (t.rows - 1) * t.cols
	var sums []int
	for j := 0; j < t.cols; j++ {
		if t.cells[last+j] {
			sums = append(sums, j)
		}
	}
	return sums
}

// Package subsetsum decides whether a subset of positive magnitudes sums
// exactly to a target, using a bottom-up reachability table.
package subsetsum

import (
	"math"

	"github.com/cockroachdb/errors"
)

// DefaultMaxCells bounds the reachability table at roughly 100MB of bools.
const DefaultMaxCells = 100_000_000

// Limits bounds the work a single invocation may allocate.
type Limits struct {
	// MaxCells is the largest (n+1)*(target+1) table allowed.
	// Zero or negative means DefaultMaxCells.
	MaxCells int
}

// DefaultLimits is used by the package-level Solve and BuildTable.
var DefaultLimits = Limits{MaxCells: DefaultMaxCells}

// Solver is a stateless subset-sum decider. A Solver holds no tables
// between calls and is safe for concurrent use.
type Solver struct {
	maxCells int
}

// New returns a Solver bounded by limits.
func New(limits Limits) *Solver {
	maxCells := limits.MaxCells
	if maxCells <= 0 {
		maxCells = DefaultMaxCells
	}
	return &Solver{maxCells: maxCells}
}

var defaultSolver = New(DefaultLimits)

// Solve reports whether some subset of magnitudes sums exactly to target
// using DefaultLimits.
func Solve(magnitudes []int, target int) (bool, error) {
	return defaultSolver.Solve(magnitudes, target)
}

// BuildTable returns the fully populated reachability table using DefaultLimits.
func BuildTable(magnitudes []int, target int) (*Table, error) {
	return defaultSolver.BuildTable(magnitudes, target)
}

// MaxCells returns the cell limit enforced by s.
func (s *Solver) MaxCells() int {
	return s.maxCells
}

// Solve reports whether some subset of magnitudes (each index used at most
// once) sums exactly to target. The empty subset makes target 0 always
// reachable. Input is validated before any allocation.
func (s *Solver) Solve(magnitudes []int, target int) (bool, error) {
	if err := s.Check(magnitudes, target); err != nil {
		return false, err
	}
	cells, last := tabulate(magnitudes, target, true)
	return cells[last*(target+1)+target], nil
}

// BuildTable validates the input and fills every row of the reachability
// table, without the early exit Solve takes.
func (s *Solver) BuildTable(magnitudes []int, target int) (*Table, error) {
	if err := s.Check(magnitudes, target); err != nil {
		return nil, err
	}
	cells, _ := tabulate(magnitudes, target, false)
	return &Table{
		cells: cells,
		rows:  len(magnitudes) + 1,
		cols:  target + 1,
	}, nil
}

// Check validates magnitudes and target and verifies the table fits the
// cell limit. It allocates nothing.
func (s *Solver) Check(magnitudes []int, target int) error {
	if err := Validate(magnitudes, target); err != nil {
		return err
	}
	cells, ok := Cells(len(magnitudes), target)
	if !ok {
		return errors.Wrapf(ErrResourceExhausted, "n=%d target=%d overflows", len(magnitudes), target)
	}
	if cells > s.maxCells {
		return errors.Wrapf(ErrResourceExhausted, "%d cells requested, limit %d", cells, s.maxCells)
	}
	return nil
}

// Validate checks the caller contract: every magnitude positive, target non-negative.
func Validate(magnitudes []int, target int) error {
	if target < 0 {
		return errors.Wrapf(ErrInvalidTarget, "target = %d", target)
	}
	for i, v := range magnitudes {
		if v <= 0 {
			return errors.Wrapf(ErrInvalidMagnitude, "magnitudes[%d] = %d", i, v)
		}
	}
	return nil
}

// Cells returns (n+1)*(target+1), the size of the reachability table.
// ok is false when the product does not fit in an int.
func Cells(n, target int) (cells int, ok bool) {
	if n < 0 || target < 0 || n == math.MaxInt || target == math.MaxInt {
		return 0, false
	}
	rows, cols := n+1, target+1
	if cols > math.MaxInt/rows {
		return 0, false
	}
	return rows * cols, true
}

// tabulate fills the flat (n+1)*(target+1) table indexed i*(target+1)+j and
// returns it together with the index of the last row filled. With stopEarly
// it returns as soon as a row reaches target.
func tabulate(magnitudes []int, target int, stopEarly bool) ([]bool, int) {
	n := len(magnitudes)
	cols := target + 1
	cells := make([]bool, (n+1)*cols)
	for i := 0; i <= n; i++ {
		cells[i*cols] = true
	}
	if stopEarly && target == 0 {
		return cells, 0
	}

	for i := 1; i <= n; i++ {
		v := magnitudes[i-1]
		prev := cells[(i-1)*cols : i*cols]
		row := cells[i*cols : (i+1)*cols]
		for j := 1; j <= target; j++ {
			if v > j {
				row[j] = prev[j]
				continue
			}
			row[j] = prev[j] || prev[j-v]
		}
		if stopEarly && row[target] {
			return cells, i
		}
	}
	return cells, n
}

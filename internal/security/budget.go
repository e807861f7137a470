package security

import (
	"crypto/sha256"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/sumcheck/sumcheck/internal/subsetsum"
)

const bytesPerCell = 1 // one bool per reachability table cell

// CellBudget enforces how much reachability table a single request may
// allocate, so an oversized target is rejected before the solver runs.
type CellBudget struct {
	maxCells      int
	maxMagnitudes int
}

func NewCellBudget(maxCells, maxMagnitudes int) *CellBudget {
	return &CellBudget{maxCells: maxCells, maxMagnitudes: maxMagnitudes}
}

// MaxCells returns the configured cell limit.
func (b *CellBudget) MaxCells() int {
	return b.maxCells
}

// CheckLimits returns false and a reason when n magnitudes with the given
// target would exceed the budget.
func (b *CellBudget) CheckLimits(n, target int, apiKey string) (bool, string) {
	if b.maxMagnitudes > 0 && n > b.maxMagnitudes {
		b.logRejection(n, target, apiKey, "too many magnitudes")
		return false, fmt.Sprintf("too many magnitudes: %d (max %d)", n, b.maxMagnitudes)
	}
	cells, ok := subsetsum.Cells(n, target)
	if !ok {
		b.logRejection(n, target, apiKey, "cell count overflow")
		return false, fmt.Sprintf("reachability table too large: n=%d target=%d", n, target)
	}
	if cells > b.maxCells {
		b.logRejection(n, target, apiKey, "cell limit exceeded")
		return false, fmt.Sprintf(
			"reachability table too large: %d cells (%.1fMB), limit %d cells (%.1fMB)",
			cells, megabytes(cells), b.maxCells, megabytes(b.maxCells),
		)
	}
	return true, ""
}

func (b *CellBudget) logRejection(n, target int, apiKey, reason string) {
	log.Warn().
		Str("event", "solve_budget").
		Str("api_key_hash", HashKey(apiKey)).
		Int("n", n).
		Int("target", target).
		Int("max_cells", b.maxCells).
		Msg(reason)
}

func megabytes(cells int) float64 {
	return float64(cells*bytesPerCell) / 1_000_000.0
}

// HashKey returns a short SHA-256 prefix suitable for logs and records.
func HashKey(s string) string {
	return hashStr(s)[:16]
}

func hashStr(s string) string {
	h := sha256.Sum256([]byte(s))
	return fmt.Sprintf("%x", h)
}

package service

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"github.com/sumcheck/sumcheck/internal/security"
	"github.com/sumcheck/sumcheck/internal/store"
	"github.com/sumcheck/sumcheck/internal/subsetsum"
)

// Solve sources recorded with each outcome
const (
	SourceAPI    = "api"
	SourceAgent  = "agent"
	SourceParser = "parser"
)

// SolveInput is one subset-sum question
type SolveInput struct {
	Magnitudes []int
	Target     int
	Source     string
	APIKey     string
}

// SolveOutcome is the verdict plus bookkeeping about how it was produced
type SolveOutcome struct {
	ID       string
	Result   bool
	N        int
	Target   int
	Cells    int
	Duration time.Duration
	// Shared is true when an identical concurrent request computed the verdict.
	Shared bool
}

type flightResult struct {
	result   bool
	duration time.Duration
}

// SolverService wraps the subset-sum solver with the request budget,
// deduplication of identical in-flight requests, audit logging and persistence.
type SolverService struct {
	solver *subsetsum.Solver
	budget *security.CellBudget
	store  store.SolveStore
	audit  *security.AuditLogger
	sf     singleflight.Group // identical concurrent questions share one table fill
}

func NewSolverService(budget *security.CellBudget, st store.SolveStore, audit *security.AuditLogger) *SolverService {
	return &SolverService{
		solver: subsetsum.New(subsetsum.Limits{MaxCells: budget.MaxCells()}),
		budget: budget,
		store:  st,
		audit:  audit,
	}
}

// Solve validates the input, enforces the cell budget and runs the solver.
// Input errors wrap subsetsum.ErrInvalidMagnitude / ErrInvalidTarget; budget
// rejections wrap subsetsum.ErrResourceExhausted.
func (s *SolverService) Solve(ctx context.Context, in SolveInput) (*SolveOutcome, error) {
	if in.Source == "" {
		in.Source = SourceAPI
	}
	event := security.SolveEvent{
		APIKey: in.APIKey,
		Source: in.Source,
		N:      len(in.Magnitudes),
		Target: in.Target,
	}

	if err := subsetsum.Validate(in.Magnitudes, in.Target); err != nil {
		event.Err = err.Error()
		s.audit.LogSolve(event)
		return nil, err
	}
	if ok, msg := s.budget.CheckLimits(len(in.Magnitudes), in.Target, in.APIKey); !ok {
		event.Err = msg
		s.audit.LogSolve(event)
		return nil, fmt.Errorf("%w: %s", subsetsum.ErrResourceExhausted, msg)
	}
	cells, _ := subsetsum.Cells(len(in.Magnitudes), in.Target)
	event.Cells = cells

	magnitudes := append([]int(nil), in.Magnitudes...)
	ch := s.sf.DoChan(flightKey(magnitudes, in.Target), func() (interface{}, error) {
		start := time.Now()
		result, err := s.solver.Solve(magnitudes, in.Target)
		return flightResult{result: result, duration: time.Since(start)}, err
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		event.Err = ctx.Err().Error()
		s.audit.LogSolve(event)
		return nil, fmt.Errorf("solve: %w", ctx.Err())
	case res = <-ch:
	}
	if res.Err != nil {
		event.Err = res.Err.Error()
		s.audit.LogSolve(event)
		return nil, res.Err
	}
	fr := res.Val.(flightResult)

	out := &SolveOutcome{
		ID:       uuid.NewString(),
		Result:   fr.result,
		N:        len(magnitudes),
		Target:   in.Target,
		Cells:    cells,
		Duration: fr.duration,
		Shared:   res.Shared,
	}

	rec := &store.SolveRecord{
		ID:         out.ID,
		Magnitudes: magnitudes,
		Target:     in.Target,
		Result:     out.Result,
		Cells:      cells,
		Duration:   out.Duration,
		Source:     in.Source,
		APIKeyHash: security.HashKey(in.APIKey),
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.store.Save(ctx, rec); err != nil {
		// the verdict is still valid; only the history entry is lost
		log.Warn().Err(err).Str("solve_id", out.ID).Msg("failed to persist solve record")
	}

	event.ID = out.ID
	event.Result = out.Result
	event.Shared = out.Shared
	event.DurationMs = float64(out.Duration.Microseconds()) / 1000.0
	s.audit.LogSolve(event)

	return out, nil
}

// Record returns a persisted solve by id
func (s *SolverService) Record(ctx context.Context, id string) (*store.SolveRecord, error) {
	return s.store.Get(ctx, id)
}

// Recent returns up to limit persisted solves, newest first
func (s *SolverService) Recent(ctx context.Context, limit int) ([]*store.SolveRecord, error) {
	return s.store.Recent(ctx, limit)
}

// Ping reports whether the record store is reachable
func (s *SolverService) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

func flightKey(magnitudes []int, target int) string {
	h := sha256.New()
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(target))
	h.Write(buf[:])
	for _, v := range magnitudes {
		binary.LittleEndian.PutUint64(buf[:], uint64(v))
		h.Write(buf[:])
	}
	return hex.EncodeToString(h.Sum(nil))
}

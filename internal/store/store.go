// Package store persists the outcome of solver invocations so callers can
// look up a verdict after the fact. Only the inputs and the verdict are
// stored; reachability tables never outlive their invocation.
package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when no record exists for an id.
var ErrNotFound = errors.New("solve record not found")

// SolveRecord describes one completed solve.
type SolveRecord struct {
	ID         string
	Magnitudes []int
	Target     int
	Result     bool
	Cells      int
	Duration   time.Duration
	// Source is the entry point that requested the solve: "api", "agent" or "parser".
	Source     string
	APIKeyHash string
	CreatedAt  time.Time
}

// SolveStore persists SolveRecords.
type SolveStore interface {
	Save(ctx context.Context, rec *SolveRecord) error
	Get(ctx context.Context, id string) (*SolveRecord, error)
	// Recent returns up to limit records, newest first.
	Recent(ctx context.Context, limit int) ([]*SolveRecord, error)
	Ping(ctx context.Context) error
	Close() error
}

func cloneRecord(rec *SolveRecord) *SolveRecord {
	c := *rec
	c.Magnitudes = append([]int(nil), rec.Magnitudes...)
	return &c
}

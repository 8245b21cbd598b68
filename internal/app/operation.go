package app

import (
	"time"

	"frame-go/internal/frame"
)

// Operation tracks a single CLI invocation. Its ID tags every log line
// written while the operation runs.
type Operation struct {
	ID        string
	Name      string
	StartedAt time.Time
	Status    string // "success" or "error"
}

// NewOperation creates an operation with a fresh ID, started now.
func NewOperation(name string, ids frame.IDGenerator, clock frame.Clock) *Operation {
	return &Operation{
		ID:        ids.New(),
		Name:      name,
		StartedAt: clock.Now(),
		Status:    "success",
	}
}

// Fail marks the operation as failed.
func (op *Operation) Fail() {
	op.Status = "error"
}

// Failed returns true if Fail has been called.
func (op *Operation) Failed() bool {
	return op.Status == "error"
}

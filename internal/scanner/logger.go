package scanner

import (
	"fmt"

	"github.com/google/uuid"
)

// Logger is the diagnostic sink the scanner reports to.
// utils.DiagnosticSystem satisfies it.
type Logger interface {
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}

// Round identifies one compilation round
type Round struct {
	ID     uuid.UUID
	Number int
}

// NewRound creates round number n with a fresh identifier
func NewRound(n int) Round {
	return Round{ID: uuid.New(), Number: n}
}

// String returns "round N (id)"
func (r Round) String() string {
	return fmt.Sprintf("round %d (%s)", r.Number, r.ID)
}

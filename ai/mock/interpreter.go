package mock

import (
	"context"
	"sync/atomic"

	"github.com/poiesic/matchwell/core"
)

// MockQueryInterpreter is a test double for ai.QueryInterpreter.
type MockQueryInterpreter struct {
	// InterpretFunc is called by Interpret if set.
	// If nil, a copy of Filters (or empty filters) is returned.
	InterpretFunc func(ctx context.Context, text string) (*core.SearchFilters, error)

	// Filters is the canned result used when InterpretFunc is nil.
	Filters *core.SearchFilters

	callCount atomic.Int64
}

// NewMockQueryInterpreter creates a mock interpreter returning empty filters.
func NewMockQueryInterpreter() *MockQueryInterpreter {
	return &MockQueryInterpreter{}
}

// Interpret returns the injected or canned filters.
func (m *MockQueryInterpreter) Interpret(ctx context.Context, text string) (*core.SearchFilters, error) {
	m.callCount.Add(1)

	if m.InterpretFunc != nil {
		return m.InterpretFunc(ctx, text)
	}
	if m.Filters == nil {
		return &core.SearchFilters{}, nil
	}
	f := *m.Filters
	return &f, nil
}

// CallCount returns the number of times Interpret was called.
func (m *MockQueryInterpreter) CallCount() int {
	return int(m.callCount.Load())
}

// Reset clears the call count and injected behavior.
func (m *MockQueryInterpreter) Reset() {
	m.callCount.Store(0)
	m.InterpretFunc = nil
	m.Filters = nil
}

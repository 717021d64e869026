package observability

import (
	"errors"
	"maps"
	"sync"

	"github.com/spec-kit/incident-tickets/pkg/util/errorutil"
)

// Outcome labels for operation counters.
const (
	OutcomeOK     = "ok"
	OutcomeFailed = "failed"
)

// Metrics provides basic in-memory counters.
type Metrics struct {
	mu             sync.Mutex
	operationCount map[string]int64
	fieldFailures  map[string]int64
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		operationCount: make(map[string]int64),
		fieldFailures:  make(map[string]int64),
	}
}

// RecordOperation counts an operation outcome. Field validation failures are
// also counted per offending field.
func (m *Metrics) RecordOperation(op string, err error) {
	if m == nil {
		return
	}
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeFailed
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.operationCount[operationKey(op, outcome)]++

	var fieldErr *errorutil.FieldError
	if errors.As(err, &fieldErr) {
		m.fieldFailures[fieldErr.Field]++
	}
}

// Snapshot is a point-in-time copy of the counters.
type Snapshot struct {
	Operations    map[string]int64 `json:"operations"`
	FieldFailures map[string]int64 `json:"field_failures"`
}

// Snapshot copies the current counters.
func (m *Metrics) Snapshot() Snapshot {
	if m == nil {
		return Snapshot{Operations: map[string]int64{}, FieldFailures: map[string]int64{}}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return Snapshot{
		Operations:    maps.Clone(m.operationCount),
		FieldFailures: maps.Clone(m.fieldFailures),
	}
}

// Count returns the counter for op and outcome.
func (s Snapshot) Count(op, outcome string) int64 {
	return s.Operations[operationKey(op, outcome)]
}

func operationKey(op, outcome string) string {
	return op + "|" + outcome
}

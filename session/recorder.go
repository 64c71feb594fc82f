package session

import (
	"context"
	"sync"

	"github.com/trackql/trackql"
)

// Recorder is an Executor that records the wire form of every statement it
// receives without touching a live service. It exists for tests and dry
// runs: canned entities and counts are returned for every statement.
type Recorder struct {
	// Items are returned for select statements.
	Items []Entity

	// Affected is the count returned for update and delete statements.
	Affected int

	mu       sync.Mutex
	recorded []string
}

// Execute records the statement's wire form and returns the canned result.
func (r *Recorder) Execute(_ context.Context, stmt trackql.Statement) (*Result, error) {
	kind := stmt.EntityKind()
	switch st := stmt.(type) {
	case *trackql.CreateStatement:
		payload, err := st.Payload()
		if err != nil {
			return nil, err
		}
		r.record(st.String())
		return NewResult(kind, []Entity{Entity(payload)}), nil
	case *trackql.UpdateStatement:
		q, err := st.Query()
		if err != nil {
			return nil, err
		}
		r.record(q)
		return NewCountResult(kind, r.Affected), nil
	case *trackql.DeleteStatement:
		q, err := st.Query()
		if err != nil {
			return nil, err
		}
		r.record(q)
		return NewCountResult(kind, r.Affected), nil
	default:
		q, err := trackql.Serialize(stmt)
		if err != nil {
			return nil, err
		}
		r.record(q)
		return NewResult(kind, r.Items), nil
	}
}

// Recorded returns the wire forms in execution order.
func (r *Recorder) Recorded() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.recorded))
	copy(out, r.recorded)
	return out
}

func (r *Recorder) record(q string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.recorded = append(r.recorded, q)
}

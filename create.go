package trackql

import (
	"golang.org/x/exp/maps"
	"slices"
)

// CreateStatement is a builder for entity creation. Create statements
// carry a value mapping and serialize to a structured payload; filters are
// not part of the variant, so no Where method exists on it.
type CreateStatement struct {
	kind   string
	keys   []string // assignment order, first write wins for position
	values map[string]any
	opts   Options
	err    error
}

// Create returns a new create statement for the given entity kind.
func Create(kind string) *CreateStatement {
	s := &CreateStatement{}
	if kind == "" {
		s.err = NewConstructionError("Create", "entity kind required")
		return s
	}
	s.kind = kind
	return s
}

func (s *CreateStatement) clone() *CreateStatement {
	c := *s
	c.keys = slices.Clone(s.keys)
	c.values = maps.Clone(s.values)
	return &c
}

// EntityKind returns the entity kind the statement targets.
func (s *CreateStatement) EntityKind() string { return s.kind }

// Options returns the execution hints set on the statement.
func (s *CreateStatement) Options() Options { return s.opts }

// Err reports the first construction error recorded by a builder call.
func (s *CreateStatement) Err() error { return s.err }

// Values merges the given assignments into the value mapping. Repeated
// calls merge; the last write wins on key conflicts. Keys from a single
// call apply in sorted order so output is deterministic.
func (s *CreateStatement) Values(vals map[string]any) *CreateStatement {
	c := s.clone()
	keys := maps.Keys(vals)
	slices.Sort(keys)
	for _, k := range keys {
		c.set(k, vals[k])
	}
	return c
}

// Set merges a single assignment into the value mapping.
func (s *CreateStatement) Set(attribute string, v any) *CreateStatement {
	c := s.clone()
	c.set(attribute, v)
	return c
}

func (s *CreateStatement) set(attribute string, v any) {
	if attribute == "" {
		if s.err == nil {
			s.err = NewConstructionError("Set", "empty attribute path")
		}
		return
	}
	if s.values == nil {
		s.values = make(map[string]any)
	}
	if _, ok := s.values[attribute]; !ok {
		s.keys = append(s.keys, attribute)
	}
	s.values[attribute] = v
}

// WithSession pins the statement to a specific executor.
func (s *CreateStatement) WithSession(session any) *CreateStatement {
	c := s.clone()
	c.opts.Session = session
	return c
}

// Payload returns the structured value mapping handed to the executor.
func (s *CreateStatement) Payload() (map[string]any, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.values == nil {
		return map[string]any{}, nil
	}
	return maps.Clone(s.values), nil
}

// String renders a preview of the statement, e.g. `create Task(name="x")`.
func (s *CreateStatement) String() string {
	if s.err != nil {
		return ""
	}
	return "create " + s.kind + "(" + renderAssignments(s.keys, s.values) + ")"
}

package trackql

import (
	"golang.org/x/exp/maps"
	"slices"
)

// UpdateStatement is a builder for bulk updates. It carries a filter with
// the same accumulation semantics as a select statement plus a value
// mapping; projections, ordering, limit and offset do not apply.
type UpdateStatement struct {
	kind   string
	where  Comparison
	keys   []string
	values map[string]any
	opts   Options
	err    error
}

// Update returns a new update statement for the given entity kind.
func Update(kind string) *UpdateStatement {
	s := &UpdateStatement{}
	if kind == "" {
		s.err = NewConstructionError("Update", "entity kind required")
		return s
	}
	s.kind = kind
	return s
}

func (s *UpdateStatement) clone() *UpdateStatement {
	c := *s
	c.keys = slices.Clone(s.keys)
	c.values = maps.Clone(s.values)
	return &c
}

// EntityKind returns the entity kind the statement targets.
func (s *UpdateStatement) EntityKind() string { return s.kind }

// Options returns the execution hints set on the statement.
func (s *UpdateStatement) Options() Options { return s.opts }

// Err reports the first construction error recorded by a builder call.
func (s *UpdateStatement) Err() error { return s.err }

// Where merges the given predicates into the filter by and-combining them
// with whatever filter already exists.
func (s *UpdateStatement) Where(preds ...Comparison) *UpdateStatement {
	c := s.clone()
	if len(preds) == 0 {
		return c
	}
	c.where = mergeWhere(c.where, preds)
	if c.err == nil {
		c.err = c.where.Err()
	}
	return c
}

// Values merges the given assignments into the value mapping. Repeated
// calls merge; the last write wins on key conflicts.
func (s *UpdateStatement) Values(vals map[string]any) *UpdateStatement {
	c := s.clone()
	keys := maps.Keys(vals)
	slices.Sort(keys)
	for _, k := range keys {
		c.set(k, vals[k])
	}
	return c
}

// Set merges a single assignment into the value mapping.
func (s *UpdateStatement) Set(attribute string, v any) *UpdateStatement {
	c := s.clone()
	c.set(attribute, v)
	return c
}

func (s *UpdateStatement) set(attribute string, v any) {
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
func (s *UpdateStatement) WithSession(session any) *UpdateStatement {
	c := s.clone()
	c.opts.Session = session
	return c
}

// Payload returns the structured value mapping applied to every matched
// entity.
func (s *UpdateStatement) Payload() (map[string]any, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.values == nil {
		return map[string]any{}, nil
	}
	return maps.Clone(s.values), nil
}

// Query renders the selection query string identifying the entities to
// update, e.g. `Task where id is 123`. The value mapping travels
// separately as the payload.
func (s *UpdateStatement) Query() (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return renderTail([]string{s.kind}, s.kind, s.where, nil, nil, nil)
}

// String renders a preview of the statement, e.g.
// `update Task where id is 123 set (name="new")`.
func (s *UpdateStatement) String() string {
	q, err := s.Query()
	if err != nil {
		return ""
	}
	return "update " + q + " set (" + renderAssignments(s.keys, s.values) + ")"
}

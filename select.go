package trackql

import (
	"slices"
	"strings"
)

// SelectStatement is a builder for select queries. The zero value is not
// usable; construct one with Select.
type SelectStatement struct {
	kind     string
	where    Comparison
	populate []string
	order    []orderTerm
	limit    *int
	offset   *int
	opts     Options
	err      error
}

type orderTerm struct {
	expr string
	desc bool
}

// Select returns a new select statement for the given entity kind.
// A dotted path selects projections in one call: Select("Task.name") is
// Select("Task").Populate("name").
func Select(kind string) *SelectStatement {
	s := &SelectStatement{}
	if kind == "" {
		s.err = NewConstructionError("Select", "entity kind required")
		return s
	}
	if base, rest, ok := strings.Cut(kind, "."); ok {
		s.kind = base
		return s.Populate(rest)
	}
	s.kind = kind
	return s
}

func (s *SelectStatement) clone() *SelectStatement {
	c := *s
	c.populate = slices.Clone(s.populate)
	c.order = slices.Clone(s.order)
	return &c
}

func (s *SelectStatement) fail(err error) *SelectStatement {
	c := s.clone()
	if c.err == nil {
		c.err = err
	}
	return c
}

// EntityKind returns the entity kind the statement targets.
func (s *SelectStatement) EntityKind() string { return s.kind }

// Options returns the execution hints set on the statement.
func (s *SelectStatement) Options() Options { return s.opts }

// Err reports the first construction error recorded by a builder call.
func (s *SelectStatement) Err() error { return s.err }

// Where merges the given predicates into the filter by and-combining them
// with whatever filter already exists.
func (s *SelectStatement) Where(preds ...Comparison) *SelectStatement {
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

// Populate appends attributes to the projection list, de-duplicating by
// path while preserving first-seen order. Empty paths are ignored.
func (s *SelectStatement) Populate(attrs ...string) *SelectStatement {
	c := s.clone()
	for _, a := range attrs {
		if a == "" {
			continue
		}
		if !slices.Contains(c.populate, a) {
			c.populate = append(c.populate, a)
		}
	}
	return c
}

// OrderBy replaces the ordering list. Entries are attribute paths,
// optionally produced by Attr.Asc or Attr.Desc; raw strings with other
// direction text pass through unparsed.
func (s *SelectStatement) OrderBy(entries ...string) *SelectStatement {
	c := s.clone()
	c.order = make([]orderTerm, 0, len(entries))
	for _, e := range entries {
		c.order = append(c.order, parseOrder(e))
	}
	return c
}

// Reverse flips the direction of every ordering entry currently set.
// With no ordering it is a no-op.
func (s *SelectStatement) Reverse() *SelectStatement {
	c := s.clone()
	for i := range c.order {
		c.order[i].desc = !c.order[i].desc
	}
	return c
}

// Limit caps the number of results. Negative values record a
// ConstructionError.
func (s *SelectStatement) Limit(n int) *SelectStatement {
	if n < 0 {
		return s.fail(NewConstructionError("Limit", "negative limit %d", n))
	}
	c := s.clone()
	c.limit = &n
	return c
}

// Offset skips the first n results. Negative values record a
// ConstructionError.
func (s *SelectStatement) Offset(n int) *SelectStatement {
	if n < 0 {
		return s.fail(NewConstructionError("Offset", "negative offset %d", n))
	}
	c := s.clone()
	c.offset = &n
	return c
}

// PageSize sets the batch fetch size hint handed to the executor.
func (s *SelectStatement) PageSize(n int) *SelectStatement {
	if n <= 0 {
		return s.fail(NewConstructionError("PageSize", "page size must be positive, got %d", n))
	}
	c := s.clone()
	c.opts.PageSize = n
	return c
}

// WithSession pins the statement to a specific executor, overriding the
// one it would otherwise run against.
func (s *SelectStatement) WithSession(session any) *SelectStatement {
	c := s.clone()
	c.opts.Session = session
	return c
}

// Subquery marks the statement for use as an In operand by projecting the
// id attribute. It records a ConstructionError if projections are already
// set; use SubqueryOn to override them explicitly.
func (s *SelectStatement) Subquery() *SelectStatement {
	if len(s.populate) > 0 {
		return s.fail(NewConstructionError("Subquery", "projections already set; use SubqueryOn to override"))
	}
	c := s.clone()
	c.populate = []string{"id"}
	return c
}

// SubqueryOn marks the statement for use as an In operand, replacing any
// existing projections with the single given attribute.
func (s *SelectStatement) SubqueryOn(attribute string) *SelectStatement {
	if attribute == "" {
		return s.fail(NewConstructionError("SubqueryOn", "attribute required"))
	}
	c := s.clone()
	c.populate = []string{attribute}
	return c
}

// withProjection installs a projection only if none exist. Used when an
// unprojected statement is embedded as a subquery.
func (s *SelectStatement) withProjection(attribute string) *SelectStatement {
	if len(s.populate) > 0 {
		return s
	}
	c := s.clone()
	c.populate = []string{attribute}
	return c
}

// Query renders the wire-level query string. Rendering is pure; an
// unchanged statement always serializes to identical output.
func (s *SelectStatement) Query() (string, error) {
	if s.err != nil {
		return "", s.err
	}
	parts := make([]string, 0, 8)
	if len(s.populate) > 0 {
		parts = append(parts, "select", strings.Join(s.populate, ", "), "from")
	}
	parts = append(parts, s.kind)
	return renderTail(parts, s.kind, s.where, s.order, s.offset, s.limit)
}

// String renders the query string, or an empty string if the statement
// carries a construction error.
func (s *SelectStatement) String() string {
	q, _ := s.Query()
	return q
}

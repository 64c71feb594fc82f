package trackql

// DeleteStatement is a builder for bulk deletes. It carries only a filter
// and execution options.
type DeleteStatement struct {
	kind  string
	where Comparison
	opts  Options
	err   error
}

// Delete returns a new delete statement for the given entity kind.
func Delete(kind string) *DeleteStatement {
	s := &DeleteStatement{}
	if kind == "" {
		s.err = NewConstructionError("Delete", "entity kind required")
		return s
	}
	s.kind = kind
	return s
}

func (s *DeleteStatement) clone() *DeleteStatement {
	c := *s
	return &c
}

// EntityKind returns the entity kind the statement targets.
func (s *DeleteStatement) EntityKind() string { return s.kind }

// Options returns the execution hints set on the statement.
func (s *DeleteStatement) Options() Options { return s.opts }

// Err reports the first construction error recorded by a builder call.
func (s *DeleteStatement) Err() error { return s.err }

// Where merges the given predicates into the filter by and-combining them
// with whatever filter already exists.
func (s *DeleteStatement) Where(preds ...Comparison) *DeleteStatement {
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

// CleanupAttachments requests pre-deletion cleanup of dependent
// attachments. Enabling it disables transactional rollback for the
// operation, which is why the flag is carried visibly on the statement
// instead of being performed silently.
func (s *DeleteStatement) CleanupAttachments(enabled bool) *DeleteStatement {
	c := s.clone()
	c.opts.CleanupAttachments = enabled
	return c
}

// WithSession pins the statement to a specific executor.
func (s *DeleteStatement) WithSession(session any) *DeleteStatement {
	c := s.clone()
	c.opts.Session = session
	return c
}

// Query renders the selection query string identifying the entities to
// delete, e.g. `Task where name is "Old Task Name"`.
func (s *DeleteStatement) Query() (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return renderTail([]string{s.kind}, s.kind, s.where, nil, nil, nil)
}

// String renders a preview of the statement, e.g. `delete Task where ...`.
func (s *DeleteStatement) String() string {
	q, err := s.Query()
	if err != nil {
		return ""
	}
	return "delete " + q
}

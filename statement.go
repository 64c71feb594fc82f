package trackql

// Options are execution hints carried on a statement and handed to the
// executor unmodified. The core never interprets them.
type Options struct {
	// PageSize is the batch fetch size for select statements. Zero means
	// the executor's default.
	PageSize int

	// Session overrides the executor a statement is run against. It is an
	// opaque handle; the session package asserts it to its Executor type.
	Session any

	// CleanupAttachments requests pre-deletion cleanup of dependent
	// attachments on delete statements. Enabling it disables transactional
	// rollback for the operation.
	CleanupAttachments bool
}

// Statement is an immutable builder value representing one select, create,
// update or delete operation. Builder calls derive new statements; a
// statement already handed out is never modified.
type Statement interface {
	// EntityKind returns the entity kind the statement targets.
	EntityKind() string

	// Options returns the execution hints set on the statement.
	Options() Options

	// Err reports the first construction error recorded by a builder
	// call, or nil.
	Err() error

	// String renders a human-readable preview of the statement.
	String() string
}

var (
	_ Statement = (*SelectStatement)(nil)
	_ Statement = (*CreateStatement)(nil)
	_ Statement = (*UpdateStatement)(nil)
	_ Statement = (*DeleteStatement)(nil)
)

// mergeWhere and-combines new predicates into an existing filter. Calling
// where twice accumulates instead of replacing.
func mergeWhere(existing Comparison, preds []Comparison) Comparison {
	all := make([]Comparison, 0, len(preds)+1)
	if existing != nil {
		all = append(all, existing)
	}
	all = append(all, preds...)
	return And(all...)
}

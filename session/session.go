// Package session defines the boundary between the query-building core
// and the external executor that runs statements against a remote
// entity-query service.
//
// The core hands over a fully built, immutable statement; the executor
// owns networking, batching and concurrency. Results come back through a
// Result handle with First/One/All access.
package session

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/trackql/trackql"
)

// Entity is one hydrated result row. Its attribute set is owned by the
// remote service; the core treats it as opaque.
type Entity map[string]any

// Executor is the collaborator that runs serialized statements. Execute is
// the sole entry point the core requires of it.
type Executor interface {
	Execute(ctx context.Context, stmt trackql.Statement) (*Result, error)
}

// Result is the handle returned by an executor. For select statements it
// carries the fetched entities; for update and delete it carries the
// affected-row count, which the core forwards unchanged.
type Result struct {
	kind  string
	items []Entity
	count int
}

// NewResult returns a result handle over the given entities, reported
// against the given entity kind.
func NewResult(kind string, items []Entity) *Result {
	return &Result{kind: kind, items: items, count: len(items)}
}

// NewCountResult returns a result handle carrying only an affected-row
// count, as produced by update and delete statements.
func NewCountResult(kind string, count int) *Result {
	return &Result{kind: kind, count: count}
}

// All returns every fetched entity.
func (r *Result) All() []Entity { return r.items }

// Len returns the number of fetched entities.
func (r *Result) Len() int { return len(r.items) }

// Count returns the affected-row count for update and delete statements,
// or the number of fetched entities otherwise.
func (r *Result) Count() int { return r.count }

// First returns the first fetched entity, or false if there are none.
func (r *Result) First() (Entity, bool) {
	if len(r.items) == 0 {
		return nil, false
	}
	return r.items[0], true
}

// One returns the single fetched entity. It fails with a NotFoundError if
// there are none and a MultipleResultsError if there is more than one.
func (r *Result) One() (Entity, error) {
	switch len(r.items) {
	case 0:
		return nil, trackql.NewNotFoundError(r.kind)
	case 1:
		return r.items[0], nil
	default:
		return nil, trackql.NewMultipleResultsError(r.kind, len(r.items))
	}
}

// Execute runs a statement against an executor. A per-statement session
// option overrides the given executor. Construction errors recorded on
// the statement surface here before anything reaches the wire.
func Execute(ctx context.Context, x Executor, stmt trackql.Statement) (*Result, error) {
	return execute(ctx, x, stmt, slog.Default())
}

// ExecuteLog is Execute with an explicit logger. Each executed statement
// is logged at debug level.
func ExecuteLog(ctx context.Context, x Executor, stmt trackql.Statement, log *slog.Logger) (*Result, error) {
	return execute(ctx, x, stmt, log)
}

func execute(ctx context.Context, x Executor, stmt trackql.Statement, log *slog.Logger) (*Result, error) {
	if stmt == nil {
		return nil, trackql.NewConstructionError("Execute", "nil statement")
	}
	if err := stmt.Err(); err != nil {
		return nil, err
	}
	if override, ok := stmt.Options().Session.(Executor); ok {
		x = override
	}
	if x == nil {
		return nil, trackql.NewConstructionError("Execute", "no executor bound to statement")
	}
	log.DebugContext(ctx, "executing statement",
		slog.String("kind", stmt.EntityKind()),
		slog.String("statement", stmt.String()),
	)
	return x.Execute(ctx, stmt)
}

// ExecuteAll runs independent statements concurrently against the same
// executor. Results are returned in statement order; the first error
// cancels the remaining work.
func ExecuteAll(ctx context.Context, x Executor, stmts ...trackql.Statement) ([]*Result, error) {
	results := make([]*Result, len(stmts))
	g, ctx := errgroup.WithContext(ctx)
	for i, stmt := range stmts {
		i, stmt := i, stmt
		g.Go(func() error {
			r, err := Execute(ctx, x, stmt)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

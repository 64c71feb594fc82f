// Package trackql provides a fluent builder that compiles chained method
// calls into the textual query language consumed by remote entity-query
// services.
//
// Instead of hand-writing query strings, callers compose immutable
// comparison trees from attribute references and fold them into statements:
//
//	stmt := trackql.Select("Project").Where(trackql.Fields{"status": "active"})
//	q, err := stmt.Query() // `Project where status is "active"`
//
// # Comparisons
//
// An Attr is a lazily-bound dotted attribute path. Applying a comparison
// method to it produces an immutable Comparison leaf:
//
//	trackql.Attr("version").Gt(5)                // version > 5
//	trackql.Attr("parent.name").Contains("abc")  // parent.name like "%abc%"
//	trackql.Attr("status.name").In("Done", "Omitted")
//
// Comparisons combine with And, Or and Not. Combinators never mutate their
// operands, so a base filter can be shared across many statements:
//
//	base := trackql.And(
//		trackql.Attr("project.id").Eq(projectID),
//		trackql.Not(trackql.Attr("status.name").Eq("Omitted")),
//	)
//	mine := trackql.Select("Task").Where(base, trackql.Fields{"assignee": "me"})
//
// The Fields map is shorthand for an implicit AND of equality leaves.
//
// # Statements
//
// Select, Create, Update and Delete are entry points for the four statement
// variants. Every builder call derives a new statement value; the receiver
// is never modified, making partially built statements safe to reuse as
// templates. Select statements additionally support projections, ordering,
// limit and offset:
//
//	stmt := trackql.Select("Task").
//		Populate("name", "parent.name").
//		OrderBy(trackql.Attr("name").Desc()).
//		Limit(10)
//
// # Serialization
//
// Query renders the wire-level query string for select, update and delete
// statements. Create and Update carry their value assignments as a
// structured payload instead. Serialization is pure: rendering the same
// statement twice yields byte-identical output.
//
// # Execution
//
// The core never talks to the network. A serialized statement is handed to
// an external executor through the session subpackage, which defines the
// collaborator boundary and the result-handle contract.
//
// Event-subscription predicates use a separate grammar and live in the
// event subpackage; the two namespaces cannot be mixed.
package trackql

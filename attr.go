package trackql

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Attr is a lazily-bound dotted attribute path such as "status.type.name".
// It is never validated against a schema; the remote service owns that.
// Attribute references only exist to construct comparisons.
type Attr string

// Sub extends the path with additional segments:
// Attr("parent").Sub("project", "name") is Attr("parent.project.name").
func (a Attr) Sub(segments ...string) Attr {
	if len(segments) == 0 {
		return a
	}
	return Attr(string(a) + "." + strings.Join(segments, "."))
}

// Cast limits a relation to a concrete entity kind:
// Attr("parent").Cast("Project") renders as parent[Project].
func (a Attr) Cast(kind string) Attr {
	return Attr(fmt.Sprintf("%s[%s]", a, kind))
}

// String returns the dotted path.
func (a Attr) String() string { return string(a) }

// Eq compares the attribute for equality with a literal value, a Ref or
// nil. Comparing one attribute against another is not part of the grammar
// and records a ConstructionError.
func (a Attr) Eq(v any) Comparison { return a.binary("Eq", OpEQ, v) }

// Ne compares the attribute for inequality.
func (a Attr) Ne(v any) Comparison { return a.binary("Ne", OpNEQ, v) }

// Gt compares with the > operator.
func (a Attr) Gt(v any) Comparison { return a.binary("Gt", OpGT, v) }

// Ge compares with the >= operator.
func (a Attr) Ge(v any) Comparison { return a.binary("Ge", OpGTE, v) }

// Lt compares with the < operator.
func (a Attr) Lt(v any) Comparison { return a.binary("Lt", OpLT, v) }

// Le compares with the <= operator.
func (a Attr) Le(v any) Comparison { return a.binary("Le", OpLTE, v) }

// Before compares a timestamp attribute against an earlier bound.
func (a Attr) Before(v any) Comparison { return a.binary("Before", OpBefore, v) }

// After compares a timestamp attribute against a later bound.
func (a Attr) After(v any) Comparison { return a.binary("After", OpAfter, v) }

// Like matches against a pattern. The caller supplies its own wildcards.
func (a Attr) Like(pattern string) Comparison { return a.binary("Like", OpLike, pattern) }

// NotLike is the negated form of Like.
func (a Attr) NotLike(pattern string) Comparison { return a.binary("NotLike", OpNotLike, pattern) }

// StartsWith matches values beginning with the given literal substring.
// Wildcard characters in the substring are escaped.
func (a Attr) StartsWith(s string) Comparison {
	return a.binary("StartsWith", OpLike, escapeWildcards(s)+"%")
}

// EndsWith matches values ending with the given literal substring.
func (a Attr) EndsWith(s string) Comparison {
	return a.binary("EndsWith", OpLike, "%"+escapeWildcards(s))
}

// Contains matches values containing the given literal substring.
func (a Attr) Contains(s string) Comparison {
	return a.binary("Contains", OpLike, "%"+escapeWildcards(s)+"%")
}

// In matches the attribute against a finite sequence of values, or against
// a select statement used as a subquery. An empty sequence is legal and
// serializes to a predicate that is always false. A subquery must be the
// sole argument; if it carries no projections, the comparison goes through
// the attribute's id relationship and the subquery selects ids.
func (a Attr) In(vals ...any) Comparison { return a.membership("In", OpIn, vals) }

// NotIn is the negated form of In. An empty sequence serializes to a
// predicate that is always true.
func (a Attr) NotIn(vals ...any) Comparison { return a.membership("NotIn", OpNotIn, vals) }

// Has matches scalar relationships whose target satisfies the nested
// predicates. Multiple predicates combine with and.
func (a Attr) Has(preds ...Comparison) Comparison { return a.related("Has", OpHas, preds) }

// Any matches collection relationships where at least one member satisfies
// the nested predicates. Multiple predicates combine with and.
func (a Attr) Any(preds ...Comparison) Comparison { return a.related("Any", OpAny, preds) }

// Asc returns an ordering entry sorting by this attribute ascending.
func (a Attr) Asc() string { return string(a) + " ascending" }

// Desc returns an ordering entry sorting by this attribute descending.
func (a Attr) Desc() string { return string(a) + " descending" }

func (a Attr) binary(call string, op Op, v any) Comparison {
	if a == "" {
		return &leaf{err: NewConstructionError(call, "empty attribute path")}
	}
	if err := validOperand(call, v); err != nil {
		return &leaf{err: err}
	}
	return &leaf{attr: a, op: op, operand: v}
}

func (a Attr) membership(call string, op Op, vals []any) Comparison {
	if a == "" {
		return &leaf{err: NewConstructionError(call, "empty attribute path")}
	}
	vals = expandSequence(vals)
	if len(vals) == 1 {
		if sub, ok := vals[0].(*SelectStatement); ok {
			if err := sub.Err(); err != nil {
				return &leaf{err: err}
			}
			return &leaf{attr: a, op: op, operand: sub}
		}
	}
	seq := make([]any, len(vals))
	for i, v := range vals {
		if _, ok := v.(*SelectStatement); ok {
			return &leaf{err: NewConstructionError(call, "a subquery must be the only operand")}
		}
		if err := validOperand(call, v); err != nil {
			return &leaf{err: err}
		}
		seq[i] = v
	}
	return &leaf{attr: a, op: op, operand: seq}
}

func (a Attr) related(call string, op Op, preds []Comparison) Comparison {
	if a == "" {
		return &leaf{err: NewConstructionError(call, "empty attribute path")}
	}
	if len(preds) == 0 {
		return &leaf{err: NewConstructionError(call, "at least one nested predicate required")}
	}
	sub := And(preds...)
	if err := sub.Err(); err != nil {
		return &leaf{err: err}
	}
	return &leaf{attr: a, op: op, operand: sub}
}

// expandSequence unwraps a single slice argument so both In("a", "b") and
// In(values...) with a typed slice behave the same.
func expandSequence(vals []any) []any {
	if len(vals) != 1 {
		return vals
	}
	switch s := vals[0].(type) {
	case []any:
		return s
	case []string:
		out := make([]any, len(s))
		for i, v := range s {
			out[i] = v
		}
		return out
	case []int:
		out := make([]any, len(s))
		for i, v := range s {
			out[i] = v
		}
		return out
	case []float64:
		out := make([]any, len(s))
		for i, v := range s {
			out[i] = v
		}
		return out
	case []uuid.UUID:
		out := make([]any, len(s))
		for i, v := range s {
			out[i] = v
		}
		return out
	case []Ref:
		out := make([]any, len(s))
		for i, v := range s {
			out[i] = v
		}
		return out
	}
	return vals
}

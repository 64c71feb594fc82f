package trackql

import (
	"strconv"
	"strings"
)

// Serialize renders a statement to its wire-level query string. Create
// statements carry a structured payload instead of a query string and
// report a SerializationError here; use CreateStatement.Payload.
func Serialize(s Statement) (string, error) {
	switch st := s.(type) {
	case *SelectStatement:
		return st.Query()
	case *UpdateStatement:
		return st.Query()
	case *DeleteStatement:
		return st.Query()
	case *CreateStatement:
		return "", NewSerializationError(st.EntityKind(), "create statements serialize to a payload, not a query string")
	default:
		return "", NewSerializationError("", "unknown statement type %T", s)
	}
}

// renderTail appends the where / order by / offset / limit clauses to the
// already-built leading parts and joins them. Each clause is present only
// when its field is non-empty; a neutral always-true filter omits the
// where clause entirely.
func renderTail(parts []string, kind string, where Comparison, order []orderTerm, offset, limit *int) (string, error) {
	if where != nil && !isNeutral(where) {
		w, _, err := where.render()
		if err != nil {
			return "", err
		}
		if w == "" {
			return "", NewSerializationError(kind, "empty filter expression")
		}
		parts = append(parts, "where", w)
	}
	if len(order) > 0 {
		terms := make([]string, len(order))
		for i, o := range order {
			terms[i] = o.expr
			if o.desc {
				terms[i] += " descending"
			}
		}
		parts = append(parts, "order by", strings.Join(terms, ", "))
	}
	if offset != nil {
		parts = append(parts, "offset", strconv.Itoa(*offset))
	}
	if limit != nil {
		parts = append(parts, "limit", strconv.Itoa(*limit))
	}
	return strings.Join(parts, " "), nil
}

// parseOrder splits a trailing direction keyword off an ordering entry.
// Anything else passes through untouched.
func parseOrder(entry string) orderTerm {
	if expr, ok := strings.CutSuffix(entry, " descending"); ok {
		return orderTerm{expr: expr, desc: true}
	}
	if expr, ok := strings.CutSuffix(entry, " ascending"); ok {
		return orderTerm{expr: expr}
	}
	return orderTerm{expr: entry}
}

// renderAssignments renders a value mapping for statement previews, e.g.
// `name="new", parent_id=123`, in assignment order.
func renderAssignments(keys []string, values map[string]any) string {
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		v, err := FormatValue(values[k])
		if err != nil {
			v = "?"
		}
		parts = append(parts, k+"="+v)
	}
	return strings.Join(parts, ", ")
}

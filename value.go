package trackql

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Ref is a reference to a remote entity by its unique id. Used as a
// comparison operand, it compares the attribute's id relationship instead
// of the attribute itself: Attr("project").Eq(ref) renders as
// `project.id is "<id>"`.
type Ref struct {
	Kind string
	ID   uuid.UUID
}

// FormatValue renders a literal operand in the wire grammar: strings are
// double-quoted with `\"` escaping, nil renders as the bare keyword none,
// numbers and booleans render bare, and timestamps render as quoted
// RFC 3339. An unsupported type reports a ConstructionError.
func FormatValue(v any) (string, error) {
	switch v := v.(type) {
	case nil:
		return "none", nil
	case string:
		return quote(v), nil
	case bool:
		return strconv.FormatBool(v), nil
	case int:
		return strconv.Itoa(v), nil
	case int8:
		return strconv.FormatInt(int64(v), 10), nil
	case int16:
		return strconv.FormatInt(int64(v), 10), nil
	case int32:
		return strconv.FormatInt(int64(v), 10), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case uint:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint8:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint16:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint32:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint64:
		return strconv.FormatUint(v, 10), nil
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case time.Time:
		return quote(v.Format(time.RFC3339)), nil
	case uuid.UUID:
		return quote(v.String()), nil
	case Ref:
		return quote(v.ID.String()), nil
	default:
		return "", NewConstructionError("FormatValue", "unsupported operand type %T", v)
	}
}

// quote wraps a string literal in double quotes, escaping embedded quotes.
func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}

// escapeWildcards escapes pattern wildcards in a literal substring so it
// can be embedded in a like pattern.
func escapeWildcards(s string) string {
	return strings.ReplaceAll(s, "%", `\%`)
}

// validOperand reports whether v is usable as a literal operand.
// Attribute references and comparisons are rejected here so that misuse
// fails at construction, not at serialization.
func validOperand(op string, v any) error {
	switch v.(type) {
	case Attr:
		return NewConstructionError(op, "attribute reference is not a valid operand; compare against a literal value")
	case Comparison:
		return NewConstructionError(op, "comparison is not a valid operand")
	case *SelectStatement:
		return NewConstructionError(op, "subquery operand is only valid for In/NotIn")
	}
	if _, err := FormatValue(v); err != nil {
		return NewConstructionError(op, "unsupported operand type %T", v)
	}
	return nil
}

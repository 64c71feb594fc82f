package trackql

// Op is a comparison or combination operator of the query grammar.
type Op int

// Builtin operators.
const (
	OpEQ      Op = iota // is
	OpNEQ               // is_not
	OpGT                // >
	OpGTE               // >=
	OpLT                // <
	OpLTE               // <=
	OpLike              // like
	OpNotLike           // not_like
	OpBefore            // before
	OpAfter             // after
	OpIn                // in
	OpNotIn             // not_in
	OpHas               // has
	OpAny               // any
	OpAnd               // and
	OpOr                // or
	OpNot               // not
)

var ops = [...]string{
	OpEQ:      "is",
	OpNEQ:     "is_not",
	OpGT:      ">",
	OpGTE:     ">=",
	OpLT:      "<",
	OpLTE:     "<=",
	OpLike:    "like",
	OpNotLike: "not_like",
	OpBefore:  "before",
	OpAfter:   "after",
	OpIn:      "in",
	OpNotIn:   "not_in",
	OpHas:     "has",
	OpAny:     "any",
	OpAnd:     "and",
	OpOr:      "or",
	OpNot:     "not",
}

// String returns the textual form of the operator as it appears in the
// serialized query.
func (o Op) String() string {
	if o < 0 || int(o) >= len(ops) {
		return ""
	}
	return ops[o]
}

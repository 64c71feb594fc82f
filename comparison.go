package trackql

import (
	"golang.org/x/exp/maps"
	"slices"
	"strings"
)

// Comparison is an immutable predicate or a boolean combination of
// predicates. Comparisons are built from attribute references and folded
// with And, Or and Not; construction never mutates an existing node, so
// trees can be shared freely across statements.
type Comparison interface {
	// String renders the predicate in the wire grammar. Construction
	// errors render as an empty string; check Err.
	String() string

	// Negate returns the logical negation of the predicate. Negating a
	// negation returns the original node.
	Negate() Comparison

	// Err reports the first construction error recorded anywhere in the
	// tree, or nil.
	Err() error

	// render returns the textual form, whether the node is a multi-part
	// boolean combination (and so may need parenthesizing by its parent),
	// and the first construction error in the tree.
	render() (string, bool, error)
}

// Fields is keyword-style equality shorthand: every key/value pair becomes
// an equality leaf and the pairs combine as an implicit AND. Pairs render
// in key order so output is deterministic.
//
//	trackql.Fields{"status": "active", "priority": 1}
//	// priority is 1 and status is "active"
type Fields map[string]any

// And combines comparisons with the and operator. Nested combinations of
// the same kind are flattened. With no arguments the result is the neutral
// always-true predicate.
func And(preds ...Comparison) Comparison {
	return compose(OpAnd, preds)
}

// Or combines comparisons with the or operator. Nested combinations of the
// same kind are flattened. With no arguments the result is the always-false
// predicate.
func Or(preds ...Comparison) Comparison {
	return compose(OpOr, preds)
}

// Not negates a comparison. Not(Not(x)) simplifies to x so serialized
// output never contains a double negation.
func Not(pred Comparison) Comparison {
	if pred == nil {
		return &unary{err: NewConstructionError("Not", "nil comparison")}
	}
	return pred.Negate()
}

func compose(op Op, preds []Comparison) Comparison {
	xs := make([]Comparison, 0, len(preds))
	var err error
	for _, p := range preds {
		if p == nil {
			continue
		}
		if f, ok := p.(Fields); ok {
			p = f.normalize()
		}
		if err == nil && p.Err() != nil {
			err = p.Err()
		}
		if n, ok := p.(*nary); ok && n.op == op {
			xs = append(xs, n.xs...)
			continue
		}
		xs = append(xs, p)
	}
	return &nary{op: op, xs: xs, err: err}
}

// leaf is a single `attribute operator operand` predicate. The operand is
// a literal value, a value sequence or subquery for in/not_in, or a nested
// predicate for has/any.
type leaf struct {
	attr    Attr
	op      Op
	operand any
	err     error
}

func (l *leaf) String() string {
	s, _, _ := l.render()
	return s
}

func (l *leaf) Err() error {
	_, _, err := l.render()
	return err
}

func (l *leaf) Negate() Comparison {
	return &unary{x: l}
}

func (l *leaf) render() (string, bool, error) {
	if l.err != nil {
		return "", false, l.err
	}
	base := string(l.attr)
	switch l.op {
	case OpIn, OpNotIn:
		s, err := l.renderIn(base)
		return s, false, err
	case OpHas, OpAny:
		sub, ok := l.operand.(Comparison)
		if !ok {
			return "", false, NewConstructionError(l.op.String(), "nested predicate required")
		}
		inner, _, err := sub.render()
		if err != nil {
			return "", false, err
		}
		return base + " " + l.op.String() + " (" + inner + ")", false, nil
	default:
		if _, ok := l.operand.(Ref); ok {
			base += ".id"
		}
		v, err := FormatValue(l.operand)
		if err != nil {
			return "", false, err
		}
		return base + " " + l.op.String() + " " + v, false, nil
	}
}

func (l *leaf) renderIn(base string) (string, error) {
	switch operand := l.operand.(type) {
	case *SelectStatement:
		sub := operand
		if len(sub.populate) == 0 {
			// An unprojected subquery selects ids, so the attribute is
			// compared through its id relationship.
			base += ".id"
			sub = sub.withProjection("id")
		}
		q, err := sub.Query()
		if err != nil {
			return "", err
		}
		return base + " " + l.op.String() + " (" + q + ")", nil
	case []any:
		if len(operand) > 0 {
			if _, ok := operand[0].(Ref); ok {
				base += ".id"
			}
		}
		parts := make([]string, len(operand))
		for i, v := range operand {
			s, err := FormatValue(v)
			if err != nil {
				return "", err
			}
			parts[i] = s
		}
		return base + " " + l.op.String() + " (" + strings.Join(parts, ", ") + ")", nil
	default:
		return "", NewConstructionError(l.op.String(), "invalid operand type %T", l.operand)
	}
}

// nary is an ordered and/or combination. Constructors flatten nested
// combinations of the same kind, so children are always either leaves,
// negations, or combinations of the opposite kind.
type nary struct {
	op  Op
	xs  []Comparison
	err error
}

func (n *nary) String() string {
	s, _, _ := n.render()
	return s
}

func (n *nary) Err() error {
	_, _, err := n.render()
	return err
}

func (n *nary) Negate() Comparison {
	return &unary{x: n}
}

func (n *nary) render() (string, bool, error) {
	if n.err != nil {
		return "", false, n.err
	}
	switch len(n.xs) {
	case 0:
		if n.op == OpAnd {
			return "true", false, nil
		}
		return "false", false, nil
	case 1:
		// A single child serializes unwrapped.
		return n.xs[0].render()
	}
	parts := make([]string, len(n.xs))
	for i, x := range n.xs {
		s, compound, err := x.render()
		if err != nil {
			return "", false, err
		}
		if compound {
			// A multi-part combination of the opposite kind keeps
			// explicit parentheses to preserve precedence.
			s = "(" + s + ")"
		}
		parts[i] = s
	}
	return strings.Join(parts, " "+n.op.String()+" "), true, nil
}

// unary is a negation node. It always has exactly one child.
type unary struct {
	x   Comparison
	err error
}

func (u *unary) String() string {
	s, _, _ := u.render()
	return s
}

func (u *unary) Err() error {
	_, _, err := u.render()
	return err
}

// Negate unwraps the negation: not(not(x)) is x.
func (u *unary) Negate() Comparison {
	if u.err != nil {
		return u
	}
	return u.x
}

func (u *unary) render() (string, bool, error) {
	if u.err != nil {
		return "", false, u.err
	}
	s, compound, err := u.x.render()
	if err != nil {
		return "", false, err
	}
	if compound {
		return "not (" + s + ")", false, nil
	}
	return "not " + s, false, nil
}

func (f Fields) String() string {
	s, _, _ := f.render()
	return s
}

func (f Fields) Err() error {
	_, _, err := f.render()
	return err
}

func (f Fields) Negate() Comparison {
	return f.normalize().Negate()
}

func (f Fields) render() (string, bool, error) {
	return f.normalize().render()
}

// normalize expands the map into an AND of equality leaves, ordered by key.
func (f Fields) normalize() Comparison {
	keys := maps.Keys(f)
	slices.Sort(keys)
	xs := make([]Comparison, 0, len(keys))
	var err error
	for _, k := range keys {
		p := Attr(k).Eq(f[k])
		if err == nil && p.Err() != nil {
			err = p.Err()
		}
		xs = append(xs, p)
	}
	return &nary{op: OpAnd, xs: xs, err: err}
}

// isNeutral reports whether c is the neutral always-true predicate
// produced by And with no arguments.
func isNeutral(c Comparison) bool {
	n, ok := c.(*nary)
	return ok && n.op == OpAnd && len(n.xs) == 0 && n.err == nil
}

// Package event builds predicates for the event-subscription grammar.
//
// The grammar is independent from the entity-query grammar: operators
// attach directly to the attribute (`topic="update"` rather than
// `topic is "update"`) and operands are event payload paths, not entity
// attributes. The two namespaces use distinct types, so mixing nodes from
// this package with trackql comparisons is a compile error.
//
//	expr := event.And(
//		event.Topic("entity.update"),
//		event.Attr("source.user.username").Ne("bot"),
//	)
//	hub.Subscribe(expr.String())
package event

import (
	"strings"

	"github.com/trackql/trackql"
)

// Comparison is an immutable event predicate or boolean combination.
type Comparison struct {
	s        string
	compound bool // multi-part combination, parenthesized when negated
	err      error
}

// Attr is a dotted path into the event payload.
type Attr string

// Topic matches the event topic, the most common subscription predicate.
func Topic(topic string) Comparison {
	return Attr("topic").Eq(topic)
}

// Eq compares the event attribute for equality.
func (a Attr) Eq(v any) Comparison { return a.compare("Eq", "=", v) }

// Ne compares the event attribute for inequality.
func (a Attr) Ne(v any) Comparison { return a.compare("Ne", "!=", v) }

// Gt compares with the > operator.
func (a Attr) Gt(v any) Comparison { return a.compare("Gt", ">", v) }

// Ge compares with the >= operator.
func (a Attr) Ge(v any) Comparison { return a.compare("Ge", ">=", v) }

// Lt compares with the < operator.
func (a Attr) Lt(v any) Comparison { return a.compare("Lt", "<", v) }

// Le compares with the <= operator.
func (a Attr) Le(v any) Comparison { return a.compare("Le", "<=", v) }

func (a Attr) compare(call, op string, v any) Comparison {
	if a == "" {
		return Comparison{err: trackql.NewConstructionError("event."+call, "empty attribute path")}
	}
	val, err := trackql.FormatValue(v)
	if err != nil {
		return Comparison{err: trackql.NewConstructionError("event."+call, "unsupported operand type %T", v)}
	}
	return Comparison{s: string(a) + op + val}
}

// And combines event predicates with the and operator.
func And(preds ...Comparison) Comparison {
	return combine("and", false, preds)
}

// Or combines event predicates with the or operator. With more than one
// part the combination is parenthesized.
func Or(preds ...Comparison) Comparison {
	return combine("or", true, preds)
}

// Not negates an event predicate.
func Not(pred Comparison) Comparison {
	if pred.err != nil {
		return pred
	}
	if pred.compound {
		return Comparison{s: "not (" + pred.s + ")"}
	}
	return Comparison{s: "not " + pred.s}
}

func combine(op string, brackets bool, preds []Comparison) Comparison {
	parts := make([]string, 0, len(preds))
	for _, p := range preds {
		if p.err != nil {
			return Comparison{err: p.err}
		}
		if p.s == "" {
			continue
		}
		if p.compound {
			parts = append(parts, "("+p.s+")")
			continue
		}
		parts = append(parts, p.s)
	}
	s := strings.Join(parts, " "+op+" ")
	if brackets && len(parts) > 1 {
		return Comparison{s: "(" + s + ")"}
	}
	return Comparison{s: s, compound: len(parts) > 1}
}

// String renders the predicate in the event grammar. Construction errors
// render as an empty string; check Err.
func (c Comparison) String() string { return c.s }

// Err reports a construction error recorded while building the predicate.
func (c Comparison) Err() error { return c.err }

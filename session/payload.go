package session

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/trackql/trackql"
)

// Envelope is the transport form of a statement: the action, the entity
// kind, the selection query for filtered actions, and the value mapping
// for mutations.
type Envelope struct {
	Action string         `msgpack:"action"`
	Kind   string         `msgpack:"kind"`
	Query  string         `msgpack:"query,omitempty"`
	Values map[string]any `msgpack:"values,omitempty"`
}

// EncodePayload packs a statement into its compact transport encoding.
// Select, update and delete carry their query string; create and update
// carry their value mapping.
func EncodePayload(stmt trackql.Statement) ([]byte, error) {
	env, err := envelope(stmt)
	if err != nil {
		return nil, err
	}
	data, err := msgpack.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("session: encoding payload: %w", err)
	}
	return data, nil
}

// DecodePayload unpacks a transport encoding produced by EncodePayload.
func DecodePayload(data []byte) (*Envelope, error) {
	env := &Envelope{}
	if err := msgpack.Unmarshal(data, env); err != nil {
		return nil, fmt.Errorf("session: decoding payload: %w", err)
	}
	return env, nil
}

func envelope(stmt trackql.Statement) (*Envelope, error) {
	if stmt == nil {
		return nil, trackql.NewConstructionError("EncodePayload", "nil statement")
	}
	if err := stmt.Err(); err != nil {
		return nil, err
	}
	env := &Envelope{Kind: stmt.EntityKind()}
	switch st := stmt.(type) {
	case *trackql.SelectStatement:
		env.Action = "select"
		q, err := st.Query()
		if err != nil {
			return nil, err
		}
		env.Query = q
	case *trackql.CreateStatement:
		env.Action = "create"
		values, err := st.Payload()
		if err != nil {
			return nil, err
		}
		env.Values = values
	case *trackql.UpdateStatement:
		env.Action = "update"
		q, err := st.Query()
		if err != nil {
			return nil, err
		}
		values, err := st.Payload()
		if err != nil {
			return nil, err
		}
		env.Query, env.Values = q, values
	case *trackql.DeleteStatement:
		env.Action = "delete"
		q, err := st.Query()
		if err != nil {
			return nil, err
		}
		env.Query = q
	default:
		return nil, trackql.NewSerializationError(stmt.EntityKind(), "unknown statement type %T", stmt)
	}
	return env, nil
}

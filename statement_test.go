package trackql_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trackql/trackql"
)

func TestCreate(t *testing.T) {
	t.Run("Payload", func(t *testing.T) {
		s := trackql.Create("Task").Values(map[string]any{
			"name":      "lighting",
			"parent_id": 42,
		})
		payload, err := s.Payload()
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"name": "lighting", "parent_id": 42}, payload)
	})
	t.Run("MergeLastWins", func(t *testing.T) {
		s := trackql.Create("Task").
			Values(map[string]any{"name": "first", "bid": 1}).
			Set("name", "second")
		payload, err := s.Payload()
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"name": "second", "bid": 1}, payload)
	})
	t.Run("String", func(t *testing.T) {
		s := trackql.Create("Task").Values(map[string]any{
			"name": "lighting",
			"bid":  2.5,
		})
		assert.Equal(t, `create Task(bid=2.5, name="lighting")`, s.String())
	})
	t.Run("StringKeepsAssignmentOrder", func(t *testing.T) {
		s := trackql.Create("Task").Set("zeta", 1).Set("alpha", 2).Set("zeta", 3)
		assert.Equal(t, `create Task(zeta=3, alpha=2)`, s.String())
	})
	t.Run("EmptyValues", func(t *testing.T) {
		s := trackql.Create("Task")
		payload, err := s.Payload()
		require.NoError(t, err)
		assert.Empty(t, payload)
		assert.Equal(t, `create Task()`, s.String())
	})
	t.Run("PayloadIsCopy", func(t *testing.T) {
		s := trackql.Create("Task").Set("name", "a")
		payload, err := s.Payload()
		require.NoError(t, err)
		payload["name"] = "mutated"
		again, err := s.Payload()
		require.NoError(t, err)
		assert.Equal(t, "a", again["name"])
	})
	t.Run("Errors", func(t *testing.T) {
		for name, s := range map[string]*trackql.CreateStatement{
			"EmptyKind": trackql.Create(""),
			"EmptyKey":  trackql.Create("Task").Set("", 1),
		} {
			t.Run(name, func(t *testing.T) {
				require.Error(t, s.Err())
				assert.True(t, trackql.IsConstruction(s.Err()))
				_, err := s.Payload()
				assert.Error(t, err)
			})
		}
	})
	t.Run("SerializeRejected", func(t *testing.T) {
		_, err := trackql.Serialize(trackql.Create("Task").Set("name", "x"))
		require.Error(t, err)
		assert.True(t, trackql.IsSerialization(err))
	})
}

func TestUpdate(t *testing.T) {
	t.Run("Query", func(t *testing.T) {
		s := trackql.Update("Task").
			Where(trackql.Attr("id").Eq(123)).
			Set("name", "renamed")
		q, err := s.Query()
		require.NoError(t, err)
		assert.Equal(t, `Task where id is 123`, q)
	})
	t.Run("String", func(t *testing.T) {
		s := trackql.Update("Task").
			Where(trackql.Attr("id").Eq(123)).
			Set("name", "renamed")
		assert.Equal(t, `update Task where id is 123 set (name="renamed")`, s.String())
	})
	t.Run("WhereAccumulates", func(t *testing.T) {
		s := trackql.Update("Task").
			Where(trackql.Attr("status").Eq("active")).
			Where(trackql.Attr("priority").Gt(3))
		q, err := s.Query()
		require.NoError(t, err)
		assert.Equal(t, `Task where status is "active" and priority > 3`, q)
	})
	t.Run("NoFilter", func(t *testing.T) {
		// An update without a filter targets every entity of the kind.
		q, err := trackql.Update("Task").Set("bid", 0).Query()
		require.NoError(t, err)
		assert.Equal(t, `Task`, q)
	})
	t.Run("Payload", func(t *testing.T) {
		s := trackql.Update("Task").
			Values(map[string]any{"status": "done"}).
			Set("status", "omitted")
		payload, err := s.Payload()
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"status": "omitted"}, payload)
	})
	t.Run("Immutable", func(t *testing.T) {
		base := trackql.Update("Task").Where(trackql.Attr("status").Eq("active"))
		derived := base.Set("bid", 1).Where(trackql.Attr("priority").Gt(3))
		q, err := base.Query()
		require.NoError(t, err)
		assert.Equal(t, `Task where status is "active"`, q)
		payload, err := base.Payload()
		require.NoError(t, err)
		assert.Empty(t, payload)
		dq, err := derived.Query()
		require.NoError(t, err)
		assert.Equal(t, `Task where status is "active" and priority > 3`, dq)
	})
	t.Run("Errors", func(t *testing.T) {
		s := trackql.Update("")
		require.Error(t, s.Err())
		_, err := s.Query()
		assert.Error(t, err)
		_, err = s.Payload()
		assert.Error(t, err)
	})
}

func TestDelete(t *testing.T) {
	t.Run("Query", func(t *testing.T) {
		s := trackql.Delete("Task").Where(trackql.Attr("name").Eq("Old Task Name"))
		q, err := s.Query()
		require.NoError(t, err)
		assert.Equal(t, `Task where name is "Old Task Name"`, q)
	})
	t.Run("String", func(t *testing.T) {
		s := trackql.Delete("Task").Where(trackql.Attr("id").Eq(7))
		assert.Equal(t, `delete Task where id is 7`, s.String())
	})
	t.Run("CleanupAttachments", func(t *testing.T) {
		s := trackql.Delete("Version").Where(trackql.Attr("id").Eq(7))
		assert.False(t, s.Options().CleanupAttachments)
		c := s.CleanupAttachments(true)
		assert.True(t, c.Options().CleanupAttachments)
		// The flag rides on options, not on the query string.
		q, err := c.Query()
		require.NoError(t, err)
		assert.Equal(t, `Version where id is 7`, q)
		assert.False(t, s.Options().CleanupAttachments)
	})
	t.Run("NoFilter", func(t *testing.T) {
		q, err := trackql.Delete("Task").Query()
		require.NoError(t, err)
		assert.Equal(t, `Task`, q)
	})
	t.Run("Errors", func(t *testing.T) {
		s := trackql.Delete("")
		require.Error(t, s.Err())
		_, err := s.Query()
		assert.Error(t, err)
		assert.Equal(t, "", s.String())
	})
}

func TestSerializeDispatch(t *testing.T) {
	tests := []struct {
		name string
		S    trackql.Statement
		Q    string
	}{
		{
			name: "Select",
			S:    trackql.Select("Task").Where(trackql.Attr("id").Eq(1)),
			Q:    `Task where id is 1`,
		},
		{
			name: "Update",
			S:    trackql.Update("Task").Where(trackql.Attr("id").Eq(1)).Set("name", "x"),
			Q:    `Task where id is 1`,
		},
		{
			name: "Delete",
			S:    trackql.Delete("Task").Where(trackql.Attr("id").Eq(1)),
			Q:    `Task where id is 1`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := trackql.Serialize(tt.S)
			require.NoError(t, err)
			assert.Equal(t, tt.Q, q)
		})
	}
}

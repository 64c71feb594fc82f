package session_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trackql/trackql"
	"github.com/trackql/trackql/session"
)

func TestEncodePayload(t *testing.T) {
	t.Run("Select", func(t *testing.T) {
		stmt := trackql.Select("Task").Where(trackql.Attr("status").Eq("active"))
		data, err := session.EncodePayload(stmt)
		require.NoError(t, err)

		env, err := session.DecodePayload(data)
		require.NoError(t, err)
		assert.Equal(t, "select", env.Action)
		assert.Equal(t, "Task", env.Kind)
		assert.Equal(t, `Task where status is "active"`, env.Query)
		assert.Empty(t, env.Values)
	})

	t.Run("Create", func(t *testing.T) {
		stmt := trackql.Create("Task").Set("name", "lighting").Set("bid", int64(3))
		data, err := session.EncodePayload(stmt)
		require.NoError(t, err)

		env, err := session.DecodePayload(data)
		require.NoError(t, err)
		assert.Equal(t, "create", env.Action)
		assert.Equal(t, "Task", env.Kind)
		assert.Empty(t, env.Query)
		assert.Equal(t, "lighting", env.Values["name"])
		assert.EqualValues(t, 3, env.Values["bid"])
	})

	t.Run("Update", func(t *testing.T) {
		stmt := trackql.Update("Task").
			Where(trackql.Attr("id").Eq(123)).
			Set("status", "done")
		data, err := session.EncodePayload(stmt)
		require.NoError(t, err)

		env, err := session.DecodePayload(data)
		require.NoError(t, err)
		assert.Equal(t, "update", env.Action)
		assert.Equal(t, `Task where id is 123`, env.Query)
		assert.Equal(t, "done", env.Values["status"])
	})

	t.Run("Delete", func(t *testing.T) {
		stmt := trackql.Delete("Note").Where(trackql.Attr("id").Eq(7))
		data, err := session.EncodePayload(stmt)
		require.NoError(t, err)

		env, err := session.DecodePayload(data)
		require.NoError(t, err)
		assert.Equal(t, "delete", env.Action)
		assert.Equal(t, `Note where id is 7`, env.Query)
	})

	t.Run("ConstructionError", func(t *testing.T) {
		_, err := session.EncodePayload(trackql.Select("Task").Limit(-1))
		require.Error(t, err)
		assert.True(t, trackql.IsConstruction(err))
	})

	t.Run("NilStatement", func(t *testing.T) {
		_, err := session.EncodePayload(nil)
		assert.Error(t, err)
	})
}

func TestDecodePayloadMalformed(t *testing.T) {
	_, err := session.DecodePayload([]byte{0xc1})
	assert.Error(t, err)
}

package session_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trackql/trackql"
	"github.com/trackql/trackql/session"
)

func TestExecuteSelect(t *testing.T) {
	rec := &session.Recorder{Items: []session.Entity{
		{"id": "1", "name": "lighting"},
		{"id": "2", "name": "compositing"},
	}}
	stmt := trackql.Select("Task").Where(trackql.Attr("status").Eq("active"))

	res, err := session.Execute(context.Background(), rec, stmt)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Len())
	assert.Equal(t, []string{`Task where status is "active"`}, rec.Recorded())

	first, ok := res.First()
	require.True(t, ok)
	assert.Equal(t, "lighting", first["name"])
}

func TestExecuteConstructionError(t *testing.T) {
	rec := &session.Recorder{}
	stmt := trackql.Select("Task").Limit(-1)

	_, err := session.Execute(context.Background(), rec, stmt)
	require.Error(t, err)
	assert.True(t, trackql.IsConstruction(err))
	// Nothing reaches the executor.
	assert.Empty(t, rec.Recorded())
}

func TestExecuteNilStatement(t *testing.T) {
	_, err := session.Execute(context.Background(), &session.Recorder{}, nil)
	assert.Error(t, err)
}

func TestExecuteNoExecutor(t *testing.T) {
	_, err := session.Execute(context.Background(), nil, trackql.Select("Task"))
	assert.Error(t, err)
}

func TestExecuteSessionOverride(t *testing.T) {
	bound := &session.Recorder{}
	pinned := &session.Recorder{}
	stmt := trackql.Select("Task").WithSession(pinned)

	_, err := session.Execute(context.Background(), bound, stmt)
	require.NoError(t, err)
	assert.Empty(t, bound.Recorded())
	assert.Equal(t, []string{"Task"}, pinned.Recorded())
}

func TestExecuteMutations(t *testing.T) {
	t.Run("Update", func(t *testing.T) {
		rec := &session.Recorder{Affected: 3}
		stmt := trackql.Update("Task").
			Where(trackql.Attr("status").Eq("pending")).
			Set("status", "active")
		res, err := session.Execute(context.Background(), rec, stmt)
		require.NoError(t, err)
		assert.Equal(t, 3, res.Count())
		assert.Equal(t, 0, res.Len())
		assert.Equal(t, []string{`Task where status is "pending"`}, rec.Recorded())
	})
	t.Run("Delete", func(t *testing.T) {
		rec := &session.Recorder{Affected: 1}
		stmt := trackql.Delete("Note").Where(trackql.Attr("id").Eq(7))
		res, err := session.Execute(context.Background(), rec, stmt)
		require.NoError(t, err)
		assert.Equal(t, 1, res.Count())
		assert.Equal(t, []string{`Note where id is 7`}, rec.Recorded())
	})
	t.Run("Create", func(t *testing.T) {
		rec := &session.Recorder{}
		stmt := trackql.Create("Task").Set("name", "lighting")
		res, err := session.Execute(context.Background(), rec, stmt)
		require.NoError(t, err)
		e, err := res.One()
		require.NoError(t, err)
		assert.Equal(t, "lighting", e["name"])
		assert.Equal(t, []string{`create Task(name="lighting")`}, rec.Recorded())
	})
}

func TestResultOne(t *testing.T) {
	t.Run("Single", func(t *testing.T) {
		res := session.NewResult("Task", []session.Entity{{"id": "1"}})
		e, err := res.One()
		require.NoError(t, err)
		assert.Equal(t, "1", e["id"])
	})
	t.Run("None", func(t *testing.T) {
		res := session.NewResult("Task", nil)
		_, err := res.One()
		require.Error(t, err)
		assert.True(t, trackql.IsNotFound(err))
		var nf *trackql.NotFoundError
		require.True(t, errors.As(err, &nf))
		assert.Equal(t, "Task", nf.Kind())
	})
	t.Run("Multiple", func(t *testing.T) {
		res := session.NewResult("Task", []session.Entity{{"id": "1"}, {"id": "2"}})
		_, err := res.One()
		require.Error(t, err)
		assert.True(t, trackql.IsMultipleResults(err))
		var mr *trackql.MultipleResultsError
		require.True(t, errors.As(err, &mr))
		assert.Equal(t, 2, mr.Count())
	})
}

func TestResultFirst(t *testing.T) {
	res := session.NewResult("Task", nil)
	_, ok := res.First()
	assert.False(t, ok)
}

func TestExecuteAll(t *testing.T) {
	t.Run("ResultsInOrder", func(t *testing.T) {
		rec := &session.Recorder{Items: []session.Entity{{"id": "1"}}}
		results, err := session.ExecuteAll(context.Background(), rec,
			trackql.Select("Task"),
			trackql.Select("Shot"),
			trackql.Select("Project"),
		)
		require.NoError(t, err)
		require.Len(t, results, 3)
		for _, r := range results {
			assert.Equal(t, 1, r.Len())
		}
		assert.ElementsMatch(t, []string{"Task", "Shot", "Project"}, rec.Recorded())
	})
	t.Run("FirstErrorWins", func(t *testing.T) {
		rec := &session.Recorder{}
		_, err := session.ExecuteAll(context.Background(), rec,
			trackql.Select("Task"),
			trackql.Select("").Where(trackql.Attr("a").Eq(1)),
		)
		require.Error(t, err)
		assert.True(t, trackql.IsConstruction(err))
	})
	t.Run("Empty", func(t *testing.T) {
		results, err := session.ExecuteAll(context.Background(), &session.Recorder{})
		require.NoError(t, err)
		assert.Empty(t, results)
	})
}

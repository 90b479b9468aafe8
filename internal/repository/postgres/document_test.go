package postgres

import (
	"testing"

	"github.com/BloggingApp/blog-client/internal/baas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildListQuery_Defaults(t *testing.T) {
	q, err := buildListQuery("main", "posts", nil)
	require.NoError(t, err)

	assert.Equal(t,
		"SELECT count(*) FROM documents d WHERE d.database_id = $1 AND d.collection_id = $2",
		q.countSQL())
	assert.Equal(t,
		"SELECT "+documentColumns+" FROM documents d WHERE d.database_id = $1 AND d.collection_id = $2 ORDER BY d.created_at ASC, d.id ASC LIMIT 25 OFFSET 0",
		q.selectSQL())
	assert.Equal(t, []any{"main", "posts"}, q.selectArgs())
}

func TestBuildListQuery_Filters(t *testing.T) {
	q, err := buildListQuery("main", "posts", []baas.Query{
		baas.OrderDesc("$createdAt"),
		baas.Equal("status", "active"),
		baas.Search("title", "50%_off"),
		baas.OrderAsc("title"),
		baas.NotEqual("$id", "p1"),
		baas.Limit(10),
		baas.Offset(20),
	})
	require.NoError(t, err)

	where := "d.database_id = $1 AND d.collection_id = $2" +
		" AND d.data->>$3 = ANY($4)" +
		" AND d.data->>$5 ILIKE $6" +
		" AND d.id::text IS DISTINCT FROM $7"

	assert.Equal(t, "SELECT count(*) FROM documents d WHERE "+where, q.countSQL())
	assert.Equal(t,
		"SELECT "+documentColumns+" FROM documents d WHERE "+where+
			" ORDER BY d.created_at DESC, d.data->>$8 ASC, d.created_at ASC, d.id ASC LIMIT 10 OFFSET 20",
		q.selectSQL())

	assert.Equal(t, []any{"main", "posts", "status", []string{"active"}, "title", `%50\%\_off%`, "p1"}, q.whereArgs)
	assert.Equal(t, []any{"main", "posts", "status", []string{"active"}, "title", `%50\%\_off%`, "p1", "title"}, q.selectArgs())
}

func TestBuildListQuery_Invalid(t *testing.T) {
	_, err := buildListQuery("main", "posts", []baas.Query{{Method: "between", Attribute: "views"}})
	assert.Error(t, err)

	_, err = buildListQuery("main", "posts", []baas.Query{baas.Limit(-1)})
	assert.Error(t, err)
}

func TestBuildAccountUpdate(t *testing.T) {
	query, args, err := buildAccountUpdate("u1", map[string]interface{}{"labels": []string{"admin"}, "name": "User"})
	require.NoError(t, err)
	assert.Equal(t, "UPDATE accounts a SET name = $1, labels = $2 WHERE a.id = $3 RETURNING "+accountColumns, query)
	assert.Equal(t, []interface{}{"User", []string{"admin"}, "u1"}, args)

	_, _, err = buildAccountUpdate("u1", map[string]interface{}{"email": "x@example.com"})
	assert.ErrorIs(t, err, ErrFieldsNotAllowedToUpdate)
}

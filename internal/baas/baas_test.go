package baas

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuery_String(t *testing.T) {
	assert.Equal(t, `{"method":"equal","attribute":"slug","values":["hello-world"]}`, Equal("slug", "hello-world").String())
	assert.Equal(t, `{"method":"orderDesc","attribute":"$createdAt"}`, OrderDesc("$createdAt").String())
	assert.Equal(t, `{"method":"limit","values":[10]}`, Limit(10).String())
}

func TestQuery_IntValue(t *testing.T) {
	n, ok := Limit(5).IntValue()
	assert.True(t, ok)
	assert.Equal(t, 5, n)

	var decoded Query
	require.NoError(t, json.Unmarshal([]byte(Offset(7).String()), &decoded))
	n, ok = decoded.IntValue()
	assert.True(t, ok)
	assert.Equal(t, 7, n)

	_, ok = OrderAsc("title").IntValue()
	assert.False(t, ok)
}

func TestDocument_UnmarshalSeparatesSystemAttributes(t *testing.T) {
	body := `{
		"$id": "p1",
		"$collectionId": "posts",
		"$databaseId": "main",
		"$createdAt": "2024-03-01T10:00:00.000+00:00",
		"$updatedAt": "2024-03-02T10:00:00.000+00:00",
		"$permissions": [],
		"title": "Hello",
		"categoryId": null
	}`

	var doc Document
	require.NoError(t, json.Unmarshal([]byte(body), &doc))

	assert.Equal(t, "p1", doc.ID)
	assert.Equal(t, "posts", doc.CollectionID)
	assert.Equal(t, "main", doc.DatabaseID)
	assert.Equal(t, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), doc.CreatedAt.UTC())
	assert.Equal(t, "Hello", doc.String("title"))
	assert.Nil(t, doc.OptionalString("categoryId"))
	assert.Nil(t, doc.OptionalString("featuredImage"))
	assert.NotContains(t, doc.Data, "$permissions")
}

func TestDocument_MarshalKeepsData(t *testing.T) {
	doc := Document{ID: "c1", CollectionID: "categories", Data: map[string]any{"name": "Tech"}}

	b, err := json.Marshal(doc)
	require.NoError(t, err)

	var back Document
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, "c1", back.ID)
	assert.Equal(t, "Tech", back.String("name"))
}

func TestErrorHelpers(t *testing.T) {
	notFound := NewError(404, TypeDocumentNotFound, "Document with the requested ID could not be found.")
	wrapped := fmt.Errorf("list: %w", notFound)

	assert.True(t, IsNotFound(wrapped))
	assert.False(t, IsUnauthorized(wrapped))
	assert.Equal(t, "Document with the requested ID could not be found.", MessageOf(wrapped))
	assert.Equal(t, "plain", MessageOf(fmt.Errorf("plain")))
}

func TestResolveID(t *testing.T) {
	assert.Equal(t, "explicit", ResolveID("explicit"))

	generated := ResolveID(IDUnique)
	assert.Len(t, generated, 32)
	assert.NotEqual(t, generated, ResolveID(""))
}

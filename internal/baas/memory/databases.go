package memory

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/BloggingApp/blog-client/internal/baas"
)

type databases struct {
	backend *Backend
}

func (d *databases) CreateDocument(ctx context.Context, databaseID, collectionID, documentID string, data map[string]any) (*baas.Document, error) {
	b := d.backend
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.failure(OpDocumentCreate); err != nil {
		return nil, err
	}

	key := collectionKey(databaseID, collectionID)
	id := baas.ResolveID(documentID)
	for _, doc := range b.collections[key] {
		if doc.ID == id {
			return nil, baas.NewError(http.StatusConflict, "document_already_exists", "Document with the requested ID already exists.")
		}
	}

	now := b.now()
	doc := &baas.Document{
		ID:           id,
		CollectionID: collectionID,
		DatabaseID:   databaseID,
		CreatedAt:    now,
		UpdatedAt:    now,
		Data:         copyData(data),
	}
	b.collections[key] = append(b.collections[key], doc)

	return cloneDocument(doc), nil
}

func (d *databases) GetDocument(ctx context.Context, databaseID, collectionID, documentID string) (*baas.Document, error) {
	b := d.backend
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.failure(OpDocumentGet); err != nil {
		return nil, err
	}

	_, doc := b.findDocument(databaseID, collectionID, documentID)
	if doc == nil {
		return nil, documentNotFound()
	}

	return cloneDocument(doc), nil
}

func (d *databases) ListDocuments(ctx context.Context, databaseID, collectionID string, queries ...baas.Query) (*baas.DocumentList, error) {
	b := d.backend
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.failure(OpDocumentList); err != nil {
		return nil, err
	}

	var (
		matched []*baas.Document
		orders  []baas.Query
		limit   = baas.DefaultPageSize
		offset  = 0
	)

	for _, q := range queries {
		switch q.Method {
		case baas.QueryLimit:
			n, ok := q.IntValue()
			if !ok || n < 0 {
				return nil, invalidQuery(q)
			}
			limit = n
		case baas.QueryOffset:
			n, ok := q.IntValue()
			if !ok || n < 0 {
				return nil, invalidQuery(q)
			}
			offset = n
		case baas.QueryOrderAsc, baas.QueryOrderDesc:
			orders = append(orders, q)
		case baas.QueryEqual, baas.QueryNotEqual, baas.QuerySearch:
		default:
			return nil, baas.NewError(http.StatusBadRequest, "general_query_invalid", fmt.Sprintf("Invalid query method: %s", q.Method))
		}
	}

	for _, doc := range b.collections[collectionKey(databaseID, collectionID)] {
		if matches(doc, queries) {
			matched = append(matched, doc)
		}
	}

	if len(orders) > 0 {
		sort.SliceStable(matched, func(i, j int) bool {
			for _, o := range orders {
				a, c := attribute(matched[i], o.Attribute), attribute(matched[j], o.Attribute)
				if a == c {
					continue
				}
				if o.Method == baas.QueryOrderDesc {
					return a > c
				}
				return a < c
			}
			return false
		})
	}

	list := &baas.DocumentList{Total: len(matched), Documents: []*baas.Document{}}
	for i := offset; i < len(matched) && i < offset+limit; i++ {
		list.Documents = append(list.Documents, cloneDocument(matched[i]))
	}

	return list, nil
}

func (d *databases) UpdateDocument(ctx context.Context, databaseID, collectionID, documentID string, data map[string]any) (*baas.Document, error) {
	b := d.backend
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.failure(OpDocumentUpdate); err != nil {
		return nil, err
	}

	_, doc := b.findDocument(databaseID, collectionID, documentID)
	if doc == nil {
		return nil, documentNotFound()
	}

	for key, value := range data {
		doc.Data[key] = value
	}
	doc.UpdatedAt = b.now()

	return cloneDocument(doc), nil
}

func (d *databases) DeleteDocument(ctx context.Context, databaseID, collectionID, documentID string) error {
	b := d.backend
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.failure(OpDocumentDelete); err != nil {
		return err
	}

	i, doc := b.findDocument(databaseID, collectionID, documentID)
	if doc == nil {
		return documentNotFound()
	}

	key := collectionKey(databaseID, collectionID)
	b.collections[key] = append(b.collections[key][:i], b.collections[key][i+1:]...)

	return nil
}

// findDocument must be called with the backend lock held.
func (b *Backend) findDocument(databaseID, collectionID, documentID string) (int, *baas.Document) {
	for i, doc := range b.collections[collectionKey(databaseID, collectionID)] {
		if doc.ID == documentID {
			return i, doc
		}
	}
	return -1, nil
}

func matches(doc *baas.Document, queries []baas.Query) bool {
	for _, q := range queries {
		value := attribute(doc, q.Attribute)
		switch q.Method {
		case baas.QueryEqual:
			found := false
			for _, v := range q.Values {
				if value == fmt.Sprint(v) {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		case baas.QueryNotEqual:
			if len(q.Values) > 0 && value == fmt.Sprint(q.Values[0]) {
				return false
			}
		case baas.QuerySearch:
			if len(q.Values) == 0 {
				continue
			}
			term := strings.ToLower(fmt.Sprint(q.Values[0]))
			if !strings.Contains(strings.ToLower(value), term) {
				return false
			}
		}
	}
	return true
}

func attribute(doc *baas.Document, name string) string {
	switch name {
	case "$id":
		return doc.ID
	case "$createdAt":
		return doc.CreatedAt.UTC().Format("2006-01-02T15:04:05.000000000Z07:00")
	case "$updatedAt":
		return doc.UpdatedAt.UTC().Format("2006-01-02T15:04:05.000000000Z07:00")
	}
	return doc.String(name)
}

func invalidQuery(q baas.Query) error {
	return baas.NewError(http.StatusBadRequest, "general_query_invalid", fmt.Sprintf("Invalid query: %s", q))
}

func documentNotFound() error {
	return baas.NewError(http.StatusNotFound, baas.TypeDocumentNotFound, "Document with the requested ID could not be found.")
}

func copyData(data map[string]any) map[string]any {
	out := make(map[string]any, len(data))
	for key, value := range data {
		out[key] = value
	}
	return out
}

func cloneDocument(doc *baas.Document) *baas.Document {
	out := *doc
	out.Data = copyData(doc.Data)
	return &out
}

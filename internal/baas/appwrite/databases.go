package appwrite

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/BloggingApp/blog-client/internal/baas"
)

type databases struct {
	conn *conn
}

func documentsPath(databaseID, collectionID string) string {
	return fmt.Sprintf("/databases/%s/collections/%s/documents", url.PathEscape(databaseID), url.PathEscape(collectionID))
}

func documentPath(databaseID, collectionID, documentID string) string {
	return documentsPath(databaseID, collectionID) + "/" + url.PathEscape(documentID)
}

func (d *databases) CreateDocument(ctx context.Context, databaseID, collectionID, documentID string, data map[string]any) (*baas.Document, error) {
	body := map[string]any{
		"documentId": documentID,
		"data":       data,
	}

	var doc baas.Document
	if err := d.conn.doJSON(ctx, http.MethodPost, documentsPath(databaseID, collectionID), body, &doc); err != nil {
		return nil, err
	}

	return &doc, nil
}

func (d *databases) GetDocument(ctx context.Context, databaseID, collectionID, documentID string) (*baas.Document, error) {
	var doc baas.Document
	if err := d.conn.doJSON(ctx, http.MethodGet, documentPath(databaseID, collectionID, documentID), nil, &doc); err != nil {
		return nil, err
	}

	return &doc, nil
}

func (d *databases) ListDocuments(ctx context.Context, databaseID, collectionID string, queries ...baas.Query) (*baas.DocumentList, error) {
	path := documentsPath(databaseID, collectionID)
	if len(queries) > 0 {
		params := url.Values{}
		for _, q := range queries {
			params.Add("queries[]", q.String())
		}
		path += "?" + params.Encode()
	}

	var list baas.DocumentList
	if err := d.conn.doJSON(ctx, http.MethodGet, path, nil, &list); err != nil {
		return nil, err
	}
	if list.Documents == nil {
		list.Documents = []*baas.Document{}
	}

	return &list, nil
}

func (d *databases) UpdateDocument(ctx context.Context, databaseID, collectionID, documentID string, data map[string]any) (*baas.Document, error) {
	var doc baas.Document
	if err := d.conn.doJSON(ctx, http.MethodPatch, documentPath(databaseID, collectionID, documentID), map[string]any{"data": data}, &doc); err != nil {
		return nil, err
	}

	return &doc, nil
}

func (d *databases) DeleteDocument(ctx context.Context, databaseID, collectionID, documentID string) error {
	return d.conn.doJSON(ctx, http.MethodDelete, documentPath(databaseID, collectionID, documentID), nil, nil)
}

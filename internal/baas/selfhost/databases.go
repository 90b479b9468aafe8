package selfhost

import (
	"context"
	"errors"
	"net/http"

	"github.com/BloggingApp/blog-client/internal/baas"
	"github.com/BloggingApp/blog-client/internal/repository/postgres"
)

type databases struct {
	docs postgres.Document
}

func (d *databases) CreateDocument(ctx context.Context, databaseID, collectionID, documentID string, data map[string]any) (*baas.Document, error) {
	if data == nil {
		data = map[string]any{}
	}

	doc, err := d.docs.Create(ctx, baas.Document{
		ID:           baas.ResolveID(documentID),
		DatabaseID:   databaseID,
		CollectionID: collectionID,
		Data:         data,
	})
	if errors.Is(err, postgres.ErrDuplicate) {
		return nil, baas.NewError(http.StatusConflict, "document_already_exists", "Document with the requested ID already exists.")
	}
	if err != nil {
		return nil, internalError(err)
	}

	return doc, nil
}

func (d *databases) GetDocument(ctx context.Context, databaseID, collectionID, documentID string) (*baas.Document, error) {
	doc, err := d.docs.FindByID(ctx, databaseID, collectionID, documentID)
	if err != nil {
		return nil, documentError(err)
	}

	return doc, nil
}

func (d *databases) ListDocuments(ctx context.Context, databaseID, collectionID string, queries ...baas.Query) (*baas.DocumentList, error) {
	list, err := d.docs.List(ctx, databaseID, collectionID, queries)
	if err != nil {
		return nil, internalError(err)
	}

	return list, nil
}

func (d *databases) UpdateDocument(ctx context.Context, databaseID, collectionID, documentID string, data map[string]any) (*baas.Document, error) {
	doc, err := d.docs.Patch(ctx, databaseID, collectionID, documentID, data)
	if err != nil {
		return nil, documentError(err)
	}

	return doc, nil
}

func (d *databases) DeleteDocument(ctx context.Context, databaseID, collectionID, documentID string) error {
	if err := d.docs.Delete(ctx, databaseID, collectionID, documentID); err != nil {
		return documentError(err)
	}

	return nil
}

func documentError(err error) error {
	if errors.Is(err, postgres.ErrNotFound) {
		return baas.NewError(http.StatusNotFound, baas.TypeDocumentNotFound, "Document with the requested ID could not be found.")
	}
	return internalError(err)
}

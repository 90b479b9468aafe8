package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/BloggingApp/blog-client/internal/baas"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type documentRepo struct {
	db *pgxpool.Pool
}

func newDocumentRepo(db *pgxpool.Pool) Document {
	return &documentRepo{
		db: db,
	}
}

const documentColumns = "d.database_id, d.collection_id, d.id, d.data, d.created_at, d.updated_at"

func (r *documentRepo) Create(ctx context.Context, doc baas.Document) (*baas.Document, error) {
	data, err := json.Marshal(doc.Data)
	if err != nil {
		return nil, err
	}

	return scanDocument(r.db.QueryRow(
		ctx,
		"INSERT INTO documents AS d(database_id, collection_id, id, data) VALUES($1, $2, $3, $4::jsonb) RETURNING "+documentColumns,
		doc.DatabaseID,
		doc.CollectionID,
		doc.ID,
		string(data),
	))
}

func (r *documentRepo) FindByID(ctx context.Context, databaseID, collectionID, id string) (*baas.Document, error) {
	return scanDocument(r.db.QueryRow(
		ctx,
		"SELECT "+documentColumns+" FROM documents d WHERE d.database_id = $1 AND d.collection_id = $2 AND d.id = $3",
		databaseID,
		collectionID,
		id,
	))
}

func (r *documentRepo) List(ctx context.Context, databaseID, collectionID string, queries []baas.Query) (*baas.DocumentList, error) {
	q, err := buildListQuery(databaseID, collectionID, queries)
	if err != nil {
		return nil, err
	}

	var total int
	if err := r.db.QueryRow(ctx, q.countSQL(), q.whereArgs...).Scan(&total); err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, q.selectSQL(), q.selectArgs()...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := &baas.DocumentList{Total: total, Documents: []*baas.Document{}}
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		list.Documents = append(list.Documents, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}

// Patch merges data into the stored attributes. Keys absent from data keep
// their value; a nil value stores null.
func (r *documentRepo) Patch(ctx context.Context, databaseID, collectionID, id string, data map[string]any) (*baas.Document, error) {
	patch, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return scanDocument(r.db.QueryRow(
		ctx,
		"UPDATE documents d SET data = d.data || $4::jsonb, updated_at = now() WHERE d.database_id = $1 AND d.collection_id = $2 AND d.id = $3 RETURNING "+documentColumns,
		databaseID,
		collectionID,
		id,
		string(patch),
	))
}

func (r *documentRepo) Delete(ctx context.Context, databaseID, collectionID, id string) error {
	tag, err := r.db.Exec(
		ctx,
		"DELETE FROM documents d WHERE d.database_id = $1 AND d.collection_id = $2 AND d.id = $3",
		databaseID,
		collectionID,
		id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func scanDocument(row pgx.Row) (*baas.Document, error) {
	var doc baas.Document
	if err := row.Scan(
		&doc.DatabaseID,
		&doc.CollectionID,
		&doc.ID,
		&doc.Data,
		&doc.CreatedAt,
		&doc.UpdatedAt,
	); err != nil {
		return nil, mapError(err)
	}
	if doc.Data == nil {
		doc.Data = map[string]any{}
	}

	return &doc, nil
}

// listQuery is a document list translated to SQL. Attribute names travel as
// parameters, never as SQL text.
type listQuery struct {
	where     []string
	whereArgs []any
	order     []string
	orderArgs []any
	limit     int
	offset    int
}

func buildListQuery(databaseID, collectionID string, queries []baas.Query) (*listQuery, error) {
	q := &listQuery{
		where:     []string{"d.database_id = $1", "d.collection_id = $2"},
		whereArgs: []any{databaseID, collectionID},
		limit:     baas.DefaultPageSize,
	}

	var orders []baas.Query
	for _, query := range queries {
		switch query.Method {
		case baas.QueryEqual:
			values := make([]string, 0, len(query.Values))
			for _, v := range query.Values {
				values = append(values, fmt.Sprint(v))
			}
			expr := q.whereColumn(query.Attribute)
			q.whereArgs = append(q.whereArgs, values)
			q.where = append(q.where, expr+" = ANY($"+strconv.Itoa(len(q.whereArgs))+")")
		case baas.QueryNotEqual:
			if len(query.Values) == 0 {
				continue
			}
			expr := q.whereColumn(query.Attribute)
			q.whereArgs = append(q.whereArgs, fmt.Sprint(query.Values[0]))
			q.where = append(q.where, expr+" IS DISTINCT FROM $"+strconv.Itoa(len(q.whereArgs)))
		case baas.QuerySearch:
			if len(query.Values) == 0 {
				continue
			}
			expr := q.whereColumn(query.Attribute)
			q.whereArgs = append(q.whereArgs, "%"+escapeLike(fmt.Sprint(query.Values[0]))+"%")
			q.where = append(q.where, expr+" ILIKE $"+strconv.Itoa(len(q.whereArgs)))
		case baas.QueryOrderAsc, baas.QueryOrderDesc:
			orders = append(orders, query)
		case baas.QueryLimit:
			n, ok := query.IntValue()
			if !ok || n < 0 {
				return nil, fmt.Errorf("invalid limit query %s", query)
			}
			q.limit = n
		case baas.QueryOffset:
			n, ok := query.IntValue()
			if !ok || n < 0 {
				return nil, fmt.Errorf("invalid offset query %s", query)
			}
			q.offset = n
		default:
			return nil, fmt.Errorf("unsupported query method %q", query.Method)
		}
	}

	for _, o := range orders {
		direction := " ASC"
		if o.Method == baas.QueryOrderDesc {
			direction = " DESC"
		}
		q.order = append(q.order, q.orderColumn(o.Attribute)+direction)
	}

	return q, nil
}

func (q *listQuery) whereColumn(attribute string) string {
	if column, ok := systemColumn(attribute); ok {
		return column + "::text"
	}
	q.whereArgs = append(q.whereArgs, attribute)
	return "d.data->>$" + strconv.Itoa(len(q.whereArgs))
}

// orderColumn numbers its parameters after every where parameter.
func (q *listQuery) orderColumn(attribute string) string {
	if column, ok := systemColumn(attribute); ok {
		return column
	}
	q.orderArgs = append(q.orderArgs, attribute)
	return "d.data->>$" + strconv.Itoa(len(q.whereArgs)+len(q.orderArgs))
}

func systemColumn(attribute string) (string, bool) {
	switch attribute {
	case "$id":
		return "d.id", true
	case "$createdAt":
		return "d.created_at", true
	case "$updatedAt":
		return "d.updated_at", true
	}
	return "", false
}

func (q *listQuery) countSQL() string {
	return "SELECT count(*) FROM documents d WHERE " + strings.Join(q.where, " AND ")
}

func (q *listQuery) selectSQL() string {
	order := append(append([]string{}, q.order...), "d.created_at ASC", "d.id ASC")

	return fmt.Sprintf(
		"SELECT %s FROM documents d WHERE %s ORDER BY %s LIMIT %d OFFSET %d",
		documentColumns,
		strings.Join(q.where, " AND "),
		strings.Join(order, ", "),
		q.limit,
		q.offset,
	)
}

func (q *listQuery) selectArgs() []any {
	return append(append([]any{}, q.whereArgs...), q.orderArgs...)
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

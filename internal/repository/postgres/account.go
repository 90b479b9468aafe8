package postgres

import (
	"context"
	"strconv"

	"github.com/BloggingApp/blog-client/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type accountRepo struct {
	db *pgxpool.Pool
}

func newAccountRepo(db *pgxpool.Pool) Account {
	return &accountRepo{
		db: db,
	}
}

const accountColumns = "a.id, a.name, a.email, a.password_hash, a.labels, a.created_at"

func (r *accountRepo) Create(ctx context.Context, account model.Account) (*model.Account, error) {
	if account.Labels == nil {
		account.Labels = []string{}
	}

	if err := r.db.QueryRow(
		ctx,
		"INSERT INTO accounts(id, name, email, password_hash, labels) VALUES($1, $2, $3, $4, $5) RETURNING created_at",
		account.ID,
		account.Name,
		account.Email,
		account.PasswordHash,
		account.Labels,
	).Scan(&account.CreatedAt); err != nil {
		return nil, mapError(err)
	}

	return &account, nil
}

func (r *accountRepo) FindByID(ctx context.Context, id string) (*model.Account, error) {
	return scanAccount(r.db.QueryRow(ctx, "SELECT "+accountColumns+" FROM accounts a WHERE a.id = $1", id))
}

func (r *accountRepo) FindByEmail(ctx context.Context, email string) (*model.Account, error) {
	return scanAccount(r.db.QueryRow(ctx, "SELECT "+accountColumns+" FROM accounts a WHERE a.email = $1", email))
}

func (r *accountRepo) Update(ctx context.Context, id string, updates map[string]interface{}) (*model.Account, error) {
	if len(updates) == 0 {
		return r.FindByID(ctx, id)
	}

	query, args, err := buildAccountUpdate(id, updates)
	if err != nil {
		return nil, err
	}

	return scanAccount(r.db.QueryRow(ctx, query, args...))
}

var allowedAccountFields = map[string]struct{}{
	"name":   {},
	"labels": {},
}

// buildAccountUpdate writes columns in a stable order so equal updates yield
// equal statements.
func buildAccountUpdate(id string, updates map[string]interface{}) (string, []interface{}, error) {
	for field := range updates {
		if _, ok := allowedAccountFields[field]; !ok {
			return "", nil, ErrFieldsNotAllowedToUpdate
		}
	}

	query := "UPDATE accounts a SET "
	args := []interface{}{}
	i := 1

	for _, column := range []string{"name", "labels"} {
		value, ok := updates[column]
		if !ok {
			continue
		}
		query += (column + " = $" + strconv.Itoa(i) + ", ")
		args = append(args, value)
		i++
	}

	query = query[:len(query)-2] + " WHERE a.id = $" + strconv.Itoa(i) + " RETURNING " + accountColumns
	args = append(args, id)

	return query, args, nil
}

func scanAccount(row pgx.Row) (*model.Account, error) {
	var account model.Account
	if err := row.Scan(
		&account.ID,
		&account.Name,
		&account.Email,
		&account.PasswordHash,
		&account.Labels,
		&account.CreatedAt,
	); err != nil {
		return nil, mapError(err)
	}

	return &account, nil
}

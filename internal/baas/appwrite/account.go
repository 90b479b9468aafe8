package appwrite

import (
	"context"
	"net/http"

	"github.com/BloggingApp/blog-client/internal/baas"
)

type account struct {
	conn *conn
}

func (a *account) Create(ctx context.Context, userID, email, password, name string) (*baas.User, error) {
	body := map[string]any{
		"userId":   userID,
		"email":    email,
		"password": password,
		"name":     name,
	}

	var user baas.User
	if err := a.conn.doJSON(ctx, http.MethodPost, "/account", body, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

func (a *account) CreateEmailPasswordSession(ctx context.Context, email, password string) (*baas.Session, error) {
	body := map[string]any{
		"email":    email,
		"password": password,
	}

	var session baas.Session
	if err := a.conn.doJSON(ctx, http.MethodPost, "/account/sessions/email", body, &session); err != nil {
		return nil, err
	}

	return &session, nil
}

func (a *account) Get(ctx context.Context) (*baas.User, error) {
	var user baas.User
	if err := a.conn.doJSON(ctx, http.MethodGet, "/account", nil, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

func (a *account) DeleteSessions(ctx context.Context) error {
	if err := a.conn.doJSON(ctx, http.MethodDelete, "/account/sessions", nil, nil); err != nil {
		return err
	}

	a.conn.mu.Lock()
	a.conn.fallbackCookies = ""
	a.conn.mu.Unlock()

	return nil
}

func (a *account) UpdateName(ctx context.Context, name string) (*baas.User, error) {
	var user baas.User
	if err := a.conn.doJSON(ctx, http.MethodPatch, "/account/name", map[string]any{"name": name}, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

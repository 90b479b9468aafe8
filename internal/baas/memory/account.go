package memory

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/BloggingApp/blog-client/internal/baas"
	"golang.org/x/crypto/bcrypt"
)

const (
	sessionTTL        = 365 * 24 * time.Hour
	minPasswordLength = 8
)

type account struct {
	backend *Backend

	mu        sync.Mutex
	sessionID string
}

func (a *account) Create(ctx context.Context, userID, email, password, name string) (*baas.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	b := a.backend
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.failure(OpAccountCreate); err != nil {
		return nil, err
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if _, exists := b.emails[email]; exists {
		return nil, baas.NewError(http.StatusConflict, baas.TypeUserAlreadyExists, "A user with the same id, email, or phone already exists in this project.")
	}
	if len(password) < minPasswordLength {
		return nil, baas.NewError(http.StatusBadRequest, baas.TypeUserPasswordInvalid, "Invalid `password` param: Password must be at least 8 characters")
	}

	u := &user{
		User: baas.User{
			ID:           baas.ResolveID(userID),
			Name:         name,
			Email:        email,
			Labels:       []string{},
			Status:       true,
			Registration: b.now(),
		},
		passwordHash: hash,
	}
	b.users[u.ID] = u
	b.emails[email] = u.ID

	created := u.User
	return &created, nil
}

func (a *account) CreateEmailPasswordSession(ctx context.Context, email, password string) (*baas.Session, error) {
	b := a.backend
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.failure(OpAccountCreateSession); err != nil {
		return nil, err
	}

	invalid := baas.NewError(http.StatusUnauthorized, baas.TypeUserInvalidCreds, "Invalid credentials. Please check the email and password.")

	id, ok := b.emails[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return nil, invalid
	}
	u := b.users[id]
	if err := bcrypt.CompareHashAndPassword(u.passwordHash, []byte(password)); err != nil {
		return nil, invalid
	}

	session := &baas.Session{
		ID:       baas.NewID(),
		UserID:   u.ID,
		Expire:   b.now().Add(sessionTTL),
		Provider: "email",
	}
	b.sessions[session.ID] = session

	a.mu.Lock()
	a.sessionID = session.ID
	a.mu.Unlock()

	out := *session
	out.Current = true
	return &out, nil
}

func (a *account) Get(ctx context.Context) (*baas.User, error) {
	b := a.backend
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.failure(OpAccountGet); err != nil {
		return nil, err
	}

	u, err := a.currentUser()
	if err != nil {
		return nil, err
	}

	out := u.User
	return &out, nil
}

func (a *account) DeleteSessions(ctx context.Context) error {
	b := a.backend
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.failure(OpAccountDeleteSessions); err != nil {
		return err
	}

	u, err := a.currentUser()
	if err != nil {
		return err
	}

	for id, s := range b.sessions {
		if s.UserID == u.ID {
			delete(b.sessions, id)
		}
	}

	a.mu.Lock()
	a.sessionID = ""
	a.mu.Unlock()

	return nil
}

func (a *account) UpdateName(ctx context.Context, name string) (*baas.User, error) {
	b := a.backend
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.failure(OpAccountUpdateName); err != nil {
		return nil, err
	}

	u, err := a.currentUser()
	if err != nil {
		return nil, err
	}
	u.Name = name

	out := u.User
	return &out, nil
}

// currentUser must be called with the backend lock held.
func (a *account) currentUser() (*user, error) {
	a.mu.Lock()
	sessionID := a.sessionID
	a.mu.Unlock()

	unauthorized := baas.NewError(http.StatusUnauthorized, baas.TypeUserUnauthorized, "User (role: guests) missing scope (account)")

	session, ok := a.backend.sessions[sessionID]
	if !ok || a.backend.now().After(session.Expire) {
		return nil, unauthorized
	}

	u, ok := a.backend.users[session.UserID]
	if !ok {
		return nil, unauthorized
	}

	return u, nil
}

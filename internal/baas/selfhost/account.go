package selfhost

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/BloggingApp/blog-client/internal/baas"
	"github.com/BloggingApp/blog-client/internal/model"
	"github.com/BloggingApp/blog-client/internal/repository/postgres"
	"github.com/BloggingApp/blog-client/internal/repository/redisrepo"
	"github.com/BloggingApp/blog-client/pkg/utils"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

var (
	errUnauthorized = baas.NewError(http.StatusUnauthorized, baas.TypeUserUnauthorized, "User (role: guests) missing scope (account)")
	errInvalidCreds = baas.NewError(http.StatusUnauthorized, baas.TypeUserInvalidCreds, "Invalid credentials. Please check the email and password.")
)

// account holds the session secret of this client. It is a signed token
// naming the user and the Redis session behind it.
type account struct {
	stores Stores
	secret []byte
	ttl    time.Duration
	now    func() time.Time

	mu    sync.Mutex
	token string
}

func (a *account) Create(ctx context.Context, userID, email, password, name string) (*baas.User, error) {
	if len(password) < minPasswordLength {
		return nil, baas.NewError(http.StatusBadRequest, baas.TypeUserPasswordInvalid, "Invalid `password` param: Password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, internalError(err)
	}

	created, err := a.stores.Accounts.Create(ctx, model.Account{
		ID:           baas.ResolveID(userID),
		Name:         name,
		Email:        normalizeEmail(email),
		PasswordHash: hash,
	})
	if errors.Is(err, postgres.ErrDuplicate) {
		return nil, baas.NewError(http.StatusConflict, baas.TypeUserAlreadyExists, "A user with the same id, email, or phone already exists in this project.")
	}
	if err != nil {
		return nil, internalError(err)
	}

	return toUser(created), nil
}

func (a *account) CreateEmailPasswordSession(ctx context.Context, email, password string) (*baas.Session, error) {
	acc, err := a.stores.Accounts.FindByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, postgres.ErrNotFound) {
		return nil, errInvalidCreds
	}
	if err != nil {
		return nil, internalError(err)
	}
	if err := bcrypt.CompareHashAndPassword(acc.PasswordHash, []byte(password)); err != nil {
		return nil, errInvalidCreds
	}

	record := redisrepo.SessionRecord{
		ID:       baas.NewID(),
		UserID:   acc.ID,
		Provider: "email",
		Expire:   a.now().Add(a.ttl).UTC(),
	}
	if err := a.stores.Sessions.Create(ctx, record); err != nil {
		return nil, internalError(err)
	}

	token, err := utils.EncodeJWT(jwt.MapClaims{
		"sub": record.UserID,
		"sid": record.ID,
		"exp": record.Expire.Unix(),
	}, a.secret)
	if err != nil {
		return nil, internalError(err)
	}

	a.mu.Lock()
	a.token = token
	a.mu.Unlock()

	return &baas.Session{
		ID:       record.ID,
		UserID:   record.UserID,
		Expire:   record.Expire,
		Provider: record.Provider,
		Current:  true,
		Secret:   token,
	}, nil
}

func (a *account) Get(ctx context.Context) (*baas.User, error) {
	acc, err := a.current(ctx)
	if err != nil {
		return nil, err
	}

	return toUser(acc), nil
}

// DeleteSessions ends every session of the current user.
func (a *account) DeleteSessions(ctx context.Context) error {
	acc, err := a.current(ctx)
	if err != nil {
		return err
	}

	if err := a.stores.Sessions.DeleteAll(ctx, acc.ID); err != nil {
		return internalError(err)
	}

	a.mu.Lock()
	a.token = ""
	a.mu.Unlock()

	return nil
}

func (a *account) UpdateName(ctx context.Context, name string) (*baas.User, error) {
	acc, err := a.current(ctx)
	if err != nil {
		return nil, err
	}

	updated, err := a.stores.Accounts.Update(ctx, acc.ID, map[string]interface{}{"name": name})
	if errors.Is(err, postgres.ErrNotFound) {
		return nil, errUnauthorized
	}
	if err != nil {
		return nil, internalError(err)
	}

	return toUser(updated), nil
}

// current resolves the held token to the account of its live session.
func (a *account) current(ctx context.Context) (*model.Account, error) {
	a.mu.Lock()
	token := a.token
	a.mu.Unlock()

	if token == "" {
		return nil, errUnauthorized
	}

	claims, err := utils.DecodeJWT(token, a.secret)
	if err != nil {
		return nil, errUnauthorized
	}
	sessionID, _ := claims["sid"].(string)
	userID, _ := claims["sub"].(string)

	session, err := a.stores.Sessions.Find(ctx, sessionID)
	if errors.Is(err, redisrepo.ErrNotFound) {
		return nil, errUnauthorized
	}
	if err != nil {
		return nil, internalError(err)
	}
	if session.UserID != userID {
		return nil, errUnauthorized
	}

	acc, err := a.stores.Accounts.FindByID(ctx, session.UserID)
	if errors.Is(err, postgres.ErrNotFound) {
		return nil, errUnauthorized
	}
	if err != nil {
		return nil, internalError(err)
	}

	return acc, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func toUser(acc *model.Account) *baas.User {
	labels := acc.Labels
	if labels == nil {
		labels = []string{}
	}

	return &baas.User{
		ID:           acc.ID,
		Name:         acc.Name,
		Email:        acc.Email,
		Labels:       labels,
		Status:       true,
		Registration: acc.CreatedAt,
	}
}

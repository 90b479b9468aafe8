package service

import (
	"context"
	"errors"

	"github.com/BloggingApp/blog-client/internal/baas"
	"github.com/BloggingApp/blog-client/internal/dto"
	"github.com/BloggingApp/blog-client/internal/model"
	"github.com/BloggingApp/blog-client/internal/store"
	"go.uber.org/zap"
)

type authService struct {
	logger  *zap.Logger
	account baas.Account
	state   *store.Store
}

func newAuthService(logger *zap.Logger, account baas.Account, state *store.Store) Auth {
	return &authService{
		logger:  logger,
		account: account,
		state:   state,
	}
}

// CreateAccount registers the user and signs them in with the same
// credentials. A failure after the account exists also matches
// ErrSignInAfterSignup.
func (s *authService) CreateAccount(ctx context.Context, form dto.SignupForm) (*model.Session, error) {
	if _, err := s.account.Create(ctx, baas.IDUnique, form.Email, form.Password, form.Name); err != nil {
		s.logger.Sugar().Errorf("failed to create account(%s): %s", form.Email, err.Error())
		return nil, wrap(ErrAccountCreation, "create account", err)
	}

	session, err := s.Login(ctx, dto.LoginForm{Email: form.Email, Password: form.Password})
	if err != nil {
		return nil, &Error{
			Kind:    ErrAccountCreation,
			Message: "account created but sign-in failed: " + err.Error(),
			cause:   errors.Join(ErrSignInAfterSignup, err),
		}
	}

	return session, nil
}

func (s *authService) Login(ctx context.Context, form dto.LoginForm) (*model.Session, error) {
	session, err := s.account.CreateEmailPasswordSession(ctx, form.Email, form.Password)
	if err != nil {
		s.logger.Sugar().Errorf("failed to create session for %s: %s", form.Email, err.Error())
		return nil, wrap(ErrAuthentication, "login", err)
	}

	identity := s.CurrentIdentity(ctx)
	if identity == nil {
		// Drop the session so the backend and the state store agree.
		if err := s.account.DeleteSessions(ctx); err != nil {
			s.logger.Sugar().Warnf("failed to delete unconfirmed session for %s: %s", form.Email, err.Error())
		}
		return nil, newError(ErrAuthentication, "failed to login: session was not accepted by the backend")
	}
	s.state.Dispatch(store.SetIdentity(identity))

	return toSession(session), nil
}

// CurrentIdentity returns nil whenever there is no usable session.
func (s *authService) CurrentIdentity(ctx context.Context) *model.Identity {
	user, err := s.account.Get(ctx)
	if err != nil {
		if !baas.IsUnauthorized(err) {
			s.logger.Sugar().Warnf("failed to get current user: %s", err.Error())
		}
		return nil
	}

	return toIdentity(user)
}

// Restore mirrors the backend session into the state store at startup.
func (s *authService) Restore(ctx context.Context) *model.Identity {
	identity := s.CurrentIdentity(ctx)
	if identity == nil {
		s.state.Dispatch(store.ClearIdentity())
		return nil
	}

	s.state.Dispatch(store.SetIdentity(identity))
	return identity
}

// Logout ends every session of the user, not only this client's.
func (s *authService) Logout(ctx context.Context) error {
	if err := s.account.DeleteSessions(ctx); err != nil {
		s.logger.Sugar().Errorf("failed to delete sessions: %s", err.Error())
		return wrap(ErrLogout, "logout", err)
	}

	s.state.Dispatch(store.ClearIdentity())
	return nil
}

func (s *authService) Forget() {
	s.state.Dispatch(store.ClearIdentity())
}

func (s *authService) UpdateName(ctx context.Context, form dto.ProfileForm) (*model.Identity, error) {
	user, err := s.account.UpdateName(ctx, form.Name)
	if err != nil {
		s.logger.Sugar().Errorf("failed to update account name: %s", err.Error())
		if baas.IsUnauthorized(err) {
			return nil, wrap(ErrAuthentication, "update profile", err)
		}
		return nil, wrap(ErrUpdate, "update profile", err)
	}

	identity := toIdentity(user)
	s.state.Dispatch(store.SetIdentity(identity))

	return identity, nil
}

func toIdentity(user *baas.User) *model.Identity {
	role := model.DefaultRole
	if len(user.Labels) > 0 && user.Labels[0] != "" {
		role = user.Labels[0]
	}

	return &model.Identity{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  role,
	}
}

func toSession(session *baas.Session) *model.Session {
	return &model.Session{
		ID:       session.ID,
		UserID:   session.UserID,
		Expire:   session.Expire,
		Provider: session.Provider,
		Current:  session.Current,
	}
}

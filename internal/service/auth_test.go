package service

import (
	"context"
	"errors"
	"testing"

	"github.com/BloggingApp/blog-client/internal/baas"
	"github.com/BloggingApp/blog-client/internal/baas/memory"
	"github.com/BloggingApp/blog-client/internal/dto"
	"github.com/BloggingApp/blog-client/internal/model"
	"github.com/BloggingApp/blog-client/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuth_CreateAccountThenCurrentIdentity(t *testing.T) {
	ctx := context.Background()
	env := setupServiceTest(t)

	session, err := env.svc.Auth.CreateAccount(ctx, dto.SignupForm{
		Name:     "New User",
		Email:    "new@example.com",
		Password: testPassword,
	})
	require.NoError(t, err)
	assert.True(t, session.Current)

	identity := env.svc.Auth.CurrentIdentity(ctx)
	require.NotNil(t, identity)
	assert.Equal(t, "new@example.com", identity.Email)
	assert.Equal(t, "New User", identity.Name)
	assert.Equal(t, model.DefaultRole, identity.Role)

	st := env.state.State()
	assert.True(t, st.Status)
	assert.Equal(t, identity, st.Identity)
}

func TestAuth_CreateAccountDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	env := setupServiceTest(t)
	env.seedAccount(t, testEmail, testPassword, "User")

	_, err := env.svc.Auth.CreateAccount(ctx, dto.SignupForm{Name: "Other", Email: testEmail, Password: testPassword})
	require.ErrorIs(t, err, ErrAccountCreation)
	assert.NotErrorIs(t, err, ErrSignInAfterSignup)
	assert.Equal(t, "failed to create account: A user with the same id, email, or phone already exists in this project.", err.Error())
	assert.False(t, env.state.State().Status)
}

func TestAuth_CreateAccountSignInFails(t *testing.T) {
	ctx := context.Background()
	env := setupServiceTest(t)
	boom := errors.New("backend unreachable")
	env.backend.Fail(memory.OpAccountCreateSession, boom)

	_, err := env.svc.Auth.CreateAccount(ctx, dto.SignupForm{Name: "User", Email: testEmail, Password: testPassword})
	require.ErrorIs(t, err, ErrAccountCreation)
	assert.ErrorIs(t, err, ErrSignInAfterSignup)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "account created but sign-in failed: failed to login: backend unreachable", err.Error())
	assert.False(t, env.state.State().Status)

	// The account exists: a later login works.
	env.backend.Recover(memory.OpAccountCreateSession)
	_, err = env.svc.Auth.Login(ctx, dto.LoginForm{Email: testEmail, Password: testPassword})
	assert.NoError(t, err)
}

func TestAuth_LoginSeededAccount(t *testing.T) {
	ctx := context.Background()
	env := setupServiceTest(t)
	env.seedAccount(t, testEmail, testPassword, "User")

	_, err := env.svc.Auth.Login(ctx, dto.LoginForm{Email: "user@example.com", Password: "Secret123!"})
	require.NoError(t, err)

	st := env.state.State()
	assert.True(t, st.Status)
	require.NotNil(t, st.Identity)
	assert.Equal(t, "user@example.com", st.Identity.Email)
}

func TestAuth_LoginInvalidCredentials(t *testing.T) {
	ctx := context.Background()
	env := setupServiceTest(t)
	env.seedAccount(t, testEmail, testPassword, "User")

	_, err := env.svc.Auth.Login(ctx, dto.LoginForm{Email: testEmail, Password: "wrong-password"})
	require.ErrorIs(t, err, ErrAuthentication)

	var svcErr *Error
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, ErrAuthentication, svcErr.Kind)
	assert.True(t, baas.IsUnauthorized(err))
	assert.Equal(t, store.State{}, env.state.State())
}

func TestAuth_LoginUnreachableBackend(t *testing.T) {
	ctx := context.Background()
	env := setupServiceTest(t)
	env.backend.Fail(memory.OpAccountCreateSession, baas.NewError(0, baas.TypeUnreachable, "dial tcp: connection refused"))

	_, err := env.svc.Auth.Login(ctx, dto.LoginForm{Email: testEmail, Password: testPassword})
	require.ErrorIs(t, err, ErrAuthentication)
	assert.Equal(t, "failed to login: dial tcp: connection refused", err.Error())
}

func TestAuth_LoginUnconfirmedSessionIsDeleted(t *testing.T) {
	ctx := context.Background()
	env := setupServiceTest(t)
	env.seedAccount(t, testEmail, testPassword, "User")
	env.backend.Fail(memory.OpAccountGet, errors.New("backend unreachable"))

	_, err := env.svc.Auth.Login(ctx, dto.LoginForm{Email: testEmail, Password: testPassword})
	require.ErrorIs(t, err, ErrAuthentication)
	assert.Equal(t, store.State{}, env.state.State())

	env.backend.Recover(memory.OpAccountGet)
	assert.Nil(t, env.svc.Auth.CurrentIdentity(ctx))
}

func TestAuth_CurrentIdentityNeverFails(t *testing.T) {
	ctx := context.Background()
	env := setupServiceTest(t)

	assert.Nil(t, env.svc.Auth.CurrentIdentity(ctx))

	env.signIn(t)
	env.backend.Fail(memory.OpAccountGet, errors.New("backend unreachable"))
	assert.Nil(t, env.svc.Auth.CurrentIdentity(ctx))
}

func TestAuth_LogoutTwiceTransitionsOnce(t *testing.T) {
	ctx := context.Background()
	env := setupServiceTest(t)
	env.signIn(t)

	var toAnonymous int
	env.state.Subscribe(func(prev, next store.State) {
		if prev.Status && !next.Status {
			toAnonymous++
		}
	})

	require.NoError(t, env.svc.Auth.Logout(ctx))
	assert.Equal(t, store.State{}, env.state.State())

	err := env.svc.Auth.Logout(ctx)
	assert.ErrorIs(t, err, ErrLogout)
	assert.Equal(t, store.State{}, env.state.State())

	assert.Equal(t, 1, toAnonymous)
	assert.Nil(t, env.svc.Auth.CurrentIdentity(ctx))
}

func TestAuth_LogoutFailureKeepsState(t *testing.T) {
	ctx := context.Background()
	env := setupServiceTest(t)
	identity := env.signIn(t)
	env.backend.Fail(memory.OpAccountDeleteSessions, errors.New("backend unreachable"))

	err := env.svc.Auth.Logout(ctx)
	require.ErrorIs(t, err, ErrLogout)
	assert.Equal(t, "failed to logout: backend unreachable", err.Error())

	st := env.state.State()
	assert.True(t, st.Status)
	assert.Equal(t, identity, st.Identity)

	env.svc.Auth.Forget()
	assert.Equal(t, store.State{}, env.state.State())
}

func TestAuth_RestoreUsesFirstLabelAsRole(t *testing.T) {
	ctx := context.Background()
	env := setupServiceTest(t)

	assert.Nil(t, env.svc.Auth.Restore(ctx))
	assert.False(t, env.state.State().Status)

	env.signIn(t)
	require.NoError(t, env.backend.SetLabels(testEmail, model.RoleAdmin, "editor"))

	identity := env.svc.Auth.Restore(ctx)
	require.NotNil(t, identity)
	assert.Equal(t, model.RoleAdmin, identity.Role)
	assert.Equal(t, model.RoleAdmin, env.state.State().Identity.Role)
}

func TestAuth_UpdateName(t *testing.T) {
	ctx := context.Background()
	env := setupServiceTest(t)

	_, err := env.svc.Auth.UpdateName(ctx, dto.ProfileForm{Name: "Nobody"})
	assert.ErrorIs(t, err, ErrAuthentication)

	env.signIn(t)
	identity, err := env.svc.Auth.UpdateName(ctx, dto.ProfileForm{Name: "Renamed"})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", identity.Name)
	assert.Equal(t, "Renamed", env.state.State().Identity.Name)
}

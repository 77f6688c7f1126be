package client

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dmitrijs2005/profilesync/internal/client/localstore"
	"github.com/dmitrijs2005/profilesync/internal/client/models"
	"github.com/dmitrijs2005/profilesync/internal/client/session"
	"github.com/dmitrijs2005/profilesync/internal/common"
	"github.com/dmitrijs2005/profilesync/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLocalClient(t *testing.T) *LocalClient {
	t.Helper()
	db, err := InitDatabase(context.Background(), filepath.Join(t.TempDir(), "local.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	codec, err := session.NewCodec("test-secret")
	require.NoError(t, err)
	return NewLocalClient(localstore.New(db), codec, logging.Discard())
}

func register(t *testing.T, c *LocalClient, email, username, password string) *models.AuthResponse {
	t.Helper()
	resp, err := c.Register(context.Background(), models.RegisterRequest{Email: email, Username: username, Password: password})
	require.NoError(t, err)
	return resp
}

func TestLocalClient_RegisterAndLogin(t *testing.T) {
	c := newLocalClient(t)
	ctx := context.Background()

	reg := register(t, c, "a@b.com", "abc", "pw")
	require.NotNil(t, reg.User)
	assert.True(t, strings.HasPrefix(reg.User.ID, "user_"))
	assert.Equal(t, "a@b.com", reg.User.Email)
	assert.NotEmpty(t, reg.AccessToken)

	login, err := c.Login(ctx, models.LoginRequest{Username: "abc", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, login.User.ID)
	assert.NotEqual(t, reg.AccessToken, login.AccessToken)

	stored, err := c.store.GetUser(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, login.AccessToken, stored.AccessToken)
	assert.False(t, stored.LastLogin.IsZero())
}

func TestLocalClient_UniqueIDs(t *testing.T) {
	c := newLocalClient(t)
	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		name := strings.Repeat("u", 3+i)
		resp := register(t, c, name+"@x.io", name, "pw")
		assert.False(t, seen[resp.User.ID])
		seen[resp.User.ID] = true
	}
}

func TestLocalClient_RegisterDuplicate(t *testing.T) {
	c := newLocalClient(t)
	ctx := context.Background()
	register(t, c, "a@b.com", "abc", "pw")

	_, err := c.Register(ctx, models.RegisterRequest{Email: "a@b.com", Username: "other", Password: "pw"})
	require.ErrorIs(t, err, common.ErrUserAlreadyExists)

	_, err = c.Register(ctx, models.RegisterRequest{Email: "new@b.com", Username: "abc", Password: "pw"})
	require.ErrorIs(t, err, common.ErrUserAlreadyExists)
}

func TestLocalClient_LoginFailures(t *testing.T) {
	c := newLocalClient(t)
	ctx := context.Background()
	register(t, c, "a@b.com", "abc", "pw")

	_, err := c.Login(ctx, models.LoginRequest{Email: "a@b.com", Password: "nope"})
	require.ErrorIs(t, err, common.ErrInvalidCredentials)

	_, err = c.Login(ctx, models.LoginRequest{Email: "ghost@b.com", Password: "pw"})
	require.ErrorIs(t, err, common.ErrUserNotFound)
}

func TestLocalClient_CheckUserExists(t *testing.T) {
	c := newLocalClient(t)
	register(t, c, "a@b.com", "abc", "pw")

	for id, want := range map[string]bool{"a@b.com": true, "abc": true, "zzz": false, "": false} {
		got, err := c.CheckUserExists(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, want, got, id)
	}
}

func TestLocalClient_Profiles(t *testing.T) {
	c := newLocalClient(t)
	ctx := context.Background()
	reg := register(t, c, "a@b.com", "abc", "pw")
	s := session.Session{Token: reg.AccessToken, UserID: reg.User.ID}

	got, err := c.GetProfile(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultProfile(), got.Data)

	in := models.ProfileInput{Name: "Ann", Height: "170", Interests: []any{"music", 7}}.Normalize()
	created, err := c.CreateProfile(ctx, s, in)
	require.NoError(t, err)
	assert.Equal(t, MessageProfileCreated, created.Message)

	got, err = c.GetProfile(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, in, got.Data)

	feet := models.Profile{HeightUnit: models.HeightUnitFeet, HeightFeet: 5, HeightInches: 11}
	updated, err := c.UpdateProfile(ctx, s, feet)
	require.NoError(t, err)
	assert.Equal(t, MessageProfileUpdated, updated.Message)

	got, err = c.GetProfile(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, models.HeightUnitFeet, got.Data.HeightUnit)
	assert.Equal(t, 5.0, got.Data.HeightFeet)
	assert.Equal(t, 11.0, got.Data.HeightInches)
	assert.Empty(t, got.Data.Name)
}

func TestLocalClient_ProfileRequiresToken(t *testing.T) {
	c := newLocalClient(t)
	ctx := context.Background()

	_, err := c.GetProfile(ctx, session.Session{})
	require.ErrorIs(t, err, common.ErrUnauthorized)

	_, err = c.CreateProfile(ctx, session.Session{Token: "not-a-token"}, models.DefaultProfile())
	require.ErrorIs(t, err, common.ErrUnauthorized)
}

func TestLocalClient_TestConnection(t *testing.T) {
	c := newLocalClient(t)
	assert.NoError(t, c.TestConnection(context.Background()))
	assert.Equal(t, ModeMock, c.Mode())
}

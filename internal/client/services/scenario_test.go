package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/profilesync/internal/client/client"
	"github.com/dmitrijs2005/profilesync/internal/client/config"
	"github.com/dmitrijs2005/profilesync/internal/client/models"
	"github.com/dmitrijs2005/profilesync/internal/common"
	"github.com/dmitrijs2005/profilesync/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockService(t *testing.T) IdentityService {
	t.Helper()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.UseMockAPI = true
	cfg.DatabasePath = filepath.Join(t.TempDir(), "mock.db")

	db, err := client.InitDatabase(context.Background(), cfg.DatabasePath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	svc, err := New(cfg, db, logging.Discard())
	require.NoError(t, err)
	require.Equal(t, client.ModeMock, svc.Mode())
	return svc
}

func TestNew_SelectsRemoteBackend(t *testing.T) {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.APIBaseURL = "http://127.0.0.1:1"

	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "remote.db"))
	require.NoError(t, err)
	defer db.Close()

	svc, err := New(cfg, db, logging.Discard())
	require.NoError(t, err)
	assert.Equal(t, client.ModeRemote, svc.Mode())
}

func TestMock_RegisterLoginProfileScenario(t *testing.T) {
	svc := newMockService(t)
	ctx := context.Background()

	reg, err := svc.Register(ctx, models.RegisterRequest{Email: "a@b.com", Username: "abc", Password: "pw1"})
	require.NoError(t, err)
	require.NotNil(t, reg.User)

	assert.True(t, svc.CheckUserExists(ctx, "a@b.com"))
	assert.True(t, svc.CheckUserExists(ctx, "abc"))
	assert.False(t, svc.CheckUserExists(ctx, "xyz"))

	login, err := svc.Login(ctx, models.LoginRequest{Username: "abc", Password: "pw1"})
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, login.User.ID)
	assert.NotEqual(t, reg.AccessToken, login.AccessToken)

	s, err := svc.Session(ctx)
	require.NoError(t, err)
	assert.Equal(t, login.AccessToken, s.Token)
	assert.Equal(t, reg.User.ID, s.UserID)

	got, err := svc.GetProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultProfile(), got.Data)

	created, err := svc.CreateProfile(ctx, models.ProfileInput{
		Name: "Ann", Height: "170", Weight: 60, Interests: []any{"music"}, HeightUnit: "cm",
	})
	require.NoError(t, err)
	assert.Equal(t, client.MessageProfileCreated, created.Message)

	got, err = svc.GetProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, created.Data, got.Data)
	assert.Equal(t, 170.0, got.Data.Height)
}

func TestMock_FeetInchesRoundTrip(t *testing.T) {
	svc := newMockService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, models.RegisterRequest{Email: "f@t.io", Username: "feet", Password: "pw"})
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(ctx, models.ProfileInput{HeightUnit: "feet", HeightFeet: "5", HeightInches: 11})
	require.NoError(t, err)
	assert.Equal(t, client.MessageProfileUpdated, updated.Message)

	got, err := svc.GetProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.HeightUnitFeet, got.Data.HeightUnit)
	assert.Equal(t, 5.0, got.Data.HeightFeet)
	assert.Equal(t, 11.0, got.Data.HeightInches)
}

func TestMock_AuthFailures(t *testing.T) {
	svc := newMockService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, models.RegisterRequest{Email: "a@b.com", Username: "abc", Password: "pw"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, models.LoginRequest{Email: "a@b.com", Password: "wrong"})
	require.ErrorIs(t, err, common.ErrInvalidCredentials)
	assert.Equal(t, "INVALID_CREDENTIALS", common.Code(err))

	_, err = svc.Login(ctx, models.LoginRequest{Email: "nobody@b.com", Password: "pw"})
	require.ErrorIs(t, err, common.ErrUserNotFound)

	_, err = svc.Register(ctx, models.RegisterRequest{Email: "other@b.com", Username: "abc", Password: "pw"})
	require.ErrorIs(t, err, common.ErrUserAlreadyExists)
}

func TestMock_UniqueIDsAcrossRegistrations(t *testing.T) {
	svc := newMockService(t)
	ctx := context.Background()

	a, err := svc.Register(ctx, models.RegisterRequest{Email: "one@b.com", Username: "one", Password: "pw"})
	require.NoError(t, err)
	b, err := svc.Register(ctx, models.RegisterRequest{Email: "two@b.com", Username: "two", Password: "pw"})
	require.NoError(t, err)
	assert.NotEqual(t, a.User.ID, b.User.ID)
}

func TestMock_ProfileAfterLogout(t *testing.T) {
	svc := newMockService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, models.RegisterRequest{Email: "a@b.com", Username: "abc", Password: "pw"})
	require.NoError(t, err)
	require.NoError(t, svc.Logout(ctx))

	_, err = svc.GetProfile(ctx)
	require.ErrorIs(t, err, common.ErrUnauthorized)
	assert.True(t, svc.TestConnection(ctx))
}

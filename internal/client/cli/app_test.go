package cli

import (
	"bufio"
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dmitrijs2005/profilesync/internal/client/client"
	"github.com/dmitrijs2005/profilesync/internal/client/config"
	"github.com/dmitrijs2005/profilesync/internal/client/monitor"
	"github.com/dmitrijs2005/profilesync/internal/client/services"
	"github.com/dmitrijs2005/profilesync/internal/common"
	"github.com/dmitrijs2005/profilesync/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedStatus monitor.Status

func (s fixedStatus) Status() monitor.Status { return monitor.Status(s) }

// newMockApp builds an App over the local backend that reads its answers
// from input.
func newMockApp(t *testing.T, input string) *App {
	t.Helper()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.UseMockAPI = true
	cfg.DatabasePath = filepath.Join(t.TempDir(), "cli.db")

	db, err := client.InitDatabase(context.Background(), cfg.DatabasePath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	identity, err := services.New(cfg, db, logging.Discard())
	require.NoError(t, err)

	m := monitor.New(cfg, logging.Discard())
	return &App{
		config:   cfg,
		identity: identity,
		monitor:  m,
		status:   m,
		log:      logging.Discard(),
		db:       db,
		reader:   bufio.NewReader(strings.NewReader(input)),
		out:      io.Discard,
	}
}

func stubPassword(t *testing.T, pw string) {
	t.Helper()
	orig := getPassword
	getPassword = func(io.Writer) ([]byte, error) { return []byte(pw), nil }
	t.Cleanup(func() { getPassword = orig })
}

func TestApp_RegisterLoginProfileFlow(t *testing.T) {
	out := captureOutput(t)
	stubPassword(t, "pw1")
	ctx := context.Background()

	input := strings.Join([]string{
		// register
		"a@b.com", "abc",
		// login
		"abc",
		// exists
		"a@b.com",
		// createprofile: name, birthday, gender, unit, height, weight, interests, image
		"Ann", "1990-01-02", "female", "cm", "170", "60", "chess, go", "",
		// updateprofile: keep everything but the weight
		"", "", "", "", "", "61", "", "",
	}, "\n") + "\n"
	a := newMockApp(t, input)

	assert.False(t, a.isLoggedIn())
	require.NoError(t, a.Register(ctx))
	assert.Equal(t, "abc", a.userName)

	a.userName = ""
	require.NoError(t, a.Login(ctx))
	assert.Equal(t, "abc", a.userName)
	assert.True(t, a.isLoggedIn())

	require.NoError(t, a.Exists(ctx))
	require.NoError(t, a.CreateProfile(ctx))
	require.NoError(t, a.UpdateProfile(ctx))

	resp, err := a.identity.GetProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ann", resp.Data.Name)
	assert.Equal(t, "1990-01-02", resp.Data.Birthday)
	assert.Equal(t, 170.0, resp.Data.Height)
	assert.Equal(t, 61.0, resp.Data.Weight)
	assert.Equal(t, []string{"chess", "go"}, resp.Data.Interests)

	require.NoError(t, a.Profile(ctx))

	joined := strings.Join(*out, "")
	assert.Contains(t, joined, "Registered abc (id ")
	assert.Contains(t, joined, "Login successful")
	assert.Contains(t, joined, "a@b.com is registered")
	assert.Contains(t, joined, client.MessageProfileCreated)
	assert.Contains(t, joined, client.MessageProfileUpdated)
	assert.Contains(t, joined, "Interests: chess, go")
}

func TestApp_FeetProfile(t *testing.T) {
	captureOutput(t)
	stubPassword(t, "pw1")
	ctx := context.Background()

	input := strings.Join([]string{
		"a@b.com", "abc",
		"", "", "", "feet", "5", "11", "", "", "",
	}, "\n") + "\n"
	a := newMockApp(t, input)

	require.NoError(t, a.Register(ctx))
	require.NoError(t, a.CreateProfile(ctx))

	resp, err := a.identity.GetProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "feet", resp.Data.HeightUnit)
	assert.Equal(t, 5.0, resp.Data.HeightFeet)
	assert.Equal(t, 11.0, resp.Data.HeightInches)
	assert.Contains(t, formatProfile(resp.Data), "Height:    5 ft 11 in")
}

func TestApp_ErrorsCarryCodes(t *testing.T) {
	captureOutput(t)
	stubPassword(t, "wrong")
	ctx := context.Background()

	a := newMockApp(t, "nobody@x.com\nbad-email\nab\n")

	err := a.Login(ctx)
	require.Error(t, err)
	assert.Equal(t, common.ErrUserNotFound.Error(), common.Code(err))

	err = a.Register(ctx)
	require.Error(t, err)
	assert.Equal(t, common.ErrValidation.Error(), common.Code(err))

	err = a.Profile(ctx)
	require.Error(t, err)
	assert.Equal(t, common.ErrUnauthorized.Error(), common.Code(err))
}

func TestApp_LogoutStatusPing(t *testing.T) {
	out := captureOutput(t)
	stubPassword(t, "pw1")
	ctx := context.Background()

	a := newMockApp(t, "a@b.com\nabc\n")
	require.NoError(t, a.Register(ctx))

	require.NoError(t, a.Status(ctx))
	require.NoError(t, a.Ping(ctx))
	require.NoError(t, a.Logout(ctx))
	assert.False(t, a.isLoggedIn())
	require.NoError(t, a.Status(ctx))

	joined := strings.Join(*out, "")
	assert.Contains(t, joined, "Backend: mock")
	assert.Contains(t, joined, "Connectivity: checking (last checked never)")
	assert.Contains(t, joined, "API reachable")
	assert.Contains(t, joined, "Logged out")
	assert.Contains(t, joined, "Session: none")
}

func TestApp_GetStatus(t *testing.T) {
	a := &App{status: fixedStatus(monitor.StatusOnline)}
	assert.Equal(t, "(online)", a.getStatus())

	a.userName = "abc"
	assert.Equal(t, "(abc online)", a.getStatus())

	a = &App{}
	assert.Equal(t, "", a.getStatus())
}

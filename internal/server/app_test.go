package server

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/goldmanager/internal/common"
	"github.com/dmitrijs2005/goldmanager/internal/logging"
	"github.com/dmitrijs2005/goldmanager/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.EndpointAddrHTTP = "127.0.0.1:0"
	c.EndpointAddrGRPC = "127.0.0.1:0"
	c.KeySweepInterval = 10 * time.Millisecond
	return c
}

func TestNewApp_BootstrapsAdmin(t *testing.T) {
	c := testConfig()
	c.AdminPassword = "secret"

	app, err := newApp(context.Background(), c, logging.Nop{})
	require.NoError(t, err)

	n, err := app.userService.Count(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	tok, err := app.authenticator.Authenticate(context.Background(), "admin", "secret")
	require.NoError(t, err)
	p, err := app.validator.Validate(context.Background(), tok.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin", p.UserName)
}

func TestNewApp_NoAdminPasswordLeavesStoreEmpty(t *testing.T) {
	app, err := newApp(context.Background(), testConfig(), logging.Nop{})
	require.NoError(t, err)

	n, err := app.userService.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestNewApp_BadDSN(t *testing.T) {
	c := testConfig()
	c.DatabaseDSN = "mysql://nope"

	_, err := newApp(context.Background(), c, logging.Nop{})
	assert.Error(t, err)
}

func TestNewApp_Argon2Hasher(t *testing.T) {
	c := testConfig()
	c.PasswordHash = "argon2id"
	c.PasswordPepper = "pepper-pepper"
	c.AdminPassword = "secret"

	app, err := newApp(context.Background(), c, logging.Nop{})
	require.NoError(t, err)

	_, err = app.authenticator.Authenticate(context.Background(), "admin", "secret")
	require.NoError(t, err)
}

func TestNewApp_BadHasher(t *testing.T) {
	c := testConfig()
	c.PasswordHash = "argon2id"

	_, err := newApp(context.Background(), c, logging.Nop{})
	assert.ErrorIs(t, err, common.ErrorValidation)

	c.PasswordHash = "md5"
	_, err = newApp(context.Background(), c, logging.Nop{})
	assert.ErrorIs(t, err, common.ErrorValidation)
}

func TestNewApp_RejectsNonPositiveValidity(t *testing.T) {
	c := testConfig()
	c.AccessTokenValidityDuration = 0

	_, err := newApp(context.Background(), c, logging.Nop{})
	assert.ErrorIs(t, err, common.ErrorValidation)
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	app, err := newApp(context.Background(), testConfig(), logging.Nop{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		app.Run(ctx)
		close(done)
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("app did not stop after context cancel")
	}
}

package cli

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/iulianbarbu/solana-social-dapp/internal/client/keystore"
)

func TestCheckOnline_FlipsMode(t *testing.T) {
	f := &fakeSocial{}
	a, _, rec := newTestApp(t, f)
	ctx := context.Background()

	a.checkOnline(ctx)
	assert.Equal(t, ModeDisabled, a.Mode(), "not logged in, nothing to watch")

	a.setLoggedIn(true)
	a.setMode(ModeOffline)

	a.checkOnline(ctx)
	assert.Equal(t, ModeOnline, a.Mode())

	f.pingErr = errors.New("down")
	a.checkOnline(ctx)
	assert.Equal(t, ModeOffline, a.Mode())

	assert.Equal(t, []string{"switched mode", "switched mode", "switched mode"}, rec.Lines())
}

func TestStartOnlineStatusWatcher_StopsOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	a, _, _ := newTestApp(t, &fakeSocial{})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		a.StartOnlineStatusWatcher(ctx, 10*time.Millisecond)
		close(done)
	}()

	time.Sleep(30 * time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestRun_AutoLoginAndExit(t *testing.T) {
	captureOutput(t)
	f := &fakeSocial{stateAddr: testStateAddr}
	a, out, _ := newTestApp(t, f, "whoami", "exit")
	kp := newKeypair(t)
	require.NoError(t, keystore.Save(a.config.KeypairPath, kp, nil))

	a.Run(context.Background())

	assert.Equal(t, 1, f.closeHits)
	assert.True(t, a.isLoggedIn())
	assert.Contains(t, out.String(), "Welcome!")
	assert.Contains(t, out.String(), "Identity:      "+kp.Public().String())
}

func TestRun_WithoutKeypairStaysLoggedOut(t *testing.T) {
	captureOutput(t)
	f := &fakeSocial{}
	a, _, _ := newTestApp(t, f, "exit")

	a.Run(context.Background())

	assert.False(t, a.isLoggedIn())
	assert.Nil(t, f.kp)
	assert.Equal(t, 1, f.closeHits)
}

func TestStatus(t *testing.T) {
	f := &fakeSocial{}
	a, _ := loggedInApp(t, f)
	assert.Equal(t, f.kp.Public().String()+" [online]", a.status())

	a.setLoggedIn(false)
	assert.Equal(t, "not logged in", a.status())
}

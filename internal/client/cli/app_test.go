package cli

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/cbuclub/internal/account"
	"github.com/dmitrijs2005/cbuclub/internal/client/config"
	"github.com/dmitrijs2005/cbuclub/internal/client/session"
	"github.com/dmitrijs2005/cbuclub/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsLoggedIn(t *testing.T) {
	a := newTestApp(t)
	if a.isLoggedIn() {
		t.Fatalf("expected isLoggedIn() == false for an empty session")
	}
	require.NoError(t, a.store.SetUser(context.Background(), session.Patch{Name: session.Ptr("홍길동")}))
	if a.isLoggedIn() {
		t.Fatalf("expected isLoggedIn() == false for a session nobody logged into")
	}
	loginTestApp(t, a, session.AuthStatus{})
	if !a.isLoggedIn() {
		t.Fatalf("expected isLoggedIn() == true after login")
	}
}

func TestGetStatus(t *testing.T) {
	a := newTestApp(t)
	assert.Equal(t, "", a.getStatus())

	loginTestApp(t, a, session.AuthStatus{})
	assert.Equal(t, "(홍길동 2019012345)", a.getStatus())

	require.NoError(t, a.store.Clear(context.Background()))
	require.NoError(t, a.store.SetUser(context.Background(), session.Patch{
		Name: session.Ptr(account.AdminName), Email: session.Ptr(account.AdminEmail), StudentNumber: session.Ptr(int64(1)),
	}))
	assert.Equal(t, "(관리자 1 admin)", a.getStatus())
}

func TestGuide(t *testing.T) {
	tests := []struct {
		name   string
		status session.AuthStatus
		want   []string
		absent []string
	}{
		{"both", session.AuthStatus{IsDefaultPassword: true, IsEmailNull: true}, []string{"passwd", "addmail"}, nil},
		{"password", session.AuthStatus{IsDefaultPassword: true}, []string{"passwd"}, []string{"addmail"}},
		{"email", session.AuthStatus{IsEmailNull: true}, []string{"addmail"}, []string{"passwd"}},
		{"none", session.AuthStatus{}, []string{"변경이 불가능합니다"}, []string{"passwd", "addmail"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestApp(t)
			loginTestApp(t, a, tt.status)
			require.NoError(t, a.Guide(context.Background()))
			for _, s := range tt.want {
				assert.Contains(t, a.out.String(), s)
			}
			for _, s := range tt.absent {
				assert.NotContains(t, a.out.String(), s)
			}
		})
	}
}

func TestWhoAmI(t *testing.T) {
	a := newTestApp(t)
	require.NoError(t, a.WhoAmI(context.Background()))
	assert.Contains(t, a.out.String(), "로그인되어 있지 않습니다.")

	a.out.Reset()
	loginTestApp(t, a, session.AuthStatus{})
	require.NoError(t, a.WhoAmI(context.Background()))
	assert.Contains(t, a.out.String(), "학번: 2019012345")
	assert.Contains(t, a.out.String(), "이메일: -")
}

func TestNewApp_WiresStorageAndRestoresSession(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.StoragePath = t.TempDir() + "/club.db"

	app, err := NewApp(ctx, cfg, logging.Nop())
	require.NoError(t, err)
	require.NoError(t, app.store.SetUser(ctx, session.Patch{Name: session.Ptr("홍길동"), StudentNumber: session.Ptr(int64(2019012345))}))
	require.NoError(t, app.db.Close())

	app, err = NewApp(ctx, cfg, logging.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.db.Close() })
	assert.True(t, app.isLoggedIn())
	assert.Equal(t, "(홍길동 2019012345)", app.getStatus())
}

func TestNewApp_BadBaseURL(t *testing.T) {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.StoragePath = t.TempDir() + "/club.db"
	cfg.APIBaseURL = "/api/v1"

	_, err := NewApp(context.Background(), cfg, logging.Nop())
	require.Error(t, err)
}

package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/cbuclub/internal/client/client"
	"github.com/dmitrijs2005/cbuclub/internal/client/session"
	"github.com/dmitrijs2005/cbuclub/internal/client/storage"
	"github.com/dmitrijs2005/cbuclub/internal/common"
	"github.com/dmitrijs2005/cbuclub/internal/logging"
	"github.com/dmitrijs2005/cbuclub/internal/testutil/fakeapi"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	api      *fakeapi.Server
	storage  storage.Storage
	store    *session.Store
	identity IdentityService
	mail     MailService
	auth     AuthService
}

func setup(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	db, err := storage.Open(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	st := storage.NewSQLiteStorage(db)

	api := fakeapi.New(t)
	c, err := client.NewHTTPClient(api.BaseURL(), client.WithTokenStore(st))
	require.NoError(t, err)

	store := session.New(st, session.WithLinkedKeys(common.AccessTokenStorageKey))
	log := logging.Nop()

	return &testEnv{
		api:      api,
		storage:  st,
		store:    store,
		identity: NewIdentityService(c, store, log),
		mail:     NewMailService(c, store, log),
		auth:     NewAuthService(c, store, log),
	}
}

// loggedIn puts a member into the session without going through the API.
func (e *testEnv) loggedIn(t *testing.T, studentNumber int64, email *string, status session.AuthStatus) {
	t.Helper()
	require.NoError(t, e.store.SetUser(context.Background(), session.Patch{
		Name:          session.Ptr("홍길동"),
		StudentNumber: &studentNumber,
		Email:         email,
	}))
	e.store.SetAuthStatus(status)
}

func requireFlow(t *testing.T, err error, kind error, msg string) {
	t.Helper()
	require.Error(t, err)
	require.ErrorIs(t, err, kind)
	require.Equal(t, msg, UserMessage(err))
}

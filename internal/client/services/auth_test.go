package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/dmitrijs2005/cbuclub/internal/account"
	"github.com/dmitrijs2005/cbuclub/internal/client/session"
	"github.com/dmitrijs2005/cbuclub/internal/common"
	"github.com/dmitrijs2005/cbuclub/internal/testutil/fakeapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loginOK(name string, email any) http.HandlerFunc {
	return fakeapi.JSON(http.StatusOK, map[string]any{"name": name, "email": email})
}

func TestLogin_DefaultPasswordDetection(t *testing.T) {
	tests := []struct {
		name        string
		password    string
		wantDefault bool
	}{
		{"default credential", account.DefaultPassword, true},
		{"rotated credential", "abcd1234", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setup(t)
			env.api.Handle(fakeapi.RouteLogin, loginOK("홍길동", "owl42@tukorea.ac.kr"))

			res, err := env.auth.Login(context.Background(), account.LoginForm{StudentID: "2019012345", Password: tt.password})
			require.NoError(t, err)
			assert.Equal(t, tt.wantDefault, res.DefaultPassword)
			assert.Equal(t, tt.wantDefault, env.store.Snapshot().IsDefaultPassword)
			assert.Equal(t, tt.wantDefault, res.Guidance.NeedsPasswordChange())
		})
	}
}

func TestLogin_PrefixStrippedAndSessionPopulated(t *testing.T) {
	env := setup(t)
	env.api.Handle(fakeapi.RouteLogin, loginOK("홍길동", "owl42@tukorea.ac.kr"))

	res, err := env.auth.Login(context.Background(), account.LoginForm{StudentID: "cbu2019012345", Password: "abcd1234"})
	require.NoError(t, err)

	var body map[string]any
	env.api.Last(t, fakeapi.RouteLogin).Decode(t, &body)
	assert.Equal(t, float64(2019012345), body["studentNumber"])

	s := env.store.Snapshot()
	assert.Equal(t, "홍길동", s.Name)
	assert.Equal(t, int64(2019012345), s.StudentNumber)
	assert.Equal(t, "owl42@tukorea.ac.kr", s.EmailOrEmpty())
	assert.False(t, s.IsEmailNull)
	assert.Equal(t, GuidanceNone, res.Guidance)
	assert.Equal(t, s, res.Session)
}

func TestLogin_NullEmail(t *testing.T) {
	for _, email := range []any{"null", nil} {
		env := setup(t)
		env.api.Handle(fakeapi.RouteLogin, loginOK("홍길동", email))

		res, err := env.auth.Login(context.Background(), account.LoginForm{StudentID: "2019012345", Password: account.DefaultPassword})
		require.NoError(t, err)

		s := env.store.Snapshot()
		assert.Nil(t, s.Email)
		assert.True(t, s.IsEmailNull)
		assert.Equal(t, GuidanceBoth, res.Guidance)
	}
}

func TestLogin_AdminDerived(t *testing.T) {
	env := setup(t)
	env.api.Handle(fakeapi.RouteLogin, loginOK(account.AdminName, account.AdminEmail))

	res, err := env.auth.Login(context.Background(), account.LoginForm{StudentID: "cbu1", Password: "x"})
	require.NoError(t, err)
	assert.True(t, res.Session.IsAdmin)
}

func TestLogin_Failures(t *testing.T) {
	tests := []struct {
		name    string
		form    account.LoginForm
		handler http.HandlerFunc
		close   bool
		kind    error
		msg     string
	}{
		{"empty id", account.LoginForm{Password: "x"}, nil, false, common.ErrInvalidFormat, MsgLoginMissingFields},
		{"empty password", account.LoginForm{StudentID: "1"}, nil, false, common.ErrInvalidFormat, MsgLoginMissingFields},
		{"non numeric id", account.LoginForm{StudentID: "cbuabc", Password: "x"}, nil, false, common.ErrInvalidFormat, MsgLoginBadStudentID},
		{"invalid password", account.LoginForm{StudentID: "1", Password: "x"}, fakeapi.JSON(http.StatusUnauthorized, map[string]string{"message": "Invalid password"}), false, common.ErrRemoteRejected, MsgLoginInvalidPassword},
		{"no member", account.LoginForm{StudentID: "1", Password: "x"}, fakeapi.JSON(http.StatusNotFound, map[string]string{"message": "Member isn't exist"}), false, common.ErrRemoteRejected, MsgLoginNoMember},
		{"unknown message", account.LoginForm{StudentID: "1", Password: "x"}, fakeapi.JSON(http.StatusBadRequest, map[string]string{"message": "locked"}), false, common.ErrUnknownRemote, MsgLoginFailed},
		{"bare 500", account.LoginForm{StudentID: "1", Password: "x"}, fakeapi.Status(http.StatusInternalServerError), false, common.ErrTransport, MsgLoginFailed},
		{"unreachable", account.LoginForm{StudentID: "1", Password: "x"}, nil, true, common.ErrTransport, MsgLoginFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setup(t)
			if tt.close {
				env.api.Close()
			} else if tt.handler != nil {
				env.api.Handle(fakeapi.RouteLogin, tt.handler)
			}

			_, err := env.auth.Login(context.Background(), tt.form)
			requireFlow(t, err, tt.kind, tt.msg)
			assert.False(t, env.store.Snapshot().LoggedIn())
			if tt.kind == common.ErrInvalidFormat {
				assert.Empty(t, env.api.Requests())
			}
		})
	}
}

func TestLogin_RetryAfterFailure(t *testing.T) {
	env := setup(t)
	env.api.Handle(fakeapi.RouteLogin, fakeapi.JSON(http.StatusUnauthorized, map[string]string{"message": "Invalid password"}))
	_, err := env.auth.Login(context.Background(), account.LoginForm{StudentID: "1", Password: "bad"})
	require.Error(t, err)

	env.api.Handle(fakeapi.RouteLogin, loginOK("홍길동", "null"))
	res, err := env.auth.Login(context.Background(), account.LoginForm{StudentID: "1", Password: "good1234"})
	require.NoError(t, err)
	assert.True(t, res.Session.LoggedIn())
}

func TestLogin_DifferentMemberReplacesSession(t *testing.T) {
	env := setup(t)
	mail := "old@tukorea.ac.kr"
	env.loggedIn(t, 2018000000, &mail, session.AuthStatus{})
	env.api.Handle(fakeapi.RouteLogin, loginOK("새회원", "null"))

	res, err := env.auth.Login(context.Background(), account.LoginForm{StudentID: "2019012345", Password: "x"})
	require.NoError(t, err)
	assert.Equal(t, int64(2019012345), res.Session.StudentNumber)
	assert.Nil(t, res.Session.Email, "previous member's email must not leak")
}

func TestLogin_FailedLoginKeepsOtherMembersSession(t *testing.T) {
	env := setup(t)
	ctx := context.Background()
	env.api.Handle(fakeapi.RouteLogin, fakeapi.WithHeader("Authorization", "Bearer tok", loginOK("홍길동", "owl42@tukorea.ac.kr")))
	_, err := env.auth.Login(ctx, account.LoginForm{StudentID: "2019012345", Password: "x"})
	require.NoError(t, err)

	env.api.Handle(fakeapi.RouteLogin, fakeapi.JSON(http.StatusUnauthorized, map[string]string{"message": "Invalid password"}))
	_, err = env.auth.Login(ctx, account.LoginForm{StudentID: "2019099999", Password: "wrong"})
	requireFlow(t, err, common.ErrRemoteRejected, MsgLoginInvalidPassword)

	snap := env.store.Snapshot()
	assert.True(t, snap.LoggedIn())
	assert.Equal(t, "홍길동", snap.Name)
	assert.Equal(t, int64(2019012345), snap.StudentNumber)
	tok, err := env.storage.GetItem(ctx, common.AccessTokenStorageKey)
	require.NoError(t, err)
	assert.Equal(t, []byte("tok"), tok)

	restored := session.New(env.storage)
	require.NoError(t, restored.Load(ctx))
	assert.Equal(t, int64(2019012345), restored.Snapshot().StudentNumber)
}

func TestLogin_DifferentMemberDropsPreviousToken(t *testing.T) {
	env := setup(t)
	ctx := context.Background()
	env.api.Handle(fakeapi.RouteLogin, fakeapi.WithHeader("Authorization", "Bearer old", loginOK("홍길동", "null")))
	_, err := env.auth.Login(ctx, account.LoginForm{StudentID: "2019012345", Password: "x"})
	require.NoError(t, err)

	env.api.Handle(fakeapi.RouteLogin, loginOK("새회원", "null"))
	res, err := env.auth.Login(ctx, account.LoginForm{StudentID: "2019099999", Password: "x"})
	require.NoError(t, err)
	assert.Equal(t, "새회원", res.Session.Name)
	tok, err := env.storage.GetItem(ctx, common.AccessTokenStorageKey)
	require.NoError(t, err)
	assert.Nil(t, tok)
}

func TestLogin_SameMemberKeepsKnownEmail(t *testing.T) {
	env := setup(t)
	mail := "owl42@tukorea.ac.kr"
	env.loggedIn(t, 2019012345, &mail, session.AuthStatus{})
	env.api.Handle(fakeapi.RouteLogin, loginOK("홍길동", "null"))

	res, err := env.auth.Login(context.Background(), account.LoginForm{StudentID: "2019012345", Password: "x"})
	require.NoError(t, err)
	assert.Equal(t, mail, res.Session.EmailOrEmpty())
	assert.True(t, res.Session.IsEmailNull)
}

func TestRegister(t *testing.T) {
	env := setup(t)
	env.api.Handle(fakeapi.RouteSignup, fakeapi.Status(http.StatusOK))

	err := env.auth.Register(context.Background(), RegisterRequest{Email: "owl42", StudentNumber: 2019012345, Name: "홍길동", Nickname: "owl42"})
	require.NoError(t, err)

	var body map[string]any
	env.api.Last(t, fakeapi.RouteSignup).Decode(t, &body)
	assert.Equal(t, map[string]any{
		"email":         "owl42@tukorea.ac.kr",
		"password":      account.DefaultPassword,
		"name":          "홍길동",
		"studentNumber": float64(2019012345),
		"nickname":      "owl42",
	}, body)

	s := env.store.Snapshot()
	assert.Equal(t, "owl42@tukorea.ac.kr", s.EmailOrEmpty())
	assert.True(t, s.IsDefaultPassword)
	assert.False(t, s.IsEmailNull)
}

func TestRegister_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		close   bool
		kind    error
		msg     string
	}{
		{"error field", fakeapi.JSON(http.StatusConflict, map[string]string{"error": "이미 가입된 학번입니다."}), false, common.ErrRemoteRejected, "이미 가입된 학번입니다."},
		{"message field", fakeapi.JSON(http.StatusBadRequest, map[string]string{"message": "닉네임 중복"}), false, common.ErrRemoteRejected, "닉네임 중복"},
		{"no text", fakeapi.Status(http.StatusInternalServerError), false, common.ErrTransport, MsgSignupFailed},
		{"unreachable", nil, true, common.ErrTransport, MsgSignupUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setup(t)
			if tt.close {
				env.api.Close()
			} else {
				env.api.Handle(fakeapi.RouteSignup, tt.handler)
			}

			err := env.auth.Register(context.Background(), RegisterRequest{Email: "a", StudentNumber: 1, Name: "n", Nickname: "k"})
			requireFlow(t, err, tt.kind, tt.msg)
			assert.Equal(t, session.Empty(), env.store.Snapshot())
		})
	}
}

func TestChangePassword(t *testing.T) {
	env := setup(t)
	env.loggedIn(t, 2019012345, nil, session.AuthStatus{IsDefaultPassword: true, IsEmailNull: true})
	env.api.Handle(fakeapi.RouteChangePassword, fakeapi.Status(http.StatusOK))

	err := env.auth.ChangePassword(context.Background(), account.PasswordForm{Current: account.DefaultPassword, New: "abcd1234", Confirm: "abcd1234"})
	require.NoError(t, err)

	var body map[string]any
	env.api.Last(t, fakeapi.RouteChangePassword).Decode(t, &body)
	assert.Equal(t, map[string]any{"studentNumber": float64(2019012345), "password": "abcd1234"}, body)

	s := env.store.Snapshot()
	assert.False(t, s.IsDefaultPassword)
	assert.True(t, s.IsEmailNull, "email flag is carried over")
}

func TestChangePassword_LocalGate(t *testing.T) {
	tests := []struct {
		name string
		form account.PasswordForm
		msg  string
	}{
		{"missing current", account.PasswordForm{New: "abcd1234", Confirm: "abcd1234"}, MsgPasswordCurrentRequired},
		{"too short", account.PasswordForm{Current: "x", New: "short1", Confirm: "short1"}, MsgPasswordPolicy},
		{"one class", account.PasswordForm{Current: "x", New: "aaaaaaaa", Confirm: "aaaaaaaa"}, MsgPasswordPolicy},
		{"mismatch", account.PasswordForm{Current: "x", New: "abcd1234", Confirm: "abcd1235"}, MsgPasswordMismatch},
		{"missing confirm", account.PasswordForm{Current: "x", New: "abcd1234"}, MsgPasswordMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setup(t)
			env.loggedIn(t, 2019012345, nil, session.AuthStatus{IsDefaultPassword: true})

			err := env.auth.ChangePassword(context.Background(), tt.form)
			requireFlow(t, err, common.ErrInvalidFormat, tt.msg)
			assert.Empty(t, env.api.Requests())
			assert.True(t, env.store.Snapshot().IsDefaultPassword)
		})
	}
}

func TestChangePassword_RemoteFailureLeavesSession(t *testing.T) {
	env := setup(t)
	env.loggedIn(t, 2019012345, nil, session.AuthStatus{IsDefaultPassword: true, IsEmailNull: true})
	env.api.Handle(fakeapi.RouteChangePassword, fakeapi.JSON(http.StatusBadRequest, map[string]string{"message": "same as before"}))

	err := env.auth.ChangePassword(context.Background(), account.PasswordForm{Current: "x", New: "abcd1234", Confirm: "abcd1234"})
	requireFlow(t, err, common.ErrRemoteRejected, MsgPasswordChangeFailed)
	assert.True(t, env.store.Snapshot().IsDefaultPassword)
}

func TestChangePassword_RequiresSession(t *testing.T) {
	env := setup(t)
	err := env.auth.ChangePassword(context.Background(), account.PasswordForm{Current: "x", New: "abcd1234", Confirm: "abcd1234"})
	requireFlow(t, err, common.ErrInvalidFormat, MsgNotLoggedIn)
}

func TestLogout_ClearsSessionAndToken(t *testing.T) {
	env := setup(t)
	ctx := context.Background()
	env.api.Handle(fakeapi.RouteLogin, fakeapi.WithHeader("Authorization", "Bearer tok", loginOK("홍길동", "null")))

	_, err := env.auth.Login(ctx, account.LoginForm{StudentID: "2019012345", Password: "x"})
	require.NoError(t, err)
	tok, err := env.storage.GetItem(ctx, common.AccessTokenStorageKey)
	require.NoError(t, err)
	require.Equal(t, []byte("tok"), tok)

	require.NoError(t, env.auth.Logout(ctx))

	assert.Equal(t, session.Empty(), env.store.Snapshot())
	for _, k := range []string{common.SessionStorageKey, common.AccessTokenStorageKey} {
		v, err := env.storage.GetItem(ctx, k)
		require.NoError(t, err)
		assert.Nil(t, v, k)
	}
}

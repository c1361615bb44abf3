package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/dmitrijs2005/cbuclub/internal/account"
	"github.com/dmitrijs2005/cbuclub/internal/client/client"
	"github.com/dmitrijs2005/cbuclub/internal/client/services"
	"github.com/dmitrijs2005/cbuclub/internal/client/session"
	"github.com/dmitrijs2005/cbuclub/internal/logging"
)

type fakeAuth struct {
	store *session.Store

	loginForm account.LoginForm
	loginName string
	loginErr  error

	pwCalled bool
	pwForm   account.PasswordForm
	pwErr    error

	logoutCalled bool
	logoutErr    error

	regReq services.RegisterRequest
	regErr error
}

func (f *fakeAuth) Register(_ context.Context, req services.RegisterRequest) error {
	f.regReq = req
	return f.regErr
}

func (f *fakeAuth) Login(ctx context.Context, form account.LoginForm) (*services.LoginResult, error) {
	f.loginForm = form
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	n := int64(2019012345)
	_ = f.store.SetUser(ctx, session.Patch{Name: &f.loginName, StudentNumber: &n})
	isDefault := form.Password == account.DefaultPassword
	f.store.SetAuthStatus(session.AuthStatus{IsDefaultPassword: isDefault, IsEmailNull: true})
	snap := f.store.Snapshot()
	return &services.LoginResult{Session: snap, DefaultPassword: isDefault, Guidance: services.GuidanceFor(snap)}, nil
}

func (f *fakeAuth) ChangePassword(_ context.Context, form account.PasswordForm) error {
	f.pwCalled = true
	f.pwForm = form
	return f.pwErr
}

func (f *fakeAuth) Logout(ctx context.Context) error {
	f.logoutCalled = true
	if f.logoutErr != nil {
		return f.logoutErr
	}
	return f.store.Clear(ctx)
}

type fakeMail struct {
	sent      []string
	sendErr   error
	verifyErr error
	verified  []string

	registered []string
	regErr     error
}

func (f *fakeMail) SendCode(_ context.Context, raw string) (string, error) {
	addr := account.NormalizeEmail(raw)
	f.sent = append(f.sent, addr)
	return addr, f.sendErr
}

func (f *fakeMail) VerifyCode(_ context.Context, address, code string) (string, error) {
	f.verified = append(f.verified, address+"/"+code)
	if f.verifyErr != nil {
		return "", f.verifyErr
	}
	return "인증되었습니다!", nil
}

func (f *fakeMail) RegisterEmail(_ context.Context, address, code string) error {
	f.registered = append(f.registered, address+"/"+code)
	return f.regErr
}

type fakeIdentity struct {
	info *client.UserInfo
	err  error
}

func (f *fakeIdentity) Verify(context.Context, string, string) (*client.UserInfo, error) {
	return f.info, f.err
}

type testApp struct {
	*App
	out      *bytes.Buffer
	auth     *fakeAuth
	mail     *fakeMail
	identity *fakeIdentity
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	store := session.New(nil)
	out := &bytes.Buffer{}
	ta := &testApp{
		out:      out,
		auth:     &fakeAuth{store: store, loginName: "홍길동"},
		mail:     &fakeMail{},
		identity: &fakeIdentity{info: &client.UserInfo{Name: "홍길동", Major: "컴퓨터공학", NickName: "owl42", StudentNumber: 2019012345}},
	}
	ta.App = &App{
		store:           store,
		authService:     ta.auth,
		mailService:     ta.mail,
		identityService: ta.identity,
		log:             logging.Nop(),
		reader:          bufio.NewReader(strings.NewReader("")),
		out:             out,
	}
	return ta
}

// stubTexts answers successive getSimpleText prompts; io.EOF once exhausted.
func stubTexts(t *testing.T, answers ...string) {
	t.Helper()
	orig := getSimpleText
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if len(answers) == 0 {
			return "", io.EOF
		}
		a := answers[0]
		answers = answers[1:]
		return a, nil
	}
	t.Cleanup(func() { getSimpleText = orig })
}

// stubPasswords answers successive getPassword prompts; io.EOF once exhausted.
func stubPasswords(t *testing.T, answers ...string) {
	t.Helper()
	orig := getPassword
	getPassword = func(_ io.Writer, _ string) ([]byte, error) {
		if len(answers) == 0 {
			return nil, io.EOF
		}
		a := answers[0]
		answers = answers[1:]
		return []byte(a), nil
	}
	t.Cleanup(func() { getPassword = orig })
}

func stubConfirm(t *testing.T, answer bool) *int {
	t.Helper()
	asked := 0
	orig := confirm
	confirm = func(*bufio.Reader, string, io.Writer) bool {
		asked++
		return answer
	}
	t.Cleanup(func() { confirm = orig })
	return &asked
}

package services

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/cbuclub/internal/account"
	"github.com/dmitrijs2005/cbuclub/internal/client/client"
	"github.com/dmitrijs2005/cbuclub/internal/client/session"
	"github.com/dmitrijs2005/cbuclub/internal/common"
	"github.com/dmitrijs2005/cbuclub/internal/logging"
)

// AuthService covers account creation, login, password change and logout.
//
// Contract:
//   - Register: commit a verified identity and email; the account gets
//     account.DefaultPassword.
//   - Login: authenticate, populate the session and both security flags.
//   - ChangePassword: validate the form locally, then rotate the password.
//   - Logout: clear the session and the cached token.
type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) error
	Login(ctx context.Context, form account.LoginForm) (*LoginResult, error)
	ChangePassword(ctx context.Context, form account.PasswordForm) error
	Logout(ctx context.Context) error
}

// RegisterRequest is the committed identity. Email may be a bare local part.
type RegisterRequest struct {
	Email         string
	StudentNumber int64
	Name          string
	Nickname      string
}

// LoginResult describes a successful login.
type LoginResult struct {
	Session session.Session
	// DefaultPassword is set when the submitted password is the onboarding
	// credential; the caller should offer a password change.
	DefaultPassword bool
	Guidance        Guidance
}

type authService struct {
	client client.Client
	store  *session.Store
	log    logging.Logger
}

func NewAuthService(c client.Client, store *session.Store, log logging.Logger) AuthService {
	return &authService{client: c, store: store, log: log.With("flow", "auth")}
}

// Register does not re-check earlier steps; Signup enforces the order.
func (a *authService) Register(ctx context.Context, req RegisterRequest) error {
	email := account.NormalizeEmail(strings.TrimSpace(req.Email))

	err := a.client.Signup(ctx, client.SignupRequest{
		Email:         email,
		Password:      account.DefaultPassword,
		Name:          req.Name,
		StudentNumber: req.StudentNumber,
		Nickname:      req.Nickname,
	})
	if err != nil {
		if apiErr, ok := client.AsAPIError(err); ok {
			msg := apiErr.Text()
			kind := common.ErrRemoteRejected
			if msg == "" {
				msg = MsgSignupFailed
				kind = common.ErrTransport
			}
			a.log.Warn(ctx, "signup rejected", "status", apiErr.StatusCode, "kind", kind)
			return flowErr(kind, msg, err)
		}
		a.log.Warn(ctx, "signup failed", "kind", common.ErrTransport, "error", err)
		return flowErr(common.ErrTransport, MsgSignupUnknown, err)
	}

	if err := a.store.SetUser(ctx, session.Patch{
		Name:          &req.Name,
		StudentNumber: &req.StudentNumber,
		NickName:      &req.Nickname,
		Email:         &email,
	}); err != nil {
		a.log.Warn(ctx, "session not updated after signup", "error", err)
	}
	a.store.SetAuthStatus(session.AuthStatus{IsDefaultPassword: true, IsEmailNull: false})

	a.log.Info(ctx, "signup succeeded", "student_number", req.StudentNumber)
	return nil
}

func (a *authService) Login(ctx context.Context, form account.LoginForm) (*LoginResult, error) {
	form.StudentID = strings.TrimSpace(form.StudentID)
	if err := account.Validate(form); err != nil {
		return nil, flowErr(common.ErrInvalidFormat, MsgLoginMissingFields, err)
	}

	studentNumber, err := account.ParseStudentID(form.StudentID)
	if err != nil {
		return nil, flowErr(common.ErrInvalidFormat, MsgLoginBadStudentID, err)
	}

	resp, err := a.client.Login(ctx, client.LoginRequest{StudentNumber: studentNumber, Password: form.Password})
	if err != nil {
		fe := loginFailure(err)
		a.log.Warn(ctx, "login failed", "student_number", studentNumber, "kind", fe.Kind)
		return nil, fe
	}

	email := resp.EmailAddress()
	patch := session.Patch{
		Name:          &resp.Name,
		StudentNumber: &studentNumber,
		Email:         email,
	}
	// a different member replaces the session only once the server agrees
	set := a.store.SetUser
	if cur := a.store.Snapshot(); cur.StudentNumber != 0 && cur.StudentNumber != studentNumber {
		set = a.store.Replace
	}
	if err := set(ctx, patch); err != nil {
		if !errors.Is(err, session.ErrPersist) {
			return nil, flowErr(common.ErrUnknownRemote, MsgLoginFailed, err)
		}
		a.log.Warn(ctx, "session not persisted", "error", err)
	}

	isDefault := form.Password == account.DefaultPassword
	a.store.SetAuthStatus(session.AuthStatus{
		IsDefaultPassword: isDefault,
		IsEmailNull:       email == nil,
	})

	snap := a.store.Snapshot()
	a.log.Info(ctx, "login succeeded", "student_number", studentNumber, "admin", snap.IsAdmin)
	return &LoginResult{Session: snap, DefaultPassword: isDefault, Guidance: GuidanceFor(snap)}, nil
}

func loginFailure(err error) *FlowError {
	if apiErr, ok := client.AsAPIError(err); ok {
		switch apiErr.Message {
		case remoteInvalidPassword:
			return flowErr(common.ErrRemoteRejected, MsgLoginInvalidPassword, err)
		case remoteNoMember:
			return flowErr(common.ErrRemoteRejected, MsgLoginNoMember, err)
		}
	}
	return flowErr(classify(err), MsgLoginFailed, err)
}

func (a *authService) ChangePassword(ctx context.Context, form account.PasswordForm) error {
	cur := a.store.Snapshot()
	if !cur.LoggedIn() || cur.StudentNumber == 0 {
		return flowErr(common.ErrInvalidFormat, MsgNotLoggedIn, nil)
	}

	if err := account.Validate(form); err != nil {
		return flowErr(common.ErrInvalidFormat, passwordFormMessage(err), err)
	}

	err := a.client.ChangePassword(ctx, client.ChangePasswordRequest{StudentNumber: cur.StudentNumber, Password: form.New})
	if err != nil {
		kind := classify(err)
		if kind == common.ErrUnknownRemote {
			kind = common.ErrRemoteRejected
		}
		a.log.Warn(ctx, "password change failed", "kind", kind, "error", err)
		return flowErr(kind, MsgPasswordChangeFailed, err)
	}

	a.store.SetAuthStatus(session.AuthStatus{IsDefaultPassword: false, IsEmailNull: a.store.Snapshot().IsEmailNull})
	a.log.Info(ctx, "password changed", "student_number", cur.StudentNumber)
	return nil
}

func passwordFormMessage(err error) string {
	var fe *account.FieldError
	if !errors.As(err, &fe) {
		return MsgPasswordPolicy
	}
	switch fe.Field {
	case "Current":
		return MsgPasswordCurrentRequired
	case "Confirm":
		return MsgPasswordMismatch
	}
	return MsgPasswordPolicy
}

func (a *authService) Logout(ctx context.Context) error {
	if err := a.store.Clear(ctx); err != nil {
		a.log.Warn(ctx, "logout storage cleanup failed", "error", err)
		return flowErr(common.ErrTransport, MsgGeneric, err)
	}
	a.log.Info(ctx, "logged out")
	return nil
}

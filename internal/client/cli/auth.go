package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/cbuclub/internal/account"
	"github.com/dmitrijs2005/cbuclub/internal/client/services"
	"github.com/dmitrijs2005/cbuclub/internal/common"
)

// getSimpleText, getPassword and confirm are indirections used to facilitate
// testing. They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword
var confirm = Confirm

// Login prompts for the student id (with or without the "cbu" prefix) and
// password. When the default password was used it offers to change it right
// away; otherwise it prints the post-login guidance.
func (a *App) Login(ctx context.Context) error {
	studentID, err := getSimpleText(a.reader, "학번 (예: cbu2019012345)", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out, "비밀번호")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	res, err := a.authService.Login(ctx, account.LoginForm{StudentID: studentID, Password: string(password)})
	if err != nil {
		return a.fail(err)
	}
	a.authenticated = true

	a.say(fmt.Sprintf("%s님, 환영합니다!", res.Session.Name))

	if res.DefaultPassword {
		if confirm(a.reader, services.MsgDefaultPasswordAsk, a.out) {
			return a.ChangePassword(ctx)
		}
	}
	a.printGuidance(res.Guidance)
	return nil
}

// ChangePassword prompts for the current password and the new one twice.
// Nothing is sent unless the new password satisfies the policy and both
// entries match.
func (a *App) ChangePassword(ctx context.Context) error {
	if !a.isLoggedIn() {
		a.say(services.MsgNotLoggedIn)
		return nil
	}

	current, err := getPassword(a.out, "현재 비밀번호")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(current)

	next, err := getPassword(a.out, "새 비밀번호")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(next)

	again, err := getPassword(a.out, "새 비밀번호 확인")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(again)

	form := account.PasswordForm{Current: string(current), New: string(next), Confirm: string(again)}
	if err := a.authService.ChangePassword(ctx, form); err != nil {
		return a.fail(err)
	}

	a.say(services.MsgPasswordChanged)
	return nil
}

// Logout clears the session and the cached token.
func (a *App) Logout(ctx context.Context) error {
	a.authenticated = false
	if err := a.authService.Logout(ctx); err != nil {
		return a.fail(err)
	}
	a.say("로그아웃되었습니다.")
	return nil
}

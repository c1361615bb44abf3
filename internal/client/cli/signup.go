package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/cbuclub/internal/account"
	"github.com/dmitrijs2005/cbuclub/internal/client/services"
	"github.com/dmitrijs2005/cbuclub/internal/client/session"
)

// Signup walks through roster verification, email verification and
// registration. An empty code re-prompts for the address and sends a new
// code. Any input error ends the attempt; the user can start over.
//
// The member is not logged in afterwards, so the session the flow filled in
// is discarded however it ends.
func (a *App) Signup(ctx context.Context) error {
	if a.isLoggedIn() {
		a.say("이미 로그인되어 있습니다. 로그아웃 후 회원가입을 진행해주세요.")
		return nil
	}
	a.discardSession(ctx)
	defer a.discardSession(ctx)

	flow := services.NewSignup(a.identityService, a.mailService, a.authService)

	studentNumber, err := getSimpleText(a.reader, "학번 (10자리)", a.out)
	if err != nil {
		return err
	}
	nickname, err := getSimpleText(a.reader, "닉네임", a.out)
	if err != nil {
		return err
	}

	info, err := flow.VerifyIdentity(ctx, studentNumber, nickname)
	if err != nil {
		return a.fail(err)
	}
	a.say(fmt.Sprintf("인증 완료 되었습니다! (%s, %s)\n이어서 회원가입을 해주세요!", info.Name, info.Major))

	for flow.Step() == services.StepEmail {
		if err := a.signupEmail(ctx, flow); err != nil {
			return err
		}
	}

	if err := flow.Register(ctx); err != nil {
		return a.fail(err)
	}
	member := flow.Member()
	address, _ := flow.CodeSent()
	a.say(fmt.Sprintf("%s님(%s, %s) 회원가입이 완료되었습니다. 기본 비밀번호로 로그인 후 비밀번호를 변경해주세요.",
		member.Name, account.StudentIDPrefix+strconv.FormatInt(member.StudentNumber, 10), address))
	return nil
}

// discardSession drops whatever a signup left in the session. It never
// touches a logged-in member.
func (a *App) discardSession(ctx context.Context) {
	if a.isLoggedIn() || a.store.Snapshot() == session.Empty() {
		return
	}
	if err := a.store.Clear(ctx); err != nil {
		a.log.Warn(ctx, "signup session not discarded", "error", err)
	}
}

// signupEmail performs one send-and-verify round. Service failures are
// printed and leave the flow at the email step; input errors are returned.
func (a *App) signupEmail(ctx context.Context, flow *services.Signup) error {
	raw, err := getSimpleText(a.reader, "학교 이메일 (@ 없이 입력하면 @tukorea.ac.kr)", a.out)
	if err != nil {
		return err
	}
	address, err := flow.SendCode(ctx, raw)
	if err != nil {
		_ = a.fail(err)
		return nil
	}
	a.say(fmt.Sprintf("%s 로 인증 코드를 보냈습니다.", address))

	code, err := getSimpleText(a.reader, "인증 코드 (비워두면 다시 보내기)", a.out)
	if err != nil {
		return err
	}
	if code == "" {
		return nil
	}

	msg, err := flow.VerifyCode(ctx, code)
	if err != nil {
		_ = a.fail(err)
		return nil
	}
	a.say(msg)
	return nil
}

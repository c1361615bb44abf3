package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/cbuclub/internal/client/services"
)

func (a *App) printGuidance(g services.Guidance) {
	if g.NeedsPasswordChange() {
		a.say("기본 비밀번호를 사용 중입니다. 'passwd' 로 비밀번호를 변경해주세요.")
	}
	if g.NeedsEmail() {
		a.say("등록된 이메일이 없습니다. 'addmail' 로 이메일을 등록해주세요.")
	}
}

// Guide prints what the logged-in account still needs.
func (a *App) Guide(ctx context.Context) error {
	if !a.isLoggedIn() {
		a.say(services.MsgNotLoggedIn)
		return nil
	}
	g := services.GuidanceFor(a.store.Snapshot())
	if g == services.GuidanceNone {
		a.say("이메일이 등록되어 있습니다. 변경이 불가능합니다.")
		return nil
	}
	a.printGuidance(g)
	return nil
}

// WhoAmI prints the current session.
func (a *App) WhoAmI(ctx context.Context) error {
	if !a.isLoggedIn() {
		a.say("로그인되어 있지 않습니다.")
		return nil
	}
	s := a.store.Snapshot()
	email := s.EmailOrEmpty()
	if email == "" {
		email = "-"
	}
	a.say(fmt.Sprintf("이름: %s\n학번: %d\n닉네임: %s\n전공: %s\n학년: %s\n이메일: %s\n관리자: %t",
		s.Name, s.StudentNumber, s.NickName, s.Major, s.Grade, email, s.IsAdmin))
	return nil
}

package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/cbuclub/internal/client/services"
)

// AddMail registers an email for a member that has none.
func (a *App) AddMail(ctx context.Context) error {
	if !a.isLoggedIn() {
		a.say(services.MsgNotLoggedIn)
		return nil
	}
	if !a.store.Snapshot().IsEmailNull {
		a.say("이메일이 등록되어 있습니다. 변경이 불가능합니다.")
		return nil
	}

	raw, err := getSimpleText(a.reader, "등록할 이메일", a.out)
	if err != nil {
		return err
	}
	address, err := a.mailService.SendCode(ctx, raw)
	if err != nil {
		return a.fail(err)
	}
	a.say(fmt.Sprintf("%s 로 인증 코드를 보냈습니다.", address))

	code, err := getSimpleText(a.reader, "인증 코드", a.out)
	if err != nil {
		return err
	}
	if err := a.mailService.RegisterEmail(ctx, address, code); err != nil {
		return a.fail(err)
	}

	a.say("이메일이 성공적으로 등록되었습니다!")
	return nil
}

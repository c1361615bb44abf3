package cli

import (
	"context"
	"fmt"
)

func (a *App) getStatus() string {
	if !a.isLoggedIn() {
		return ""
	}
	s := a.store.Snapshot()
	status := fmt.Sprintf("%s %d", s.Name, s.StudentNumber)
	if s.IsAdmin {
		status += " admin"
	}
	return fmt.Sprintf("(%s)", status)
}

// Root greets the user, shows who is logged in and runs the REPL on the
// app's input.
func (a *App) Root(ctx context.Context) {
	a.say("CBU club client (type 'help' for commands)")
	if a.isLoggedIn() {
		s := a.store.Snapshot()
		a.say(fmt.Sprintf("%s님으로 로그인되어 있습니다.", s.Name))
	}
	runREPL(ctx, a, a.getStatus, a.reader)
}

package services

import "github.com/dmitrijs2005/cbuclub/internal/client/session"

// Guidance is what the member should do next after logging in.
type Guidance int

const (
	GuidanceNone Guidance = iota
	GuidanceChangePassword
	GuidanceRegisterEmail
	GuidanceBoth
)

func (g Guidance) String() string {
	switch g {
	case GuidanceChangePassword:
		return "change-password"
	case GuidanceRegisterEmail:
		return "register-email"
	case GuidanceBoth:
		return "change-password+register-email"
	default:
		return "none"
	}
}

// GuidanceFor reads the two security flags; IsEmailNull is authoritative
// here, not Email.
func GuidanceFor(s session.Session) Guidance {
	switch {
	case s.IsDefaultPassword && s.IsEmailNull:
		return GuidanceBoth
	case s.IsDefaultPassword:
		return GuidanceChangePassword
	case s.IsEmailNull:
		return GuidanceRegisterEmail
	default:
		return GuidanceNone
	}
}

// NeedsPasswordChange reports whether g includes rotating the password.
func (g Guidance) NeedsPasswordChange() bool {
	return g == GuidanceChangePassword || g == GuidanceBoth
}

// NeedsEmail reports whether g includes registering an email.
func (g Guidance) NeedsEmail() bool {
	return g == GuidanceRegisterEmail || g == GuidanceBoth
}

package session

import "github.com/dmitrijs2005/cbuclub/internal/account"

// Session is the client-held representation of the current member.
type Session struct {
	Name          string
	StudentNumber int64
	Email         *string
	IsAdmin       bool
	Major         string
	Grade         string
	NickName      string

	IsDefaultPassword bool
	IsEmailNull       bool
	EmailUpdated      bool
}

// Empty returns the state of a store with no active session.
func Empty() Session {
	return Session{IsEmailNull: true}
}

// LoggedIn reports whether an identity is present.
func (s Session) LoggedIn() bool {
	return s.Name != ""
}

// EmailOrEmpty returns the email for display, or "" when unset.
func (s Session) EmailOrEmpty() string {
	if s.Email == nil {
		return ""
	}
	return *s.Email
}

func (s Session) clone() Session {
	if s.Email != nil {
		e := *s.Email
		s.Email = &e
	}
	return s
}

// Patch is a partial identity update. Nil fields are left unchanged.
type Patch struct {
	Name          *string
	StudentNumber *int64
	Email         *string
	Major         *string
	Grade         *string
	NickName      *string
}

// AuthStatus carries the two security flags reported at login.
type AuthStatus struct {
	IsDefaultPassword bool
	IsEmailNull       bool
}

func (s *Session) apply(p Patch) {
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.StudentNumber != nil {
		s.StudentNumber = *p.StudentNumber
	}
	if p.Email != nil {
		e := *p.Email
		s.Email = &e
	}
	if p.Major != nil {
		s.Major = *p.Major
	}
	if p.Grade != nil {
		s.Grade = *p.Grade
	}
	if p.NickName != nil {
		s.NickName = *p.NickName
	}
	s.IsAdmin = account.IsAdmin(s.Name, s.Email)
}

// Ptr returns a pointer to v. It keeps Patch literals short.
func Ptr[T any](v T) *T {
	return &v
}

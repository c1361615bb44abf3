package services

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/cbuclub/internal/client/client"
)

// Step is a position in the signup flow.
type Step int

const (
	StepIdentity Step = iota
	StepEmail
	StepRegister
	StepDone
)

func (s Step) String() string {
	switch s {
	case StepIdentity:
		return "identity"
	case StepEmail:
		return "email"
	case StepRegister:
		return "register"
	case StepDone:
		return "done"
	default:
		return "unknown"
	}
}

// Signup drives one signup attempt through roster verification, email
// verification and registration, in that order. A failed step can be
// retried; a step attempted too early fails with ErrOutOfOrder and sends
// nothing.
type Signup struct {
	identity IdentityService
	mail     MailService
	auth     AuthService

	mu       sync.Mutex
	step     Step
	info     *client.UserInfo
	sentTo   string
	verified string
}

func NewSignup(identity IdentityService, mail MailService, auth AuthService) *Signup {
	return &Signup{identity: identity, mail: mail, auth: auth}
}

func (s *Signup) Step() Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step
}

// Member returns the verified roster record, or nil before StepEmail.
func (s *Signup) Member() *client.UserInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.info == nil {
		return nil
	}
	info := *s.info
	return &info
}

// CodeSent reports the address of the last successful SendCode.
func (s *Signup) CodeSent() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sentTo, s.sentTo != ""
}

func (s *Signup) VerifyIdentity(ctx context.Context, studentNumber, nickname string) (*client.UserInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.step != StepIdentity {
		return nil, outOfOrder()
	}

	info, err := s.identity.Verify(ctx, studentNumber, nickname)
	if err != nil {
		return nil, err
	}
	s.info = info
	s.step = StepEmail
	return info, nil
}

// SendCode may be repeated while at StepEmail; each call issues a new code.
func (s *Signup) SendCode(ctx context.Context, rawAddress string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.step != StepEmail {
		return "", outOfOrder()
	}

	address, err := s.mail.SendCode(ctx, rawAddress)
	if err != nil {
		return "", err
	}
	s.sentTo = address
	return address, nil
}

// VerifyCode checks code against the address of the last SendCode.
func (s *Signup) VerifyCode(ctx context.Context, code string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.step != StepEmail || s.sentTo == "" {
		return "", outOfOrder()
	}

	msg, err := s.mail.VerifyCode(ctx, s.sentTo, code)
	if err != nil {
		return "", err
	}
	s.verified = s.sentTo
	s.step = StepRegister
	return msg, nil
}

func (s *Signup) Register(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.step != StepRegister {
		return outOfOrder()
	}

	err := s.auth.Register(ctx, RegisterRequest{
		Email:         s.verified,
		StudentNumber: s.info.StudentNumber,
		Name:          s.info.Name,
		Nickname:      s.info.NickName,
	})
	if err != nil {
		return err
	}
	s.step = StepDone
	return nil
}

func outOfOrder() error {
	return flowErr(ErrOutOfOrder, MsgSignupOutOfOrder, nil)
}

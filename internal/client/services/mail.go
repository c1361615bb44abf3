package services

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/cbuclub/internal/account"
	"github.com/dmitrijs2005/cbuclub/internal/client/client"
	"github.com/dmitrijs2005/cbuclub/internal/client/session"
	"github.com/dmitrijs2005/cbuclub/internal/common"
	"github.com/dmitrijs2005/cbuclub/internal/logging"
)

// MailService proves ownership of an email address with a one-time code.
// It keeps no state; whether a code was sent is the caller's concern.
type MailService interface {
	// SendCode issues a fresh code to the normalized address and returns
	// that address. Every call issues a new code.
	SendCode(ctx context.Context, rawAddress string) (string, error)
	// VerifyCode checks code for the normalized address and returns the
	// server's message on success.
	VerifyCode(ctx context.Context, address, code string) (string, error)
	// RegisterEmail verifies code, then records the address for the
	// logged-in member and updates the session.
	RegisterEmail(ctx context.Context, address, code string) error
}

type mailService struct {
	client client.Client
	store  *session.Store
	log    logging.Logger
}

func NewMailService(c client.Client, store *session.Store, log logging.Logger) MailService {
	return &mailService{client: c, store: store, log: log.With("flow", "mail")}
}

func (s *mailService) SendCode(ctx context.Context, rawAddress string) (string, error) {
	rawAddress = strings.TrimSpace(rawAddress)
	if rawAddress == "" {
		return "", flowErr(common.ErrInvalidFormat, MsgMailMissingAddress, nil)
	}
	address := account.NormalizeEmail(rawAddress)

	res, err := s.client.SendMailCode(ctx, address)
	if err != nil {
		kind := classify(err)
		s.log.Warn(ctx, "mail code not sent", "kind", kind, "error", err)
		return address, flowErr(kind, MsgMailSendRequest, err)
	}
	if !res.Success {
		msg := res.ResponseMessage
		if msg == "" {
			msg = MsgMailSendFailed
		}
		s.log.Warn(ctx, "mail code refused", "address", address)
		return address, flowErr(common.ErrRemoteRejected, msg, nil)
	}

	s.log.Info(ctx, "mail code sent", "address", address)
	return address, nil
}

func (s *mailService) VerifyCode(ctx context.Context, address, code string) (string, error) {
	address = strings.TrimSpace(address)
	code = strings.TrimSpace(code)
	if address == "" {
		return "", flowErr(common.ErrInvalidFormat, MsgMailMissingAddress, nil)
	}
	if code == "" {
		return "", flowErr(common.ErrInvalidFormat, MsgMailMissingCode, nil)
	}
	address = account.NormalizeEmail(address)

	res, err := s.client.VerifyMailCode(ctx, address, code)
	if err != nil {
		if apiErr, ok := client.AsAPIError(err); ok && apiErr.Message != "" {
			return "", flowErr(common.ErrRemoteRejected, apiErr.Message, err)
		}
		s.log.Warn(ctx, "mail verification failed", "kind", common.ErrTransport, "error", err)
		return "", flowErr(common.ErrTransport, MsgNetwork, err)
	}

	msg := res.ResponseMessage
	if !res.Success {
		if msg == "" {
			msg = MsgMailVerifyUnknown
		}
		return "", flowErr(common.ErrRemoteRejected, msg, nil)
	}
	if msg == "" {
		msg = MsgMailVerified
	}
	return msg, nil
}

func (s *mailService) RegisterEmail(ctx context.Context, address, code string) error {
	cur := s.store.Snapshot()
	if !cur.LoggedIn() || cur.StudentNumber == 0 {
		return flowErr(common.ErrInvalidFormat, MsgNotLoggedIn, nil)
	}

	if _, err := s.VerifyCode(ctx, address, code); err != nil {
		return err
	}
	address = account.NormalizeEmail(strings.TrimSpace(address))

	err := s.client.UpdateMail(ctx, client.MailUpdateRequest{StudentNumber: cur.StudentNumber, Email: address})
	if err != nil {
		kind := classify(err)
		if kind == common.ErrUnknownRemote {
			kind = common.ErrRemoteRejected
		}
		s.log.Warn(ctx, "mail update failed", "kind", kind, "error", err)
		return flowErr(kind, MsgMailUpdateFailed, err)
	}

	if err := s.store.UpdateEmail(ctx, address); err != nil {
		s.log.Warn(ctx, "session not persisted", "error", err)
	}
	s.log.Info(ctx, "email registered", "student_number", cur.StudentNumber)
	return nil
}

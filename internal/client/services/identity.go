package services

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/cbuclub/internal/account"
	"github.com/dmitrijs2005/cbuclub/internal/client/client"
	"github.com/dmitrijs2005/cbuclub/internal/client/session"
	"github.com/dmitrijs2005/cbuclub/internal/common"
	"github.com/dmitrijs2005/cbuclub/internal/logging"
)

// IdentityService verifies a prospective member against the roster.
type IdentityService interface {
	// Verify checks the format locally, asks the backend, and on success
	// stores the returned profile into the session.
	Verify(ctx context.Context, studentNumber, nickname string) (*client.UserInfo, error)
}

type identityService struct {
	client client.Client
	store  *session.Store
	log    logging.Logger
}

func NewIdentityService(c client.Client, store *session.Store, log logging.Logger) IdentityService {
	return &identityService{client: c, store: store, log: log.With("flow", "identity")}
}

func (s *identityService) Verify(ctx context.Context, studentNumber, nickname string) (*client.UserInfo, error) {
	studentNumber = strings.TrimSpace(studentNumber)
	nickname = strings.TrimSpace(nickname)

	if err := account.Validate(account.VerifyForm{StudentNumber: studentNumber, Nickname: nickname}); err != nil {
		msg := MsgVerifyMissingFields
		var fe *account.FieldError
		if errors.As(err, &fe) && fe.Rule == "studentno" {
			msg = MsgVerifyStudentNumber
		}
		return nil, flowErr(common.ErrInvalidFormat, msg, err)
	}

	n, err := strconv.ParseInt(studentNumber, 10, 64)
	if err != nil {
		return nil, flowErr(common.ErrInvalidFormat, MsgVerifyStudentNumber, err)
	}

	if cur := s.store.Snapshot(); cur.StudentNumber != 0 && cur.StudentNumber != n {
		return nil, flowErr(common.ErrInvalidFormat, MsgVerifyOtherSession, session.ErrStudentNumberLocked)
	}

	info, err := s.client.VerifyMember(ctx, client.VerifyMemberRequest{StudentNumber: n, NickName: nickname})
	if err != nil {
		msg := MsgVerifyFailed
		if errors.Is(err, client.ErrUnavailable) {
			msg = MsgNetwork
		}
		kind := classify(err)
		if kind == common.ErrUnknownRemote {
			kind = common.ErrRemoteRejected
		}
		s.log.Warn(ctx, "roster verification failed", "kind", kind, "error", err)
		return nil, flowErr(kind, msg, err)
	}

	if info.StudentNumber == 0 {
		info.StudentNumber = n
	}
	if err := s.store.SetUser(ctx, session.Patch{
		Name:          &info.Name,
		StudentNumber: &info.StudentNumber,
		Major:         &info.Major,
		Grade:         &info.Grade,
		NickName:      &info.NickName,
	}); err != nil {
		if !errors.Is(err, session.ErrPersist) {
			return nil, flowErr(common.ErrRemoteRejected, MsgVerifyFailed, err)
		}
		s.log.Warn(ctx, "session not persisted", "error", err)
	}

	s.log.Info(ctx, "roster verification succeeded", "student_number", info.StudentNumber)
	return info, nil
}

package client

import "context"

type Client interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	Signup(ctx context.Context, req SignupRequest) error
	ChangePassword(ctx context.Context, req ChangePasswordRequest) error
	VerifyMember(ctx context.Context, req VerifyMemberRequest) (*UserInfo, error)
	SendMailCode(ctx context.Context, address string) (*MailResult, error)
	VerifyMailCode(ctx context.Context, address, code string) (*MailResult, error)
	UpdateMail(ctx context.Context, req MailUpdateRequest) error
}

package client

type LoginRequest struct {
	StudentNumber int64  `json:"studentNumber"`
	Password      string `json:"password"`
}

// LoginResponse is the body of a successful login. The backend reports a
// missing email either as JSON null or as the literal string "null".
type LoginResponse struct {
	Name  string  `json:"name"`
	Email *string `json:"email"`
}

// EmailAddress returns the reported email, or nil when it is unset.
func (r LoginResponse) EmailAddress() *string {
	if r.Email == nil || *r.Email == "null" {
		return nil
	}
	e := *r.Email
	return &e
}

type SignupRequest struct {
	Email         string `json:"email"`
	Password      string `json:"password"`
	Name          string `json:"name"`
	StudentNumber int64  `json:"studentNumber"`
	Nickname      string `json:"nickname"`
}

type ChangePasswordRequest struct {
	StudentNumber int64  `json:"studentNumber"`
	Password      string `json:"password"`
}

type VerifyMemberRequest struct {
	StudentNumber int64  `json:"studentNumber"`
	NickName      string `json:"nickName"`
}

// UserInfo is the roster record returned by a successful member verification.
type UserInfo struct {
	MemberID      int64  `json:"successMemberId"`
	Name          string `json:"name"`
	NickName      string `json:"nickName"`
	Grade         string `json:"grade"`
	Major         string `json:"major"`
	PhoneNumber   string `json:"phoneNumber"`
	StudentNumber int64  `json:"studentNumber"`
}

// MailResult is the body of the mail send and verify endpoints.
type MailResult struct {
	Success         bool   `json:"success"`
	ResponseMessage string `json:"responseMessage,omitempty"`
}

type mailVerifyBody struct {
	Address  string `json:"address"`
	AuthCode string `json:"authCode"`
}

type MailUpdateRequest struct {
	StudentNumber int64  `json:"studentNumber"`
	Email         string `json:"email"`
}

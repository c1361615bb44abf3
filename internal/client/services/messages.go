package services

// User-facing messages.
const (
	MsgGeneric = "요청 처리 중 오류가 발생했습니다. 다시 시도해주세요."
	MsgNetwork = "네트워크 오류가 발생했습니다."

	MsgVerifyMissingFields = "모든 필드를 입력해주세요."
	MsgVerifyStudentNumber = "학번은 10자리 숫자여야 합니다."
	MsgVerifyFailed        = "서버 인증 실패."
	MsgVerifyOtherSession  = "이미 다른 계정으로 로그인되어 있습니다. 로그아웃 후 다시 시도해주세요."

	MsgMailMissingAddress = "이메일을 입력해주세요."
	MsgMailMissingCode    = "인증 코드를 입력해주세요."
	MsgMailSendRequest    = "서버 요청에 실패했습니다. 다시 시도해주세요."
	MsgMailSendFailed     = "메일 전송 실패"
	MsgMailVerified       = "인증되었습니다!"
	MsgMailVerifyUnknown  = "인증 결과를 확인할 수 없습니다."
	MsgMailUpdateFailed   = "이메일 업데이트에 실패했습니다. 다시 시도해주세요."

	MsgSignupFailed  = "회원가입 요청 실패"
	MsgSignupUnknown = "회원가입 중 알 수 없는 오류가 발생했습니다."

	MsgLoginMissingFields   = "아이디와 비밀번호를 입력하세요."
	MsgLoginBadStudentID    = "아이디 형식이 올바르지 않습니다."
	MsgLoginInvalidPassword = "비밀번호가 올바르지 않습니다.\n기억이 나지 않을 시 관리자에게 문의해주세요."
	MsgLoginNoMember        = "해당 멤버가 존재하지 않습니다.\n관리자에게 문의해주세요."
	MsgLoginFailed          = "로그인 중 오류가 발생했습니다. 다시 시도해주세요."
	MsgDefaultPasswordAsk   = "기본 비밀번호 사용이 감지되었습니다.\n계정 보호를 위해 비밀번호 변경을 권장합니다.\n변경 페이지로 이동하시겠습니까?"

	MsgNotLoggedIn             = "로그인이 필요합니다."
	MsgPasswordCurrentRequired = "현재 비밀번호를 입력해주세요."
	MsgPasswordPolicy          = "비밀번호는 8자 이상이며 영문, 숫자, 특수문자 중 2가지 이상을 포함해야 합니다."
	MsgPasswordMismatch        = "새 비밀번호가 일치하지 않습니다."
	MsgPasswordChanged         = "비밀번호 변경 완료!"
	MsgPasswordChangeFailed    = "비밀번호 변경에 실패하였습니다. 다시 시도해주세요."

	MsgSignupOutOfOrder = "이전 단계를 먼저 완료해주세요."
)

// Remote messages the login workflow recognizes.
const (
	remoteInvalidPassword = "Invalid password"
	remoteNoMember        = "Member isn't exist"
)

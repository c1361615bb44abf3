// Package account holds the pure rules shared by the membership workflows:
// identifier normalization, the student-number gate, the password policy and
// the fixed onboarding credential. Nothing here performs I/O.
package account

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/cbuclub/internal/common"
)

const (
	// DefaultPassword is assigned to every newly registered account and is
	// the value login compares against to detect an unrotated credential.
	DefaultPassword = "12345678"

	// EmailDomain is appended to bare local-part input.
	EmailDomain = "tukorea.ac.kr"

	// StudentIDPrefix is the optional textual prefix of a login id.
	StudentIDPrefix = "cbu"

	// AdminName and AdminEmail identify the single administrator account.
	AdminName  = "관리자"
	AdminEmail = "cbuAdmin@tukorea.ac.kr"
)

var studentNumberRe = regexp.MustCompile(`^[0-9]{10}$`)

// NormalizeEmail appends "@"+EmailDomain when raw has no '@'.
// It is idempotent.
func NormalizeEmail(raw string) string {
	if strings.Contains(raw, "@") {
		return raw
	}
	return raw + "@" + EmailDomain
}

// StripStudentPrefix removes a leading StudentIDPrefix, if present.
func StripStudentPrefix(id string) string {
	return strings.TrimPrefix(id, StudentIDPrefix)
}

// ParseStudentID turns a login id ("cbu2019012345" or "2019012345") into
// the numeric student number sent to the backend.
func ParseStudentID(id string) (int64, error) {
	rest := StripStudentPrefix(id)
	n, err := strconv.ParseInt(rest, 10, 64)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("student id %q: %w", id, common.ErrInvalidFormat)
	}
	return n, nil
}

// ValidStudentNumber reports whether s is exactly ten ASCII digits.
func ValidStudentNumber(s string) bool {
	return studentNumberRe.MatchString(s)
}

// IsAdmin derives the admin flag from the identity fields.
func IsAdmin(name string, email *string) bool {
	return name == AdminName && email != nil && *email == AdminEmail
}

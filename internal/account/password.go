package account

import (
	"unicode"
	"unicode/utf8"
)

// MinPasswordLength is the minimum number of characters of a new password.
const MinPasswordLength = 8

// ValidPassword is the password policy: at least MinPasswordLength characters
// and at least two of the classes {letter, digit, other}.
func ValidPassword(pw string) bool {
	if utf8.RuneCountInString(pw) < MinPasswordLength {
		return false
	}

	var letter, digit, other bool
	for _, r := range pw {
		switch {
		case unicode.IsLetter(r):
			letter = true
		case unicode.IsDigit(r):
			digit = true
		default:
			other = true
		}
	}

	classes := 0
	for _, ok := range []bool{letter, digit, other} {
		if ok {
			classes++
		}
	}
	return classes >= 2
}

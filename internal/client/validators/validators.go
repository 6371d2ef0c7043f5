// Package validators holds pure, single-field checks and normalizers used by
// the sign-in, sign-up, grievance and profile forms.
package validators

import (
	"regexp"
	"strings"
	"time"
	"unicode"
)

var (
	emailRe    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	tenDigitRe = regexp.MustCompile(`^[0-9]{10}$`)
	fullNameRe = regexp.MustCompile(`^[A-Z][a-zA-Z\s]+$`)
	passwordRe = regexp.MustCompile(`^[A-Za-z0-9!@#$%^&*]{8,}$`)
)

// PasswordSymbols is the punctuation a strong password must contain one of.
const PasswordSymbols = "!@#$%^&*"

// DateLayouts are the accepted date of birth formats.
var DateLayouts = []string{"02/01/2006", "2006-01-02"}

func IsEmail(s string) bool {
	return emailRe.MatchString(s)
}

// IsIdentifier accepts an email address or a 10 digit phone number.
func IsIdentifier(s string) bool {
	return IsEmail(s) || tenDigitRe.MatchString(s)
}

func IsPhone(s string) bool {
	return tenDigitRe.MatchString(s)
}

// ClampPhone strips non-digits and keeps at most 10 characters.
func ClampPhone(s string) string {
	var b strings.Builder
	for _, r := range s {
		if b.Len() == 10 {
			break
		}
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func IsFullName(s string) bool {
	return fullNameRe.MatchString(s)
}

// NormalizeFullName upper-cases the first letter of every whitespace
// delimited word and leaves the rest untouched.
func NormalizeFullName(s string) string {
	out := []rune(s)
	start := true
	for i, r := range out {
		if unicode.IsSpace(r) {
			start = true
			continue
		}
		if start {
			out[i] = unicode.ToUpper(r)
		}
		start = false
	}
	return string(out)
}

// IsStrongPassword is the registration rule: at least 8 characters drawn from
// letters, digits and PasswordSymbols, with one upper-case letter and one symbol.
func IsStrongPassword(s string) bool {
	if !passwordRe.MatchString(s) {
		return false
	}
	return strings.ContainsFunc(s, func(r rune) bool { return r >= 'A' && r <= 'Z' }) &&
		strings.ContainsAny(s, PasswordSymbols)
}

// IsLoginPassword is the looser sign-in rule.
func IsLoginPassword(s string) bool {
	return len(s) >= 8
}

// ParseDateOfBirth parses s and reports whether it is a calendar date not
// after now.
func ParseDateOfBirth(s string, now time.Time) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range DateLayouts {
		d, err := time.ParseInLocation(layout, s, now.Location())
		if err != nil {
			continue
		}
		y, m, day := now.Date()
		today := time.Date(y, m, day, 0, 0, 0, 0, now.Location())
		return d, !d.After(today)
	}
	return time.Time{}, false
}

// FormatDate renders d the way the profile screen displays it.
func FormatDate(d time.Time) string {
	return d.Format(DateLayouts[0])
}

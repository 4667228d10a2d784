package validators

import (
	"net"
	"regexp"
	"strings"
)

func IsEmailDomainValid(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return false
	}

	domain := email[at+1:]

	if mx, err := net.LookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}

	if ips, err := net.LookupIP(domain); err == nil && len(ips) > 0 {
		return true
	}

	return false
}

var nonDigits = regexp.MustCompile(`\D`)

// NormalizePhone strips formatting so the same number always maps to the
// same walk-in client record.
func NormalizePhone(phone string) string {
	return nonDigits.ReplaceAllString(phone, "")
}

func IsPhoneValid(phone string) bool {
	digits := NormalizePhone(phone)
	return len(digits) >= 8 && len(digits) <= 15
}

package ordergateway

import "strings"

// formatPhoneNumber normalizes a raw phone number to canonical +971 form:
// numbers already carrying the country code pass through, a national trunk
// zero is replaced by the country code, anything else gets it prepended.
func formatPhoneNumber(phone string) string {
	digits := digitsOnly(phone)
	if strings.HasPrefix(digits, "971") {
		return "+" + digits
	}
	if strings.HasPrefix(digits, "0") {
		return "+971" + digits[1:]
	}
	return "+971" + digits
}

func digitsOnly(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

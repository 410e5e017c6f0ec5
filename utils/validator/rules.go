package validatorx

import "strings"

// passwordSpecials is the fixed set of characters accepted as "special" by the
// password policy.
const passwordSpecials = `!@#$%^&*()_+-=[]{};':"|,.<>/?`

// IsValidPhone reports whether phone is an international number: a leading
// plus, a nonzero first digit, 11 to 15 digits total.
func IsValidPhone(phone string) bool {
	if len(phone) < 12 || len(phone) > 16 {
		return false
	}
	if phone[0] != '+' {
		return false
	}
	digits := phone[1:]
	if digits[0] == '0' {
		return false
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return false
		}
	}
	return true
}

// IsValidPassword enforces the registration password policy: length >= 6, at
// least one uppercase letter, at least one special character from a fixed set.
func IsValidPassword(password string) bool {
	if len(password) < 6 {
		return false
	}
	hasUpper := false
	hasSpecial := false
	for _, r := range password {
		if r >= 'A' && r <= 'Z' {
			hasUpper = true
		}
		if strings.ContainsRune(passwordSpecials, r) {
			hasSpecial = true
		}
	}
	return hasUpper && hasSpecial
}

// IsValidOTP reports whether code is exactly length digits.
func IsValidOTP(code string, length int) bool {
	if len(code) != length {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return false
		}
	}
	return true
}

package phonebook

import "github.com/tartampluch/go-phonebook/internal/config"

// Phone is a validated phone number of exactly ten decimal digits.
// The zero value is not a valid phone; obtain one through ParsePhone.
type Phone struct {
	digits string
}

// ParsePhone validates raw and returns it as a Phone.
func ParsePhone(raw string) (Phone, error) {
	if !isPhoneDigits(raw) {
		return Phone{}, &ValidationError{
			Field:   fieldPhone,
			Value:   raw,
			Message: config.ErrPhoneDigits,
		}
	}
	return Phone{digits: raw}, nil
}

func (p Phone) String() string {
	return p.digits
}

// isPhoneDigits reports whether s is exactly PhoneDigits ASCII digits.
func isPhoneDigits(s string) bool {
	if len(s) != config.PhoneDigits {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

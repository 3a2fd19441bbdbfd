package notification

import (
	"errors"
	"fmt"
)

var ErrInvalidPhone = errors.New("invalid phone number")

// NormalizePhone reduces a human-formatted phone number to bare digits:
// a leading + is stripped, spaces, dots, hyphens and parentheses are
// dropped, anything else is rejected. The result must carry 10 to 15
// digits (country code included).
func NormalizePhone(raw string) (string, error) {
	out := make([]byte, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch {
		case c >= '0' && c <= '9':
			out = append(out, c)
		case c == '+' && i == 0:
		case c == ' ' || c == '-' || c == '.' || c == '(' || c == ')':
		default:
			return "", fmt.Errorf("%w: unexpected character %q in %q", ErrInvalidPhone, c, raw)
		}
	}

	if len(out) < 10 || len(out) > 15 {
		return "", fmt.Errorf("%w: %q has %d digits, want 10-15", ErrInvalidPhone, raw, len(out))
	}
	return string(out), nil
}

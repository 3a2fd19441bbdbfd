package packaging

import (
	"crypto/rand"
	"math/big"
)

const (
	passwordLength  = 16
	passwordCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%&*"
)

// GeneratePassword returns a fresh high-entropy access password for one
// delivery package. It is disclosed once, in the customer notification,
// and never stored.
func GeneratePassword() (string, error) {
	max := big.NewInt(int64(len(passwordCharset)))
	out := make([]byte, passwordLength)
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = passwordCharset[n.Int64()]
	}
	return string(out), nil
}

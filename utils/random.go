package utils

import (
	"crypto/rand"
	"errors"
	"math/big"
	"regexp"
)

const alphanumeric = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// ShareIDLength üretilen paylaşım kimliği uzunluğu.
const ShareIDLength = 10

var shareIDPattern = regexp.MustCompile(`^[A-Za-z0-9]{8,12}$`)

// GenerateSecureRandomString crypto/rand ile [A-Za-z0-9] alfabesinden n karakter üretir.
func GenerateSecureRandomString(n int) (string, error) {
	if n <= 0 {
		return "", errors.New("uzunluk pozitif olmalı")
	}
	max := big.NewInt(int64(len(alphanumeric)))
	out := make([]byte, n)
	for i := range out {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = alphanumeric[idx.Int64()]
	}
	return string(out), nil
}

// IsValidShareID 8-12 karakterlik alfanümerik kimlik mi?
func IsValidShareID(id string) bool {
	return shareIDPattern.MatchString(id)
}

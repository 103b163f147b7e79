package utils

import (
	"crypto/rand"
	"math/big"
	"strconv"
)

// ParseInt converts string to int with default value
func ParseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	if result < 1 {
		return defaultValue
	}

	return result
}

// GenerateConfirmationCode creates a numeric confirmation code of the
// given length using crypto/rand.
func GenerateConfirmationCode(length int) string {
	if length <= 0 {
		length = 6
	}

	code := make([]byte, length)
	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			// rand.Reader failing means the platform RNG is broken
			panic(err)
		}
		code[i] = byte('0' + n.Int64())
	}

	return string(code)
}

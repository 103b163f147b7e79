package utils

import (
	"golang.org/x/crypto/bcrypt"
)

// HashCode hashes a confirmation code before it is stored. Codes are
// short-lived credentials and never kept in plain text.
func HashCode(code string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckCodeHash compares a submitted code against its stored hash
func CheckCodeHash(code, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(code))
	return err == nil
}

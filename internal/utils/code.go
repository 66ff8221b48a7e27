package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const verificationCodeDigits = 6

// GenerateVerificationCode returns a zero-padded 6-digit numeric code
func GenerateVerificationCode() (string, error) {
	max := big.NewInt(1_000_000)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", fmt.Errorf("failed to generate verification code: %w", err)
	}
	return fmt.Sprintf("%0*d", verificationCodeDigits, n.Int64()), nil
}

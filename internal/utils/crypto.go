package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// InviteCodeAlphabet lists the characters used in generated invite codes
const InviteCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateInviteCode returns a random code of the given length. Ambiguous
// characters (0, O, 1, I) are left out.
func GenerateInviteCode(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("invite code length must be positive, got %d", length)
	}

	max := big.NewInt(int64(len(InviteCodeAlphabet)))
	code := make([]byte, length)
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate invite code: %w", err)
		}
		code[i] = InviteCodeAlphabet[n.Int64()]
	}

	return string(code), nil
}

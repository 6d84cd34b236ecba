package utils

import (
	"strings"
	"testing"

	"nightlife-booking-platform/internal/models"
)

func TestGenerateInviteCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code, err := GenerateInviteCode(4)
		if err != nil {
			t.Fatalf("GenerateInviteCode failed: %v", err)
		}
		if err := models.ValidateInviteCodeFormat(code); err != nil {
			t.Errorf("Generated code %q is not a valid invite code: %v", code, err)
		}
		for _, c := range code {
			if !strings.ContainsRune(InviteCodeAlphabet, c) {
				t.Errorf("Unexpected character %q in %q", c, code)
			}
		}
		seen[code] = true
	}

	if len(seen) < 40 {
		t.Errorf("Expected mostly distinct codes, got %d of 50", len(seen))
	}
}

func TestGenerateInviteCode_InvalidLength(t *testing.T) {
	if _, err := GenerateInviteCode(0); err == nil {
		t.Error("Expected error for zero length")
	}
}

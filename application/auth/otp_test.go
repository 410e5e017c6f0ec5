package auth

import "testing"

func TestGenerateOTP(t *testing.T) {
	for _, length := range []int{4, 6} {
		code, err := generateOTP(length)
		if err != nil {
			t.Fatalf("generateOTP(%d) error = %v", length, err)
		}
		if len(code) != length {
			t.Fatalf("generateOTP(%d) length = %d", length, len(code))
		}
		for _, c := range code {
			if c < '0' || c > '9' {
				t.Fatalf("generateOTP(%d) = %q, want digits only", length, code)
			}
		}
	}

	// Each digit should show up across enough draws.
	seen := make(map[byte]bool)
	for i := 0; i < 500; i++ {
		code, err := generateOTP(6)
		if err != nil {
			t.Fatalf("generateOTP(6) error = %v", err)
		}
		for i := 0; i < len(code); i++ {
			seen[code[i]] = true
		}
	}
	if len(seen) != 10 {
		t.Fatalf("digits seen = %d, want all 10", len(seen))
	}
}

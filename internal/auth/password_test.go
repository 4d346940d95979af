package auth

import (
	"strings"
	"testing"
)

// Cost 4 is the bcrypt minimum — fast enough that the full suite doesn't
// spend seconds hashing.
func newTestPasswordService() *PasswordService {
	return NewPasswordServiceForTest(4)
}

func TestHash_ProducesBcryptOutput(t *testing.T) {
	ps := newTestPasswordService()

	hash, err := ps.Hash("pw123")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if !strings.HasPrefix(hash, "$2") {
		t.Errorf("Hash() = %q, want bcrypt format starting with $2", hash)
	}
	if hash == "pw123" {
		t.Error("Hash() must not return the plaintext")
	}
}

func TestHash_SamePasswordDifferentHashes(t *testing.T) {
	ps := newTestPasswordService()

	h1, _ := ps.Hash("pw123")
	h2, _ := ps.Hash("pw123")

	// Random per-hash salt: identical passwords never share a hash.
	if h1 == h2 {
		t.Error("two hashes of the same password should differ")
	}
}

func TestHash_RejectsOverlongPassword(t *testing.T) {
	ps := newTestPasswordService()

	if _, err := ps.Hash(strings.Repeat("a", 73)); err == nil {
		t.Fatal("Hash() should reject passwords longer than 72 bytes")
	}
}

func TestVerify_CorrectPassword(t *testing.T) {
	ps := newTestPasswordService()

	hash, _ := ps.Hash("pw123")
	if err := ps.Verify(hash, "pw123"); err != nil {
		t.Errorf("Verify() error = %v, want nil for correct password", err)
	}
}

func TestVerify_WrongPassword(t *testing.T) {
	ps := newTestPasswordService()

	hash, _ := ps.Hash("pw123")
	if err := ps.Verify(hash, "wrong"); err == nil {
		t.Error("Verify() should fail for a wrong password")
	}
}

func TestVerify_GarbageHash(t *testing.T) {
	ps := newTestPasswordService()

	if err := ps.Verify("not-a-bcrypt-hash", "pw123"); err == nil {
		t.Error("Verify() should fail for a malformed hash")
	}
}

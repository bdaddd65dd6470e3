package service

import (
	"strings"
	"testing"
)

func TestGeneratePassword(t *testing.T) {
	pw, err := generatePassword("Ana María", "O'Neil", 19)
	if err != nil {
		t.Fatalf("generatePassword returned error: %v", err)
	}
	if !strings.HasPrefix(pw, "anaone19") {
		t.Fatalf("unexpected prefix in %q", pw)
	}
	suffix := strings.TrimPrefix(pw, "anaone19")
	if len(suffix) != generatedSuffixLength {
		t.Fatalf("expected %d random characters, got %q", generatedSuffixLength, suffix)
	}
	for _, r := range suffix {
		if !strings.ContainsRune(generatedSuffixAlphabet, r) {
			t.Fatalf("unexpected character %q in suffix", r)
		}
	}
}

func TestGeneratePassword_ShortProfile(t *testing.T) {
	pw, err := generatePassword("Al", "", 7)
	if err != nil {
		t.Fatalf("generatePassword returned error: %v", err)
	}
	if !strings.HasPrefix(pw, "al7") || len(pw) != 3+generatedSuffixLength {
		t.Fatalf("unexpected password %q", pw)
	}
}

func TestGeneratePassword_Random(t *testing.T) {
	a, _ := generatePassword("ana", "perez", 20)
	b, _ := generatePassword("ana", "perez", 20)
	if a == b {
		t.Fatalf("expected distinct passwords, got %q twice", a)
	}
}

package auth

import (
	"errors"
	"testing"
	"time"
)

func TestJWT_RoundTrip(t *testing.T) {
	token, err := SignJWT("01USERJWTAAAAAAAAAAAAAAAAA", "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	uid, err := ParseJWT(token, "test-secret")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if uid != "01USERJWTAAAAAAAAAAAAAAAAA" {
		t.Fatalf("wrong uid: %q", uid)
	}
}

func TestJWT_WrongSecret(t *testing.T) {
	token, err := SignJWT("01USERJWTAAAAAAAAAAAAAAAAA", "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := ParseJWT(token, "other-secret"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected invalid token, got %v", err)
	}
}

func TestJWT_Expired(t *testing.T) {
	token, err := SignJWT("01USERJWTAAAAAAAAAAAAAAAAA", "test-secret", -time.Minute)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := ParseJWT(token, "test-secret"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected invalid token, got %v", err)
	}
}

func TestPassword_HashAndCheck(t *testing.T) {
	hash, err := HashPassword("correct-horse")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "correct-horse" {
		t.Fatalf("hash must not equal the plaintext")
	}
	if !CheckPassword(hash, "correct-horse") {
		t.Fatalf("correct password rejected")
	}
	if CheckPassword(hash, "battery-staple") {
		t.Fatalf("wrong password accepted")
	}
}

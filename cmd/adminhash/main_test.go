package main

import (
	"testing"

	"nick-exchange.backend/pkg/crypto"
)

func TestGenerateAdminKey(t *testing.T) {
	key, hash, err := generateAdminKey(16)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if key == "" || hash == "" {
		t.Fatal("expected non-empty key and hash")
	}
	if !crypto.CheckKey(key, hash) {
		t.Fatal("hash does not verify against generated key")
	}
}

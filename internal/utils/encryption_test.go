package utils

import "testing"

func TestSecretRoundtrip(t *testing.T) {
	passphrase := "test-enc-key"
	plaintext := "skuvault-password"

	encrypted, err := EncryptSecret(plaintext, passphrase)
	if err != nil {
		t.Fatalf("Failed to encrypt: %v", err)
	}
	if encrypted == plaintext {
		t.Error("Ciphertext should not match plaintext")
	}

	decrypted, err := DecryptSecret(encrypted, passphrase)
	if err != nil {
		t.Fatalf("Failed to decrypt: %v", err)
	}
	if decrypted != plaintext {
		t.Errorf("Expected %q, got %q", plaintext, decrypted)
	}

	// Random nonce means two encryptions of the same value differ
	again, err := EncryptSecret(plaintext, passphrase)
	if err != nil {
		t.Fatalf("Failed to encrypt second time: %v", err)
	}
	if again == encrypted {
		t.Error("Repeated encryption should produce distinct ciphertext")
	}
}

func TestDecryptWrongPassphrase(t *testing.T) {
	encrypted, err := EncryptSecret("topsecret", "right-key")
	if err != nil {
		t.Fatalf("Failed to encrypt: %v", err)
	}
	if _, err := DecryptSecret(encrypted, "wrong-key"); err == nil {
		t.Error("Decryption should fail with wrong passphrase")
	}
}

func TestEncryptionRequiresKey(t *testing.T) {
	if _, err := EncryptSecret("x", ""); err == nil {
		t.Error("Encryption should fail without a configured key")
	}
	if _, err := DecryptSecret("deadbeef", ""); err == nil {
		t.Error("Decryption should fail without a configured key")
	}
}

func TestDecryptRejectsGarbage(t *testing.T) {
	if _, err := DecryptSecret("not-hex", "key"); err == nil {
		t.Error("Decryption should reject non-hex input")
	}
	if _, err := DecryptSecret("abcd", "key"); err == nil {
		t.Error("Decryption should reject truncated ciphertext")
	}
}

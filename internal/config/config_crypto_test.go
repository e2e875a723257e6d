package config_test

import (
	"os"
	"testing"

	"github.com/saulo-duarte/quiz-proctor/internal/config"
)

const testKey = "01234567890123456789012345678901"

func TestInitCrypto(t *testing.T) {
	t.Run("ShortKey", func(t *testing.T) {
		os.Setenv("CRYPTO_KEY", "chave_curta")
		defer os.Unsetenv("CRYPTO_KEY")

		defer func() {
			if r := recover(); r == nil {
				t.Errorf("InitCrypto should panic with a short key")
			}
		}()

		config.InitCrypto()
	})

	t.Run("EmptyKeyDisables", func(t *testing.T) {
		os.Unsetenv("CRYPTO_KEY")
		config.InitCrypto()
		if config.CryptoEnabled() {
			t.Errorf("crypto should be disabled without CRYPTO_KEY")
		}
	})

	t.Run("ValidKey", func(t *testing.T) {
		os.Setenv("CRYPTO_KEY", testKey)
		defer os.Unsetenv("CRYPTO_KEY")

		config.InitCrypto()
		if !config.CryptoEnabled() {
			t.Errorf("crypto should be enabled with a 32 byte key")
		}
	})
}

func TestEncryptDecrypt(t *testing.T) {
	os.Setenv("CRYPTO_KEY", testKey)
	defer os.Unsetenv("CRYPTO_KEY")
	config.InitCrypto()

	t.Run("SimpleText", func(t *testing.T) {
		plaintext := "9876543210"

		ciphertext, err := config.Encrypt(plaintext)
		if err != nil {
			t.Fatalf("Encrypt failed: %v", err)
		}

		decrypted, err := config.Decrypt(ciphertext)
		if err != nil {
			t.Fatalf("Decrypt failed: %v", err)
		}

		if decrypted != plaintext {
			t.Errorf("decrypted text %q does not match %q", decrypted, plaintext)
		}

		ciphertext2, _ := config.Encrypt(plaintext)
		if ciphertext == ciphertext2 {
			t.Errorf("two encryptions of the same text should differ")
		}
	})

	t.Run("EmptyText", func(t *testing.T) {
		ciphertext, err := config.Encrypt("")
		if err != nil {
			t.Fatalf("Encrypt failed: %v", err)
		}
		decrypted, err := config.Decrypt(ciphertext)
		if err != nil {
			t.Fatalf("Decrypt failed: %v", err)
		}
		if decrypted != "" {
			t.Errorf("empty text decrypted to %q", decrypted)
		}
	})

	t.Run("Truncated", func(t *testing.T) {
		if _, err := config.Decrypt("AAAA"); err == nil {
			t.Errorf("Decrypt should fail on truncated input")
		}
	})
}

package sanitize

import (
	"bytes"
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/zoobzio/imprint"
)

var testKey = []byte("32-byte-key-for-aes-256-encrypt!")

func TestEncryptors_RoundTrip(t *testing.T) {
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("GenerateKey() error: %v", err)
	}
	aesEnc, err := AES(testKey)
	if err != nil {
		t.Fatalf("AES() error: %v", err)
	}
	envEnc, err := Envelope(testKey[:16])
	if err != nil {
		t.Fatalf("Envelope() error: %v", err)
	}

	tests := []struct {
		name string
		enc  Encryptor
	}{
		{"aes", aesEnc},
		{"rsa", RSA(&priv.PublicKey, priv)},
		{"envelope", envEnc},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plaintext := []byte("hello, world!")
			c1, err := tt.enc.Encrypt(plaintext)
			if err != nil {
				t.Fatalf("Encrypt() error: %v", err)
			}
			if bytes.Equal(plaintext, c1) {
				t.Error("ciphertext should differ from plaintext")
			}

			c2, _ := tt.enc.Encrypt(plaintext)
			if bytes.Equal(c1, c2) {
				t.Error("same plaintext should produce different ciphertext")
			}

			got, err := tt.enc.Decrypt(c1)
			if err != nil {
				t.Fatalf("Decrypt() error: %v", err)
			}
			if !bytes.Equal(got, plaintext) {
				t.Errorf("Decrypt() = %q, want %q", got, plaintext)
			}
		})
	}
}

func TestEncryptors_InvalidKeySize(t *testing.T) {
	if _, err := AES([]byte("short")); !errors.Is(err, ErrInvalidKeySize) {
		t.Errorf("AES() error = %v, want ErrInvalidKeySize", err)
	}
	if _, err := Envelope([]byte("short")); !errors.Is(err, ErrInvalidKeySize) {
		t.Errorf("Envelope() error = %v, want ErrInvalidKeySize", err)
	}
}

func TestEncryptors_Tampered(t *testing.T) {
	aesEnc, _ := AES(testKey)
	envEnc, _ := Envelope(testKey)

	for name, enc := range map[string]Encryptor{"aes": aesEnc, "envelope": envEnc} {
		t.Run(name, func(t *testing.T) {
			ct, err := enc.Encrypt([]byte("secret"))
			if err != nil {
				t.Fatalf("Encrypt() error: %v", err)
			}
			ct[len(ct)-1] ^= 0xff
			if _, err := enc.Decrypt(ct); !errors.Is(err, ErrDecryptionFailed) {
				t.Errorf("Decrypt() error = %v, want ErrDecryptionFailed", err)
			}
			if _, err := enc.Decrypt(ct[:1]); !errors.Is(err, ErrCiphertextShort) {
				t.Errorf("Decrypt() error = %v, want ErrCiphertextShort", err)
			}
		})
	}
}

func TestRSA_MissingKeys(t *testing.T) {
	if _, err := RSA(nil, nil).Encrypt([]byte("x")); !errors.Is(err, ErrMissingKey) {
		t.Errorf("Encrypt() error = %v, want ErrMissingKey", err)
	}
	if _, err := RSA(nil, nil).Decrypt([]byte("x")); !errors.Is(err, ErrMissingKey) {
		t.Errorf("Decrypt() error = %v, want ErrMissingKey", err)
	}
}

func TestApplyEncrypt(t *testing.T) {
	enc, err := AES(testKey)
	if err != nil {
		t.Fatalf("AES() error: %v", err)
	}
	s, err := New(
		WithEncryptor(EncryptAES, enc),
		WithEncrypt("card", EncryptAES),
		WithEncrypt("blob", EncryptAES),
	)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	in := imprint.Struct{Name: "Payment", Fields: []imprint.Field{
		{Name: "card", Value: imprint.String("4111111111111111")},
		{Name: "blob", Value: imprint.Bytes("raw")},
	}}
	got, err := s.Apply(context.Background(), in)
	if err != nil {
		t.Fatalf("Apply() error: %v", err)
	}
	fields := got.(imprint.Struct).Fields

	card, ok := fields[0].Value.(imprint.String)
	if !ok {
		t.Fatalf("card = %s, want a string", fields[0].Value)
	}
	ct, err := base64.StdEncoding.DecodeString(string(card))
	if err != nil {
		t.Fatalf("DecodeString() error: %v", err)
	}
	if pt, err := enc.Decrypt(ct); err != nil || string(pt) != "4111111111111111" {
		t.Errorf("Decrypt(card) = %q, %v", pt, err)
	}

	blob, ok := fields[1].Value.(imprint.Bytes)
	if !ok {
		t.Fatalf("blob = %s, want bytes", fields[1].Value)
	}
	if pt, err := enc.Decrypt(blob); err != nil || string(pt) != "raw" {
		t.Errorf("Decrypt(blob) = %q, %v", pt, err)
	}
}

func TestApplyEncryptWithoutEncryptor(t *testing.T) {
	if _, err := New(WithEncrypt("card", EncryptAES)); !errors.Is(err, ErrInvalidRule) {
		t.Errorf("New() error = %v, want ErrInvalidRule", err)
	}
}

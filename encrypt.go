package ecpem

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/go-jose/go-jose/v3"
	"golang.org/x/crypto/scrypt"
)

const (
	// Key derivation parameters.
	deriveKey_N      = 16384
	deriveKey_r      = 8
	deriveKey_p      = 1
	deriveKey_keyLen = 32

	saltLength = 32
	saltField  = "x-salt"
)

var ErrInvalidProtectedKey = fmt.Errorf("invalid passphrase protected key")

// deriveKey creates a 32 bytes symmetric encryption key from passphrase and salt.
// Key derivation algorithm is described in https://www.tarsnap.com/scrypt/scrypt.pdf.
func deriveKey(passphrase string, salt []byte) ([]byte, error) {
	key, err := scrypt.Key([]byte(passphrase), salt, deriveKey_N, deriveKey_r, deriveKey_p,
		deriveKey_keyLen)
	if err != nil {
		return nil, fmt.Errorf("failed to derive key, %v", err)
	}
	return key, nil
}

// EncryptArmored protects an armored key with passphrase. The result is a JWE
// in JSON serialization (A256GCM, direct key agreement) that carries the scrypt
// salt in the x-salt field.
func EncryptArmored(armored string, passphrase string) (string, error) {
	if _, err := Strip(armored); err != nil {
		return "", err
	}
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to create salt, %v", err)
	}
	key, err := deriveKey(passphrase, salt)
	if err != nil {
		return "", err
	}
	encrypter, err := jose.NewEncrypter(jose.A256GCM,
		jose.Recipient{Algorithm: jose.DIRECT, Key: key}, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create encrypter, %v", err)
	}
	object, err := encrypter.Encrypt([]byte(armored))
	if err != nil {
		return "", fmt.Errorf("failed to encrypt, %v", err)
	}

	var fields map[string]interface{}
	if err := json.Unmarshal([]byte(object.FullSerialize()), &fields); err != nil {
		return "", fmt.Errorf("failed to parse JWE, %v", err)
	}
	fields[saltField] = base64.RawURLEncoding.EncodeToString(salt)
	b, err := json.Marshal(fields)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// DecryptArmored reverses EncryptArmored and returns the armored key.
func DecryptArmored(protected string, passphrase string) (string, error) {
	var fields map[string]interface{}
	if err := json.Unmarshal([]byte(protected), &fields); err != nil {
		return "", ErrInvalidProtectedKey
	}
	saltStr, ok := fields[saltField].(string)
	if !ok {
		return "", ErrInvalidProtectedKey
	}
	salt, err := base64.RawURLEncoding.DecodeString(saltStr)
	if err != nil {
		return "", ErrInvalidProtectedKey
	}
	key, err := deriveKey(passphrase, salt)
	if err != nil {
		return "", err
	}
	object, err := jose.ParseEncrypted(protected)
	if err != nil {
		return "", fmt.Errorf("failed to parse JWE, %v", err)
	}
	armored, err := object.Decrypt(key)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt, %v", err)
	}
	return string(armored), nil
}

package ecpem

import (
	"bytes"
	"crypto/ecdsa"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"math/big"

	"github.com/btcsuite/btcd/btcec"
	"github.com/tyler-smith/go-bip39"
	"golang.org/x/crypto/pbkdf2"
)

const (
	PBKDF2_ITER = 16384
	PBKDF2_SIZE = 32
)

// CurveName is the name of the only curve this package handles.
const CurveName = "secp256k1"

var ErrInvalidSecret = fmt.Errorf("secret is out of range for secp256k1")
var ErrPublicKeyMismatch = fmt.Errorf("public point does not match the private scalar")

// GenerateKeyPair creates a new random secp256k1 key pair.
func GenerateKeyPair() (*KeyPair, error) {
	privateKey, err := ecdsa.GenerateKey(btcec.S256(), rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to generate private key, %v", err)
	}
	return NewKeyPairFromSecret(privateKey.D)
}

// NewKeyPairFromSecret creates a key pair from the secret scalar, deriving
// the public point.
func NewKeyPairFromSecret(secret *big.Int) (*KeyPair, error) {
	if secret.Sign() <= 0 || secret.Cmp(btcec.S256().N) >= 0 {
		return nil, ErrInvalidSecret
	}
	privateKey, publicKey := btcec.PrivKeyFromBytes(btcec.S256(),
		padWithZeros(secret.Bytes(), PrivateScalarLength))
	return NewKeyPairFromBytes(padWithZeros(privateKey.D.Bytes(), PrivateScalarLength),
		publicKey.SerializeUncompressed())
}

// NewKeyPairFromPassword creates a key pair from password using PBKDF2 algorithm.
// See https://en.wikipedia.org/wiki/PBKDF2.
func NewKeyPairFromPassword(password, salt []byte) (*KeyPair, error) {
	secret := pbkdf2.Key(password, salt, PBKDF2_ITER, PBKDF2_SIZE, sha256.New)
	return NewKeyPairFromSecret(new(big.Int).SetBytes(secret))
}

// NewKeyPairFromMnemonic creates a key pair from a BIP-39 mnemonic phrase.
func NewKeyPairFromMnemonic(mnemonic string) (*KeyPair, error) {
	b, err := bip39.EntropyFromMnemonic(mnemonic)
	if err != nil {
		return nil, err
	}
	return NewKeyPairFromSecret(new(big.Int).SetBytes(b))
}

// Mnemonic returns a mnemonic phrase which can be used to recover this key pair.
func (kp *KeyPair) Mnemonic() (string, error) {
	scalar, err := kp.PrivateScalarBytes()
	if err != nil {
		return "", err
	}
	return bip39.NewMnemonic(scalar)
}

// Secret returns the private scalar as a number.
func (kp *KeyPair) Secret() (*big.Int, error) {
	scalar, err := kp.PrivateScalarBytes()
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetBytes(scalar), nil
}

// Validate checks that the public point is the one derived from the private
// scalar. Decode and Encode never call it.
func (kp *KeyPair) Validate() error {
	secret, err := kp.Secret()
	if err != nil {
		return err
	}
	derived, err := NewKeyPairFromSecret(secret)
	if err != nil {
		return err
	}
	if !kp.Equal(derived) {
		return ErrPublicKeyMismatch
	}
	return nil
}

// ToECDSA returns the key pair as crypto/ecdsa private key on secp256k1.
func (kp *KeyPair) ToECDSA() (*ecdsa.PrivateKey, error) {
	scalar, point, err := kp.keyBytes()
	if err != nil {
		return nil, err
	}
	publicKey, err := btcec.ParsePubKey(point, btcec.S256())
	if err != nil {
		return nil, fmt.Errorf("failed to parse public point, %v", err)
	}
	return &ecdsa.PrivateKey{
		PublicKey: *publicKey.ToECDSA(),
		D:         new(big.Int).SetBytes(scalar),
	}, nil
}

// Sign signs (ECDSA) the hash using the private scalar and returns signature.
// See https://en.wikipedia.org/wiki/Elliptic_Curve_Digital_Signature_Algorithm.
func (kp *KeyPair) Sign(hash []byte) (*Signature, error) {
	privateKey, err := kp.ToECDSA()
	if err != nil {
		return nil, err
	}
	r, s, err := ecdsa.Sign(rand.Reader, privateKey, hash)
	if err != nil {
		return nil, err
	}
	return &Signature{R: r, S: s}, nil
}

// padWithZeros left-pads b to length bytes.
func padWithZeros(b []byte, length int) []byte {
	if len(b) >= length {
		return b
	}
	return append(bytes.Repeat([]byte{0x00}, length-len(b)), b...)
}

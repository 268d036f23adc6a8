package ecpem

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// KeyPair holds secp256k1 key material as lowercase hex: the 32-byte private
// scalar and the 65-byte uncompressed public point, 04 marker included.
type KeyPair struct {
	PrivateScalar string
	PublicPoint   string
}

// NewKeyPair validates and normalizes hex encoded key material.
func NewKeyPair(privateScalar, publicPoint string) (*KeyPair, error) {
	kp := &KeyPair{
		PrivateScalar: strings.ToLower(privateScalar),
		PublicPoint:   strings.ToLower(publicPoint),
	}
	if _, _, err := kp.keyBytes(); err != nil {
		return nil, err
	}
	return kp, nil
}

// NewKeyPairFromBytes creates a key pair from raw scalar and point bytes.
func NewKeyPairFromBytes(privateScalar, publicPoint []byte) (*KeyPair, error) {
	return NewKeyPair(hex.EncodeToString(privateScalar), hex.EncodeToString(publicPoint))
}

// Decode parses an armored EC PRIVATE KEY block.
func Decode(armored string) (*KeyPair, error) {
	der, err := Strip(armored)
	if err != nil {
		return nil, err
	}
	return DecodeDER(der)
}

// Encode returns the armored EC PRIVATE KEY block for the key pair.
func Encode(kp *KeyPair) (string, error) {
	der, err := EncodeDER(kp)
	if err != nil {
		return "", err
	}
	return Wrap(der), nil
}

// PrivateScalarBytes returns the 32-byte big-endian private scalar.
func (kp *KeyPair) PrivateScalarBytes() ([]byte, error) {
	scalar, _, err := kp.keyBytes()
	return scalar, err
}

// PublicPointBytes returns the 65-byte uncompressed public point.
func (kp *KeyPair) PublicPointBytes() ([]byte, error) {
	_, point, err := kp.keyBytes()
	return point, err
}

// Equal returns true if both key pairs hold the same key material.
func (kp *KeyPair) Equal(other *KeyPair) bool {
	if other == nil {
		return false
	}
	return kp.PrivateScalar == other.PrivateScalar && kp.PublicPoint == other.PublicPoint
}

// keyBytes decodes both fields and enforces their lengths. Errors never
// carry the key material itself.
func (kp *KeyPair) keyBytes() ([]byte, []byte, error) {
	if kp == nil {
		return nil, nil, fieldError(ErrInvalidKeyLength, "", "key pair is nil")
	}
	if len(kp.PrivateScalar) != 2*PrivateScalarLength {
		return nil, nil, fieldError(ErrInvalidKeyLength, "privateScalar", "%d hex digits, expected %d",
			len(kp.PrivateScalar), 2*PrivateScalarLength)
	}
	if len(kp.PublicPoint) != 2*PublicPointLength {
		return nil, nil, fieldError(ErrInvalidKeyLength, "publicPoint", "%d hex digits, expected %d",
			len(kp.PublicPoint), 2*PublicPointLength)
	}
	scalar, err := decodeLowerHex(kp.PrivateScalar)
	if err != nil {
		return nil, nil, fieldError(ErrInvalidKeyLength, "privateScalar", "%v", err)
	}
	point, err := decodeLowerHex(kp.PublicPoint)
	if err != nil {
		return nil, nil, fieldError(ErrInvalidKeyLength, "publicPoint", "%v", err)
	}
	return scalar, point, nil
}

// decodeLowerHex decodes hex in the lowercase form DecodeDER produces.
func decodeLowerHex(s string) ([]byte, error) {
	if strings.ToLower(s) != s {
		return nil, fmt.Errorf("not a lowercase hex string")
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("not a hex string")
	}
	return b, nil
}

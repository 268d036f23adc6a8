package ecpem

import (
	"crypto/ecdsa"
	"math/big"
)

// Signature represents a cryptographic signature (ECDSA).
// See https://en.wikipedia.org/wiki/Elliptic_Curve_Digital_Signature_Algorithm
type Signature struct {
	R *big.Int
	S *big.Int
}

// Verify verifies the signature using the public point of the key pair and
// the hash of the data.
func (sig *Signature) Verify(kp *KeyPair, hash []byte) bool {
	privateKey, err := kp.ToECDSA()
	if err != nil {
		return false
	}
	return ecdsa.Verify(&privateKey.PublicKey, hash, sig.R, sig.S)
}

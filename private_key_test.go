package ecpem

import (
	"math/big"
	"strings"
	"testing"

	"github.com/btcsuite/btcd/btcec"
	"github.com/stretchr/testify/assert"
)

func Test_KeyPair_Generate(t *testing.T) {
	assert := assert.New(t)

	kp, err := GenerateKeyPair()
	assert.NoError(err)
	assert.Len(kp.PrivateScalar, 64)
	assert.Len(kp.PublicPoint, 130)
	assert.Equal("04", kp.PublicPoint[:2])
	assert.NoError(kp.Validate())

	kp1, err := GenerateKeyPair()
	assert.NoError(err)
	assert.False(kp.Equal(kp1))
}

func Test_KeyPair_FromSecret(t *testing.T) {
	assert := assert.New(t)

	kp, err := NewKeyPairFromSecret(big.NewInt(1))
	assert.NoError(err)
	assert.Equal("0000000000000000000000000000000000000000000000000000000000000001", kp.PrivateScalar)
	assert.Equal("0479be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"+
		"483ada7726a3c4655da4fbfc0e1108a8fd17b448a68554199c47d08ffb10d4b8", kp.PublicPoint)

	secret, _ := new(big.Int).SetString(fixtureScalar, 16)
	kp, err = NewKeyPairFromSecret(secret)
	assert.NoError(err)
	assert.Equal(fixturePoint, kp.PublicPoint)

	_, err = NewKeyPairFromSecret(big.NewInt(0))
	assert.Equal(ErrInvalidSecret, err)
	_, err = NewKeyPairFromSecret(btcec.S256().N)
	assert.Equal(ErrInvalidSecret, err)
}

func Test_KeyPair_FromPassword(t *testing.T) {
	assert := assert.New(t)

	kp, err := NewKeyPairFromPassword([]byte("super secret spies"), []byte{0x11, 0x22, 0x33, 0x44})
	assert.NoError(err)
	kp1, err := NewKeyPairFromPassword([]byte("super secret spies"), []byte{0x11, 0x22, 0x33, 0x44})
	assert.NoError(err)
	assert.True(kp.Equal(kp1))

	kp2, err := NewKeyPairFromPassword([]byte("super secret spies"), []byte{0x11, 0x22, 0x33, 0x45})
	assert.NoError(err)
	assert.False(kp.Equal(kp2))
}

func Test_KeyPair_Mnemonic(t *testing.T) {
	assert := assert.New(t)

	kp, err := NewKeyPairFromSecret(big.NewInt(123456))
	assert.NoError(err)
	mnemonic, err := kp.Mnemonic()
	assert.NoError(err)

	kp1, err := NewKeyPairFromMnemonic(mnemonic)
	assert.NoError(err)
	assert.True(kp.Equal(kp1))

	// Try bad mnemonic.
	_, err = NewKeyPairFromMnemonic("foo bar baz")
	assert.Error(err)
}

func Test_KeyPair_Validate(t *testing.T) {
	assert := assert.New(t)

	kp, err := Decode(fixtureArmored)
	assert.NoError(err)
	assert.NoError(kp.Validate())

	other, err := GenerateKeyPair()
	assert.NoError(err)
	mixed := &KeyPair{PrivateScalar: kp.PrivateScalar, PublicPoint: other.PublicPoint}
	assert.Equal(ErrPublicKeyMismatch, mixed.Validate())

	// The codec accepts this, Validate does not.
	zero := &KeyPair{PrivateScalar: strings.Repeat("0", 64), PublicPoint: other.PublicPoint}
	_, err = Encode(zero)
	assert.NoError(err)
	assert.Equal(ErrInvalidSecret, zero.Validate())
}

func Test_KeyPair_ToECDSA(t *testing.T) {
	assert := assert.New(t)

	kp, err := Decode(fixtureArmored)
	assert.NoError(err)
	privateKey, err := kp.ToECDSA()
	assert.NoError(err)
	assert.Equal(btcec.S256(), privateKey.Curve)
	assert.Equal(fixtureScalar, privateKey.D.Text(16))

	bad := &KeyPair{PrivateScalar: kp.PrivateScalar, PublicPoint: "04" + strings.Repeat("0", 128)}
	_, err = bad.ToECDSA()
	assert.Error(err)
}

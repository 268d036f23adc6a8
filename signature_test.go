package ecpem

import (
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_SignAndVerify(t *testing.T) {
	assert := assert.New(t)

	data := []byte("hello there")
	hash := sha256.Sum256(data)
	for i := 0; i < 20; i++ {
		kp, err := GenerateKeyPair()
		assert.NoError(err)
		sig, err := kp.Sign(hash[:])
		assert.NoError(err)
		assert.True(sig.Verify(kp, hash[:]))

		other, err := GenerateKeyPair()
		assert.NoError(err)
		assert.False(sig.Verify(other, hash[:]))
	}
}

func Test_SignDecodedKey(t *testing.T) {
	assert := assert.New(t)

	kp, err := Decode(fixtureArmored)
	assert.NoError(err)
	hash := Hash256([]byte("super secret message"))
	sig, err := kp.Sign(hash)
	assert.NoError(err)
	assert.True(sig.Verify(kp, hash))
	assert.False(sig.Verify(&KeyPair{}, hash))

	_, err = (&KeyPair{}).Sign(hash)
	assert.ErrorIs(err, ErrInvalidKeyLength)
}

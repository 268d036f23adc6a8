package ecpem

import (
	"os"
	"path"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_SaveAndLoadKeyPair(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	kp, err := Decode(fixtureArmored)
	assert.NoError(err)

	// Without encryption.
	fileName := path.Join(dir, "key.pem")
	assert.NoError(SaveKeyPair(kp, fileName, ""))
	data, err := os.ReadFile(fileName)
	assert.NoError(err)
	assert.Equal(fixtureArmored, string(data))
	info, err := os.Stat(fileName)
	assert.NoError(err)
	assert.Equal(os.FileMode(0600), info.Mode().Perm())

	loaded, err := LoadKeyPair(fileName, "")
	assert.NoError(err)
	assert.True(kp.Equal(loaded))

	// With encryption.
	fileName = path.Join(dir, "key.jwe")
	assert.NoError(SaveKeyPair(kp, fileName, "potato123"))
	loaded, err = LoadKeyPair(fileName, "potato123")
	assert.NoError(err)
	assert.True(kp.Equal(loaded))

	_, err = LoadKeyPair(fileName, "")
	assert.ErrorIs(err, ErrMalformedArmor)
	_, err = LoadKeyPair(fileName, "wrong")
	assert.Error(err)
}

func Test_LoadKeyPair_Errors(t *testing.T) {
	assert := assert.New(t)

	_, err := LoadKeyPair("some_non_existent_file", "")
	assert.Error(err)

	err = SaveKeyPair(&KeyPair{}, path.Join(t.TempDir(), "key.pem"), "")
	assert.ErrorIs(err, ErrInvalidKeyLength)
}

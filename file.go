package ecpem

import (
	"fmt"
	"os"
)

// SaveKeyPair writes the armored key pair to fileName. If passphrase is not
// empty, the armored key is protected with EncryptArmored first.
func SaveKeyPair(kp *KeyPair, fileName string, passphrase string) error {
	content, err := Encode(kp)
	if err != nil {
		return err
	}
	if passphrase != "" {
		content, err = EncryptArmored(content, passphrase)
		if err != nil {
			return err
		}
	}
	return os.WriteFile(fileName, []byte(content), 0600)
}

// LoadKeyPair reads a key pair saved by SaveKeyPair, or any armored
// EC PRIVATE KEY file when passphrase is empty.
func LoadKeyPair(fileName string, passphrase string) (*KeyPair, error) {
	data, err := os.ReadFile(fileName)
	if err != nil {
		return nil, fmt.Errorf("failed to load private key: %v", err)
	}
	armored := string(data)
	if passphrase != "" {
		armored, err = DecryptArmored(armored, passphrase)
		if err != nil {
			return nil, err
		}
	}
	return Decode(armored)
}

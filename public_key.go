package ecpem

import (
	"crypto/sha256"

	"github.com/btcsuite/btcd/btcec"
	"github.com/btcsuite/btcutil/base58"
	"github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/crypto/ripemd160"
)

// bitcoinMainNet is the version byte of a P2PKH address on the main network.
const bitcoinMainNet = 0x00

// CompressedPublicKey returns the public point in SEC compressed format.
// The result is 33 bytes long.
func (kp *KeyPair) CompressedPublicKey() ([]byte, error) {
	point, err := kp.PublicPointBytes()
	if err != nil {
		return nil, err
	}
	publicKey, err := btcec.ParsePubKey(point, btcec.S256())
	if err != nil {
		return nil, err
	}
	return publicKey.SerializeCompressed(), nil
}

// BitcoinAddress returns the P2PKH Bitcoin address for the compressed public key.
func (kp *KeyPair) BitcoinAddress() (string, error) {
	compressed, err := kp.CompressedPublicKey()
	if err != nil {
		return "", err
	}
	payload := append([]byte{bitcoinMainNet}, Hash160(compressed)...)
	checkSum := Hash256(payload)[:4]
	return base58.Encode(append(payload, checkSum...)), nil
}

// EthereumAddress returns the checksummed Ethereum address for the public key.
func (kp *KeyPair) EthereumAddress() (string, error) {
	privateKey, err := kp.ToECDSA()
	if err != nil {
		return "", err
	}
	return crypto.PubkeyToAddress(privateKey.PublicKey).Hex(), nil
}

// Hash256 does two rounds of SHA256 hashing.
func Hash256(data []byte) []byte {
	h := sha256.Sum256(data)
	h = sha256.Sum256(h[:])
	return h[:]
}

// Hash160 calculates ripemd160(sha256(data)).
func Hash160(data []byte) []byte {
	h := sha256.Sum256(data)
	r := ripemd160.New()
	r.Write(h[:])
	return r.Sum(nil)
}

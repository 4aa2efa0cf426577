package wallet

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
)

// Wallet is a user account: an ECDSA key pair and the address derived from
// its public key.
type Wallet struct {
	Address    string
	PrivateKey *ecdsa.PrivateKey
}

// New creates a wallet with a fresh key pair.
func New() (*Wallet, error) {
	privateKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, err
	}

	return &Wallet{
		Address:    DeriveAddress(&privateKey.PublicKey),
		PrivateKey: privateKey,
	}, nil
}

// DeriveAddress derives a 0x-prefixed address from a public key: the last 20
// bytes of the SHA-256 hash of the uncompressed point.
func DeriveAddress(publicKey *ecdsa.PublicKey) string {
	pubKeyBytes := elliptic.Marshal(publicKey.Curve, publicKey.X, publicKey.Y)
	hash := sha256.Sum256(pubKeyBytes)
	return "0x" + hex.EncodeToString(hash[len(hash)-20:])
}

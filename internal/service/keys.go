package service

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang-jwt/jwt/v5"
)

// KeyPair holds the RSA keys used to sign and verify session tokens.
type KeyPair struct {
	Private *rsa.PrivateKey
	Public  *rsa.PublicKey
}

func LoadKeyPair(privatePath, publicPath, passphrase string) (*KeyPair, error) {
	privatePEM, err := os.ReadFile(privatePath)
	if err != nil {
		return nil, fmt.Errorf("read private key: %w", err)
	}
	publicPEM, err := os.ReadFile(publicPath)
	if err != nil {
		return nil, fmt.Errorf("read public key: %w", err)
	}
	return ParseKeyPair(privatePEM, publicPEM, passphrase)
}

// ParseKeyPair decodes PEM key material. The private key may be encrypted
// with passphrase.
func ParseKeyPair(privatePEM, publicPEM []byte, passphrase string) (*KeyPair, error) {
	privatePEM, err := decryptPEM(privatePEM, passphrase)
	if err != nil {
		return nil, err
	}

	private, err := jwt.ParseRSAPrivateKeyFromPEM(privatePEM)
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}
	public, err := jwt.ParseRSAPublicKeyFromPEM(publicPEM)
	if err != nil {
		return nil, fmt.Errorf("parse public key: %w", err)
	}
	if !private.PublicKey.Equal(public) {
		return nil, errors.New("public key does not match private key")
	}

	return &KeyPair{Private: private, Public: public}, nil
}

func decryptPEM(data []byte, passphrase string) ([]byte, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, errors.New("private key is not PEM encoded")
	}
	if !x509.IsEncryptedPEMBlock(block) {
		return data, nil
	}
	if passphrase == "" {
		return nil, errors.New("private key is encrypted but no passphrase is configured")
	}

	der, err := x509.DecryptPEMBlock(block, []byte(passphrase))
	if err != nil {
		return nil, fmt.Errorf("decrypt private key: %w", err)
	}
	return pem.EncodeToMemory(&pem.Block{Type: block.Type, Bytes: der}), nil
}

// GenerateKeyPair creates a new RSA key pair in PEM form. The private key is
// encrypted when passphrase is non-empty.
func GenerateKeyPair(bits int, passphrase string) (privatePEM, publicPEM []byte, err error) {
	key, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return nil, nil, err
	}

	block := &pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)}
	if passphrase != "" {
		block, err = x509.EncryptPEMBlock(rand.Reader, block.Type, block.Bytes, []byte(passphrase), x509.PEMCipherAES256)
		if err != nil {
			return nil, nil, err
		}
	}

	pubDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		return nil, nil, err
	}

	return pem.EncodeToMemory(block), pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER}), nil
}

// WriteKeyPair writes the PEM files, creating parent directories. Existing
// files are left untouched unless overwrite is set.
func WriteKeyPair(privatePath, publicPath string, privatePEM, publicPEM []byte, overwrite bool) error {
	for _, path := range []string{privatePath, publicPath} {
		if _, err := os.Stat(path); err == nil && !overwrite {
			return fmt.Errorf("%s already exists", path)
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return err
		}
	}
	if err := os.WriteFile(privatePath, privatePEM, 0o600); err != nil {
		return err
	}
	return os.WriteFile(publicPath, publicPEM, 0o644)
}

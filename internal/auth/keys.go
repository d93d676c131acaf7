package auth

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/golang-jwt/jwt/v5"
)

// Material de assinatura RS256 carregado uma única vez a partir do ambiente.
// A chave privada assina os tokens; a pública correspondente é publicada no
// JWKS sob o kid ativo.
var (
	keysOnce sync.Once
	keysErr  error

	privKey   *rsa.PrivateKey
	pubKeys   = map[string]*rsa.PublicKey{} // kid -> chave pública
	activeKID string
	issuer    string
	audience  string
)

func mustInitKeys() error {
	keysOnce.Do(func() {
		path := os.Getenv("AUTH_RSA_PRIVATE_PATH")
		activeKID = os.Getenv("AUTH_KID")
		issuer = os.Getenv("AUTH_ISSUER")
		audience = os.Getenv("AUTH_AUDIENCE")

		if path == "" || activeKID == "" || issuer == "" || audience == "" {
			keysErr = errors.New("variáveis ausentes: AUTH_RSA_PRIVATE_PATH/AUTH_KID/AUTH_ISSUER/AUTH_AUDIENCE")
			return
		}

		b, err := os.ReadFile(path)
		if err != nil {
			keysErr = fmt.Errorf("leitura da chave privada: %w", err)
			return
		}
		privKey, keysErr = parseChaveRSA(b)
		if keysErr != nil {
			return
		}
		pubKeys[activeKID] = &privKey.PublicKey
	})
	return keysErr
}

// parseChaveRSA aceita PEM em PKCS#1 ou PKCS#8
func parseChaveRSA(b []byte) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode(b)
	if block == nil {
		return nil, errors.New("PEM da chave privada inválido")
	}
	if k, err := x509.ParsePKCS1PrivateKey(block.Bytes); err == nil {
		return k, nil
	}
	k, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("parse da chave privada: %w", err)
	}
	rsaKey, ok := k.(*rsa.PrivateKey)
	if !ok {
		return nil, errors.New("a chave privada não é RSA")
	}
	return rsaKey, nil
}

func getPriv() *rsa.PrivateKey                 { return privKey }
func getPub(kid string) (*rsa.PublicKey, bool) { p, ok := pubKeys[kid]; return p, ok }
func getKID() string                           { return activeKID }
func getIssuer() string                        { return issuer }
func getAudience() string                      { return audience }
func signMethod() jwt.SigningMethod            { return jwt.SigningMethodRS256 }

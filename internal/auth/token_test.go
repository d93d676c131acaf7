package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func prepararChaves(t *testing.T) {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	caminho := filepath.Join(t.TempDir(), "priv.pem")
	pemBytes := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})
	require.NoError(t, os.WriteFile(caminho, pemBytes, 0o600))

	os.Setenv("AUTH_RSA_PRIVATE_PATH", caminho)
	os.Setenv("AUTH_KID", "teste-kid")
	os.Setenv("AUTH_ISSUER", "api-controle")
	os.Setenv("AUTH_AUDIENCE", "registroos")
}

func TestGerarEValidarAccessToken(t *testing.T) {
	prepararChaves(t)

	token, err := GenerateAccessToken(42, "maria", []string{GrupoQualidade})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseAndValidate(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "maria", claims.Username)
	assert.Equal(t, []string{GrupoQualidade}, claims.Grupos)
}

func TestTokenAdulteradoRejeitado(t *testing.T) {
	prepararChaves(t)

	token, err := GenerateAccessToken(1, "joao", nil)
	require.NoError(t, err)

	_, err = ParseAndValidate(token + "x")
	assert.Error(t, err)

	_, err = ParseAndValidate("nem.um.jwt")
	assert.Error(t, err)
}

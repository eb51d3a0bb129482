package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var segreto = []byte("segreto-di-test")

func TestGenerateParseRoundTrip(t *testing.T) {
	token, err := GenerateJWT(42, segreto)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	id, err := ParseJWT(token, segreto)
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)
}

func TestParseConSegretoSbagliato(t *testing.T) {
	token, err := GenerateJWT(42, segreto)
	require.NoError(t, err)

	_, err = ParseJWT(token, []byte("altro-segreto"))
	assert.Error(t, err)
}

func TestParseTokenScaduto(t *testing.T) {
	scaduto := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  42,
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	firmato, err := scaduto.SignedString(segreto)
	require.NoError(t, err)

	_, err = ParseJWT(firmato, segreto)
	assert.Error(t, err)
}

func TestParseTokenMalformato(t *testing.T) {
	_, err := ParseJWT("non-un-token", segreto)
	assert.Error(t, err)

	_, err = ParseJWT("", segreto)
	assert.Error(t, err)
}

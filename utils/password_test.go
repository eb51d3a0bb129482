package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("password123")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "password123", hash)

	assert.True(t, CheckPasswordHash("password123", hash))
	assert.False(t, CheckPasswordHash("password124", hash))
	assert.False(t, CheckPasswordHash("", hash))
}

func TestCalcolaBMI(t *testing.T) {
	bmi, err := CalcolaBMI(175, 70)
	require.NoError(t, err)
	assert.InDelta(t, 22.86, bmi, 0.01)
	assert.Equal(t, "normopeso", CategoriaBMI(bmi))

	_, err = CalcolaBMI(0, 70)
	assert.Error(t, err)
	_, err = CalcolaBMI(175, 0)
	assert.Error(t, err)
	_, err = CalcolaBMI(500, 70)
	assert.Error(t, err)

	assert.Equal(t, "sottopeso", CategoriaBMI(17))
	assert.Equal(t, "sovrappeso", CategoriaBMI(27))
	assert.Equal(t, "obesità", CategoriaBMI(33))
}

package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	tokens := NewTokenManager("test-secret")

	tokenString, err := tokens.Generate("priya")
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	claims, err := tokens.Validate(tokenString)
	require.NoError(t, err)
	assert.Equal(t, "priya", claims.Username)
	assert.Equal(t, "FinanceAdvisor-api", claims.Issuer)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	tokenString, err := NewTokenManager("secret-a").Generate("priya")
	require.NoError(t, err)

	_, err = NewTokenManager("secret-b").Validate(tokenString)
	assert.Error(t, err)
}

func TestValidateRejectsGarbage(t *testing.T) {
	_, err := NewTokenManager("test-secret").Validate("not.a.token")
	assert.Error(t, err)
}

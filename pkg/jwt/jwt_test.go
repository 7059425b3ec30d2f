package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "clave-de-prueba"

func TestIssuePair_AccessYRefreshSeDistinguen(t *testing.T) {
	iss := Issuer{Secret: secret, Issuer: "test", AccessTTL: 30 * time.Minute, RefreshTTL: 24 * time.Hour}
	id := Identity{UserID: "u1", CompanyID: "c1", Role: "entrepreneur"}

	pair, err := iss.IssuePair(id)
	require.NoError(t, err)

	got, err := ParseType(secret, pair.Access, TypeAccess)
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = ParseType(secret, pair.Access, TypeRefresh)
	assert.ErrorIs(t, err, ErrWrongTokenType)

	got, err = ParseType(secret, pair.Refresh, TypeRefresh)
	require.NoError(t, err)
	assert.Equal(t, "u1", got.UserID)

	// un refresh token no sirve como access token
	_, _, _, err = Parse(secret, pair.Refresh)
	assert.ErrorIs(t, err, ErrWrongTokenType)
}

func TestParse_Expirado(t *testing.T) {
	iss := Issuer{Secret: secret, AccessTTL: -time.Minute}
	tok, err := iss.IssueAccess(Identity{UserID: "u1"})
	require.NoError(t, err)

	_, _, _, err = Parse(secret, tok)
	assert.Error(t, err)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	tok, err := Generate(secret, "u1", "c1", "employee", "test", 5)
	require.NoError(t, err)

	_, _, _, err = Parse("otra-clave", tok)
	assert.Error(t, err)

	userID, companyID, role, err := Parse(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)
	assert.Equal(t, "c1", companyID)
	assert.Equal(t, "employee", role)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := Generate("", "u1", "", "", "test", 5)
	assert.Error(t, err)
}

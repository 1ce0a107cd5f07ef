package auth

import (
	"testing"
	"time"

	"jordanmarket/config"
	"jordanmarket/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenService(t *testing.T) *jwtService {
	cfg := &config.Config{}
	cfg.SecretKey.Access = "test-access-secret"
	cfg.SecretKey.Refresh = "test-refresh-secret"

	svc, err := NewJWTService(cfg)
	require.NoError(t, err)

	return svc.(*jwtService)
}

func TestNewJWTService_RequiresSecrets(t *testing.T) {
	cfg := &config.Config{}

	_, err := NewJWTService(cfg)
	require.Error(t, err)
}

func TestGenerateTokens_AccessCarriesRoles(t *testing.T) {
	svc := newTestTokenService(t)
	userID := uuid.New()
	roles := entity.Roles{entity.RoleBuyer, entity.RoleSeller}.ToStrings()

	access, refresh, err := svc.GenerateTokens(userID, roles)
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)

	claims, err := svc.ValidateAccessToken(access)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, roles, claims.Roles)
	assert.Equal(t, tokenTypeAccess, claims.Type)

	// The refresh token carries no roles.
	refreshClaims, err := svc.ValidateRefreshToken(refresh)
	require.NoError(t, err)
	assert.Empty(t, refreshClaims.Roles)
}

func TestValidateAccessToken_RejectsRefreshToken(t *testing.T) {
	svc := newTestTokenService(t)

	_, refresh, err := svc.GenerateTokens(uuid.New(), nil)
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(refresh)
	require.Error(t, err)
}

func TestValidateAccessToken_RejectsExpired(t *testing.T) {
	svc := newTestTokenService(t)
	svc.accessTTL = -time.Minute

	access, _, err := svc.GenerateTokens(uuid.New(), nil)
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(access)
	require.Error(t, err)
}

func TestValidateAccessToken_RejectsGarbage(t *testing.T) {
	svc := newTestTokenService(t)

	_, err := svc.ValidateAccessToken("not-a-token")
	require.Error(t, err)
}

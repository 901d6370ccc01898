package services

import (
	"errors"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/atis-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/atis-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/atis-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/atis-backend/internal/testutil"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()

	db := testutil.NewDB(t)
	_, err := CreateUser(db, "operator@atis.com", "operator123", "")
	require.NoError(t, err)

	return NewAuthService(db, &config.Config{JWTSecret: "test-secret", JWTAccessExpiry: time.Hour})
}

func TestCreateUser(t *testing.T) {
	db := testutil.NewDB(t)

	user, err := CreateUser(db, " admin@atis.com ", "admin123", "Admin")
	require.NoError(t, err)
	assert.Equal(t, "admin@atis.com", user.Email)
	assert.NotEqual(t, "admin123", user.Password)

	_, err = CreateUser(db, "admin@atis.com", "other", "Operator")
	assert.True(t, errors.Is(err, ErrConstraintViolation))

	defaulted, err := CreateUser(db, "new@atis.com", "secret", "")
	require.NoError(t, err)
	assert.Equal(t, models.DefaultRole, defaulted.Role)

	_, err = FindUserByEmail(db, "missing@atis.com")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestAuthenticate(t *testing.T) {
	svc := newAuthService(t)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"valid credentials", "operator@atis.com", "operator123", nil},
		{"surrounding whitespace in email", "  operator@atis.com ", "operator123", nil},
		{"wrong password", "operator@atis.com", "operator1234", ErrInvalidCredentials},
		{"password is case sensitive", "operator@atis.com", "OPERATOR123", ErrInvalidCredentials},
		{"unknown email", "ghost@atis.com", "operator123", ErrInvalidCredentials},
		{"empty password", "operator@atis.com", "", ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := svc.Authenticate(&dto.LoginRequest{Email: tt.email, Password: tt.password})
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr))
				assert.Nil(t, user)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "operator@atis.com", user.Email)
			assert.Equal(t, models.DefaultRole, user.Role)
		})
	}
}

func TestIssueToken(t *testing.T) {
	svc := newAuthService(t)
	user, err := svc.Authenticate(&dto.LoginRequest{Email: "operator@atis.com", Password: "operator123"})
	require.NoError(t, err)

	resp, err := svc.IssueToken(user)
	require.NoError(t, err)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, int64(3600), resp.ExpiresIn)

	parsed, err := jwt.Parse(resp.AccessToken, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)

	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, "operator@atis.com", claims["email"])
	assert.Equal(t, models.DefaultRole, claims["role"])
	assert.NotEmpty(t, claims["jti"])
}

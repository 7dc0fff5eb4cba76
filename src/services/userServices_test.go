package services

import (
	"testing"

	"github.com/ArchePal/ArchePal-Backend/src/middleware"
	"github.com/ArchePal/ArchePal-Backend/src/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestCreateUserHashesPassword(t *testing.T) {
	service := NewUserService(newTestDB(t))

	created, err := service.CreateUser(&models.UserModel{
		Username:    "fielduser",
		Password:    "dig-it",
		DisplayName: "Field User",
	})
	require.NoError(t, err)
	assert.NotEqual(t, "dig-it", created.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("dig-it")))
}

func TestAuthenticateUser(t *testing.T) {
	middleware.SetSecretKey("test-secret")
	service := NewUserService(newTestDB(t))

	created, err := service.CreateUser(&models.UserModel{Username: "fielduser", Password: "dig-it"})
	require.NoError(t, err)

	tokenString, err := service.AuthenticateUser("fielduser", "dig-it")
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	token, err := jwt.Parse(tokenString, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, float64(created.Id), claims["id"])
}

func TestAuthenticateUserRejectsBadCredentials(t *testing.T) {
	middleware.SetSecretKey("test-secret")
	service := NewUserService(newTestDB(t))

	_, err := service.CreateUser(&models.UserModel{Username: "fielduser", Password: "dig-it"})
	require.NoError(t, err)

	_, err = service.AuthenticateUser("fielduser", "wrong")
	assert.EqualError(t, err, "invalid username or password")

	_, err = service.AuthenticateUser("nobody", "dig-it")
	assert.EqualError(t, err, "invalid username or password")
}

func TestDeleteUser(t *testing.T) {
	service := NewUserService(newTestDB(t))

	created, err := service.CreateUser(&models.UserModel{Username: "temp", Password: "pw"})
	require.NoError(t, err)

	require.NoError(t, service.DeleteUser(created.Id))

	gone, err := service.GetUserByID(created.Id)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

package services_test

import (
	"testing"

	"rental-ledger/services"

	"github.com/stretchr/testify/assert"
)

func TestRegisterAndLogin(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewAccountService(db)

	account, err := svc.Register("Owner One", "owner", "secret123")
	assert.NoError(t, err)
	assert.Equal(t, "owner", account.Username)
	assert.NotEqual(t, "secret123", account.Password, "password must be stored hashed")

	_, err = svc.Register("Owner Two", "owner", "other")
	assert.ErrorIs(t, err, services.ErrUsernameTaken)

	_, err = svc.Login("owner", "wrong")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	_, err = svc.Login("nobody", "secret123")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	logged, err := svc.Login("owner", "secret123")
	assert.NoError(t, err)
	assert.NotEmpty(t, logged.Token)

	resolved, err := svc.ByToken(logged.Token)
	assert.NoError(t, err)
	assert.Equal(t, "owner", resolved.Username)

	_, err = svc.ByToken("bogus")
	assert.ErrorIs(t, err, services.ErrInvalidToken)
}

func TestRegisterRejectsEmptyInput(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewAccountService(db)

	_, err := svc.Register("X", "", "secret")
	assert.ErrorIs(t, err, services.ErrInvalidArgument)

	_, err = svc.Register("X", "user", "")
	assert.ErrorIs(t, err, services.ErrInvalidArgument)
}

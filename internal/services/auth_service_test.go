package services

import (
	"testing"

	"investment-service/pkg/common"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signupFixture() SignupDTO {
	return SignupDTO{
		FirstName:   "Ada",
		LastName:    "Obi",
		Username:    "adaobi",
		Email:       "ada@example.com",
		PhoneNumber: "+2348012345678",
		Password:    "s3cretpass",
	}
}

func TestSignupCreatesUserAndProfile(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, []byte("test-secret"))

	user, err := svc.Signup(signupFixture())
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.NotEqual(t, "s3cretpass", user.PasswordHash)

	profile, err := svc.GetOrCreateProfile(user.ID)
	require.NoError(t, err)
	assert.True(t, profile.WithdrawalEnabled)
	assert.Equal(t, "+2348012345678", profile.PhoneNumber)
}

func TestSignupRejectsDuplicates(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, []byte("test-secret"))

	_, err := svc.Signup(signupFixture())
	require.NoError(t, err)

	dup := signupFixture()
	dup.Email = "other@example.com"
	_, err = svc.Signup(dup)
	var vErr *common.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "username", vErr.Field)

	dup = signupFixture()
	dup.Username = "otheruser"
	_, err = svc.Signup(dup)
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "email", vErr.Field)
}

func TestSignupRejectsBadPhone(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, []byte("test-secret"))

	data := signupFixture()
	data.PhoneNumber = "12ab"
	_, err := svc.Signup(data)
	var vErr *common.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "phone_number", vErr.Field)
}

func TestLoginByUsernameAndEmail(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, []byte("test-secret"))

	user, err := svc.Signup(signupFixture())
	require.NoError(t, err)

	token, got, err := svc.Login(LoginDTO{Identity: "adaobi", Password: "s3cretpass"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.NotEmpty(t, token)

	_, _, err = svc.Login(LoginDTO{Identity: "ada@example.com", Password: "s3cretpass"})
	require.NoError(t, err)

	_, _, err = svc.Login(LoginDTO{Identity: "adaobi", Password: "wrongpass"})
	var vErr *common.ValidationError
	require.ErrorAs(t, err, &vErr)

	_, _, err = svc.Login(LoginDTO{Identity: "nobody", Password: "s3cretpass"})
	require.ErrorAs(t, err, &vErr)
}

func TestIssueTokenClaims(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, []byte("test-secret"))

	user, err := svc.Signup(signupFixture())
	require.NoError(t, err)

	signed, err := svc.IssueToken(user)
	require.NoError(t, err)

	parsed, err := jwt.Parse(signed, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, float64(user.ID), claims["sub"])
	assert.Equal(t, user.Role, claims["role"])
}

func TestChangePassword(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, []byte("test-secret"))

	user, err := svc.Signup(signupFixture())
	require.NoError(t, err)

	err = svc.ChangePassword(user.ID, ChangePasswordDTO{OldPassword: "wrong", NewPassword: "newpassword1"})
	var vErr *common.ValidationError
	require.ErrorAs(t, err, &vErr)

	require.NoError(t, svc.ChangePassword(user.ID, ChangePasswordDTO{
		OldPassword: "s3cretpass", NewPassword: "newpassword1",
	}))

	_, _, err = svc.Login(LoginDTO{Identity: "adaobi", Password: "newpassword1"})
	require.NoError(t, err)
}

func TestSetWithdrawalGate(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, []byte("test-secret"))

	profile, err := svc.SetWithdrawalGate(7, false, "Manual review")
	require.NoError(t, err)
	assert.False(t, profile.WithdrawalEnabled)
	assert.Equal(t, "Manual review", profile.WithdrawalDisabledReason)

	// Re-enabling clears the stored reason.
	profile, err = svc.SetWithdrawalGate(7, true, "ignored")
	require.NoError(t, err)
	assert.True(t, profile.WithdrawalEnabled)
	assert.Empty(t, profile.WithdrawalDisabledReason)
}

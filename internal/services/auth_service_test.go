package services_test

import (
	"regexp"
	"testing"

	"github.com/gradlink/gradlink-backend/internal/dto"
	"github.com/gradlink/gradlink-backend/internal/models"
	"github.com/gradlink/gradlink-backend/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestAuthService_SignUp(t *testing.T) {
	db := testDB(t)
	auth := services.NewAuthService(db)

	user, err := auth.SignUp(&dto.SignupRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "Ada@X.com",
		Password:  "secret123",
	})
	require.NoError(t, err)

	assert.Equal(t, "ada@x.com", user.Email)
	assert.Regexp(t, regexp.MustCompile(`^adalovelace\d{4}$`), user.Username)
	assert.Regexp(t, regexp.MustCompile(`^[0-9a-f]{32}$`), user.UID)
	assert.NotEqual(t, "secret123", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secret123")))

	// Record is persisted.
	var stored models.User
	require.NoError(t, db.Where("email = ?", "ada@x.com").First(&stored).Error)
	assert.Equal(t, user.Username, stored.Username)
	assert.Equal(t, user.UID, stored.UID)
}

func TestAuthService_SignUpTrimsFields(t *testing.T) {
	db := testDB(t)
	auth := services.NewAuthService(db)

	user, err := auth.SignUp(&dto.SignupRequest{
		FirstName: "  Ada ",
		LastName:  " Lovelace ",
		Email:     "  ADA@x.com ",
		Password:  " secret123 ",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada", user.FirstName)
	assert.Equal(t, "Lovelace", user.LastName)
	assert.Equal(t, "ada@x.com", user.Email)
}

func TestAuthService_SignUpMissingFields(t *testing.T) {
	db := testDB(t)
	auth := services.NewAuthService(db)

	_, err := auth.SignUp(&dto.SignupRequest{
		FirstName: "Ada",
		LastName:  "  ",
		Email:     "ada@x.com",
		Password:  "secret123",
	})
	assert.ErrorIs(t, err, services.ErrMissingFields)
}

func TestAuthService_SignUpDuplicateEmail(t *testing.T) {
	db := testDB(t)
	auth := services.NewAuthService(db)

	req := &dto.SignupRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@x.com",
		Password:  "secret123",
	}
	_, err := auth.SignUp(req)
	require.NoError(t, err)

	_, err = auth.SignUp(req)
	assert.ErrorIs(t, err, services.ErrEmailTaken)
}

func TestAuthService_SignIn(t *testing.T) {
	db := testDB(t)
	auth := services.NewAuthService(db)

	created, err := auth.SignUp(&dto.SignupRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@x.com",
		Password:  "secret123",
	})
	require.NoError(t, err)

	user, err := auth.SignIn("ada@x.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, created.UID, user.UID)

	// Case-insensitive email.
	user, err = auth.SignIn("ADA@X.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, created.UID, user.UID)

	_, err = auth.SignIn("ada@x.com", "wrongpassword")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	_, err = auth.SignIn("nobody@x.com", "secret123")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestAuthService_SignInRejectsPasswordlessAccount(t *testing.T) {
	db := testDB(t)
	auth := services.NewAuthService(db)

	// Google-only accounts have no password hash.
	_, err := auth.GoogleSignIn(&services.GoogleClaims{
		Email:      "fed@x.com",
		GivenName:  "Fed",
		FamilyName: "User",
	})
	require.NoError(t, err)

	_, err = auth.SignIn("fed@x.com", "")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestAuthService_GoogleSignInCreatesAccount(t *testing.T) {
	db := testDB(t)
	auth := services.NewAuthService(db)

	user, err := auth.GoogleSignIn(&services.GoogleClaims{
		Email:      "Ada@X.com",
		GivenName:  "Ada",
		FamilyName: "Lovelace",
		Picture:    "https://lh3.googleusercontent.com/a/photo.jpg",
	})
	require.NoError(t, err)

	assert.Equal(t, "ada@x.com", user.Email)
	assert.Equal(t, "adalovelace", user.Username)
	assert.Empty(t, user.Password)
	assert.Equal(t, "https://lh3.googleusercontent.com/a/photo.jpg", user.Photo)
}

func TestAuthService_GoogleSignInReusesExistingAccount(t *testing.T) {
	db := testDB(t)
	auth := services.NewAuthService(db)

	created, err := auth.SignUp(&dto.SignupRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@x.com",
		Password:  "secret123",
	})
	require.NoError(t, err)

	user, err := auth.GoogleSignIn(&services.GoogleClaims{
		Email:      "ada@x.com",
		GivenName:  "Different",
		FamilyName: "Name",
		Picture:    "https://example.com/other.jpg",
	})
	require.NoError(t, err)

	// Reused without any field overwrite.
	assert.Equal(t, created.UID, user.UID)
	assert.Equal(t, "Ada", user.FirstName)
	assert.Empty(t, user.Photo)
	assert.NotEmpty(t, user.Password)
}

func TestAuthService_GoogleSignInSuffixesTakenUsername(t *testing.T) {
	db := testDB(t)
	auth := services.NewAuthService(db)

	first, err := auth.GoogleSignIn(&services.GoogleClaims{
		Email:      "ada@x.com",
		GivenName:  "Ada",
		FamilyName: "Lovelace",
	})
	require.NoError(t, err)
	assert.Equal(t, "adalovelace", first.Username)

	second, err := auth.GoogleSignIn(&services.GoogleClaims{
		Email:      "ada@other.com",
		GivenName:  "Ada",
		FamilyName: "Lovelace",
	})
	require.NoError(t, err)
	assert.Equal(t, "adalovelace1", second.Username)
}

package services_test

import (
	"encoding/base64"
	"testing"

	"github.com/gradlink/gradlink-backend/internal/dto"
	"github.com/gradlink/gradlink-backend/internal/models"
	"github.com/gradlink/gradlink-backend/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func signupUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	auth := services.NewAuthService(db)
	user, err := auth.SignUp(&dto.SignupRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@x.com",
		Password:  "secret123",
	})
	require.NoError(t, err)
	return user
}

func strPtr(s string) *string { return &s }

func TestProfileService_PartialUpdateLeavesOtherFields(t *testing.T) {
	db := testDB(t)
	profiles := services.NewProfileService(db)
	user := signupUser(t, db)

	_, err := profiles.UpdateProfile(user.UID, &dto.ProfilePatch{
		College:  strPtr("MIT"),
		Linkedin: strPtr("https://linkedin.com/in/ada"),
	})
	require.NoError(t, err)

	updated, err := profiles.UpdateProfile(user.UID, &dto.ProfilePatch{
		Bio: strPtr("First programmer."),
	})
	require.NoError(t, err)

	assert.Equal(t, "First programmer.", updated.Bio)
	assert.Equal(t, "MIT", updated.College)
	assert.Equal(t, "https://linkedin.com/in/ada", updated.Linkedin)
	assert.Equal(t, "Ada", updated.FirstName)
}

func TestProfileService_PhotoStoredBase64(t *testing.T) {
	db := testDB(t)
	profiles := services.NewProfileService(db)
	user := signupUser(t, db)

	raw := []byte{0xff, 0xd8, 0xff, 0xe0, 0x00, 0x10}
	updated, err := profiles.UpdateProfile(user.UID, &dto.ProfilePatch{Photo: raw})
	require.NoError(t, err)

	assert.Equal(t, base64.StdEncoding.EncodeToString(raw), updated.Photo)

	// A later photo upload replaces the prior value in full.
	updated, err = profiles.UpdateProfile(user.UID, &dto.ProfilePatch{Photo: []byte("new")})
	require.NoError(t, err)
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("new")), updated.Photo)
}

func TestProfileService_SocialLinksFiltered(t *testing.T) {
	db := testDB(t)
	profiles := services.NewProfileService(db)
	user := signupUser(t, db)

	payload := `[{"type":"LinkedIn","url":""},{"type":"GitHub","url":"https://github.com/ada"},{"type":"  ","url":"https://x.com/ada"}]`
	updated, err := profiles.UpdateProfile(user.UID, &dto.ProfilePatch{
		SocialLinks: strPtr(payload),
	})
	require.NoError(t, err)

	links := updated.Links()
	require.Len(t, links, 1)
	assert.Equal(t, "GitHub", links[0].Type)
	assert.Equal(t, "https://github.com/ada", links[0].URL)
}

func TestProfileService_SocialLinksReplacedWhole(t *testing.T) {
	db := testDB(t)
	profiles := services.NewProfileService(db)
	user := signupUser(t, db)

	_, err := profiles.UpdateProfile(user.UID, &dto.ProfilePatch{
		SocialLinks: strPtr(`[{"type":"GitHub","url":"https://github.com/ada"},{"type":"X","url":"https://x.com/ada"}]`),
	})
	require.NoError(t, err)

	updated, err := profiles.UpdateProfile(user.UID, &dto.ProfilePatch{
		SocialLinks: strPtr(`[{"type":"Portfolio","url":"https://ada.dev"}]`),
	})
	require.NoError(t, err)

	links := updated.Links()
	require.Len(t, links, 1)
	assert.Equal(t, "Portfolio", links[0].Type)
}

func TestProfileService_UnparsableSocialLinksLeavesRecordUnmodified(t *testing.T) {
	db := testDB(t)
	profiles := services.NewProfileService(db)
	user := signupUser(t, db)

	_, err := profiles.UpdateProfile(user.UID, &dto.ProfilePatch{
		Bio:         strPtr("should not be written"),
		SocialLinks: strPtr(`{"not":"an array`),
	})
	assert.ErrorIs(t, err, services.ErrInvalidSocialLinks)

	var stored models.User
	require.NoError(t, db.Where("uid = ?", user.UID).First(&stored).Error)
	assert.Empty(t, stored.Bio)
}

func TestProfileService_UpdateUnknownUID(t *testing.T) {
	db := testDB(t)
	profiles := services.NewProfileService(db)

	_, err := profiles.UpdateProfile("deadbeefdeadbeefdeadbeefdeadbeef", &dto.ProfilePatch{
		Bio: strPtr("hello"),
	})
	assert.ErrorIs(t, err, services.ErrUserNotFound)
}

func TestProfileService_EmptyPatchReturnsRecord(t *testing.T) {
	db := testDB(t)
	profiles := services.NewProfileService(db)
	user := signupUser(t, db)

	updated, err := profiles.UpdateProfile(user.UID, &dto.ProfilePatch{})
	require.NoError(t, err)
	assert.Equal(t, user.UID, updated.UID)
}

func TestProfileService_GetByUsername(t *testing.T) {
	db := testDB(t)
	profiles := services.NewProfileService(db)
	user := signupUser(t, db)

	profile, err := profiles.GetByUsername(user.Username)
	require.NoError(t, err)
	assert.Equal(t, "Ada", profile.FirstName)
	assert.Equal(t, user.UID, profile.UID)
	assert.NotNil(t, profile.SocialLinks)

	_, err = profiles.GetByUsername("nosuchuser")
	assert.ErrorIs(t, err, services.ErrUserNotFound)
}

package services

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/gradlink/gradlink-backend/internal/dto"
	"github.com/gradlink/gradlink-backend/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidSocialLinks = errors.New("invalid socialLinks format")
)

// ProfileService serves public profile lookups and owns the profile
// update pipeline.
type ProfileService struct {
	db *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

// GetByUsername returns the public projection of a profile.
func (s *ProfileService) GetByUsername(username string) (*dto.PublicProfile, error) {
	var user models.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	return dto.NewPublicProfile(&user), nil
}

// UpdateProfile applies a partial patch to the record owned by uid.
// Absent fields stay untouched; the photo and the socialLinks list are
// replaced whole when present. The write is a single UPDATE keyed by
// uid, so a failed validation leaves the record unmodified.
func (s *ProfileService) UpdateProfile(uid string, patch *dto.ProfilePatch) (*models.User, error) {
	updates := map[string]interface{}{}
	setField := func(column string, value *string) {
		if value != nil {
			updates[column] = *value
		}
	}

	setField("first_name", patch.FirstName)
	setField("last_name", patch.LastName)
	setField("college", patch.College)
	setField("graduation_year", patch.GraduationYear)
	setField("branch", patch.Branch)
	setField("job_title", patch.JobTitle)
	setField("company", patch.Company)
	setField("linkedin", patch.Linkedin)
	setField("github", patch.Github)
	setField("portfolio", patch.Portfolio)
	setField("bio", patch.Bio)

	if patch.Photo != nil {
		updates["photo"] = base64.StdEncoding.EncodeToString(patch.Photo)
	}

	if patch.SocialLinks != nil {
		links, err := parseSocialLinks(*patch.SocialLinks)
		if err != nil {
			return nil, err
		}
		encoded, err := json.Marshal(links)
		if err != nil {
			return nil, fmt.Errorf("failed to encode social links: %w", err)
		}
		updates["social_links"] = datatypes.JSON(encoded)
	}

	if len(updates) > 0 {
		res := s.db.Model(&models.User{}).Where("uid = ?", uid).Updates(updates)
		if res.Error != nil {
			return nil, fmt.Errorf("failed to update profile: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, ErrUserNotFound
		}
	}

	var user models.User
	if err := s.db.Where("uid = ?", uid).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load updated profile: %w", err)
	}
	return &user, nil
}

// parseSocialLinks decodes the form payload into a clean link list.
// An unparsable payload is an error; individual entries with an empty
// type or url after trimming are dropped silently.
func parseSocialLinks(raw string) ([]models.SocialLink, error) {
	var parsed []models.SocialLink
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, ErrInvalidSocialLinks
	}

	valid := make([]models.SocialLink, 0, len(parsed))
	for _, link := range parsed {
		linkType := strings.TrimSpace(link.Type)
		url := strings.TrimSpace(link.URL)
		if linkType == "" || url == "" {
			continue
		}
		valid = append(valid, models.SocialLink{Type: linkType, URL: url})
	}
	return valid, nil
}

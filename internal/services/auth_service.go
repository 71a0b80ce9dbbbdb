package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/gradlink/gradlink-backend/internal/dto"
	"github.com/gradlink/gradlink-backend/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrMissingFields      = errors.New("all fields are required")
	ErrEmailTaken         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// createAttempts bounds the retry on a write-time username collision
// (two concurrent signups can both pass the pre-check).
const createAttempts = 2

type AuthService struct {
	db        *gorm.DB
	usernames *UsernameAllocator
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{
		db:        db,
		usernames: NewUsernameAllocator(db),
	}
}

// SignUp registers a password account. The email is stored lower-cased;
// the username is allocated from the name with a random 4-digit suffix.
func (s *AuthService) SignUp(req *dto.SignupRequest) (*models.User, error) {
	firstName := strings.TrimSpace(req.FirstName)
	lastName := strings.TrimSpace(req.LastName)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	password := strings.TrimSpace(req.Password)

	if firstName == "" || lastName == "" || email == "" || password == "" {
		return nil, ErrMissingFields
	}

	var existing models.User
	err := s.db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	var lastErr error
	for i := 0; i < createAttempts; i++ {
		username, err := s.usernames.ForSignup(firstName, lastName)
		if err != nil {
			return nil, err
		}

		user := models.User{
			ID:          uuid.New(),
			UID:         NewUID(),
			Email:       email,
			Password:    string(hash),
			Username:    username,
			FirstName:   firstName,
			LastName:    lastName,
			SocialLinks: datatypes.JSON("[]"),
		}
		if err := s.db.Create(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				lastErr = err
				continue
			}
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
		return &user, nil
	}
	return nil, fmt.Errorf("failed to create user: %w", lastErr)
}

// SignIn verifies an email/password pair. Unknown emails and wrong
// passwords are indistinguishable to the caller.
func (s *AuthService) SignIn(email, password string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if user.Password == "" {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// GoogleSignIn maps a verified Google identity onto a local account.
// An existing record with the asserted email is reused without any
// field overwrite; otherwise a passwordless account is created with the
// federated username policy and the picture claim as photo.
func (s *AuthService) GoogleSignIn(claims *GoogleClaims) (*models.User, error) {
	email := strings.ToLower(claims.Email)

	var user models.User
	err := s.db.Where("email = ?", email).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	var lastErr error
	for i := 0; i < createAttempts; i++ {
		username, err := s.usernames.ForFederated(claims.GivenName, claims.FamilyName)
		if err != nil {
			return nil, err
		}

		user = models.User{
			ID:          uuid.New(),
			UID:         NewUID(),
			Email:       email,
			Username:    username,
			FirstName:   claims.GivenName,
			LastName:    claims.FamilyName,
			Photo:       claims.Picture,
			SocialLinks: datatypes.JSON("[]"),
		}
		if err := s.db.Create(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				lastErr = err
				continue
			}
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
		return &user, nil
	}
	return nil, fmt.Errorf("failed to create user: %w", lastErr)
}

// NewUID returns a fresh account token: a v4 UUID without dashes.
func NewUID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

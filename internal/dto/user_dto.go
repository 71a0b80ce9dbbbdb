package dto

import (
	"github.com/google/uuid"
	"github.com/gradlink/gradlink-backend/internal/models"
)

type SignupRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required"`
	Password  string `json:"password" validate:"required"`
}

type SigninRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserSummary is the compact account shape returned by signup/signin.
type UserSummary struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	UID      string    `json:"uid"`
	Username string    `json:"username"`
}

type AuthResponse struct {
	Message string      `json:"message"`
	User    UserSummary `json:"user"`
}

// PublicProfile is the projection served by the public lookup endpoint.
// It never carries the password hash or the internal primary key.
type PublicProfile struct {
	UID            string              `json:"uid"`
	Email          string              `json:"email"`
	Username       string              `json:"username"`
	FirstName      string              `json:"firstName"`
	LastName       string              `json:"lastName"`
	College        string              `json:"college"`
	GraduationYear string              `json:"graduationYear"`
	Branch         string              `json:"branch"`
	JobTitle       string              `json:"jobTitle"`
	Company        string              `json:"company"`
	Linkedin       string              `json:"linkedin"`
	Github         string              `json:"github"`
	Portfolio      string              `json:"portfolio"`
	Bio            string              `json:"bio"`
	Photo          string              `json:"photo"`
	SocialLinks    []models.SocialLink `json:"socialLinks"`
}

func NewPublicProfile(u *models.User) *PublicProfile {
	return &PublicProfile{
		UID:            u.UID,
		Email:          u.Email,
		Username:       u.Username,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		College:        u.College,
		GraduationYear: u.GraduationYear,
		Branch:         u.Branch,
		JobTitle:       u.JobTitle,
		Company:        u.Company,
		Linkedin:       u.Linkedin,
		Github:         u.Github,
		Portfolio:      u.Portfolio,
		Bio:            u.Bio,
		Photo:          u.Photo,
		SocialLinks:    u.Links(),
	}
}

// ProfilePatch carries the fields present in an update-profile request.
// A nil slot means the field was absent from the form and stays untouched.
type ProfilePatch struct {
	FirstName      *string
	LastName       *string
	College        *string
	GraduationYear *string
	Branch         *string
	JobTitle       *string
	Company        *string
	Linkedin       *string
	Github         *string
	Portfolio      *string
	Bio            *string

	// Photo is the raw uploaded file; it is stored base64-encoded.
	Photo []byte
	// SocialLinks is the raw JSON array string from the form.
	SocialLinks *string
}

type UpdateProfileResponse struct {
	Message string      `json:"message"`
	User    models.User `json:"user"`
}

type ErrorResponse struct {
	Type    string `json:"type,omitempty"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}

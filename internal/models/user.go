package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// SocialLink is one entry of a user's public link list.
type SocialLink struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

// User is the single persisted identity record. The uid (not the primary
// key) is what session tokens reference; the username is the public
// URL-path identifier.
type User struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UID            string         `gorm:"size:32;not null;uniqueIndex" json:"uid"`
	Email          string         `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password       string         `json:"-"`
	Username       string         `gorm:"size:255;not null;uniqueIndex" json:"username"`
	FirstName      string         `gorm:"size:255;not null" json:"firstName"`
	LastName       string         `gorm:"size:255;not null" json:"lastName"`
	College        string         `gorm:"size:255" json:"college"`
	GraduationYear string         `gorm:"size:50" json:"graduationYear"`
	Branch         string         `gorm:"size:255" json:"branch"`
	JobTitle       string         `gorm:"size:255" json:"jobTitle"`
	Company        string         `gorm:"size:255" json:"company"`
	Linkedin       string         `gorm:"size:512" json:"linkedin"`
	Github         string         `gorm:"size:512" json:"github"`
	Portfolio      string         `gorm:"size:512" json:"portfolio"`
	Bio            string         `gorm:"type:text" json:"bio"`
	Photo          string         `gorm:"type:text" json:"photo"`
	SocialLinks    datatypes.JSON `json:"socialLinks"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// Links decodes the stored socialLinks column. An unset column decodes
// to an empty list.
func (u *User) Links() []SocialLink {
	if len(u.SocialLinks) == 0 {
		return []SocialLink{}
	}
	var links []SocialLink
	if err := json.Unmarshal(u.SocialLinks, &links); err != nil {
		return []SocialLink{}
	}
	return links
}

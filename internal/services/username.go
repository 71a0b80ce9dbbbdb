package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	mrand "math/rand/v2"
	"strconv"
	"strings"

	"github.com/gradlink/gradlink-backend/internal/models"
	"gorm.io/gorm"
)

// randomSuffixAttempts bounds the 4-digit re-roll loop before widening
// to a suffix that cannot realistically collide.
const randomSuffixAttempts = 25

// UsernameAllocator derives a unique public handle from a person's name.
// The two signup channels intentionally differ: password signups always
// carry a random 4-digit suffix, Google signups get the bare name when
// it is free and integer suffixes otherwise.
type UsernameAllocator struct {
	db *gorm.DB
}

func NewUsernameAllocator(db *gorm.DB) *UsernameAllocator {
	return &UsernameAllocator{db: db}
}

// ForSignup returns base+NNNN with a random suffix in [1000, 9999],
// re-rolling while the candidate is taken. The existence check is not
// transactional; the unique index on users.username remains the
// authority and callers retry on a write-time duplicate.
func (a *UsernameAllocator) ForSignup(firstName, lastName string) (string, error) {
	base := baseUsername(firstName, lastName)

	for i := 0; i < randomSuffixAttempts; i++ {
		candidate := base + strconv.Itoa(1000+mrand.IntN(9000))
		taken, err := a.taken(candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}

	// All 4-digit suffixes are contended; widen to a random hex suffix.
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate username suffix: %w", err)
	}
	return base + hex.EncodeToString(buf), nil
}

// ForFederated returns the bare base name when free, otherwise the first
// free base+N with N counting up from 1.
func (a *UsernameAllocator) ForFederated(firstName, lastName string) (string, error) {
	base := baseUsername(firstName, lastName)

	candidate := base
	for suffix := 1; ; suffix++ {
		taken, err := a.taken(candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = base + strconv.Itoa(suffix)
	}
}

func (a *UsernameAllocator) taken(username string) (bool, error) {
	var user models.User
	err := a.db.Select("id").Where("username = ?", username).First(&user).Error
	if err == nil {
		return true, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return false, fmt.Errorf("failed to check username %q: %w", username, err)
}

func baseUsername(firstName, lastName string) string {
	return strings.ToLower(firstName + lastName)
}

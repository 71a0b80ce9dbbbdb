package services

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid or expired session token")

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "token"

// SessionClaims is the payload of a session token: the account uid as
// subject plus the email at issuance time.
type SessionClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies the signed session tokens delivered
// via the `token` cookie.
type TokenService struct {
	secret        []byte
	expiry        time.Duration
	secureCookies bool
}

func NewTokenService(secret string, expiry time.Duration, secureCookies bool) *TokenService {
	return &TokenService{
		secret:        []byte(secret),
		expiry:        expiry,
		secureCookies: secureCookies,
	}
}

func (s *TokenService) Issue(uid, email string) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uid,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *TokenService) Verify(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Cookie wraps a signed token in the HttpOnly session cookie. Secure is
// only set in production so local clients over plain HTTP keep working.
func (s *TokenService) Cookie(token string) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.expiry.Seconds()),
		Expires:  time.Now().Add(s.expiry),
		HTTPOnly: true,
		Secure:   s.secureCookies,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
}

package handlers

import (
	"errors"
	"io"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gradlink/gradlink-backend/internal/config"
	"github.com/gradlink/gradlink-backend/internal/dto"
	"github.com/gradlink/gradlink-backend/internal/middleware"
	"github.com/gradlink/gradlink-backend/internal/services"
)

type UserHandler struct {
	auth     *services.AuthService
	profiles *services.ProfileService
	tokens   *services.TokenService
	google   *services.GoogleTokenVerifier
	validate *validator.Validate
	cfg      *config.Config
}

func NewUserHandler(
	auth *services.AuthService,
	profiles *services.ProfileService,
	tokens *services.TokenService,
	google *services.GoogleTokenVerifier,
	cfg *config.Config,
) *UserHandler {
	return &UserHandler{
		auth:     auth,
		profiles: profiles,
		tokens:   tokens,
		google:   google,
		validate: validator.New(),
		cfg:      cfg,
	}
}

func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Message: "All fields are required",
		})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Message: "All fields are required",
		})
	}

	user, err := h.auth.SignUp(&req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingFields):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Message: "All fields are required",
			})
		case errors.Is(err, services.ErrEmailTaken):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Message: "User already exists",
			})
		default:
			slog.Error("signup failed", "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Message: "Internal server error",
			})
		}
	}

	token, err := h.tokens.Issue(user.UID, user.Email)
	if err != nil {
		slog.Error("failed to issue session token", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Message: "Internal server error",
		})
	}
	c.Cookie(h.tokens.Cookie(token))

	return c.Status(fiber.StatusCreated).JSON(dto.AuthResponse{
		Message: "User created successfully",
		User: dto.UserSummary{
			ID:       user.ID,
			Email:    user.Email,
			UID:      user.UID,
			Username: user.Username,
		},
	})
}

func (h *UserHandler) SignIn(c *fiber.Ctx) error {
	var req dto.SigninRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Message: "Invalid email or password",
		})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Message: "Invalid email or password",
		})
	}

	user, err := h.auth.SignIn(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Message: "Invalid email or password",
			})
		}
		slog.Error("signin failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Message: "Internal server error",
		})
	}

	token, err := h.tokens.Issue(user.UID, user.Email)
	if err != nil {
		slog.Error("failed to issue session token", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Message: "Internal server error",
		})
	}
	c.Cookie(h.tokens.Cookie(token))

	return c.JSON(dto.AuthResponse{
		Message: "Signed in successfully",
		User: dto.UserSummary{
			ID:       user.ID,
			Email:    user.Email,
			UID:      user.UID,
			Username: user.Username,
		},
	})
}

// Identify serves the public profile projection. No authentication:
// profiles are public.
func (h *UserHandler) Identify(c *fiber.Ctx) error {
	profile, err := h.profiles.GetByUsername(c.Params("username"))
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Type:    "notFound",
				Message: "User not found",
			})
		}
		slog.Error("profile lookup failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Message: "Internal server error",
		})
	}
	return c.JSON(profile)
}

// GoogleAuth verifies a Google ID token passed as ?token= and signs the
// caller in, creating the account on first login. Unlike the sibling
// endpoints it responds with a redirect to the caller's profile page.
func (h *UserHandler) GoogleAuth(c *fiber.Ctx) error {
	idToken := c.Query("token")
	if idToken == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Message: "Missing token",
		})
	}

	claims, err := h.google.VerifyToken(idToken, h.cfg.GoogleClientID)
	if err != nil || claims.Email == "" {
		if err != nil {
			slog.Warn("google token verification failed", "error", err)
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Message: "Invalid Google token",
		})
	}

	user, err := h.auth.GoogleSignIn(claims)
	if err != nil {
		slog.Error("google sign-in failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Message: "Google login failed",
		})
	}

	token, err := h.tokens.Issue(user.UID, user.Email)
	if err != nil {
		slog.Error("failed to issue session token", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Message: "Google login failed",
		})
	}
	c.Cookie(h.tokens.Cookie(token))

	return c.Redirect(h.cfg.ClientOrigin+"/"+user.Username, fiber.StatusFound)
}

// UpdateProfile applies a multipart partial update to the caller's own
// record, located via the session's uid claim only.
func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	uid, err := middleware.UID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Message: "Unauthorized",
		})
	}

	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Message: "Invalid form data",
		})
	}

	formValue := func(key string) *string {
		if vals, ok := form.Value[key]; ok && len(vals) > 0 {
			v := vals[0]
			return &v
		}
		return nil
	}

	patch := dto.ProfilePatch{
		FirstName:      formValue("firstName"),
		LastName:       formValue("lastName"),
		College:        formValue("college"),
		GraduationYear: formValue("graduationYear"),
		Branch:         formValue("branch"),
		JobTitle:       formValue("jobTitle"),
		Company:        formValue("company"),
		Linkedin:       formValue("linkedin"),
		Github:         formValue("github"),
		Portfolio:      formValue("portfolio"),
		Bio:            formValue("bio"),
		SocialLinks:    formValue("socialLinks"),
	}

	if fileHeader, err := c.FormFile("photo"); err == nil {
		file, err := fileHeader.Open()
		if err != nil {
			slog.Error("failed to open uploaded photo", "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Message: "Failed to update profile",
			})
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			slog.Error("failed to read uploaded photo", "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Message: "Failed to update profile",
			})
		}
		patch.Photo = data
	}

	user, err := h.profiles.UpdateProfile(uid, &patch)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidSocialLinks):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Message: "Invalid socialLinks format",
			})
		case errors.Is(err, services.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Message: "User not found",
			})
		default:
			slog.Error("profile update failed", "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Message: "Failed to update profile",
			})
		}
	}

	return c.JSON(dto.UpdateProfileResponse{
		Message: "Profile updated successfully",
		User:    *user,
	})
}

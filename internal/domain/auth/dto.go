package auth

import (
	"strings"

	"github.com/cmlabs-hris/bizops-backend-go/internal/pkg/validator"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	switch {
	case validator.IsEmpty(r.Email):
		errs.Add("email", "email is required")
	case len(r.Email) > 254:
		errs.Add("email", "email must not exceed 254 characters")
	case !validator.IsValidEmail(r.Email):
		errs.Add("email", "email must be a valid email address")
	}

	switch {
	case validator.IsEmpty(r.Password):
		errs.Add("password", "password is required")
	case len(r.Password) < 8:
		errs.Add("password", "password must be at least 8 characters long")
	case len(r.Password) > 72:
		// bcrypt ignores everything past 72 bytes
		errs.Add("password", "password must not exceed 72 characters")
	}

	return errs.Err()
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (r *RefreshTokenRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.RefreshToken) {
		errs.Add("refresh_token", "refresh_token is required")
	} else if len(r.RefreshToken) > 2048 {
		errs.Add("refresh_token", "refresh_token must not exceed 2048 characters")
	}
	return errs.Err()
}

// SessionTrackingRequest is filled from the HTTP request, never from the body.
type SessionTrackingRequest struct {
	UserAgent string
	IPAddress string
}

type TokenResponse struct {
	AccessToken           string `json:"access_token"`
	AccessTokenExpiresIn  int64  `json:"access_token_expires_in"`
	RefreshToken          string `json:"refresh_token"`
	RefreshTokenExpiresIn int64  `json:"refresh_token_expires_in"`
}

type AccessTokenResponse struct {
	AccessToken          string `json:"access_token"`
	AccessTokenExpiresIn int64  `json:"access_token_expires_in"`
}

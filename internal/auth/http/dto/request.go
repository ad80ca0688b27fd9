// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/petclinic-auth/internal/validation"
)

// IssueTokenRequest contains the credentials presented at login.
type IssueTokenRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	DeviceInfo string `json:"device_info"`
}

// Validate checks if the issue token request is valid.
func (r *IssueTokenRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Email,
			validation.Required,
			customValidation.NotBlank,
			customValidation.Email,
		),
		validation.Field(&r.Password,
			validation.Required,
			customValidation.NotBlank,
		),
		validation.Field(&r.DeviceInfo,
			validation.Length(0, 512),
		),
	)
}

// RefreshTokenRequest contains the refresh token presented for rotation.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Validate checks if the refresh token request is valid.
func (r *RefreshTokenRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.RefreshToken,
			validation.Required,
			customValidation.NotBlank,
		),
	)
}

// LogoutRequest contains the refresh token to revoke.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Validate checks if the logout request is valid.
func (r *LogoutRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.RefreshToken,
			validation.Required,
			customValidation.NotBlank,
		),
	)
}

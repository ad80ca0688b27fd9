package domain

import (
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// AccessClaims is the claims set embedded in every access token. The subject
// registered claim carries the user id in decimal form.
type AccessClaims struct {
	Email        string `json:"email"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	OwnerID      int64  `json:"owner_id"`
	ProfileImage string `json:"profile_image,omitempty"`
	jwt.RegisteredClaims
}

// UserID parses the subject claim back into the numeric user id.
// Returns false if the subject is absent or not a decimal integer.
func (c *AccessClaims) UserID() (int64, bool) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// NewAccessClaims builds the claims set for a user and its owner profile.
// Registered time claims are filled in by the access token service.
func NewAccessClaims(user *User, ownerID int64) *AccessClaims {
	return &AccessClaims{
		Email:        user.Email,
		Name:         user.Name,
		Role:         string(user.Type),
		OwnerID:      ownerID,
		ProfileImage: user.ProfileImage,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: strconv.FormatInt(user.ID, 10),
		},
	}
}

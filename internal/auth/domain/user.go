// Package domain defines the identity and credential lifecycle domain models.
// Users and owners are consumed read-only from the surrounding service; the
// refresh token records are owned and mutated exclusively by this module.
package domain

import "time"

// AccountStatus is the closed set of account states relevant to token issuance.
type AccountStatus string

const (
	// AccountStatusActive marks an account that may hold tokens.
	AccountStatusActive AccountStatus = "active"

	// AccountStatusInactive marks a disabled account; token operations fail
	// with ErrAccountUnauthorized.
	AccountStatusInactive AccountStatus = "inactive"
)

// AccountType is the closed set of account types. The stored value is parsed
// into this type at the repository boundary so the rotation logic never
// string-compares raw database values.
type AccountType string

const (
	// AccountTypeOwner is a pet owner account, the only type entitled to the
	// token lifecycle operations.
	AccountTypeOwner AccountType = "owner"

	// AccountTypeStaff is a clinic staff account.
	AccountTypeStaff AccountType = "staff"
)

// ParseAccountType maps a stored account type string to its closed variant.
// Unknown values fail closed: callers treat the false return as an
// unauthorized account.
func ParseAccountType(s string) (AccountType, bool) {
	switch AccountType(s) {
	case AccountTypeOwner:
		return AccountTypeOwner, true
	case AccountTypeStaff:
		return AccountTypeStaff, true
	default:
		return "", false
	}
}

// User is the external identity record consumed by the token kernel.
type User struct {
	ID           int64
	Email        string
	Name         string
	PasswordHash string
	ProfileImage string
	Status       AccountStatus
	Type         AccountType
	CreatedAt    time.Time
}

// CanAuthenticate reports whether the account may receive or rotate tokens.
// Only active owner accounts qualify.
func (u *User) CanAuthenticate() bool {
	if u.Status != AccountStatusActive {
		return false
	}
	switch u.Type {
	case AccountTypeOwner:
		return true
	case AccountTypeStaff:
		return false
	default:
		return false
	}
}

// Owner is the owner profile associated with a user, used to enrich access
// token claims. Read-only input to the token kernel.
type Owner struct {
	ID        int64
	UserID    int64
	Phone     string
	Address   string
	CreatedAt time.Time
}

package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAccountType(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected AccountType
		ok       bool
	}{
		{
			name:     "Owner",
			input:    "owner",
			expected: AccountTypeOwner,
			ok:       true,
		},
		{
			name:     "Staff",
			input:    "staff",
			expected: AccountTypeStaff,
			ok:       true,
		},
		{
			name:  "Unknown_FailsClosed",
			input: "admin",
			ok:    false,
		},
		{
			name:  "Empty_FailsClosed",
			input: "",
			ok:    false,
		},
		{
			name:  "CaseSensitive",
			input: "Owner",
			ok:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, ok := ParseAccountType(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestUser_CanAuthenticate(t *testing.T) {
	tests := []struct {
		name     string
		user     *User
		expected bool
	}{
		{
			name: "ActiveOwner_Allowed",
			user: &User{
				Status: AccountStatusActive,
				Type:   AccountTypeOwner,
			},
			expected: true,
		},
		{
			name: "InactiveOwner_Denied",
			user: &User{
				Status: AccountStatusInactive,
				Type:   AccountTypeOwner,
			},
			expected: false,
		},
		{
			name: "ActiveStaff_Denied",
			user: &User{
				Status: AccountStatusActive,
				Type:   AccountTypeStaff,
			},
			expected: false,
		},
		{
			name: "UnknownType_Denied",
			user: &User{
				Status: AccountStatusActive,
				Type:   AccountType("admin"),
			},
			expected: false,
		},
		{
			name:     "ZeroValue_Denied",
			user:     &User{},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.user.CanAuthenticate())
		})
	}
}

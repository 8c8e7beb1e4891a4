package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveName(t *testing.T) {
	tests := []struct {
		name    string
		profile IdentityProfile
		want    string
	}{
		{"full name wins", IdentityProfile{FullName: "Ada Lovelace", FirstName: "Ada"}, "Ada Lovelace"},
		{"full name trimmed", IdentityProfile{FullName: "  Ada Lovelace  "}, "Ada Lovelace"},
		{"first and last combined", IdentityProfile{FirstName: "Ada", LastName: "Lovelace"}, "Ada Lovelace"},
		{"first name only", IdentityProfile{FirstName: "Ada"}, "Ada"},
		{"last name only", IdentityProfile{LastName: "Lovelace"}, "Lovelace"},
		{"account name fallback", IdentityProfile{AccountName: "ada-l"}, "ada-l"},
		{"whitespace full name skipped", IdentityProfile{FullName: "   ", AccountName: "ada-l"}, "ada-l"},
		{"empty profile", IdentityProfile{}, "User"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.profile.DeriveName())
		})
	}
}

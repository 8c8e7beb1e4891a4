package models

import (
	"strings"

	"gorm.io/gorm"
)

// User represents a user account in the system. Accounts are created
// lazily on the first authenticated request using the identity claims
// issued by the external auth provider.
type User struct {
	gorm.Model

	// Identity fields
	ExternalID string `gorm:"uniqueIndex;not null" json:"external_id"`
	Email      string `gorm:"index" json:"email"`
	Name       string `gorm:"default:'User'" json:"name"`

	// Account status
	IsActive bool `gorm:"default:true" json:"is_active"`

	// Relations
	Memberships []TeamMember `gorm:"foreignKey:UserID" json:"memberships,omitempty"`
	Tasks       []Task       `gorm:"foreignKey:AssigneeID" json:"tasks,omitempty"`
}

// IdentityProfile carries the naming claims an external auth token may
// include. Any of the fields can be empty depending on the provider.
type IdentityProfile struct {
	FullName    string
	FirstName   string
	LastName    string
	AccountName string // name on a linked provider account
}

// DeriveName picks a display name from the profile, trying the richest
// source first and falling back to the literal "User".
func (p IdentityProfile) DeriveName() string {
	switch {
	case strings.TrimSpace(p.FullName) != "":
		return strings.TrimSpace(p.FullName)
	case p.FirstName != "" && p.LastName != "":
		return p.FirstName + " " + p.LastName
	case p.FirstName != "":
		return p.FirstName
	case p.LastName != "":
		return p.LastName
	case strings.TrimSpace(p.AccountName) != "":
		return strings.TrimSpace(p.AccountName)
	default:
		return "User"
	}
}

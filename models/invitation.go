package models

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"gorm.io/gorm"
)

// Invitation is a pending offer to join a team, delivered by email
type Invitation struct {
	gorm.Model
	TeamID    uint      `gorm:"not null;index" json:"team_id"`
	Email     string    `gorm:"not null" json:"email"`
	Role      Role      `gorm:"default:'member'" json:"role"`
	Code      string    `gorm:"uniqueIndex;not null;size:64" json:"code"`
	InviterID uint      `gorm:"not null" json:"inviter_id"`
	Used      bool      `gorm:"default:false" json:"used"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`

	// Relations
	Team    Team `json:"-"`
	Inviter User `gorm:"foreignKey:InviterID" json:"-"`
}

// GenerateInvitationCode returns a random hex token for invite links
func GenerateInvitationCode() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// IsValid reports whether the invitation can still be accepted
func (i *Invitation) IsValid() bool {
	return !i.Used && time.Now().Before(i.ExpiresAt)
}

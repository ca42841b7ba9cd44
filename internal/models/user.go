package models

import "gorm.io/gorm"

type User struct {
	gorm.Model

	Name           string  `gorm:"not null"`
	Email          string  `gorm:"uniqueIndex;not null"`
	PasswordHash   *string // null for OAuth-only users
	ProfilePicture *string

	// CurrentWorkspaceID is a weak reference: it must point to a workspace
	// the user is a member of, and is repaired when that workspace is deleted.
	CurrentWorkspaceID *uint `gorm:"index"`

	// Relationships
	Accounts        []Account   `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	OwnedWorkspaces []Workspace `gorm:"foreignKey:OwnerID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
	Memberships     []Member    `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

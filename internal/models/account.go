package models

import "gorm.io/gorm"

// Account links an external or local credential to a User. A user may hold
// one account per provider.
type Account struct {
	gorm.Model

	UserID     uint   `gorm:"not null;index"`
	Provider   string `gorm:"not null;uniqueIndex:idx_provider_account"`
	ProviderID string `gorm:"not null;uniqueIndex:idx_provider_account"`

	// Relationships
	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

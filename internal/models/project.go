package models

import "gorm.io/gorm"

type Project struct {
	gorm.Model

	Name        string `gorm:"not null"`
	Description string
	Emoji       string `gorm:"not null;default:'📊'"`
	WorkspaceID uint   `gorm:"not null;index"`
	CreatedByID uint   `gorm:"not null"`

	// Relationships
	Workspace Workspace `gorm:"foreignKey:WorkspaceID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	CreatedBy User      `gorm:"foreignKey:CreatedByID"`
	Tasks     []Task    `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

package models

import (
	"time"

	"gorm.io/gorm"
)

type Task struct {
	gorm.Model

	TaskCode     string `gorm:"uniqueIndex;not null"`
	Title        string `gorm:"not null"`
	Description  string
	ProjectID    uint   `gorm:"not null;index"`
	WorkspaceID  uint   `gorm:"not null;index"`
	Status       string `gorm:"not null;default:TODO"`
	Priority     string `gorm:"not null;default:MEDIUM"`
	AssignedToID *uint  `gorm:"index"`
	CreatedByID  uint   `gorm:"not null"`
	DueDate      *time.Time

	// Relationships
	Project    Project   `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Workspace  Workspace `gorm:"foreignKey:WorkspaceID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	AssignedTo *User     `gorm:"foreignKey:AssignedToID"`
	CreatedBy  User      `gorm:"foreignKey:CreatedByID"`
}

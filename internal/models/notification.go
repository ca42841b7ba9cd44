package models

import (
	"time"

	"gorm.io/gorm"
)

// Notification records a due-date reminder produced by the scheduler so the
// same task is not reported twice.
type Notification struct {
	gorm.Model

	UserID  uint   `gorm:"not null;index"`
	TaskID  uint   `gorm:"not null;index"`
	Channel string `gorm:"not null"`
	Status  string `gorm:"not null"`
	Message string
	SentAt  *time.Time

	// Relationships
	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Task Task `gorm:"foreignKey:TaskID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

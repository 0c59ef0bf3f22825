// models/admin_user.go
package models

import "time"

// AdminUser is a dashboard login principal. Created by the seed step, read-only
// afterwards except for the password hash.
type AdminUser struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:254;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	Role         string    `json:"role" gorm:"size:20;not null;default:admin"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	LastLogin    time.Time `json:"lastLogin"`
}

func (AdminUser) TableName() string {
	return "admin_users"
}

package models

import "time"

const DefaultRole = "Operator"

// User is an operator account for the inspection console.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"not null;size:120;uniqueIndex:idx_users_email" json:"email"`
	Password  string    `gorm:"not null;size:128" json:"-"`
	Role      string    `gorm:"not null;size:20;default:'Operator'" json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

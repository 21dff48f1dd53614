package models

import (
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID           int       `gorm:"primaryKey;autoIncrement" json:"id"`
	FirstName    string    `gorm:"column:first_name;size:150;not null" json:"first_name"`
	LastName     string    `gorm:"column:last_name;size:150;not null" json:"last_name"`
	Username     string    `gorm:"column:username;size:150;not null;uniqueIndex" json:"username"`
	Email        string    `gorm:"column:email;size:255;not null;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"column:password_hash;size:255;not null" json:"-"`
	Role         string    `gorm:"column:role;size:20;default:user" json:"role"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

package model

import (
	"time"
)

type UserRole string

const (
	Student UserRole = "student"
	Teacher UserRole = "teacher"
	Admin   UserRole = "admin"
)

// swagger:model User
type User struct {
	BaseModel
	Name     string    `gorm:"size:100;not null" json:"name"`
	Email    string    `gorm:"size:100;unique;not null" json:"email"`
	Password string    `gorm:"size:100;not null" json:"-"`
	Role     UserRole  `gorm:"type:enum('student','teacher','admin');default:'student'" json:"role"`
	Disabled bool      `gorm:"default:false" json:"disabled"`
	LastSeen time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastSeen"`
}

func (User) TableName() string {
	return "users"
}

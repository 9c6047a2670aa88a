package model

import "time"

const RoleOwner = "owner"

// Admin is a human principal belonging to one University. Created together
// with the University at registration time, authenticates via session.
type Admin struct {
	Id           int        `gorm:"primaryKey;autoIncrement" json:"id"`
	UniversityId int        `gorm:"not null;index" json:"university_id"`
	University   University `gorm:"foreignKey:UniversityId;references:Id" json:"-"`
	Name         string     `gorm:"not null" json:"name"`
	Email        string     `gorm:"uniqueIndex;not null" json:"email"`
	Phone        string     `json:"phone"`
	PasswordHash string     `gorm:"not null" json:"-"`
	Role         string     `gorm:"size:16;default:owner" json:"role"`
	CreatedAt    time.Time  `json:"created_at"`
}

// SuperAdmin operates the approval console. Seeded out of band, never
// created through the public API.
type SuperAdmin struct {
	Id           int       `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

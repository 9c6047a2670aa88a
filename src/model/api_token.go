package model

import "time"

// ApiToken stores only the SHA-256 hash of a university's bearer secret. The
// raw token is returned once at issuance and never persisted.
type ApiToken struct {
	Id           int        `gorm:"primaryKey;autoIncrement" json:"id"`
	UniversityId int        `gorm:"uniqueIndex;not null" json:"university_id"`
	University   University `gorm:"foreignKey:UniversityId;references:Id" json:"-"`
	TokenHash    string     `gorm:"uniqueIndex;size:64;not null" json:"-"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

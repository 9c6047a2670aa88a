package model

import "time"

const (
	CredentialPending   = "pending"
	CredentialCompleted = "completed"
)

// Credential records one issuance event. Status moves pending -> completed
// when the minting pipeline confirms a transaction hash; it never moves back.
type Credential struct {
	Id           int        `gorm:"primaryKey;autoIncrement" json:"id"`
	Uuid         string     `gorm:"uniqueIndex;size:36;not null" json:"uuid"`
	UniversityId int        `gorm:"not null;index" json:"university_id"`
	University   University `gorm:"foreignKey:UniversityId;references:Id" json:"-"`
	StudentId    string     `gorm:"not null" json:"student_id"`
	StudentName  string     `gorm:"not null" json:"student_name"`
	DocumentHash string     `gorm:"size:64" json:"document_hash"`
	NftAssetName string     `json:"nft_asset_name"`
	NftPolicyId  string     `json:"nft_policy_id"`
	TxHash       string     `json:"tx_hash"`
	Status       string     `gorm:"size:16;default:pending;index" json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

package model

import "time"

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// University is the registered institution. Wallet columns stay null until the
// record transitions pending -> approved, which happens exactly once.
type University struct {
	Id                    int     `gorm:"primaryKey;autoIncrement" json:"id"`
	Uuid                  string  `gorm:"uniqueIndex;size:36;not null" json:"uuid"`
	Name                  string  `gorm:"not null" json:"name"`
	Domain                string  `gorm:"not null" json:"domain"`
	Country               string  `gorm:"not null" json:"country"`
	AccreditationId       *string `json:"accreditation_id"`
	AccreditationFilePath string  `json:"accreditation_file_path"`
	AuthorizationFilePath string  `json:"authorization_file_path"`
	AuthorizedConfirmed   bool    `gorm:"default:false" json:"authorized_confirmed"`
	TermsAccepted         bool    `gorm:"default:false" json:"terms_accepted"`
	Status                string  `gorm:"size:16;default:pending;index" json:"status"`
	PublicKey             *string `json:"public_key"`
	EncryptedPrivateKey   *string `json:"-"`
	EncryptedMnemonic     *string `json:"-"`
	WalletAddress         *string `json:"wallet_address"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

package superadmin

import (
	"credchain/src/model"

	"gorm.io/gorm"
)

// UniversityRow is one console listing entry: the university joined with its
// owner admin contact details.
type UniversityRow struct {
	model.University
	ContactName  string `json:"contact_name"`
	ContactEmail string `json:"contact_email"`
	ContactPhone string `json:"contact_phone"`
}

// WalletColumns is the set of University columns written during onboarding.
type WalletColumns struct {
	PublicKey           string
	EncryptedPrivateKey string
	EncryptedMnemonic   string
	WalletAddress       string
}

type Repository interface {
	GetSuperAdminByEmail(email string) (*model.SuperAdmin, error)
	ListUniversities() ([]UniversityRow, error)
	GetUniversityByUuid(uuid string) (*model.University, error)
	GetUniversityById(id int) (*model.University, error)
	UpdateStatus(id int, status string) error
	// Onboard atomically flips the university to approved, writes the wallet
	// columns and upserts the ApiToken hash. Either everything lands or
	// nothing does.
	Onboard(universityId int, wallet WalletColumns, tokenHash string) error
}

type gormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) GetSuperAdminByEmail(email string) (*model.SuperAdmin, error) {
	var admin model.SuperAdmin
	err := r.db.Where("email = ?", email).First(&admin).Error
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *gormRepository) ListUniversities() ([]UniversityRow, error) {
	var rows []UniversityRow
	err := r.db.Model(&model.University{}).
		Select("universities.*, admins.name AS contact_name, admins.email AS contact_email, admins.phone AS contact_phone").
		Joins("LEFT JOIN admins ON admins.university_id = universities.id AND admins.role = ?", model.RoleOwner).
		Order("universities.created_at DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *gormRepository) GetUniversityByUuid(uuid string) (*model.University, error) {
	var university model.University
	err := r.db.Where("uuid = ?", uuid).First(&university).Error
	if err != nil {
		return nil, err
	}
	return &university, nil
}

func (r *gormRepository) GetUniversityById(id int) (*model.University, error) {
	var university model.University
	err := r.db.Where("id = ?", id).First(&university).Error
	if err != nil {
		return nil, err
	}
	return &university, nil
}

func (r *gormRepository) UpdateStatus(id int, status string) error {
	return r.db.Model(&model.University{}).Where("id = ?", id).Update("status", status).Error
}

func (r *gormRepository) Onboard(universityId int, wallet WalletColumns, tokenHash string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.University{}).
			Where("id = ? AND status = ?", universityId, model.StatusPending).
			Updates(map[string]interface{}{
				"status":                model.StatusApproved,
				"public_key":            wallet.PublicKey,
				"encrypted_private_key": wallet.EncryptedPrivateKey,
				"encrypted_mnemonic":    wallet.EncryptedMnemonic,
				"wallet_address":        wallet.WalletAddress,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return tx.Create(&model.ApiToken{
			UniversityId: universityId,
			TokenHash:    tokenHash,
		}).Error
	})
}

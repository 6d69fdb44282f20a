package services

import (
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/clickkart/internal/models"
)

// AddressRepo loads and replaces one user's address collection. Save
// commits the whole working copy at once so the default-flag shuffle is
// never observable half-applied.
type AddressRepo interface {
	Load(userID uuid.UUID) ([]models.Address, error)
	Save(userID uuid.UUID, addresses []models.Address) error
}

type gormAddressRepo struct {
	db *gorm.DB
}

// NewAddressRepo returns the database-backed AddressRepo.
func NewAddressRepo(db *gorm.DB) AddressRepo {
	return &gormAddressRepo{db: db}
}

func (r *gormAddressRepo) Load(userID uuid.UUID) ([]models.Address, error) {
	// Non-nil so an empty collection serializes as [] rather than null.
	addresses := []models.Address{}
	err := r.db.Where("user_id = ?", userID).
		Order("created_at asc").
		Find(&addresses).Error
	return addresses, err
}

func (r *gormAddressRepo) Save(userID uuid.UUID, addresses []models.Address) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).
			Delete(&models.Address{}).Error; err != nil {
			return err
		}
		if len(addresses) == 0 {
			return nil
		}
		// Loaded rows keep their IDs and CreatedAt, so insertion order
		// survives the replace.
		return tx.Create(&addresses).Error
	})
}

// MemoryAddressRepo is an in-process AddressRepo for tests.
type MemoryAddressRepo struct {
	mu   sync.Mutex
	data map[uuid.UUID][]models.Address
}

func NewMemoryAddressRepo() *MemoryAddressRepo {
	return &MemoryAddressRepo{data: map[uuid.UUID][]models.Address{}}
}

func (r *MemoryAddressRepo) Load(userID uuid.UUID) ([]models.Address, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Address{}, r.data[userID]...), nil
}

func (r *MemoryAddressRepo) Save(userID uuid.UUID, addresses []models.Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[userID] = append([]models.Address(nil), addresses...)
	return nil
}

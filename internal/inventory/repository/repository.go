package repository

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("record not found")
)

// Repositories holds every inventory repository.
type Repositories struct {
	Material    *MaterialRepository
	Lot         *LotRepository
	Transaction *TransactionRepository
	User        *UserRepository
}

// NewRepositories wires the repository set onto one gorm handle.
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Material:    NewMaterialRepository(db),
		Lot:         NewLotRepository(db),
		Transaction: NewTransactionRepository(db),
		User:        NewUserRepository(db),
	}
}

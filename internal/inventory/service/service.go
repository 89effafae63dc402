package service

import (
	"github.com/ngocnhu100/keycloak-poc/internal/inventory/repository"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Actor is the verified caller identity handed down from the authorization
// gate. Roles is treated as an opaque capability set.
type Actor struct {
	ID       string
	Username string
	Roles    []string
}

// HasRole reports whether the actor holds any of the given roles. Admin
// passes every check.
func (a Actor) HasRole(roles ...string) bool {
	for _, have := range a.Roles {
		if have == RoleAdmin {
			return true
		}
		for _, want := range roles {
			if have == want {
				return true
			}
		}
	}
	return false
}

// Services holds every inventory service.
type Services struct {
	Material *MaterialService
	Ledger   *LedgerService
	Status   *StatusService
}

// NewServices wires the service set. rdb may be nil; the material cache is
// then skipped and every lookup hits the database.
func NewServices(repos *repository.Repositories, rdb *redis.Client, logger *zap.Logger) *Services {
	material := NewMaterialService(repos.Material, rdb, logger)
	ledger := NewLedgerService(repos.Lot, repos.Transaction, material, logger)
	status := NewStatusService(repos.Lot, logger)
	return &Services{
		Material: material,
		Ledger:   ledger,
		Status:   status,
	}
}

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ngocnhu100/keycloak-poc/internal/inventory/entity"
	"github.com/ngocnhu100/keycloak-poc/internal/inventory/repository"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// materialCacheTTL bounds staleness if catalog rows are ever backfilled
// out of band. Materials are immutable in normal operation.
const materialCacheTTL = 15 * time.Minute

// MaterialService is the read side of the material catalog. Lookups go
// through a redis read-through cache; materials are reference data and are
// never mutated by this service.
type MaterialService struct {
	repo   *repository.MaterialRepository
	rdb    *redis.Client
	logger *zap.Logger
}

func NewMaterialService(repo *repository.MaterialRepository, rdb *redis.Client, logger *zap.Logger) *MaterialService {
	return &MaterialService{repo: repo, rdb: rdb, logger: logger}
}

// Lookup resolves a material by id. Returns ErrMaterialNotFound when the
// catalog has no matching record.
func (s *MaterialService) Lookup(ctx context.Context, materialID string) (*entity.Material, error) {
	if materialID == "" {
		return nil, fmt.Errorf("%w: material_id is required", ErrValidation)
	}

	cacheKey := "material:" + materialID
	if s.rdb != nil {
		if raw, err := s.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
			var m entity.Material
			if err := json.Unmarshal(raw, &m); err == nil {
				return &m, nil
			}
		}
	}

	m, err := s.repo.FindByID(ctx, materialID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrMaterialNotFound, materialID)
		}
		return nil, fmt.Errorf("lookup material: %w", err)
	}

	if s.rdb != nil {
		if raw, err := json.Marshal(m); err == nil {
			if err := s.rdb.Set(ctx, cacheKey, raw, materialCacheTTL).Err(); err != nil {
				s.logger.Warn("Failed to cache material", zap.String("material_id", materialID), zap.Error(err))
			}
		}
	}
	return m, nil
}

// ListAll returns the full catalog ordered by material id.
func (s *MaterialService) ListAll(ctx context.Context) ([]entity.Material, error) {
	return s.repo.ListAll(ctx)
}

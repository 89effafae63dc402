package service

import (
	"context"
	"errors"
	"testing"

	"github.com/ngocnhu100/keycloak-poc/internal/inventory/entity"
	"github.com/ngocnhu100/keycloak-poc/internal/inventory/repository"
	"github.com/ngocnhu100/keycloak-poc/internal/inventory/testutil"
	"go.uber.org/zap"
)

func TestMaterialLookup(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewMaterialService(repository.NewMaterialRepository(db), nil, zap.NewNop())
	testutil.SeedMaterial(t, db, "MAT-001", "PN-1001", "Acetaminophen USP", entity.MaterialTypeAPI)

	m, err := svc.Lookup(context.Background(), "MAT-001")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if m.PartNumber != "PN-1001" || m.MaterialType != entity.MaterialTypeAPI {
		t.Errorf("Unexpected material: %+v", m)
	}

	_, err = svc.Lookup(context.Background(), "MAT-404")
	if !errors.Is(err, ErrMaterialNotFound) {
		t.Errorf("Expected MaterialNotFound, got %v", err)
	}

	_, err = svc.Lookup(context.Background(), "")
	if !errors.Is(err, ErrValidation) {
		t.Errorf("Expected validation error for empty id, got %v", err)
	}
}

func TestMaterialListAllOrdered(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewMaterialService(repository.NewMaterialRepository(db), nil, zap.NewNop())
	testutil.SeedMaterial(t, db, "MAT-002", "PN-1002", "Microcrystalline Cellulose", entity.MaterialTypeExcipient)
	testutil.SeedMaterial(t, db, "MAT-001", "PN-1001", "Acetaminophen USP", entity.MaterialTypeAPI)

	materials, err := svc.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(materials) != 2 {
		t.Fatalf("Expected 2 materials, got %d", len(materials))
	}
	if materials[0].MaterialID != "MAT-001" {
		t.Errorf("Expected MAT-001 first, got %s", materials[0].MaterialID)
	}
}

package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/ngocnhu100/keycloak-poc/internal/inventory/entity"
	"github.com/ngocnhu100/keycloak-poc/internal/inventory/repository"
	"github.com/ngocnhu100/keycloak-poc/internal/inventory/service"
	"github.com/ngocnhu100/keycloak-poc/internal/inventory/testutil"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func setupInventoryTest(t *testing.T) (*testutil.TestEnv, *service.Services) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	router := testutil.SetupRouter()

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, nil, zap.NewNop())
	handlers := NewHandlers(services, repos, zap.NewNop())
	handlers.RegisterRoutes(router, testutil.JWTSecret)

	testutil.SeedMaterial(t, db, "MAT-001", "PN-1001", "Acetaminophen USP", entity.MaterialTypeAPI)

	return &testutil.TestEnv{DB: db, Router: router, T: t}, services
}

func managerToken() string {
	return testutil.GenerateTestToken("user-alice", "alice", "alice@example.com",
		[]string{service.RoleInventoryManager})
}

func viewerToken() string {
	return testutil.GenerateTestToken("user-eve", "eve", "eve@example.com",
		[]string{service.RoleViewer})
}

func qcToken() string {
	return testutil.GenerateTestToken("user-dana", "dana", "dana@example.com",
		[]string{service.RoleQualityControl})
}

func receiveLotDirect(t *testing.T, services *service.Services, qty string) *entity.InventoryLot {
	t.Helper()
	lot, err := services.Ledger.Receive(context.Background(), service.ReceiveRequest{
		MaterialID:       "MAT-001",
		QuantityReceived: decimal.RequireFromString(qty),
		ExpiryDate:       "2026-01-01",
	}, service.Actor{ID: "user-alice", Username: "alice"})
	if err != nil {
		t.Fatalf("Receive failed: %v", err)
	}
	return lot
}

func TestCreateLotEndpoint(t *testing.T) {
	env, _ := setupInventoryTest(t)

	w := testutil.DoRequest(env.Router, "POST", "/api/inventory/lots", map[string]interface{}{
		"material_id":       "MAT-001",
		"quantity_received": "100.000",
		"expiry_date":       "2026-01-01",
		"supplier":          "Acme Pharma",
	}, managerToken())
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	if data["lot_status"] != entity.LotStatusQuarantine {
		t.Errorf("Expected Quarantine, got %v", data["lot_status"])
	}
	avail := decimal.RequireFromString(data["quantity_available"].(string))
	if !avail.Equal(decimal.RequireFromString("100.000")) {
		t.Errorf("Expected quantity_available 100.000, got %v", data["quantity_available"])
	}
	if data["created_by"] != "alice" {
		t.Errorf("Expected created_by alice, got %v", data["created_by"])
	}
}

func TestCreateLotRequiresRole(t *testing.T) {
	env, _ := setupInventoryTest(t)

	body := map[string]interface{}{
		"material_id":       "MAT-001",
		"quantity_received": "10.000",
		"expiry_date":       "2026-01-01",
	}

	w := testutil.DoRequest(env.Router, "POST", "/api/inventory/lots", body, viewerToken())
	if w.Code != http.StatusForbidden {
		t.Errorf("Expected 403 for viewer, got %d", w.Code)
	}

	w = testutil.DoRequest(env.Router, "POST", "/api/inventory/lots", body, "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 without token, got %d", w.Code)
	}
}

func TestCreateLotValidation(t *testing.T) {
	env, _ := setupInventoryTest(t)

	w := testutil.DoRequest(env.Router, "POST", "/api/inventory/lots", map[string]interface{}{
		"material_id":       "MAT-001",
		"quantity_received": "-1.000",
		"expiry_date":       "2026-01-01",
	}, managerToken())
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for negative quantity, got %d: %s", w.Code, w.Body.String())
	}

	w = testutil.DoRequest(env.Router, "POST", "/api/inventory/lots", map[string]interface{}{
		"material_id":       "MAT-404",
		"quantity_received": "10.000",
		"expiry_date":       "2026-01-01",
	}, managerToken())
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown material, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	if resp["error"] != "MaterialNotFound" {
		t.Errorf("Expected MaterialNotFound kind, got %v", resp["error"])
	}
}

func TestUpdateLotStatusEndpoint(t *testing.T) {
	env, services := setupInventoryTest(t)
	lot := receiveLotDirect(t, services, "100.000")

	w := testutil.DoRequest(env.Router, "PATCH", "/api/inventory/lots/"+lot.LotNumber+"/status",
		map[string]interface{}{"status": "Approved", "notes": "QC release"}, qcToken())
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	if data["lot_status"] != entity.LotStatusApproved {
		t.Errorf("Expected Approved, got %v", data["lot_status"])
	}

	// Unknown status value.
	w = testutil.DoRequest(env.Router, "PATCH", "/api/inventory/lots/"+lot.LotNumber+"/status",
		map[string]interface{}{"status": "Bogus"}, qcToken())
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for bogus status, got %d", w.Code)
	}
	resp = testutil.ParseResponse(w)
	if resp["error"] != "InvalidStatus" {
		t.Errorf("Expected InvalidStatus kind, got %v", resp["error"])
	}

	// Backwards transition is rejected.
	w = testutil.DoRequest(env.Router, "PATCH", "/api/inventory/lots/"+lot.LotNumber+"/status",
		map[string]interface{}{"status": "Quarantine"}, qcToken())
	if w.Code != http.StatusConflict {
		t.Errorf("Expected 409 for Approved->Quarantine, got %d", w.Code)
	}

	// Viewer is blocked at the route.
	w = testutil.DoRequest(env.Router, "PATCH", "/api/inventory/lots/"+lot.LotNumber+"/status",
		map[string]interface{}{"status": "In Use"}, viewerToken())
	if w.Code != http.StatusForbidden {
		t.Errorf("Expected 403 for viewer, got %d", w.Code)
	}
}

func TestRecordTransactionEndpoint(t *testing.T) {
	env, services := setupInventoryTest(t)
	lot := receiveLotDirect(t, services, "100.000")

	productionToken := testutil.GenerateTestToken("user-bob", "bob", "bob@example.com",
		[]string{service.RoleProduction})

	w := testutil.DoRequest(env.Router, "POST", "/api/inventory/lots/"+lot.LotNumber+"/transactions",
		map[string]interface{}{
			"transaction_type": "Dispense",
			"quantity":         "30.000",
			"reason":           "Batch 42 compounding",
		}, productionToken)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w = testutil.DoRequest(env.Router, "POST", "/api/inventory/lots/"+lot.LotNumber+"/transactions",
		map[string]interface{}{
			"transaction_type": "Dispense",
			"quantity":         "150.000",
		}, productionToken)
	if w.Code != http.StatusConflict {
		t.Fatalf("Expected 409, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	if resp["error"] != "InsufficientQuantity" {
		t.Errorf("Expected InsufficientQuantity kind, got %v", resp["error"])
	}

	w = testutil.DoRequest(env.Router, "GET", "/api/inventory/lots/"+lot.LotNumber+"/transactions",
		nil, viewerToken())
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	resp = testutil.ParseResponse(w)
	if resp["count"].(float64) != 2 {
		t.Errorf("Expected 2 ledger entries (Receipt + Dispense), got %v", resp["count"])
	}
}

func TestListAndGetLots(t *testing.T) {
	env, services := setupInventoryTest(t)
	lot := receiveLotDirect(t, services, "10.000")
	receiveLotDirect(t, services, "20.000")

	w := testutil.DoRequest(env.Router, "GET", "/api/inventory/lots", nil, viewerToken())
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	resp := testutil.ParseResponse(w)
	if resp["count"].(float64) != 2 {
		t.Errorf("Expected 2 lots, got %v", resp["count"])
	}

	w = testutil.DoRequest(env.Router, "GET", "/api/inventory/lots/"+lot.LotNumber, nil, viewerToken())
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	resp = testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	if data["lot_number"] != lot.LotNumber {
		t.Errorf("Expected lot %s, got %v", lot.LotNumber, data["lot_number"])
	}
	material := data["material"].(map[string]interface{})
	if material["material_name"] != "Acetaminophen USP" {
		t.Errorf("Expected material joined, got %v", material)
	}

	w = testutil.DoRequest(env.Router, "GET", "/api/inventory/lots/LOT-19700101-0000", nil, viewerToken())
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown lot, got %d", w.Code)
	}
}

func TestListMaterialsEndpoint(t *testing.T) {
	env, _ := setupInventoryTest(t)

	w := testutil.DoRequest(env.Router, "GET", "/api/inventory/materials", nil, viewerToken())
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	resp := testutil.ParseResponse(w)
	if resp["count"].(float64) != 1 {
		t.Errorf("Expected 1 material, got %v", resp["count"])
	}

	w = testutil.DoRequest(env.Router, "GET", "/api/inventory/materials", nil, "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 without token, got %d", w.Code)
	}
}

func TestExportLotsEndpoint(t *testing.T) {
	env, services := setupInventoryTest(t)
	receiveLotDirect(t, services, "10.000")

	w := testutil.DoRequest(env.Router, "GET", "/api/inventory/lots/export", nil, viewerToken())
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Errorf("Unexpected content type: %s", ct)
	}
	if w.Body.Len() == 0 {
		t.Error("Expected non-empty xlsx body")
	}
}

func TestSyncUserSnapshot(t *testing.T) {
	env, _ := setupInventoryTest(t)

	w := testutil.DoRequest(env.Router, "GET", "/api/inventory/materials", nil, viewerToken())
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var user entity.User
	if err := env.DB.First(&user, "user_id = ?", "user-eve").Error; err != nil {
		t.Fatalf("Expected user snapshot synced: %v", err)
	}
	if user.Username != "eve" || user.Email != "eve@example.com" {
		t.Errorf("Unexpected snapshot: %+v", user)
	}
}

package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/blackgoldunited/bguerp/internal/config"
	"github.com/blackgoldunited/bguerp/internal/database"
	"github.com/blackgoldunited/bguerp/internal/models"
	"github.com/blackgoldunited/bguerp/internal/utils"
)

const testSecret = "handlers-test-secret"

// newTestRouter builds a router over a private in-memory database
func newTestRouter(t *testing.T) (*Router, *database.DB) {
	t.Helper()

	gormDB, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		t.Fatalf("Failed to access sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	db := &database.DB{DB: gormDB}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Client{},
		&models.Supplier{},
		&models.Product{},
		&models.Warehouse{},
		&models.StockMovement{},
		&models.Invoice{},
		&models.InvoiceItem{},
		&models.PurchaseOrder{},
		&models.PurchaseOrderItem{},
		&models.Document{},
		&models.DocumentApproval{},
		&models.DocumentApprovalLevel{},
		&models.ApprovalPolicyRule{},
		&models.ActivityLog{},
	); err != nil {
		t.Fatalf("Migration failed: %v", err)
	}

	cfg := &config.Config{Port: "8080", JWTSecret: testSecret}
	return NewRouter(db, cfg), db
}

// createTestUser inserts a user and returns a bearer token for it
func createTestUser(t *testing.T, db *database.DB, email string, role models.Role) (*models.User, string) {
	t.Helper()

	hash, err := utils.HashPassword("test1234")
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	user := &models.User{Email: email, Password: hash, Role: role, IsActive: true}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	token, _, err := utils.GenerateTokens(user, testSecret)
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}
	return user, token
}

func doJSON(t *testing.T, router *Router, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode response %q: %v", rec.Body.String(), err)
	}
	return body
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, "GET", "/health", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["status"] != "ok" {
		t.Errorf("Expected status ok, got %v", body["status"])
	}
}

func TestLoginFlow(t *testing.T) {
	router, db := newTestRouter(t)
	createTestUser(t, db, "md@example.com", models.RoleManagement)

	// Wrong password
	rec := doJSON(t, router, "POST", "/auth/login", "", map[string]string{
		"email": "md@example.com", "password": "nope",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 for wrong password, got %d", rec.Code)
	}

	// Correct password
	rec = doJSON(t, router, "POST", "/auth/login", "", map[string]string{
		"email": "md@example.com", "password": "test1234",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	tokens, ok := body["tokens"].(map[string]interface{})
	if !ok || tokens["accessToken"] == "" {
		t.Fatalf("Expected tokens in response, got %v", body)
	}

	// Token works against a protected endpoint
	rec = doJSON(t, router, "GET", "/auth/me", tokens["accessToken"].(string), nil)
	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200 from /auth/me, got %d", rec.Code)
	}
}

func TestApprovalEndpointLifecycle(t *testing.T) {
	router, db := newTestRouter(t)
	_, hrToken := createTestUser(t, db, "hr@example.com", models.RoleAdminHR)
	mdUser, mdToken := createTestUser(t, db, "md@example.com", models.RoleManagement)

	document := &models.Document{
		DocumentName: "Frame Agreement",
		DocumentType: models.DocumentTypeContract,
		Status:       models.DocumentStatusDraft,
		CreatedByID:  mdUser.ID,
	}
	if err := db.Create(document).Error; err != nil {
		t.Fatalf("Failed to create document: %v", err)
	}

	// Level 1 sign-off by ADMIN_HR
	rec := doJSON(t, router, "POST", "/api/documents/approvals", hrToken, map[string]interface{}{
		"documentId": document.ID,
		"action":     "APPROVE",
		"level":      1,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	data := body["data"].(map[string]interface{})
	if data["status"] != "PENDING" || data["document_status"] != "REVIEW" {
		t.Errorf("Expected PENDING/REVIEW after level 1, got %v", data)
	}
	if body["message"] != "Level approved, pending further approval" {
		t.Errorf("Unexpected message: %v", body["message"])
	}

	// Level 2 sign-off by MANAGEMENT completes the chain
	rec = doJSON(t, router, "POST", "/api/documents/approvals", mdToken, map[string]interface{}{
		"documentId": document.ID,
		"action":     "APPROVE",
		"level":      2,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body = decodeBody(t, rec)
	data = body["data"].(map[string]interface{})
	if data["status"] != "APPROVED" || data["document_status"] != "APPROVED" {
		t.Errorf("Expected APPROVED/APPROVED after final level, got %v", data)
	}
	if body["message"] != "Document fully approved" {
		t.Errorf("Unexpected message: %v", body["message"])
	}

	// Listing shows the single header and summary counts
	rec = doJSON(t, router, "GET", "/api/documents/approvals", mdToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	body = decodeBody(t, rec)
	approvals := body["data"].([]interface{})
	if len(approvals) != 1 {
		t.Fatalf("Expected 1 approval, got %d", len(approvals))
	}
	summary := body["summary"].(map[string]interface{})
	if summary["APPROVED"] != float64(1) {
		t.Errorf("Expected summary APPROVED=1, got %v", summary)
	}

	// assignedToMe narrows to levels the caller decided
	rec = doJSON(t, router, "GET", "/api/documents/approvals?assignedToMe=true", hrToken, nil)
	body = decodeBody(t, rec)
	if len(body["data"].([]interface{})) != 1 {
		t.Errorf("Expected hr's decision in assignedToMe listing, got %v", body["data"])
	}
}

func TestApprovalValidation(t *testing.T) {
	router, db := newTestRouter(t)
	_, token := createTestUser(t, db, "md@example.com", models.RoleManagement)

	document := &models.Document{
		DocumentName: "Contract",
		DocumentType: models.DocumentTypeContract,
		CreatedByID:  "someone",
	}
	if err := db.Create(document).Error; err != nil {
		t.Fatalf("Failed to create document: %v", err)
	}

	cases := []struct {
		name    string
		payload map[string]interface{}
		want    int
	}{
		{"missing document id", map[string]interface{}{"action": "APPROVE"}, http.StatusBadRequest},
		{"level out of range", map[string]interface{}{"documentId": document.ID, "action": "APPROVE", "level": 9}, http.StatusBadRequest},
		{"invalid action", map[string]interface{}{"documentId": document.ID, "action": "MAYBE", "level": 1}, http.StatusBadRequest},
		{"unknown document", map[string]interface{}{"documentId": "missing", "action": "APPROVE", "level": 1}, http.StatusNotFound},
		{"level beyond chain", map[string]interface{}{"documentId": document.ID, "action": "APPROVE", "level": 5}, http.StatusBadRequest},
	}

	for _, tc := range cases {
		rec := doJSON(t, router, "POST", "/api/documents/approvals", token, tc.payload)
		if rec.Code != tc.want {
			t.Errorf("%s: expected %d, got %d: %s", tc.name, tc.want, rec.Code, rec.Body.String())
		}
	}
}

func TestApprovalRequiresFullAccess(t *testing.T) {
	router, db := newTestRouter(t)
	_, qhseToken := createTestUser(t, db, "qhse@example.com", models.RoleIMSQHSE)

	// IMS_QHSE has READ on documents: listing works, deciding does not
	rec := doJSON(t, router, "GET", "/api/documents/approvals", qhseToken, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200 for read access, got %d", rec.Code)
	}

	rec = doJSON(t, router, "POST", "/api/documents/approvals", qhseToken, map[string]interface{}{
		"documentId": "anything", "action": "APPROVE", "level": 1,
	})
	if rec.Code != http.StatusForbidden {
		t.Errorf("Expected 403 for mutation with read-only access, got %d", rec.Code)
	}

	// No token at all
	rec = doJSON(t, router, "GET", "/api/documents/approvals", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 without token, got %d", rec.Code)
	}
}

func TestModuleAccessOnSales(t *testing.T) {
	router, db := newTestRouter(t)
	_, qhseToken := createTestUser(t, db, "qhse@example.com", models.RoleIMSQHSE)
	_, financeToken := createTestUser(t, db, "fin@example.com", models.RoleFinanceTeam)

	// IMS_QHSE has no sales access at all
	rec := doJSON(t, router, "GET", "/api/sales/invoices", qhseToken, nil)
	if rec.Code != http.StatusForbidden {
		t.Errorf("Expected 403 for IMS_QHSE on sales, got %d", rec.Code)
	}

	// FINANCE_TEAM can read but not create
	rec = doJSON(t, router, "GET", "/api/sales/invoices", financeToken, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200 for FINANCE_TEAM read, got %d", rec.Code)
	}
	rec = doJSON(t, router, "POST", "/api/sales/invoices", financeToken, map[string]interface{}{})
	if rec.Code != http.StatusForbidden {
		t.Errorf("Expected 403 for FINANCE_TEAM create, got %d", rec.Code)
	}
}

func TestStockLevelsRollup(t *testing.T) {
	router, db := newTestRouter(t)
	_, token := createTestUser(t, db, "md@example.com", models.RoleManagement)

	product := &models.Product{Name: "Casing Pipe"}
	warehouse := &models.Warehouse{Code: "WH-1", Name: "Main Yard"}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("Failed to create product: %v", err)
	}
	if err := db.Create(warehouse).Error; err != nil {
		t.Fatalf("Failed to create warehouse: %v", err)
	}

	movements := []models.StockMovement{
		{ProductID: product.ID, WarehouseID: warehouse.ID, MovementType: models.MovementIn, Quantity: 100},
		{ProductID: product.ID, WarehouseID: warehouse.ID, MovementType: models.MovementOut, Quantity: 30},
		{ProductID: product.ID, WarehouseID: warehouse.ID, MovementType: models.MovementAdjustment, Quantity: 5},
	}
	if err := db.Create(&movements).Error; err != nil {
		t.Fatalf("Failed to create movements: %v", err)
	}

	rec := doJSON(t, router, "GET", "/api/inventory/stock", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	levels := body["data"].([]interface{})
	if len(levels) != 1 {
		t.Fatalf("Expected 1 rollup row, got %d", len(levels))
	}
	level := levels[0].(map[string]interface{})
	// 100 in - 30 out + 5 adjustment
	if level["quantity"] != float64(75) {
		t.Errorf("Expected rollup quantity 75, got %v", level["quantity"])
	}
}

func TestUpdateDocumentIgnoresProtectedFields(t *testing.T) {
	router, db := newTestRouter(t)
	owner, ownerToken := createTestUser(t, db, "bd@example.com", models.RoleProcurementBD)

	document := &models.Document{
		DocumentName: "Service Proposal",
		DocumentType: models.DocumentTypeProposal,
		Content:      "original",
		Status:       models.DocumentStatusDraft,
		AccessLevel:  models.AccessPrivate,
		CreatedByID:  owner.ID,
	}
	if err := db.Create(document).Error; err != nil {
		t.Fatalf("Failed to create document: %v", err)
	}
	originalNumber := document.DocumentNumber

	rec := doJSON(t, router, "PUT", "/api/documents/"+document.ID, ownerToken, map[string]interface{}{
		"status":          "APPROVED",
		"created_by_id":   "someone-else",
		"document_number": "DOC-FORGED",
		"id":              "other-id",
		"content":         "updated",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var stored models.Document
	if err := db.First(&stored, "id = ?", document.ID).Error; err != nil {
		t.Fatalf("Failed to reload document: %v", err)
	}
	if stored.Status != models.DocumentStatusDraft {
		t.Errorf("Status must only change through the approval workflow, got %s", stored.Status)
	}
	if stored.CreatedByID != owner.ID {
		t.Errorf("Ownership must not be editable, got %s", stored.CreatedByID)
	}
	if stored.DocumentNumber != originalNumber {
		t.Errorf("Document number must not be editable, got %s", stored.DocumentNumber)
	}
	if stored.Content != "updated" {
		t.Errorf("Editable field should have been applied, got %q", stored.Content)
	}
}

func TestUpdateClientIgnoresProtectedFields(t *testing.T) {
	router, db := newTestRouter(t)
	_, token := createTestUser(t, db, "md@example.com", models.RoleManagement)

	client := &models.Client{CompanyName: "Atlas Drilling Ltd"}
	if err := db.Create(client).Error; err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}
	originalCode := client.ClientCode

	rec := doJSON(t, router, "PUT", "/api/clients/"+client.ID, token, map[string]interface{}{
		"id":           "other-id",
		"client_code":  "CLT-FORGED",
		"company_name": "Atlas Drilling FZE",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var stored models.Client
	if err := db.First(&stored, "id = ?", client.ID).Error; err != nil {
		t.Fatalf("Failed to reload client: %v", err)
	}
	if stored.ClientCode != originalCode {
		t.Errorf("Client code must not be editable, got %s", stored.ClientCode)
	}
	if stored.CompanyName != "Atlas Drilling FZE" {
		t.Errorf("Editable field should have been applied, got %q", stored.CompanyName)
	}
}

func TestCreateMovementRecordsSignedQuantity(t *testing.T) {
	router, db := newTestRouter(t)
	_, token := createTestUser(t, db, "md@example.com", models.RoleManagement)

	product := &models.Product{Name: "Wellhead Valve"}
	warehouse := &models.Warehouse{Code: "WH-1", Name: "Main Yard"}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("Failed to create product: %v", err)
	}
	if err := db.Create(warehouse).Error; err != nil {
		t.Fatalf("Failed to create warehouse: %v", err)
	}

	rec := doJSON(t, router, "POST", "/api/inventory/movements", token, map[string]interface{}{
		"product_id":    product.ID,
		"warehouse_id":  warehouse.ID,
		"movement_type": "OUT",
		"quantity":      30,
		"reference":     "INV-20250829-0001",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var entry models.ActivityLog
	if err := db.First(&entry, "action = ?", "CREATE_STOCK_MOVEMENT").Error; err != nil {
		t.Fatalf("Expected an audit row for the movement: %v", err)
	}
	var details map[string]interface{}
	if err := json.Unmarshal(entry.Details, &details); err != nil {
		t.Fatalf("Details should be valid JSON: %v", err)
	}
	// OUT movements are audited with the negated quantity
	if details["signed_quantity"] != float64(-30) {
		t.Errorf("Expected signed quantity -30, got %v", details["signed_quantity"])
	}
}

func TestCreateInvoiceComputesTotalsAndNumber(t *testing.T) {
	router, db := newTestRouter(t)
	_, token := createTestUser(t, db, "md@example.com", models.RoleManagement)

	client := &models.Client{CompanyName: "Atlas Drilling Ltd"}
	if err := db.Create(client).Error; err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}

	rec := doJSON(t, router, "POST", "/api/sales/invoices", token, map[string]interface{}{
		"client_id": client.ID,
		"due_date":  time.Now().AddDate(0, 0, 30).Format(time.RFC3339),
		"items": []map[string]interface{}{
			{"description": "Casing pipe", "quantity": 10, "unit_price": 85, "tax_rate": 5},
		},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	data := body["data"].(map[string]interface{})

	if data["subtotal"] != float64(850) {
		t.Errorf("Expected subtotal 850, got %v", data["subtotal"])
	}
	if data["total_amount"] != float64(892.5) {
		t.Errorf("Expected total 892.5, got %v", data["total_amount"])
	}
	number, _ := data["invoice_number"].(string)
	if len(number) == 0 || number[:4] != "INV-" {
		t.Errorf("Expected generated INV- number, got %q", number)
	}
}

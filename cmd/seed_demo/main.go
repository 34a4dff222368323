package main

import (
	"log"

	"github.com/blackgoldunited/bguerp/internal/config"
	"github.com/blackgoldunited/bguerp/internal/database"
	"github.com/blackgoldunited/bguerp/internal/models"
	"github.com/blackgoldunited/bguerp/internal/utils"
)

// Seeds demo data: one user per role, a few clients/suppliers/products,
// a warehouse and a contract document ready for the approval workflow.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.AutoMigrate(
		&models.User{},
		&models.Client{},
		&models.Supplier{},
		&models.Product{},
		&models.Warehouse{},
		&models.Document{},
		&models.ApprovalPolicyRule{},
	); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	password, err := utils.HashPassword("demo1234")
	if err != nil {
		log.Fatalf("Failed to hash demo password: %v", err)
	}

	users := []models.User{
		{Email: "md@bgu.example", FirstName: "Mona", LastName: "Director", Role: models.RoleManagement, Password: password},
		{Email: "finance@bgu.example", FirstName: "Farid", LastName: "Nasser", Role: models.RoleFinanceTeam, Password: password},
		{Email: "procurement@bgu.example", FirstName: "Petra", LastName: "Osei", Role: models.RoleProcurementBD, Password: password},
		{Email: "hr@bgu.example", FirstName: "Hana", LastName: "Rashid", Role: models.RoleAdminHR, Password: password},
		{Email: "qhse@bgu.example", FirstName: "Quentin", LastName: "Silva", Role: models.RoleIMSQHSE, Password: password},
	}
	for i := range users {
		if err := db.Where("email = ?", users[i].Email).FirstOrCreate(&users[i]).Error; err != nil {
			log.Printf("Seed user %s: %v", users[i].Email, err)
		}
	}

	clients := []models.Client{
		{CompanyName: "Atlas Drilling Ltd", ContactPerson: "J. Varga", Email: "office@atlasdrilling.example", Country: "UAE", PaymentTerms: 30},
		{CompanyName: "Meridian Energy Co", ContactPerson: "S. Okafor", Email: "accounts@meridian.example", Country: "Nigeria", PaymentTerms: 45},
	}
	for i := range clients {
		if err := db.Where("company_name = ?", clients[i].CompanyName).FirstOrCreate(&clients[i]).Error; err != nil {
			log.Printf("Seed client %s: %v", clients[i].CompanyName, err)
		}
	}

	suppliers := []models.Supplier{
		{CompanyName: "Gulf Pipe Supply", ContactPerson: "A. Haddad", Email: "sales@gulfpipe.example", Country: "UAE", PaymentTerms: 30},
	}
	for i := range suppliers {
		if err := db.Where("company_name = ?", suppliers[i].CompanyName).FirstOrCreate(&suppliers[i]).Error; err != nil {
			log.Printf("Seed supplier %s: %v", suppliers[i].CompanyName, err)
		}
	}

	products := []models.Product{
		{Name: "Casing Pipe 9 5/8\"", Category: "PIPES", Unit: "m", UnitPrice: 85, CostPrice: 62, ReorderLevel: 500},
		{Name: "Wellhead Valve 3\"", Category: "VALVES", Unit: "pcs", UnitPrice: 1250, CostPrice: 900, ReorderLevel: 10},
	}
	for i := range products {
		if err := db.Where("name = ?", products[i].Name).FirstOrCreate(&products[i]).Error; err != nil {
			log.Printf("Seed product %s: %v", products[i].Name, err)
		}
	}

	warehouse := models.Warehouse{Code: "WH-MAIN", Name: "Main Yard", Location: "Jebel Ali"}
	if err := db.Where("code = ?", warehouse.Code).FirstOrCreate(&warehouse).Error; err != nil {
		log.Printf("Seed warehouse: %v", err)
	}

	document := models.Document{
		DocumentName: "Drilling Services Frame Agreement",
		DocumentType: models.DocumentTypeContract,
		Category:     "COMMERCIAL",
		Status:       models.DocumentStatusDraft,
		AccessLevel:  models.AccessDepartment,
		CreatedByID:  users[2].ID, // procurement
	}
	if err := db.Where("document_name = ?", document.DocumentName).FirstOrCreate(&document).Error; err != nil {
		log.Printf("Seed document: %v", err)
	}

	// Mirror the built-in sign-off chains into the policy table so they
	// can be edited without a deploy.
	policyRules := []models.ApprovalPolicyRule{
		{DocumentType: models.DocumentTypeContract, Level: 1, ApproverRole: models.RoleAdminHR},
		{DocumentType: models.DocumentTypeContract, Level: 2, ApproverRole: models.RoleManagement},
		{DocumentType: models.DocumentTypeProposal, Level: 1, ApproverRole: models.RoleProcurementBD},
		{DocumentType: models.DocumentTypeProposal, Level: 2, ApproverRole: models.RoleManagement},
		{DocumentType: models.DocumentTypeCertificate, Level: 1, ApproverRole: models.RoleIMSQHSE},
		{DocumentType: models.DocumentTypeCertificate, Level: 2, ApproverRole: models.RoleManagement},
		{DocumentType: models.DocumentTypeReport, Level: 1, ApproverRole: models.RoleManagement},
	}
	for i := range policyRules {
		rule := &policyRules[i]
		if err := db.Where("document_type = ? AND level = ?", rule.DocumentType, rule.Level).
			FirstOrCreate(rule).Error; err != nil {
			log.Printf("Seed policy rule %s/%d: %v", rule.DocumentType, rule.Level, err)
		}
	}

	log.Println("Demo data seeded successfully")
}

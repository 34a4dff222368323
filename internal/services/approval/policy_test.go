package approval

import (
	"testing"

	"github.com/blackgoldunited/bguerp/internal/models"
)

func TestDefaultPolicyChains(t *testing.T) {
	policy := StaticPolicy(nil)

	cases := []struct {
		docType models.DocumentType
		roles   []models.Role
	}{
		{models.DocumentTypeContract, []models.Role{models.RoleAdminHR, models.RoleManagement}},
		{models.DocumentTypeProposal, []models.Role{models.RoleProcurementBD, models.RoleManagement}},
		{models.DocumentTypeCertificate, []models.Role{models.RoleIMSQHSE, models.RoleManagement}},
		{models.DocumentTypeReport, []models.Role{models.RoleManagement}},
	}

	for _, tc := range cases {
		chain := policy.LevelsFor(tc.docType)
		if len(chain) != len(tc.roles) {
			t.Fatalf("%s: expected %d levels, got %d", tc.docType, len(tc.roles), len(chain))
		}
		for i, rule := range chain {
			if rule.Level != i+1 {
				t.Errorf("%s: level %d out of order, got %d", tc.docType, i+1, rule.Level)
			}
			if rule.Role != tc.roles[i] {
				t.Errorf("%s level %d: expected role %s, got %s", tc.docType, i+1, tc.roles[i], rule.Role)
			}
		}
	}
}

func TestUnknownTypeFallsBackToManagement(t *testing.T) {
	policy := StaticPolicy(nil)

	for _, docType := range []models.DocumentType{models.DocumentTypeOther, models.DocumentTypeMemo, "SOMETHING_NEW"} {
		chain := policy.LevelsFor(docType)
		if len(chain) != 1 {
			t.Fatalf("%s: expected single fallback level, got %d", docType, len(chain))
		}
		if chain[0].Level != 1 || chain[0].Role != models.RoleManagement {
			t.Errorf("%s: expected level 1 MANAGEMENT gate, got level %d %s", docType, chain[0].Level, chain[0].Role)
		}
	}
}

func TestLoadPolicyFromTable(t *testing.T) {
	db := testDB(t)

	// Rows deliberately inserted out of level order
	rows := []models.ApprovalPolicyRule{
		{DocumentType: models.DocumentTypeContract, Level: 2, ApproverRole: models.RoleFinanceTeam},
		{DocumentType: models.DocumentTypeContract, Level: 1, ApproverRole: models.RoleProcurementBD},
	}
	if err := db.Create(&rows).Error; err != nil {
		t.Fatalf("Failed to seed policy rules: %v", err)
	}

	policy := LoadPolicy(db)

	chain := policy.LevelsFor(models.DocumentTypeContract)
	if len(chain) != 2 {
		t.Fatalf("Expected 2 configured levels, got %d", len(chain))
	}
	if chain[0].Level != 1 || chain[0].Role != models.RoleProcurementBD {
		t.Errorf("Expected level 1 PROCUREMENT_BD, got level %d %s", chain[0].Level, chain[0].Role)
	}
	if chain[1].Level != 2 || chain[1].Role != models.RoleFinanceTeam {
		t.Errorf("Expected level 2 FINANCE_TEAM, got level %d %s", chain[1].Level, chain[1].Role)
	}

	// Types absent from the table still get the MANAGEMENT gate
	fallback := policy.LevelsFor(models.DocumentTypeReport)
	if len(fallback) != 1 || fallback[0].Role != models.RoleManagement {
		t.Errorf("Expected MANAGEMENT fallback for unconfigured type, got %v", fallback)
	}
}

func TestLoadPolicyEmptyTableUsesDefaults(t *testing.T) {
	db := testDB(t)

	policy := LoadPolicy(db)

	chain := policy.LevelsFor(models.DocumentTypeCertificate)
	if len(chain) != 2 {
		t.Fatalf("Expected built-in 2-level chain, got %d levels", len(chain))
	}
	if chain[0].Role != models.RoleIMSQHSE {
		t.Errorf("Expected IMS_QHSE at level 1, got %s", chain[0].Role)
	}
}

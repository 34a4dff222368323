package approval

import (
	"log"
	"sort"

	"gorm.io/gorm"

	"github.com/blackgoldunited/bguerp/internal/models"
)

// LevelRule is one step of a sign-off chain: who approves at which level
type LevelRule struct {
	Level int
	Role  models.Role
}

// defaultRules is the built-in sign-off configuration, used when the
// approval_policies table carries no rows for a document type.
var defaultRules = map[models.DocumentType][]LevelRule{
	models.DocumentTypeContract: {
		{Level: 1, Role: models.RoleAdminHR},
		{Level: 2, Role: models.RoleManagement},
	},
	models.DocumentTypeProposal: {
		{Level: 1, Role: models.RoleProcurementBD},
		{Level: 2, Role: models.RoleManagement},
	},
	models.DocumentTypeCertificate: {
		{Level: 1, Role: models.RoleIMSQHSE},
		{Level: 2, Role: models.RoleManagement},
	},
	models.DocumentTypeReport: {
		{Level: 1, Role: models.RoleManagement},
	},
}

// Policy maps document types to ordered sign-off chains. It is loaded from
// the approval_policies table at construction so chains can be changed
// without a deploy; levels already bootstrapped on existing approvals are
// deliberately not rewritten when rules change.
type Policy struct {
	rules map[models.DocumentType][]LevelRule
}

// LoadPolicy reads configured rules from the database, falling back to the
// built-in defaults when the table is empty.
func LoadPolicy(db *gorm.DB) *Policy {
	var rows []models.ApprovalPolicyRule
	if err := db.Order("document_type, level").Find(&rows).Error; err != nil {
		log.Printf("approval: policy table unavailable, using defaults: %v", err)
		return &Policy{rules: defaultRules}
	}
	if len(rows) == 0 {
		return &Policy{rules: defaultRules}
	}

	rules := make(map[models.DocumentType][]LevelRule)
	for _, row := range rows {
		rules[row.DocumentType] = append(rules[row.DocumentType], LevelRule{
			Level: row.Level,
			Role:  row.ApproverRole,
		})
	}
	for docType := range rules {
		chain := rules[docType]
		sort.Slice(chain, func(i, j int) bool { return chain[i].Level < chain[j].Level })
		rules[docType] = chain
	}
	return &Policy{rules: rules}
}

// StaticPolicy builds a policy from an explicit rule set (used in tests
// and by the seeder).
func StaticPolicy(rules map[models.DocumentType][]LevelRule) *Policy {
	if rules == nil {
		rules = defaultRules
	}
	return &Policy{rules: rules}
}

// LevelsFor returns the ordered sign-off chain for a document type.
// Unknown types get a single MANAGEMENT gate rather than an error.
func (p *Policy) LevelsFor(docType models.DocumentType) []LevelRule {
	if chain, ok := p.rules[docType]; ok && len(chain) > 0 {
		return chain
	}
	return []LevelRule{{Level: 1, Role: models.RoleManagement}}
}

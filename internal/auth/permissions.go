package auth

import "github.com/blackgoldunited/bguerp/internal/models"

// Access defines how much of a module a role can use
type Access string

const (
	AccessNone Access = "NONE"
	AccessRead Access = "READ"
	AccessFull Access = "FULL"
)

// Module names used by the permission matrix and the route guards
const (
	ModuleSales     = "sales"
	ModuleClients   = "clients"
	ModuleInventory = "inventory"
	ModulePurchase  = "purchase"
	ModuleFinance   = "finance"
	ModuleDocuments = "documents"
	ModuleReports   = "reports"
	ModuleSettings  = "settings"
)

// accessMatrix mirrors the company access-control matrix:
// five roles crossed with the backend modules. Unknown combinations
// deny by default.
var accessMatrix = map[models.Role]map[string]Access{
	models.RoleManagement: {
		ModuleSales:     AccessFull,
		ModuleClients:   AccessFull,
		ModuleInventory: AccessFull,
		ModulePurchase:  AccessFull,
		ModuleFinance:   AccessFull,
		ModuleDocuments: AccessFull,
		ModuleReports:   AccessFull,
		ModuleSettings:  AccessFull,
	},
	models.RoleFinanceTeam: {
		ModuleSales:     AccessRead,
		ModuleClients:   AccessRead,
		ModuleInventory: AccessRead,
		ModulePurchase:  AccessRead,
		ModuleFinance:   AccessFull,
		ModuleDocuments: AccessRead,
		ModuleReports:   AccessRead,
		ModuleSettings:  AccessRead,
	},
	models.RoleProcurementBD: {
		ModuleSales:     AccessFull,
		ModuleClients:   AccessFull,
		ModuleInventory: AccessFull,
		ModulePurchase:  AccessFull,
		ModuleFinance:   AccessRead,
		ModuleDocuments: AccessFull,
		ModuleReports:   AccessRead,
		ModuleSettings:  AccessRead,
	},
	models.RoleAdminHR: {
		ModuleSales:     AccessRead,
		ModuleClients:   AccessRead,
		ModuleInventory: AccessRead,
		ModulePurchase:  AccessRead,
		ModuleFinance:   AccessNone,
		ModuleDocuments: AccessFull,
		ModuleReports:   AccessRead,
		ModuleSettings:  AccessFull,
	},
	models.RoleIMSQHSE: {
		ModuleSales:     AccessNone,
		ModuleClients:   AccessNone,
		ModuleInventory: AccessRead,
		ModulePurchase:  AccessRead,
		ModuleFinance:   AccessNone,
		ModuleDocuments: AccessRead,
		ModuleReports:   AccessRead,
		ModuleSettings:  AccessRead,
	},
}

// ModuleAccess returns the access level a role has for a module
func ModuleAccess(role models.Role, module string) Access {
	perms, ok := accessMatrix[role]
	if !ok {
		return AccessNone
	}
	access, ok := perms[module]
	if !ok {
		return AccessNone
	}
	return access
}

// CanAccess reports whether a role may perform the given HTTP method
// on a module: GET needs READ, anything mutating needs FULL.
func CanAccess(role models.Role, module string, method string) bool {
	access := ModuleAccess(role, module)
	switch method {
	case "GET", "HEAD":
		return access == AccessRead || access == AccessFull
	default:
		return access == AccessFull
	}
}

package appointment

import (
	"github.com/BruksfildServices01/delivery-scheduler/internal/httperr"
	"github.com/BruksfildServices01/delivery-scheduler/internal/models"
)

type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleOversight  Role = "oversight"
	RoleOrgAdmin   Role = "org_admin"
	RoleOrgStaff   Role = "org_staff"
	RoleSupplier   Role = "supplier"
)

type Actor struct {
	UserID         uint
	OrganizationID uint
	Role           Role
}

// organizationOf usa a organização da oferta; cai para o campo
// denormalizado quando a oferta não foi carregada.
func organizationOf(ap *models.Appointment) uint {
	if ap.ServiceOffering.ID != 0 {
		return ap.ServiceOffering.OrganizationID
	}
	return ap.OrganizationID
}

// IsAuthorized is the ownership / organization check every operation runs
// first.
func IsAuthorized(actor Actor, ap *models.Appointment) bool {
	switch actor.Role {
	case RoleSuperAdmin, RoleOversight:
		return true
	case RoleSupplier:
		return ap.UserID == actor.UserID
	case RoleOrgAdmin, RoleOrgStaff:
		return actor.OrganizationID != 0 && actor.OrganizationID == organizationOf(ap)
	}
	return false
}

var (
	adminRoles    = map[Role]bool{RoleOrgAdmin: true, RoleSuperAdmin: true}
	supplierRoles = map[Role]bool{RoleSupplier: true}
	anyRole       = map[Role]bool{
		RoleSuperAdmin: true,
		RoleOversight:  true,
		RoleOrgAdmin:   true,
		RoleOrgStaff:   true,
		RoleSupplier:   true,
	}
)

// Permissions is the operation gate applied after IsAuthorized.
var Permissions = map[Operation]map[Role]bool{
	OpApprove:             adminRoles,
	OpReject:              adminRoles,
	OpCancel:              adminRoles,
	OpRequestCancellation: supplierRoles,
	OpApproveCancellation: adminRoles,
	OpRejectCancellation:  adminRoles,
	OpMarkAsNoShow:        adminRoles,
	OpMarkAsCompleted:     adminRoles,
	OpRequestReschedule:   supplierRoles,
	OpApproveReschedule:   adminRoles,
	OpRejectReschedule:    adminRoles,
	OpReschedule:          adminRoles,
	OpComment:             anyRole,
}

func CanPerform(role Role, op Operation) bool {
	return Permissions[op][role]
}

// Authorize runs both checks: ownership/organization, then the operation gate.
func Authorize(actor Actor, ap *models.Appointment, op Operation) error {
	if !IsAuthorized(actor, ap) {
		return httperr.ErrBusiness(httperr.CodeNotAuthorized)
	}
	if !CanPerform(actor.Role, op) {
		return httperr.ErrBusiness(httperr.CodeForbidden)
	}
	return nil
}

// CanManageOrganization gates schedule and rule administration.
func CanManageOrganization(actor Actor, organizationID uint) bool {
	switch actor.Role {
	case RoleSuperAdmin:
		return true
	case RoleOrgAdmin:
		return actor.OrganizationID == organizationID
	}
	return false
}

// CanViewOrganization libera leitura de agenda e regras. Fornecedores
// reservam em qualquer organização (CanCreate), então leem todas; a
// listagem filtra os agendamentos que não são deles.
func CanViewOrganization(actor Actor, organizationID uint) bool {
	switch actor.Role {
	case RoleSuperAdmin, RoleOversight, RoleSupplier:
		return true
	case RoleOrgAdmin, RoleOrgStaff:
		return actor.OrganizationID != 0 && actor.OrganizationID == organizationID
	}
	return false
}

// CanCreate gates booking requests. Suppliers book any active offering;
// organization roles book only inside their own organization.
func CanCreate(actor Actor, offering *models.ServiceOffering) bool {
	switch actor.Role {
	case RoleSuperAdmin, RoleSupplier:
		return true
	case RoleOrgAdmin, RoleOrgStaff:
		return actor.OrganizationID != 0 && actor.OrganizationID == offering.OrganizationID
	}
	return false
}

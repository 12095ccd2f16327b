package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestActor_RequireManager(t *testing.T) {
	manager := Actor{UserID: "u1", CompanyID: "c1", Role: RoleManager}
	owner := Actor{UserID: "u2", CompanyID: "c1", Role: RoleOwner}
	employee := Actor{UserID: "u3", CompanyID: "c1", Role: RoleEmployee, EmployeeID: strPtr("e3")}

	assert.NoError(t, manager.RequireManager())
	assert.NoError(t, owner.RequireManager())
	assert.ErrorIs(t, employee.RequireManager(), ErrManagerAccessRequired)
	assert.ErrorIs(t, Actor{UserID: "u4", Role: RoleOwner}.RequireManager(), ErrCompanyIDRequired)
	assert.ErrorIs(t, Actor{}.RequireManager(), ErrActorRequired)
}

func TestActor_Owns(t *testing.T) {
	a := Actor{UserID: "u1", CompanyID: "c1", Role: RoleEmployee, EmployeeID: strPtr("e1")}

	assert.True(t, a.Owns("e1"))
	assert.False(t, a.Owns("e2"))
	assert.False(t, Actor{UserID: "u1", CompanyID: "c1"}.Owns(""))
	assert.ErrorIs(t, Actor{UserID: "u1", CompanyID: "c1"}.RequireEmployee(), ErrEmployeeLinkRequired)
	assert.NoError(t, a.RequireEmployee())
}

func TestHasPermission(t *testing.T) {
	assert.True(t, HasPermission(RoleOwner, PermissionInvoiceManage))
	assert.True(t, HasPermission(RoleEmployee, PermissionPayslipViewOwn))
	assert.False(t, HasPermission(RoleEmployee, PermissionInvoiceView))
	assert.False(t, HasPermission(Role("guest"), PermissionAttendanceCreate))
}

func TestActor_RequirePermission(t *testing.T) {
	employee := Actor{UserID: "u3", CompanyID: "c1", Role: RoleEmployee, EmployeeID: strPtr("e3")}

	assert.NoError(t, employee.RequirePermission(PermissionAttendanceCreate))
	assert.ErrorIs(t, employee.RequirePermission(PermissionAttendanceViewAll), ErrInsufficientPermissions)
	assert.ErrorIs(t, Actor{Role: RoleOwner}.RequirePermission(PermissionInvoiceView), ErrActorRequired)
}

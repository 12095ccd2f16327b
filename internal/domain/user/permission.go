package user

import "slices"

type Permission string

const (
	// Attendance
	PermissionAttendanceViewOwn Permission = "attendance.view_own"
	PermissionAttendanceCreate  Permission = "attendance.create"
	PermissionAttendanceViewAll Permission = "attendance.view_all"

	// Payroll
	PermissionPayslipViewOwn  Permission = "payslip.view_own"
	PermissionPayslipGenerate Permission = "payslip.generate"
	PermissionPayslipManage   Permission = "payslip.manage"

	// Invoicing
	PermissionInvoiceView   Permission = "invoice.view"
	PermissionInvoiceManage Permission = "invoice.manage"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleOwner: {
		PermissionAttendanceViewOwn,
		PermissionAttendanceCreate,
		PermissionAttendanceViewAll,
		PermissionPayslipViewOwn,
		PermissionPayslipGenerate,
		PermissionPayslipManage,
		PermissionInvoiceView,
		PermissionInvoiceManage,
	},
	RoleManager: {
		PermissionAttendanceViewOwn,
		PermissionAttendanceCreate,
		PermissionAttendanceViewAll,
		PermissionPayslipViewOwn,
		PermissionPayslipGenerate,
		PermissionPayslipManage,
		PermissionInvoiceView,
		PermissionInvoiceManage,
	},
	RoleEmployee: {
		PermissionAttendanceViewOwn,
		PermissionAttendanceCreate,
		PermissionPayslipViewOwn,
		PermissionPayslipGenerate,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	return slices.Contains(RolePermissions[role], permission)
}

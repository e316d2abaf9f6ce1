package user

type Permission string

const (
	// Self Management
	PermissionViewOwnProfile Permission = "profile.view_own"

	// Clock Sessions
	PermissionSessionClockOwn Permission = "session.clock_own"
	PermissionSessionViewAll  Permission = "session.view_all"

	// Timesheets
	PermissionTimesheetSubmitOwn  Permission = "timesheet.submit_own"
	PermissionTimesheetSubmitCrew Permission = "timesheet.submit_crew"
	PermissionTimesheetApprove    Permission = "timesheet.approve"
	PermissionTimesheetViewAll    Permission = "timesheet.view_all"

	// Jobs & Catalog
	PermissionJobManage     Permission = "job.manage"
	PermissionCatalogManage Permission = "catalog.manage"

	// Workers
	PermissionWorkerManage Permission = "worker.manage"

	// Reports & Audit
	PermissionReportsView    Permission = "reports.view"
	PermissionPayrollPush    Permission = "payroll.push"
	PermissionDeviceLogsView Permission = "devicelogs.view"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		// Admin has all permissions
		PermissionViewOwnProfile,
		PermissionSessionClockOwn,
		PermissionSessionViewAll,
		PermissionTimesheetSubmitOwn,
		PermissionTimesheetSubmitCrew,
		PermissionTimesheetApprove,
		PermissionTimesheetViewAll,
		PermissionJobManage,
		PermissionCatalogManage,
		PermissionWorkerManage,
		PermissionReportsView,
		PermissionPayrollPush,
		PermissionDeviceLogsView,
	},
	RoleForeman: {
		// Foreman reviews crew time and approves weeks
		PermissionViewOwnProfile,
		PermissionSessionClockOwn,
		PermissionSessionViewAll,
		PermissionTimesheetSubmitOwn,
		PermissionTimesheetSubmitCrew,
		PermissionTimesheetApprove,
		PermissionTimesheetViewAll,
		PermissionReportsView,
	},
	RoleWorker: {
		// Worker records their own time
		PermissionViewOwnProfile,
		PermissionSessionClockOwn,
		PermissionTimesheetSubmitOwn,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}
	for _, p := range permissions {
		if p == permission {
			return true
		}
	}
	return false
}

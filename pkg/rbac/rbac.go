package rbac

// Permission adalah token akses tunggal, misal "manage_patients".
type Permission string

const (
	PermViewPatients   Permission = "view_patients"
	PermManagePatients Permission = "manage_patients"
	PermViewStaff      Permission = "view_staff"
	PermManageStaff    Permission = "manage_staff"
	PermViewFinance    Permission = "view_finance"
	PermManageFinance  Permission = "manage_finance"
	PermViewPayroll    Permission = "view_payroll"
	PermManagePayroll  Permission = "manage_payroll"
	PermViewUsers      Permission = "view_users"
	PermManageUsers    Permission = "manage_users"
	PermViewReports    Permission = "view_reports"
	PermManageSettings Permission = "manage_settings"
	PermManageDatabase Permission = "manage_database"
)

const (
	RoleAdmin        = "admin"
	RoleDoctor       = "doctor"
	RoleNurse        = "nurse"
	RoleReceptionist = "receptionist"
	RoleAccountant   = "accountant"
)

// rolePermissions adalah satu-satunya sumber kebenaran untuk hak akses
// default setiap role. Role admin tidak perlu entri lengkap di sini karena
// selalu lolos semua pengecekan.
var rolePermissions = map[string][]Permission{
	RoleAdmin: {
		PermViewPatients, PermManagePatients,
		PermViewStaff, PermManageStaff,
		PermViewFinance, PermManageFinance,
		PermViewPayroll, PermManagePayroll,
		PermViewUsers, PermManageUsers,
		PermViewReports, PermManageSettings, PermManageDatabase,
	},
	RoleDoctor: {
		PermViewPatients, PermManagePatients,
		PermViewStaff,
		PermViewReports,
	},
	RoleNurse: {
		PermViewPatients,
		PermViewStaff,
	},
	RoleReceptionist: {
		PermViewPatients, PermManagePatients,
		PermViewFinance, PermManageFinance,
	},
	RoleAccountant: {
		PermViewPatients,
		PermViewStaff,
		PermViewFinance, PermManageFinance,
		PermViewPayroll, PermManagePayroll,
		PermViewReports,
	},
}

// ValidRoles mengembalikan daftar role yang dikenal sistem.
func ValidRoles() []string {
	return []string{RoleAdmin, RoleDoctor, RoleNurse, RoleReceptionist, RoleAccountant}
}

// DefaultPermissions mengembalikan salinan permission default sebuah role.
// Role yang tidak dikenal mendapat daftar kosong.
func DefaultPermissions(role string) []string {
	perms := rolePermissions[role]
	out := make([]string, 0, len(perms))
	for _, p := range perms {
		out = append(out, string(p))
	}
	return out
}

// HasPermission memutuskan allow/deny untuk satu permission.
// Role admin selalu diizinkan apa pun isi daftar permission-nya.
func HasPermission(role string, granted []string, required Permission) bool {
	if role == RoleAdmin {
		return true
	}
	for _, p := range granted {
		if p == string(required) {
			return true
		}
	}
	return false
}

// HasAnyPermission: diizinkan jika minimal satu permission yang diminta
// ada pada caller.
func HasAnyPermission(role string, granted []string, required ...Permission) bool {
	if role == RoleAdmin {
		return true
	}
	for _, r := range required {
		if HasPermission(role, granted, r) {
			return true
		}
	}
	return false
}

// HasAllPermissions: diizinkan hanya jika seluruh permission yang diminta
// ada pada caller (superset).
func HasAllPermissions(role string, granted []string, required ...Permission) bool {
	if role == RoleAdmin {
		return true
	}
	for _, r := range required {
		if !HasPermission(role, granted, r) {
			return false
		}
	}
	return true
}

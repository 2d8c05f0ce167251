package rbac

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdminAlwaysAllowed(t *testing.T) {
	// Admin lolos semua pengecekan walaupun daftar permission-nya kosong.
	assert.True(t, HasPermission(RoleAdmin, nil, PermManageDatabase))
	assert.True(t, HasAnyPermission(RoleAdmin, []string{}, PermManageUsers, PermManageSettings))
	assert.True(t, HasAllPermissions(RoleAdmin, nil, PermViewPatients, PermManagePayroll))
}

func TestRoleTable(t *testing.T) {
	tests := []struct {
		role    string
		perm    Permission
		allowed bool
	}{
		{RoleDoctor, PermManagePatients, true},
		{RoleDoctor, PermViewReports, true},
		{RoleDoctor, PermManageFinance, false},
		{RoleDoctor, PermViewPayroll, false},
		{RoleNurse, PermViewPatients, true},
		{RoleNurse, PermViewStaff, true},
		{RoleNurse, PermManagePatients, false},
		{RoleNurse, PermViewFinance, false},
		{RoleReceptionist, PermManagePatients, true},
		{RoleReceptionist, PermManageFinance, true},
		{RoleReceptionist, PermViewPayroll, false},
		{RoleAccountant, PermManageFinance, true},
		{RoleAccountant, PermManagePayroll, true},
		{RoleAccountant, PermViewReports, true},
		{RoleAccountant, PermManagePatients, false},
		{RoleAccountant, PermManageUsers, false},
	}

	for _, tc := range tests {
		granted := DefaultPermissions(tc.role)
		assert.Equalf(t, tc.allowed, HasPermission(tc.role, granted, tc.perm),
			"role=%s perm=%s", tc.role, tc.perm)
	}
}

func TestHasAnyPermission(t *testing.T) {
	granted := DefaultPermissions(RoleNurse)

	assert.True(t, HasAnyPermission(RoleNurse, granted, PermManagePatients, PermViewPatients))
	assert.False(t, HasAnyPermission(RoleNurse, granted, PermManagePatients, PermManageFinance))
	assert.False(t, HasAnyPermission(RoleNurse, granted))
}

func TestHasAllPermissions(t *testing.T) {
	granted := DefaultPermissions(RoleAccountant)

	assert.True(t, HasAllPermissions(RoleAccountant, granted, PermViewFinance, PermManagePayroll))
	assert.False(t, HasAllPermissions(RoleAccountant, granted, PermViewFinance, PermManageUsers))
	// Daftar kosong berarti tidak ada syarat yang gagal.
	assert.True(t, HasAllPermissions(RoleAccountant, granted))
}

func TestUnknownRoleHasNothing(t *testing.T) {
	assert.Empty(t, DefaultPermissions("cleaner"))
	assert.False(t, HasPermission("cleaner", nil, PermViewPatients))
}

func TestExplicitGrantsBeatDefaults(t *testing.T) {
	// Permission tersimpan pada user dipakai apa adanya, bukan dari tabel.
	granted := []string{string(PermViewPayroll)}
	assert.True(t, HasPermission(RoleNurse, granted, PermViewPayroll))
	assert.False(t, HasPermission(RoleNurse, granted, PermViewPatients))
}

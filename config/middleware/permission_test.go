package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"Sistem-Administrasi-Rehabilitasi/models"
	"Sistem-Administrasi-Rehabilitasi/pkg/rbac"
)

// injectClaims meniru hasil AuthMiddleware tanpa token sungguhan.
func injectClaims(claims *models.Claims) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if claims != nil {
			c.Locals("user", claims)
		}
		return c.Next()
	}
}

func guardedApp(claims *models.Claims, guard fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Get("/r/:id", injectClaims(claims), guard, func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func claimsFor(role string) *models.Claims {
	return &models.Claims{
		UserID:      primitive.NewObjectID(),
		Username:    role + "-uji",
		Role:        role,
		Permissions: rbac.DefaultPermissions(role),
	}
}

func get(t *testing.T, app *fiber.App, target string) int {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil))
	require.NoError(t, err)
	return resp.StatusCode
}

func TestRequirePermission(t *testing.T) {
	tests := []struct {
		name     string
		claims   *models.Claims
		required rbac.Permission
		want     int
	}{
		{"tanpa claims dapat 401", nil, rbac.PermViewPatients, fiber.StatusUnauthorized},
		{"perawat boleh view_patients", claimsFor(rbac.RoleNurse), rbac.PermViewPatients, fiber.StatusOK},
		{"perawat ditolak manage_finance", claimsFor(rbac.RoleNurse), rbac.PermManageFinance, fiber.StatusForbidden},
		{"admin selalu lolos", claimsFor(rbac.RoleAdmin), rbac.PermManageDatabase, fiber.StatusOK},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			app := guardedApp(tc.claims, RequirePermission(tc.required))
			assert.Equal(t, tc.want, get(t, app, "/r/x"))
		})
	}
}

func TestRequireAnyPermission(t *testing.T) {
	tests := []struct {
		name     string
		claims   *models.Claims
		required []rbac.Permission
		want     int
	}{
		{"tanpa claims dapat 401", nil, []rbac.Permission{rbac.PermViewFinance}, fiber.StatusUnauthorized},
		{"salah satu cukup", claimsFor(rbac.RoleNurse), []rbac.Permission{rbac.PermViewFinance, rbac.PermViewPatients}, fiber.StatusOK},
		{"tidak satu pun terpenuhi", claimsFor(rbac.RoleNurse), []rbac.Permission{rbac.PermViewFinance, rbac.PermManagePayroll}, fiber.StatusForbidden},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			app := guardedApp(tc.claims, RequireAnyPermission(tc.required...))
			assert.Equal(t, tc.want, get(t, app, "/r/x"))
		})
	}
}

func TestRequireAllPermissions(t *testing.T) {
	tests := []struct {
		name     string
		claims   *models.Claims
		required []rbac.Permission
		want     int
	}{
		{"akuntan memegang keduanya", claimsFor(rbac.RoleAccountant), []rbac.Permission{rbac.PermViewFinance, rbac.PermViewPayroll}, fiber.StatusOK},
		{"perawat kekurangan satu", claimsFor(rbac.RoleNurse), []rbac.Permission{rbac.PermViewPatients, rbac.PermViewFinance}, fiber.StatusForbidden},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			app := guardedApp(tc.claims, RequireAllPermissions(tc.required...))
			assert.Equal(t, tc.want, get(t, app, "/r/x"))
		})
	}
}

func TestRequireSelfOrPermission(t *testing.T) {
	nurse := claimsFor(rbac.RoleNurse)
	admin := claimsFor(rbac.RoleAdmin)

	t.Run("akses resource sendiri lolos tanpa permission", func(t *testing.T) {
		app := guardedApp(nurse, RequireSelfOrPermission("id", rbac.PermManageUsers))
		assert.Equal(t, fiber.StatusOK, get(t, app, "/r/"+nurse.UserID.Hex()))
	})

	t.Run("resource orang lain butuh permission", func(t *testing.T) {
		app := guardedApp(nurse, RequireSelfOrPermission("id", rbac.PermManageUsers))
		assert.Equal(t, fiber.StatusForbidden, get(t, app, "/r/"+primitive.NewObjectID().Hex()))
	})

	t.Run("pemegang permission boleh resource orang lain", func(t *testing.T) {
		app := guardedApp(admin, RequireSelfOrPermission("id", rbac.PermManageUsers))
		assert.Equal(t, fiber.StatusOK, get(t, app, "/r/"+primitive.NewObjectID().Hex()))
	})
}

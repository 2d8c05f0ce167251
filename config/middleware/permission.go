package middleware

import (
	"Sistem-Administrasi-Rehabilitasi/models"
	"Sistem-Administrasi-Rehabilitasi/pkg/rbac"
	"github.com/gofiber/fiber/v2"
)

// callerClaims mengambil claims hasil AuthMiddleware dari locals.
// 401 dan 403 sengaja dibedakan: tanpa identitas valid = Unauthorized,
// identitas valid tapi hak kurang = Forbidden.
func callerClaims(c *fiber.Ctx) (*models.Claims, bool) {
	claims, ok := c.Locals("user").(*models.Claims)
	return claims, ok
}

// RequirePermission menolak request sebelum menyentuh repository jika
// caller tidak memegang permission yang diminta.
func RequirePermission(required rbac.Permission) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := callerClaims(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Tidak terautentikasi atau data sesi rusak"})
		}

		if !rbac.HasPermission(claims.Role, claims.Permissions, required) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Akses ditolak. Permission '" + string(required) + "' diperlukan"})
		}

		return c.Next()
	}
}

// RequireAnyPermission: cukup salah satu permission terpenuhi.
func RequireAnyPermission(required ...rbac.Permission) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := callerClaims(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Tidak terautentikasi atau data sesi rusak"})
		}

		if !rbac.HasAnyPermission(claims.Role, claims.Permissions, required...) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Akses ditolak. Permission tidak mencukupi"})
		}

		return c.Next()
	}
}

// RequireAllPermissions: seluruh permission harus terpenuhi.
func RequireAllPermissions(required ...rbac.Permission) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := callerClaims(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Tidak terautentikasi atau data sesi rusak"})
		}

		if !rbac.HasAllPermissions(claims.Role, claims.Permissions, required...) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Akses ditolak. Permission tidak mencukupi"})
		}

		return c.Next()
	}
}

// RequireSelfOrPermission mengizinkan caller mengakses resource miliknya
// sendiri (param id sama dengan user id pada token) tanpa melihat
// permission; selain itu berlaku pengecekan permission biasa.
func RequireSelfOrPermission(idParam string, required rbac.Permission) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := callerClaims(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Tidak terautentikasi atau data sesi rusak"})
		}

		if claims.UserID.Hex() == c.Params(idParam) {
			return c.Next()
		}

		if !rbac.HasPermission(claims.Role, claims.Permissions, required) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Akses ditolak. Anda hanya dapat mengakses data anda sendiri"})
		}

		return c.Next()
	}
}

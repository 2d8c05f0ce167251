package seeder

import (
	"context"
	"log"
	"time"

	"Sistem-Administrasi-Rehabilitasi/models"
	"Sistem-Administrasi-Rehabilitasi/pkg/password"
	"Sistem-Administrasi-Rehabilitasi/pkg/rbac"
	"Sistem-Administrasi-Rehabilitasi/repository"
)

// SeedUsers menanam satu user per role dengan permission default dari
// tabel role. User yang sudah ada dilewati supaya seeder aman dijalankan
// berulang kali.
func SeedUsers(userRepo repository.UserRepository) {
	log.Println("Memulai seeding user...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	hashed, err := password.HashPassword("Admin123")
	if err != nil {
		log.Fatalf("Gagal hash password seeder: %v", err)
	}

	seeds := []struct {
		username string
		name     string
		role     string
	}{
		{"admin", "Administrator", rbac.RoleAdmin},
		{"dokter1", "Dr. Ayse Yilmaz", rbac.RoleDoctor},
		{"perawat1", "Fatma Demir", rbac.RoleNurse},
		{"resepsionis1", "Mehmet Kaya", rbac.RoleReceptionist},
		{"akuntan1", "Elif Celik", rbac.RoleAccountant},
	}

	for _, s := range seeds {
		existing, err := userRepo.FindUserByUsername(ctx, s.username)
		if err != nil {
			log.Printf("Gagal memeriksa user %s: %v", s.username, err)
			continue
		}
		if existing != nil {
			log.Printf("User %s sudah ada, dilewati.", s.username)
			continue
		}

		newUser := &models.User{
			Username:    s.username,
			Name:        s.name,
			Password:    hashed,
			Role:        s.role,
			Permissions: rbac.DefaultPermissions(s.role),
			IsActive:    true,
		}
		if _, err := userRepo.CreateUser(ctx, newUser); err != nil {
			log.Printf("Gagal menambahkan user %s: %v", s.username, err)
			continue
		}
		log.Printf("User %s (%s) berhasil ditambahkan.", s.username, s.role)
	}

	log.Println("Seeding user selesai.")
}

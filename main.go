package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"

	"Sistem-Administrasi-Rehabilitasi/config"
	_ "Sistem-Administrasi-Rehabilitasi/docs"
	"Sistem-Administrasi-Rehabilitasi/repository"
	"Sistem-Administrasi-Rehabilitasi/router"
	"Sistem-Administrasi-Rehabilitasi/seeder"
	_ "time/tzdata"
)

// @title Sistem Administrasi Rehabilitasi API
// @version 1.0
// @description API administrasi pusat rehabilitasi: pasien, pembayaran, staf, payroll, kasbon, alumni, dan laporan keuangan
//
// @contact.name API Support
//
// @license.name MIT
// @license.url https://opensource.org/licenses/MIT
//
// @host localhost:3000
// @BasePath /api/v1
// @schemes http https
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the PASETO token.
//
// @tag.name Auth
// @tag.description Authentication endpoints
//
// @tag.name Users
// @tag.description User management endpoints
//
// @tag.name Patients
// @tag.description Patient administration endpoints
//
// @tag.name Payments
// @tag.description Payment posting and receipt endpoints
//
// @tag.name Staff
// @tag.description Staff management endpoints
//
// @tag.name Payroll
// @tag.description Payroll endpoints
//
// @tag.name Advances
// @tag.description Staff advance (kasbon) endpoints
//
// @tag.name Compensation
// @tag.description One-off bonus and deduction endpoints
//
// @tag.name Graduates
// @tag.description Graduate allowance endpoints
//
// @tag.name Reports
// @tag.description Aggregated reporting endpoints
//
// @tag.name Settings
// @tag.description Facility settings endpoints
func main() {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file tidak ditemukan, menggunakan environment variables sistem")
	}

	cfg := config.LoadConfig()

	config.MongoConnect()
	config.InitDatabase()
	defer config.DisconnectDB()

	if os.Getenv("SEED_ON_START") == "true" {
		seeder.SeedUsers(repository.NewUserRepository())
		seeder.SeedDemoData(repository.NewPatientRepository(), repository.NewStaffRepository())
	}

	app := fiber.New()

	config.SetupCORS(app)
	app.Use(logger.New())

	router.SetupRoutes(app)

	log.Printf("Server running on port %s", cfg.Port)
	log.Printf("API Documentation: http://localhost:%s/docs/index.html", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}

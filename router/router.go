package router

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"

	"Sistem-Administrasi-Rehabilitasi/config/middleware"
	_ "Sistem-Administrasi-Rehabilitasi/docs"
	"Sistem-Administrasi-Rehabilitasi/handlers"
	"Sistem-Administrasi-Rehabilitasi/pkg/rbac"
	"Sistem-Administrasi-Rehabilitasi/repository"
)

func SetupRoutes(app *fiber.App) {
	log.Println("Memulai pendaftaran rute aplikasi...")

	// Inisialisasi Repositories
	userRepo := repository.NewUserRepository()
	patientRepo := repository.NewPatientRepository()
	paymentRepo := repository.NewPaymentRepository()
	staffRepo := repository.NewStaffRepository()
	payrollRepo := repository.NewPayrollRepository()
	advanceRepo := repository.NewAdvanceRepository()
	compensationRepo := repository.NewCompensationRepository()
	graduateRepo := repository.NewGraduateRepository()
	settingsRepo := repository.NewSettingsRepository()

	// Inisialisasi Handlers
	authHandler := handlers.NewAuthHandler(userRepo)
	userHandler := handlers.NewUserHandler(userRepo)
	patientHandler := handlers.NewPatientHandler(patientRepo, paymentRepo)
	paymentHandler := handlers.NewPaymentHandler(paymentRepo, patientRepo)
	staffHandler := handlers.NewStaffHandler(staffRepo)
	payrollHandler := handlers.NewPayrollHandler(payrollRepo, staffRepo)
	advanceHandler := handlers.NewAdvanceHandler(advanceRepo, staffRepo)
	compensationHandler := handlers.NewCompensationHandler(compensationRepo, staffRepo)
	graduateHandler := handlers.NewGraduateHandler(graduateRepo)
	settingsHandler := handlers.NewSettingsHandler(settingsRepo)
	reportHandler := handlers.NewReportHandler(patientRepo, staffRepo, graduateRepo, paymentRepo)

	// Health check & Docs
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Sistem Administrasi Rehabilitasi API",
			"status":  "running",
			"docs":    "/docs/index.html",
		})
	})
	app.Get("/docs/*", swagger.HandlerDefault)

	// API v1 group
	api := app.Group("/api/v1")

	// Authentication routes
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/register", middleware.AuthMiddleware(), middleware.RequirePermission(rbac.PermManageUsers), authHandler.Register)

	// User routes
	userGroup := api.Group("/users", middleware.AuthMiddleware())
	userGroup.Post("/change-password", authHandler.ChangePassword)
	userGroup.Get("/:id", middleware.RequireSelfOrPermission("id", rbac.PermViewUsers), userHandler.GetUserByID)
	userGroup.Put("/:id", middleware.RequireSelfOrPermission("id", rbac.PermManageUsers), userHandler.UpdateUser)

	// Admin routes
	adminGroup := api.Group("/admin", middleware.AuthMiddleware(), middleware.RequirePermission(rbac.PermManageUsers))
	adminGroup.Get("/users", userHandler.GetAllUsers)
	adminGroup.Delete("/users/:id", userHandler.DeleteUser)

	// Patient routes
	patientGroup := api.Group("/patients", middleware.AuthMiddleware())
	patientGroup.Get("/", middleware.RequirePermission(rbac.PermViewPatients), patientHandler.GetAllPatients)
	patientGroup.Get("/:id", middleware.RequirePermission(rbac.PermViewPatients), patientHandler.GetPatientByID)
	patientGroup.Get("/:id/account", middleware.RequirePermission(rbac.PermViewFinance), patientHandler.GetPatientAccount)
	patientGroup.Get("/:id/payments", middleware.RequirePermission(rbac.PermViewFinance), paymentHandler.GetPaymentsByPatient)
	patientGroup.Post("/", middleware.RequirePermission(rbac.PermManagePatients), patientHandler.CreatePatient)
	patientGroup.Put("/:id", middleware.RequirePermission(rbac.PermManagePatients), patientHandler.UpdatePatient)
	patientGroup.Post("/:id/discharge", middleware.RequirePermission(rbac.PermManagePatients), patientHandler.DischargePatient)
	patientGroup.Delete("/:id", middleware.RequirePermission(rbac.PermManagePatients), patientHandler.DeletePatient)

	// Payment routes
	paymentGroup := api.Group("/payments", middleware.AuthMiddleware())
	paymentGroup.Get("/", middleware.RequirePermission(rbac.PermViewFinance), paymentHandler.GetAllPayments)
	paymentGroup.Get("/:id/receipt-qr", middleware.RequirePermission(rbac.PermViewFinance), paymentHandler.GetReceiptQR)
	paymentGroup.Post("/", middleware.RequirePermission(rbac.PermManageFinance), paymentHandler.CreatePayment)
	paymentGroup.Put("/:id", middleware.RequirePermission(rbac.PermManageFinance), paymentHandler.UpdatePayment)
	paymentGroup.Delete("/:id", middleware.RequirePermission(rbac.PermManageFinance), paymentHandler.DeletePayment)

	// Staff routes
	staffGroup := api.Group("/staff", middleware.AuthMiddleware())
	staffGroup.Get("/", middleware.RequirePermission(rbac.PermViewStaff), staffHandler.GetAllStaff)
	staffGroup.Get("/:id", middleware.RequirePermission(rbac.PermViewStaff), staffHandler.GetStaffByID)
	staffGroup.Post("/", middleware.RequirePermission(rbac.PermManageStaff), staffHandler.CreateStaff)
	staffGroup.Put("/:id", middleware.RequirePermission(rbac.PermManageStaff), staffHandler.UpdateStaff)
	staffGroup.Delete("/:id", middleware.RequirePermission(rbac.PermManageStaff), staffHandler.DeleteStaff)
	staffGroup.Get("/:id/payrolls", middleware.RequirePermission(rbac.PermViewPayroll), payrollHandler.GetPayrollsByStaff)
	staffGroup.Get("/:id/advances", middleware.RequirePermission(rbac.PermViewPayroll), advanceHandler.GetAdvancesByStaff)
	staffGroup.Get("/:id/bonuses", middleware.RequirePermission(rbac.PermViewPayroll), compensationHandler.GetBonusesByStaff)
	staffGroup.Get("/:id/deductions", middleware.RequirePermission(rbac.PermViewPayroll), compensationHandler.GetDeductionsByStaff)

	// Payroll routes
	payrollGroup := api.Group("/payrolls", middleware.AuthMiddleware())
	payrollGroup.Get("/", middleware.RequirePermission(rbac.PermViewPayroll), payrollHandler.GetAllPayrolls)
	payrollGroup.Post("/", middleware.RequirePermission(rbac.PermManagePayroll), payrollHandler.CreatePayroll)
	payrollGroup.Put("/:id", middleware.RequirePermission(rbac.PermManagePayroll), payrollHandler.UpdatePayroll)
	payrollGroup.Delete("/:id", middleware.RequirePermission(rbac.PermManagePayroll), payrollHandler.DeletePayroll)

	// Advance routes
	advanceGroup := api.Group("/advances", middleware.AuthMiddleware())
	advanceGroup.Get("/", middleware.RequirePermission(rbac.PermViewPayroll), advanceHandler.GetAllAdvances)
	advanceGroup.Get("/:id/schedule", middleware.RequirePermission(rbac.PermViewPayroll), advanceHandler.GetAdvanceSchedule)
	advanceGroup.Post("/", middleware.RequirePermission(rbac.PermManagePayroll), advanceHandler.CreateAdvance)
	advanceGroup.Put("/:id/status", middleware.RequirePermission(rbac.PermManagePayroll), advanceHandler.UpdateAdvanceStatus)
	advanceGroup.Delete("/:id", middleware.RequirePermission(rbac.PermManagePayroll), advanceHandler.DeleteAdvance)

	// Bonus & Deduction routes
	bonusGroup := api.Group("/bonuses", middleware.AuthMiddleware())
	bonusGroup.Post("/", middleware.RequirePermission(rbac.PermManagePayroll), compensationHandler.CreateBonus)
	bonusGroup.Delete("/:id", middleware.RequirePermission(rbac.PermManagePayroll), compensationHandler.DeleteBonus)
	deductionGroup := api.Group("/deductions", middleware.AuthMiddleware())
	deductionGroup.Post("/", middleware.RequirePermission(rbac.PermManagePayroll), compensationHandler.CreateDeduction)
	deductionGroup.Delete("/:id", middleware.RequirePermission(rbac.PermManagePayroll), compensationHandler.DeleteDeduction)

	// Graduate routes
	graduateGroup := api.Group("/graduates", middleware.AuthMiddleware())
	graduateGroup.Get("/", middleware.RequirePermission(rbac.PermViewPatients), graduateHandler.GetAllGraduates)
	graduateGroup.Get("/:id", middleware.RequirePermission(rbac.PermViewPatients), graduateHandler.GetGraduateByID)
	graduateGroup.Post("/", middleware.RequirePermission(rbac.PermManagePatients), graduateHandler.CreateGraduate)
	graduateGroup.Put("/:id", middleware.RequirePermission(rbac.PermManagePatients), graduateHandler.UpdateGraduate)
	graduateGroup.Delete("/:id", middleware.RequirePermission(rbac.PermManagePatients), graduateHandler.DeleteGraduate)

	// Report routes
	reportGroup := api.Group("/reports", middleware.AuthMiddleware(), middleware.RequirePermission(rbac.PermViewReports))
	reportGroup.Get("/cigarettes", reportHandler.GetCigaretteReport)
	reportGroup.Get("/dashboard", reportHandler.GetDashboard)

	// Settings routes
	settingsGroup := api.Group("/settings", middleware.AuthMiddleware())
	settingsGroup.Get("/", settingsHandler.GetSettings)
	settingsGroup.Put("/", middleware.RequirePermission(rbac.PermManageSettings), settingsHandler.UpdateSettings)

	log.Println("Semua rute aplikasi berhasil didaftarkan.")
	log.Println("Swagger documentation tersedia di: /docs/index.html")
}

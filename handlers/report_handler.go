package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"

	"Sistem-Administrasi-Rehabilitasi/models"
	"Sistem-Administrasi-Rehabilitasi/pkg/finance"
	"Sistem-Administrasi-Rehabilitasi/repository"
)

type ReportHandler struct {
	patientRepo  repository.PatientRepository
	staffRepo    repository.StaffRepository
	graduateRepo repository.GraduateRepository
	paymentRepo  repository.PaymentRepository
}

func NewReportHandler(patientRepo repository.PatientRepository, staffRepo repository.StaffRepository, graduateRepo repository.GraduateRepository, paymentRepo repository.PaymentRepository) *ReportHandler {
	return &ReportHandler{
		patientRepo:  patientRepo,
		staffRepo:    staffRepo,
		graduateRepo: graduateRepo,
		paymentRepo:  paymentRepo,
	}
}

func patientCigaretteEntries(patients []models.Patient) []finance.CigaretteEntry {
	entries := make([]finance.CigaretteEntry, 0, len(patients))
	for _, p := range patients {
		entries = append(entries, finance.CigaretteEntry{Type: p.DailyCigaretteType, Cost: p.DailyCigaretteCost})
	}
	return entries
}

func staffCigaretteEntries(staffList []models.Staff) []finance.CigaretteEntry {
	entries := make([]finance.CigaretteEntry, 0, len(staffList))
	for _, s := range staffList {
		entries = append(entries, finance.CigaretteEntry{Type: s.DailyCigaretteType, Cost: s.DailyCigaretteCost})
	}
	return entries
}

func graduateCigaretteEntries(graduates []models.Graduate) []finance.CigaretteEntry {
	entries := make([]finance.CigaretteEntry, 0, len(graduates))
	for _, g := range graduates {
		entries = append(entries, finance.CigaretteEntry{Type: g.DailyCigaretteType, Cost: g.DailyCigaretteCost})
	}
	return entries
}

// GetCigaretteReport godoc
// @Summary Get Cigarette Allowance Report
// @Description Agregat jatah rokok harian per kelompok; grand total selalu sama dengan jumlah per kelompok (butuh permission view_reports)
// @Tags Reports
// @Produce json
// @Security BearerAuth
// @Param group query string false "patients | staff | graduates | all" default(all)
// @Success 200 {object} object{groups=object,grand_total=object}
// @Failure 400 {object} models.ErrorResponse
// @Router /reports/cigarettes [get]
func (h *ReportHandler) GetCigaretteReport(c *fiber.Ctx) error {
	group := c.Query("group", "all")

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	groups := fiber.Map{}
	var stats []finance.CigaretteStats

	if group == "patients" || group == "all" {
		patients, err := h.patientRepo.GetActivePatients(ctx)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fmt.Sprintf("gagal mendapatkan pasien: %v", err)})
		}
		s := finance.ComputeCigaretteStats(patientCigaretteEntries(patients))
		groups["patients"] = s
		stats = append(stats, s)
	}
	if group == "staff" || group == "all" {
		staffList, err := h.staffRepo.GetActiveStaff(ctx)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fmt.Sprintf("gagal mendapatkan staf: %v", err)})
		}
		s := finance.ComputeCigaretteStats(staffCigaretteEntries(staffList))
		groups["staff"] = s
		stats = append(stats, s)
	}
	if group == "graduates" || group == "all" {
		graduates, err := h.graduateRepo.GetActiveGraduates(ctx)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fmt.Sprintf("gagal mendapatkan alumni: %v", err)})
		}
		s := finance.ComputeCigaretteStats(graduateCigaretteEntries(graduates))
		groups["graduates"] = s
		stats = append(stats, s)
	}

	if len(groups) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "group harus salah satu dari: patients, staff, graduates, all"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"group":       group,
		"groups":      groups,
		"grand_total": finance.MergeCigaretteStats(stats...),
	})
}

// GetDashboard godoc
// @Summary Get Dashboard
// @Description Ringkasan operasional: jumlah entitas aktif, pembayaran, dan tunggakan pasien aktif (butuh permission view_reports)
// @Tags Reports
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{patients=object,staff=object,graduates=object,finance=object}
// @Router /reports/dashboard [get]
func (h *ReportHandler) GetDashboard(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	allPatients, err := h.patientRepo.GetAllPatients(ctx, bson.M{})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fmt.Sprintf("gagal mendapatkan pasien: %v", err)})
	}
	allStaff, err := h.staffRepo.GetAllStaff(ctx, bson.M{})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fmt.Sprintf("gagal mendapatkan staf: %v", err)})
	}
	graduates, err := h.graduateRepo.GetAllGraduates(ctx, bson.M{})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fmt.Sprintf("gagal mendapatkan alumni: %v", err)})
	}
	payments, err := h.paymentRepo.GetAllPayments(ctx, bson.M{})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fmt.Sprintf("gagal mendapatkan pembayaran: %v", err)})
	}

	now := time.Now()
	activePatients := 0
	outstanding := 0.0
	for _, p := range allPatients {
		if p.Status != models.PatientStatusActive {
			continue
		}
		activePatients++
		dailyCigarette := p.DailyCigaretteCost
		if dailyCigarette == 0 {
			dailyCigarette = finance.CigaretteCost(p.DailyCigaretteType)
		}
		days := finance.StayDays(p.AdmissionDate, p.DischargeDate, now)
		grandTotal := finance.RoundCurrency(float64(days) * (p.DailyCost + dailyCigarette))
		balance := finance.RoundCurrency(grandTotal - p.TotalPaid)
		if balance > 0 {
			outstanding += balance
		}
	}

	activeStaff := 0
	monthlySalaries := 0.0
	for _, s := range allStaff {
		if s.IsActive {
			activeStaff++
			monthlySalaries += s.MonthlySalary
		}
	}

	activeGraduates := 0
	for _, g := range graduates {
		if g.IsActive {
			activeGraduates++
		}
	}

	totalPayments := 0.0
	for _, p := range payments {
		totalPayments += p.Amount
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"patients": fiber.Map{
			"total":  len(allPatients),
			"active": activePatients,
		},
		"staff": fiber.Map{
			"total":  len(allStaff),
			"active": activeStaff,
		},
		"graduates": fiber.Map{
			"total":  len(graduates),
			"active": activeGraduates,
		},
		"finance": fiber.Map{
			"total_payments":        finance.RoundCurrency(totalPayments),
			"payment_count":         len(payments),
			"outstanding_balance":   finance.RoundCurrency(outstanding),
			"monthly_salary_burden": finance.RoundCurrency(monthlySalaries),
		},
	})
}

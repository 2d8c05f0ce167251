package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"Sistem-Administrasi-Rehabilitasi/models"
	"Sistem-Administrasi-Rehabilitasi/pkg/finance"
	util "Sistem-Administrasi-Rehabilitasi/pkg/utils"
	"Sistem-Administrasi-Rehabilitasi/repository"
)

type PayrollHandler struct {
	payrollRepo repository.PayrollRepository
	staffRepo   repository.StaffRepository
}

func NewPayrollHandler(payrollRepo repository.PayrollRepository, staffRepo repository.StaffRepository) *PayrollHandler {
	return &PayrollHandler{
		payrollRepo: payrollRepo,
		staffRepo:   staffRepo,
	}
}

// CreatePayroll godoc
// @Summary Create Payroll
// @Description Membuat slip gaji; net_salary dihitung dari base + bonuses - advances - deductions (butuh permission manage_payroll)
// @Tags Payroll
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payroll body models.PayrollCreatePayload true "Data payroll"
// @Success 201 {object} object{message=string,payroll_id=string,net_salary=number}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.NotFoundErrorResponse
// @Router /payrolls [post]
func (h *PayrollHandler) CreatePayroll(c *fiber.Ctx) error {
	var payload models.PayrollCreatePayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body", "details": err.Error()})
	}

	if errors := util.ValidateStruct(payload); errors != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errors})
	}

	staffID, err := primitive.ObjectIDFromHex(payload.StaffID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "format ID staf tidak valid"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	staff, err := h.staffRepo.FindStaffByID(ctx, staffID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fmt.Sprintf("gagal mendapatkan staf: %v", err)})
	}
	if staff == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "staf tidak ditemukan"})
	}

	// Base salary kosong berarti pakai gaji bulanan staf.
	baseSalary := payload.BaseSalary
	if baseSalary == 0 {
		baseSalary = staff.MonthlySalary
	}

	newPayroll := &models.Payroll{
		StaffID:    staffID,
		Month:      payload.Month,
		BaseSalary: baseSalary,
		Bonuses:    payload.Bonuses,
		Advances:   payload.Advances,
		Deductions: payload.Deductions,
		NetSalary:  finance.NetSalary(baseSalary, payload.Bonuses, payload.Advances, payload.Deductions),
		Status:     models.PayrollStatusPending,
		Notes:      payload.Notes,
	}

	result, err := h.payrollRepo.CreatePayroll(ctx, newPayroll)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fmt.Sprintf("gagal membuat payroll: %v", err)})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":    "Payroll berhasil dibuat",
		"payroll_id": result.InsertedID,
		"net_salary": newPayroll.NetSalary,
	})
}

// GetAllPayrolls godoc
// @Summary Get All Payrolls
// @Tags Payroll
// @Produce json
// @Security BearerAuth
// @Param month query string false "Filter by month (2006-01)"
// @Param status query string false "Filter by status"
// @Success 200 {object} object{data=array,total=int}
// @Router /payrolls [get]
func (h *PayrollHandler) GetAllPayrolls(c *fiber.Ctx) error {
	filter := bson.M{}
	if month := c.Query("month", ""); month != "" {
		filter["month"] = month
	}
	if status := c.Query("status", ""); status != "" {
		filter["status"] = status
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	payrolls, err := h.payrollRepo.GetAllPayrolls(ctx, filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fmt.Sprintf("gagal mendapatkan payroll: %v", err)})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data":  payrolls,
		"total": len(payrolls),
	})
}

// GetPayrollsByStaff godoc
// @Summary Get Payrolls by Staff
// @Tags Payroll
// @Produce json
// @Security BearerAuth
// @Param id path string true "Staff ID"
// @Success 200 {object} object{data=array,total=int}
// @Router /staff/{id}/payrolls [get]
func (h *PayrollHandler) GetPayrollsByStaff(c *fiber.Ctx) error {
	staffID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "format ID staf tidak valid"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	payrolls, err := h.payrollRepo.GetPayrollsByStaff(ctx, staffID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fmt.Sprintf("gagal mendapatkan payroll staf: %v", err)})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data":  payrolls,
		"total": len(payrolls),
	})
}

// UpdatePayroll godoc
// @Summary Update Payroll
// @Description Update komponen gaji; net_salary selalu dihitung ulang dari komponen terbaru (butuh permission manage_payroll)
// @Tags Payroll
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Payroll ID"
// @Param payroll body models.PayrollUpdatePayload true "Data update payroll"
// @Success 200 {object} object{message=string,net_salary=number}
// @Failure 404 {object} models.NotFoundErrorResponse
// @Router /payrolls/{id} [put]
func (h *PayrollHandler) UpdatePayroll(c *fiber.Ctx) error {
	idParam := c.Params("id")
	objID, err := primitive.ObjectIDFromHex(idParam)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "format ID payroll tidak valid"})
	}

	var payload models.PayrollUpdatePayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body", "details": err.Error()})
	}

	if errors := util.ValidateStruct(payload); errors != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errors})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	existing, err := h.payrollRepo.FindPayrollByID(ctx, objID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fmt.Sprintf("gagal mendapatkan payroll: %v", err)})
	}
	if existing == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "payroll tidak ditemukan"})
	}

	baseSalary := existing.BaseSalary
	bonuses := existing.Bonuses
	advances := existing.Advances
	deductions := existing.Deductions

	updateData := bson.M{}
	if payload.BaseSalary != nil {
		baseSalary = *payload.BaseSalary
		updateData["base_salary"] = baseSalary
	}
	if payload.Bonuses != nil {
		bonuses = *payload.Bonuses
		updateData["bonuses"] = bonuses
	}
	if payload.Advances != nil {
		advances = *payload.Advances
		updateData["advances"] = advances
	}
	if payload.Deductions != nil {
		deductions = *payload.Deductions
		updateData["deductions"] = deductions
	}
	if payload.Status != "" {
		updateData["status"] = payload.Status
		if payload.Status == models.PayrollStatusPaid {
			updateData["paid_at"] = time.Now()
		}
	}
	if payload.Notes != "" {
		updateData["notes"] = payload.Notes
	}
	if len(updateData) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "tidak ada data yang diupdate"})
	}

	// Invariant: net_salary selalu sama dengan rumus turunannya.
	netSalary := finance.NetSalary(baseSalary, bonuses, advances, deductions)
	updateData["net_salary"] = netSalary

	result, err := h.payrollRepo.UpdatePayroll(ctx, objID, updateData)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fmt.Sprintf("gagal mengupdate payroll: %v", err)})
	}
	if result.MatchedCount == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "payroll tidak ditemukan"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":    "Payroll berhasil diupdate",
		"payroll_id": idParam,
		"net_salary": netSalary,
	})
}

// DeletePayroll godoc
// @Summary Delete Payroll
// @Tags Payroll
// @Produce json
// @Security BearerAuth
// @Param id path string true "Payroll ID"
// @Success 200 {object} models.MessageResponse
// @Failure 404 {object} models.NotFoundErrorResponse
// @Router /payrolls/{id} [delete]
func (h *PayrollHandler) DeletePayroll(c *fiber.Ctx) error {
	idParam := c.Params("id")
	objID, err := primitive.ObjectIDFromHex(idParam)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "format ID payroll tidak valid"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	result, err := h.payrollRepo.DeletePayroll(ctx, objID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fmt.Sprintf("gagal menghapus payroll: %v", err)})
	}
	if result.DeletedCount == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "payroll tidak ditemukan"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":    "Payroll berhasil dihapus",
		"payroll_id": idParam,
	})
}

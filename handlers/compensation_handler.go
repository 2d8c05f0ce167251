package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"Sistem-Administrasi-Rehabilitasi/models"
	util "Sistem-Administrasi-Rehabilitasi/pkg/utils"
	"Sistem-Administrasi-Rehabilitasi/repository"
)

type CompensationHandler struct {
	compensationRepo repository.CompensationRepository
	staffRepo        repository.StaffRepository
}

func NewCompensationHandler(compensationRepo repository.CompensationRepository, staffRepo repository.StaffRepository) *CompensationHandler {
	return &CompensationHandler{
		compensationRepo: compensationRepo,
		staffRepo:        staffRepo,
	}
}

// CreateBonus godoc
// @Summary Create Bonus
// @Description Mencatat bonus satu kali untuk staf (butuh permission manage_payroll)
// @Tags Compensation
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param bonus body models.CompensationCreatePayload true "Data bonus"
// @Success 201 {object} models.MessageResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.NotFoundErrorResponse
// @Router /bonuses [post]
func (h *CompensationHandler) CreateBonus(c *fiber.Ctx) error {
	var payload models.CompensationCreatePayload
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

	date, err := time.Parse(dateLayout, payload.Date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "format date tidak valid"})
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

	newBonus := &models.Bonus{
		StaffID:     staffID,
		Amount:      payload.Amount,
		Date:        date,
		Description: payload.Description,
	}

	result, err := h.compensationRepo.CreateBonus(ctx, newBonus)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fmt.Sprintf("gagal membuat bonus: %v", err)})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Bonus berhasil dicatat",
		"bonus_id": result.InsertedID,
	})
}

// GetBonusesByStaff godoc
// @Summary Get Bonuses by Staff
// @Tags Compensation
// @Produce json
// @Security BearerAuth
// @Param id path string true "Staff ID"
// @Success 200 {object} object{data=array,total=int}
// @Router /staff/{id}/bonuses [get]
func (h *CompensationHandler) GetBonusesByStaff(c *fiber.Ctx) error {
	staffID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "format ID staf tidak valid"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	bonuses, err := h.compensationRepo.GetBonusesByStaff(ctx, staffID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fmt.Sprintf("gagal mendapatkan bonus staf: %v", err)})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data":  bonuses,
		"total": len(bonuses),
	})
}

// DeleteBonus godoc
// @Summary Delete Bonus
// @Tags Compensation
// @Produce json
// @Security BearerAuth
// @Param id path string true "Bonus ID"
// @Success 200 {object} models.MessageResponse
// @Failure 404 {object} models.NotFoundErrorResponse
// @Router /bonuses/{id} [delete]
func (h *CompensationHandler) DeleteBonus(c *fiber.Ctx) error {
	idParam := c.Params("id")
	objID, err := primitive.ObjectIDFromHex(idParam)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "format ID bonus tidak valid"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	result, err := h.compensationRepo.DeleteBonus(ctx, objID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fmt.Sprintf("gagal menghapus bonus: %v", err)})
	}
	if result.DeletedCount == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "bonus tidak ditemukan"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":  "Bonus berhasil dihapus",
		"bonus_id": idParam,
	})
}

// CreateDeduction godoc
// @Summary Create Deduction
// @Description Mencatat potongan satu kali untuk staf (butuh permission manage_payroll)
// @Tags Compensation
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param deduction body models.CompensationCreatePayload true "Data potongan"
// @Success 201 {object} models.MessageResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.NotFoundErrorResponse
// @Router /deductions [post]
func (h *CompensationHandler) CreateDeduction(c *fiber.Ctx) error {
	var payload models.CompensationCreatePayload
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

	date, err := time.Parse(dateLayout, payload.Date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "format date tidak valid"})
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

	newDeduction := &models.Deduction{
		StaffID:     staffID,
		Amount:      payload.Amount,
		Date:        date,
		Description: payload.Description,
	}

	result, err := h.compensationRepo.CreateDeduction(ctx, newDeduction)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fmt.Sprintf("gagal membuat potongan: %v", err)})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":      "Potongan berhasil dicatat",
		"deduction_id": result.InsertedID,
	})
}

// GetDeductionsByStaff godoc
// @Summary Get Deductions by Staff
// @Tags Compensation
// @Produce json
// @Security BearerAuth
// @Param id path string true "Staff ID"
// @Success 200 {object} object{data=array,total=int}
// @Router /staff/{id}/deductions [get]
func (h *CompensationHandler) GetDeductionsByStaff(c *fiber.Ctx) error {
	staffID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "format ID staf tidak valid"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	deductions, err := h.compensationRepo.GetDeductionsByStaff(ctx, staffID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fmt.Sprintf("gagal mendapatkan potongan staf: %v", err)})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data":  deductions,
		"total": len(deductions),
	})
}

// DeleteDeduction godoc
// @Summary Delete Deduction
// @Tags Compensation
// @Produce json
// @Security BearerAuth
// @Param id path string true "Deduction ID"
// @Success 200 {object} models.MessageResponse
// @Failure 404 {object} models.NotFoundErrorResponse
// @Router /deductions/{id} [delete]
func (h *CompensationHandler) DeleteDeduction(c *fiber.Ctx) error {
	idParam := c.Params("id")
	objID, err := primitive.ObjectIDFromHex(idParam)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "format ID potongan tidak valid"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	result, err := h.compensationRepo.DeleteDeduction(ctx, objID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fmt.Sprintf("gagal menghapus potongan: %v", err)})
	}
	if result.DeletedCount == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "potongan tidak ditemukan"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":      "Potongan berhasil dihapus",
		"deduction_id": idParam,
	})
}

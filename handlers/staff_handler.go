package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"Sistem-Administrasi-Rehabilitasi/models"
	util "Sistem-Administrasi-Rehabilitasi/pkg/utils"
	"Sistem-Administrasi-Rehabilitasi/repository"
)

type StaffHandler struct {
	staffRepo repository.StaffRepository
}

func NewStaffHandler(staffRepo repository.StaffRepository) *StaffHandler {
	return &StaffHandler{
		staffRepo: staffRepo,
	}
}

// CreateStaff godoc
// @Summary Create Staff
// @Description Mendaftarkan staf baru (butuh permission manage_staff)
// @Tags Staff
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param staff body models.StaffCreatePayload true "Data staf"
// @Success 201 {object} models.MessageResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /staff [post]
func (h *StaffHandler) CreateStaff(c *fiber.Ctx) error {
	var payload models.StaffCreatePayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body", "details": err.Error()})
	}

	if errors := util.ValidateStruct(payload); errors != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errors})
	}

	cigaretteType, cigaretteCost := cigaretteCostFor(payload.DailyCigaretteType, payload.DailyCigaretteCost)

	newStaff := &models.Staff{
		Name:               payload.Name,
		Position:           payload.Position,
		MonthlySalary:      payload.MonthlySalary,
		DailyCigaretteType: cigaretteType,
		DailyCigaretteCost: cigaretteCost,
		IsActive:           true,
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	result, err := h.staffRepo.CreateStaff(ctx, newStaff)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fmt.Sprintf("gagal mendaftarkan staf: %v", err)})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Staf berhasil didaftarkan",
		"staff_id": result.InsertedID,
	})
}

// GetAllStaff godoc
// @Summary Get All Staff
// @Description Mendapatkan daftar staf, bisa difilter aktif saja (butuh permission view_staff)
// @Tags Staff
// @Produce json
// @Security BearerAuth
// @Param active query bool false "Hanya staf aktif"
// @Success 200 {object} object{data=array,total=int}
// @Router /staff [get]
func (h *StaffHandler) GetAllStaff(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	var (
		staffList []models.Staff
		err       error
	)
	if c.QueryBool("active", false) {
		staffList, err = h.staffRepo.GetActiveStaff(ctx)
	} else {
		staffList, err = h.staffRepo.GetAllStaff(ctx, bson.M{})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fmt.Sprintf("gagal mendapatkan staf: %v", err)})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data":  staffList,
		"total": len(staffList),
	})
}

// GetStaffByID godoc
// @Summary Get Staff by ID
// @Tags Staff
// @Produce json
// @Security BearerAuth
// @Param id path string true "Staff ID"
// @Success 200 {object} models.Staff
// @Failure 404 {object} models.NotFoundErrorResponse
// @Router /staff/{id} [get]
func (h *StaffHandler) GetStaffByID(c *fiber.Ctx) error {
	objID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "format ID staf tidak valid"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	staff, err := h.staffRepo.FindStaffByID(ctx, objID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fmt.Sprintf("gagal mendapatkan staf: %v", err)})
	}
	if staff == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "staf tidak ditemukan"})
	}

	return c.Status(fiber.StatusOK).JSON(staff)
}

// UpdateStaff godoc
// @Summary Update Staff
// @Description Update data staf (butuh permission manage_staff)
// @Tags Staff
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Staff ID"
// @Param staff body models.StaffUpdatePayload true "Data update staf"
// @Success 200 {object} models.MessageResponse
// @Failure 404 {object} models.NotFoundErrorResponse
// @Router /staff/{id} [put]
func (h *StaffHandler) UpdateStaff(c *fiber.Ctx) error {
	idParam := c.Params("id")
	objID, err := primitive.ObjectIDFromHex(idParam)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "format ID staf tidak valid"})
	}

	var payload models.StaffUpdatePayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body", "details": err.Error()})
	}

	if errors := util.ValidateStruct(payload); errors != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errors})
	}

	updateData := bson.M{}
	if payload.Name != "" {
		updateData["name"] = payload.Name
	}
	if payload.Position != "" {
		updateData["position"] = payload.Position
	}
	if payload.MonthlySalary != nil {
		updateData["monthly_salary"] = *payload.MonthlySalary
	}
	if payload.DailyCigaretteType != "" {
		override := 0.0
		if payload.DailyCigaretteCost != nil {
			override = *payload.DailyCigaretteCost
		}
		cigaretteType, cigaretteCost := cigaretteCostFor(payload.DailyCigaretteType, override)
		updateData["daily_cigarette_type"] = cigaretteType
		updateData["daily_cigarette_cost"] = cigaretteCost
	} else if payload.DailyCigaretteCost != nil {
		updateData["daily_cigarette_cost"] = *payload.DailyCigaretteCost
	}
	if payload.IsActive != nil {
		updateData["is_active"] = *payload.IsActive
	}
	if len(updateData) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "tidak ada data yang diupdate"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	result, err := h.staffRepo.UpdateStaff(ctx, objID, updateData)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fmt.Sprintf("gagal mengupdate staf: %v", err)})
	}
	if result.MatchedCount == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "staf tidak ditemukan"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":  "Staf berhasil diupdate",
		"staff_id": idParam,
	})
}

// DeleteStaff godoc
// @Summary Delete Staff
// @Tags Staff
// @Produce json
// @Security BearerAuth
// @Param id path string true "Staff ID"
// @Success 200 {object} models.MessageResponse
// @Failure 404 {object} models.NotFoundErrorResponse
// @Router /staff/{id} [delete]
func (h *StaffHandler) DeleteStaff(c *fiber.Ctx) error {
	idParam := c.Params("id")
	objID, err := primitive.ObjectIDFromHex(idParam)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "format ID staf tidak valid"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	result, err := h.staffRepo.DeleteStaff(ctx, objID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fmt.Sprintf("gagal menghapus staf: %v", err)})
	}
	if result.DeletedCount == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "staf tidak ditemukan"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":  "Staf berhasil dihapus",
		"staff_id": idParam,
	})
}

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

type GraduateHandler struct {
	graduateRepo repository.GraduateRepository
}

func NewGraduateHandler(graduateRepo repository.GraduateRepository) *GraduateHandler {
	return &GraduateHandler{
		graduateRepo: graduateRepo,
	}
}

// CreateGraduate godoc
// @Summary Create Graduate
// @Description Mendaftarkan alumni penerima jatah rokok (butuh permission manage_patients)
// @Tags Graduates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param graduate body models.GraduateCreatePayload true "Data alumni"
// @Success 201 {object} models.MessageResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /graduates [post]
func (h *GraduateHandler) CreateGraduate(c *fiber.Ctx) error {
	var payload models.GraduateCreatePayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body", "details": err.Error()})
	}

	if errors := util.ValidateStruct(payload); errors != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errors})
	}

	cigaretteType, cigaretteCost := cigaretteCostFor(payload.DailyCigaretteType, payload.DailyCigaretteCost)

	newGraduate := &models.Graduate{
		Name:               payload.Name,
		DailyCigaretteType: cigaretteType,
		DailyCigaretteCost: cigaretteCost,
		IsActive:           true,
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	result, err := h.graduateRepo.CreateGraduate(ctx, newGraduate)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fmt.Sprintf("gagal mendaftarkan alumni: %v", err)})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":     "Alumni berhasil didaftarkan",
		"graduate_id": result.InsertedID,
	})
}

// GetAllGraduates godoc
// @Summary Get All Graduates
// @Description Mendapatkan daftar alumni, bisa difilter aktif saja (butuh permission view_patients)
// @Tags Graduates
// @Produce json
// @Security BearerAuth
// @Param active query bool false "Hanya alumni aktif"
// @Success 200 {object} object{data=array,total=int}
// @Router /graduates [get]
func (h *GraduateHandler) GetAllGraduates(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	var (
		graduates []models.Graduate
		err       error
	)
	if c.QueryBool("active", false) {
		graduates, err = h.graduateRepo.GetActiveGraduates(ctx)
	} else {
		graduates, err = h.graduateRepo.GetAllGraduates(ctx, bson.M{})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fmt.Sprintf("gagal mendapatkan alumni: %v", err)})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data":  graduates,
		"total": len(graduates),
	})
}

// GetGraduateByID godoc
// @Summary Get Graduate by ID
// @Tags Graduates
// @Produce json
// @Security BearerAuth
// @Param id path string true "Graduate ID"
// @Success 200 {object} models.Graduate
// @Failure 404 {object} models.NotFoundErrorResponse
// @Router /graduates/{id} [get]
func (h *GraduateHandler) GetGraduateByID(c *fiber.Ctx) error {
	objID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "format ID alumni tidak valid"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	graduate, err := h.graduateRepo.FindGraduateByID(ctx, objID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fmt.Sprintf("gagal mendapatkan alumni: %v", err)})
	}
	if graduate == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "alumni tidak ditemukan"})
	}

	return c.Status(fiber.StatusOK).JSON(graduate)
}

// UpdateGraduate godoc
// @Summary Update Graduate
// @Description Update data alumni (butuh permission manage_patients)
// @Tags Graduates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Graduate ID"
// @Param graduate body models.GraduateUpdatePayload true "Data update alumni"
// @Success 200 {object} models.MessageResponse
// @Failure 404 {object} models.NotFoundErrorResponse
// @Router /graduates/{id} [put]
func (h *GraduateHandler) UpdateGraduate(c *fiber.Ctx) error {
	idParam := c.Params("id")
	objID, err := primitive.ObjectIDFromHex(idParam)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "format ID alumni tidak valid"})
	}

	var payload models.GraduateUpdatePayload
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

	result, err := h.graduateRepo.UpdateGraduate(ctx, objID, updateData)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fmt.Sprintf("gagal mengupdate alumni: %v", err)})
	}
	if result.MatchedCount == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "alumni tidak ditemukan"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":     "Alumni berhasil diupdate",
		"graduate_id": idParam,
	})
}

// DeleteGraduate godoc
// @Summary Delete Graduate
// @Tags Graduates
// @Produce json
// @Security BearerAuth
// @Param id path string true "Graduate ID"
// @Success 200 {object} models.MessageResponse
// @Failure 404 {object} models.NotFoundErrorResponse
// @Router /graduates/{id} [delete]
func (h *GraduateHandler) DeleteGraduate(c *fiber.Ctx) error {
	idParam := c.Params("id")
	objID, err := primitive.ObjectIDFromHex(idParam)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "format ID alumni tidak valid"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	result, err := h.graduateRepo.DeleteGraduate(ctx, objID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fmt.Sprintf("gagal menghapus alumni: %v", err)})
	}
	if result.DeletedCount == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "alumni tidak ditemukan"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":     "Alumni berhasil dihapus",
		"graduate_id": idParam,
	})
}

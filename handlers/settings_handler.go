package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"

	"Sistem-Administrasi-Rehabilitasi/models"
	util "Sistem-Administrasi-Rehabilitasi/pkg/utils"
	"Sistem-Administrasi-Rehabilitasi/repository"
)

type SettingsHandler struct {
	settingsRepo repository.SettingsRepository
}

func NewSettingsHandler(settingsRepo repository.SettingsRepository) *SettingsHandler {
	return &SettingsHandler{
		settingsRepo: settingsRepo,
	}
}

// GetSettings godoc
// @Summary Get Settings
// @Description Mendapatkan konfigurasi fasilitas; dokumen default dibuat bila belum ada
// @Tags Settings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Settings
// @Router /settings [get]
func (h *SettingsHandler) GetSettings(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	settings, err := h.settingsRepo.GetSettings(ctx)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fmt.Sprintf("gagal mendapatkan settings: %v", err)})
	}

	return c.Status(fiber.StatusOK).JSON(settings)
}

// UpdateSettings godoc
// @Summary Update Settings
// @Description Update konfigurasi fasilitas (butuh permission manage_settings)
// @Tags Settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param settings body models.SettingsUpdatePayload true "Data update settings"
// @Success 200 {object} models.Settings
// @Failure 400 {object} models.ErrorResponse
// @Router /settings [put]
func (h *SettingsHandler) UpdateSettings(c *fiber.Ctx) error {
	var payload models.SettingsUpdatePayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body", "details": err.Error()})
	}

	if errors := util.ValidateStruct(payload); errors != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errors})
	}

	updateData := bson.M{}
	if payload.FacilityName != "" {
		updateData["facility_name"] = payload.FacilityName
	}
	if payload.Currency != "" {
		updateData["currency"] = payload.Currency
	}
	if payload.DefaultDailyCost != nil {
		updateData["default_daily_cost"] = *payload.DefaultDailyCost
	}
	if payload.HalfPackDailyCost != nil {
		updateData["half_pack_daily_cost"] = *payload.HalfPackDailyCost
	}
	if payload.FullPackDailyCost != nil {
		updateData["full_pack_daily_cost"] = *payload.FullPackDailyCost
	}
	if len(updateData) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "tidak ada data yang diupdate"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	settings, err := h.settingsRepo.UpdateSettings(ctx, updateData)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fmt.Sprintf("gagal mengupdate settings: %v", err)})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":  "Settings berhasil diupdate",
		"settings": settings,
	})
}

package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/teambition/rrule-go"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"Sistem-Administrasi-Rehabilitasi/models"
	"Sistem-Administrasi-Rehabilitasi/pkg/finance"
	util "Sistem-Administrasi-Rehabilitasi/pkg/utils"
	"Sistem-Administrasi-Rehabilitasi/repository"
)

type AdvanceHandler struct {
	advanceRepo repository.AdvanceRepository
	staffRepo   repository.StaffRepository
}

func NewAdvanceHandler(advanceRepo repository.AdvanceRepository, staffRepo repository.StaffRepository) *AdvanceHandler {
	return &AdvanceHandler{
		advanceRepo: advanceRepo,
		staffRepo:   staffRepo,
	}
}

// CreateAdvance godoc
// @Summary Create Advance
// @Description Mengajukan kasbon staf; monthly_deduction dihitung dari amount / repayment_months (butuh permission manage_payroll)
// @Tags Advances
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param advance body models.AdvanceCreatePayload true "Data kasbon"
// @Success 201 {object} object{message=string,advance_id=string,monthly_deduction=number}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.NotFoundErrorResponse
// @Router /advances [post]
func (h *AdvanceHandler) CreateAdvance(c *fiber.Ctx) error {
	var payload models.AdvanceCreatePayload
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

	requestDate, err := time.Parse(dateLayout, payload.RequestDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "format request_date tidak valid"})
	}

	monthlyDeduction, err := finance.MonthlyInstallment(payload.Amount, payload.RepaymentMonths)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
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

	newAdvance := &models.Advance{
		StaffID:          staffID,
		Amount:           payload.Amount,
		RepaymentMonths:  payload.RepaymentMonths,
		MonthlyDeduction: monthlyDeduction,
		RemainingAmount:  payload.Amount,
		Status:           models.AdvanceStatusPending,
		RequestDate:      requestDate,
		Notes:            payload.Notes,
	}

	result, err := h.advanceRepo.CreateAdvance(ctx, newAdvance)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fmt.Sprintf("gagal membuat kasbon: %v", err)})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":           "Kasbon berhasil diajukan",
		"advance_id":        result.InsertedID,
		"monthly_deduction": monthlyDeduction,
	})
}

// GetAllAdvances godoc
// @Summary Get All Advances
// @Tags Advances
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Success 200 {object} object{data=array,total=int}
// @Router /advances [get]
func (h *AdvanceHandler) GetAllAdvances(c *fiber.Ctx) error {
	filter := bson.M{}
	if status := c.Query("status", ""); status != "" {
		filter["status"] = status
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	advances, err := h.advanceRepo.GetAllAdvances(ctx, filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fmt.Sprintf("gagal mendapatkan kasbon: %v", err)})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data":  advances,
		"total": len(advances),
	})
}

// GetAdvancesByStaff godoc
// @Summary Get Advances by Staff
// @Tags Advances
// @Produce json
// @Security BearerAuth
// @Param id path string true "Staff ID"
// @Success 200 {object} object{data=array,total=int}
// @Router /staff/{id}/advances [get]
func (h *AdvanceHandler) GetAdvancesByStaff(c *fiber.Ctx) error {
	staffID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "format ID staf tidak valid"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	advances, err := h.advanceRepo.GetAdvancesByStaff(ctx, staffID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fmt.Sprintf("gagal mendapatkan kasbon staf: %v", err)})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data":  advances,
		"total": len(advances),
	})
}

// UpdateAdvanceStatus godoc
// @Summary Update Advance Status
// @Description Menyetujui atau menolak kasbon (butuh permission manage_payroll)
// @Tags Advances
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Advance ID"
// @Param status body models.AdvanceStatusPayload true "Status baru"
// @Success 200 {object} models.MessageResponse
// @Failure 404 {object} models.NotFoundErrorResponse
// @Router /advances/{id}/status [put]
func (h *AdvanceHandler) UpdateAdvanceStatus(c *fiber.Ctx) error {
	idParam := c.Params("id")
	objID, err := primitive.ObjectIDFromHex(idParam)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "format ID kasbon tidak valid"})
	}

	var payload models.AdvanceStatusPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body", "details": err.Error()})
	}

	if errors := util.ValidateStruct(payload); errors != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errors})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	advance, err := h.advanceRepo.FindAdvanceByID(ctx, objID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fmt.Sprintf("gagal mendapatkan kasbon: %v", err)})
	}
	if advance == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "kasbon tidak ditemukan"})
	}

	updateData := bson.M{"status": payload.Status}
	if payload.Status == models.AdvanceStatusApproved {
		// Persetujuan memulai siklus cicilan: sisa kasbon diinisialisasi
		// ulang ke jumlah penuh.
		updateData["approved_at"] = time.Now()
		updateData["remaining_amount"] = advance.Amount
	}

	result, err := h.advanceRepo.UpdateAdvance(ctx, objID, updateData)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fmt.Sprintf("gagal mengupdate kasbon: %v", err)})
	}
	if result.MatchedCount == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "kasbon tidak ditemukan"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":    "Status kasbon berhasil diupdate",
		"advance_id": idParam,
	})
}

// GetAdvanceSchedule godoc
// @Summary Get Advance Repayment Schedule
// @Description Ekspansi jadwal cicilan bulanan dengan RRULE dari tanggal pengajuan; cicilan terakhir menanggung sisa pembulatan (butuh permission view_payroll)
// @Tags Advances
// @Produce json
// @Security BearerAuth
// @Param id path string true "Advance ID"
// @Success 200 {object} object{advance=models.Advance,schedule=array}
// @Failure 404 {object} models.NotFoundErrorResponse
// @Router /advances/{id}/schedule [get]
func (h *AdvanceHandler) GetAdvanceSchedule(c *fiber.Ctx) error {
	objID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "format ID kasbon tidak valid"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	advance, err := h.advanceRepo.FindAdvanceByID(ctx, objID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fmt.Sprintf("gagal mendapatkan kasbon: %v", err)})
	}
	if advance == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "kasbon tidak ditemukan"})
	}

	// Cicilan pertama jatuh sebulan setelah tanggal pengajuan.
	start := advance.RequestDate.AddDate(0, 1, 0)
	rr, err := rrule.NewRRule(rrule.ROption{
		Freq:    rrule.MONTHLY,
		Count:   advance.RepaymentMonths,
		Dtstart: start,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal membuat jadwal cicilan."})
	}

	dueDates := rr.All()
	schedule := make([]models.AdvanceInstallment, 0, len(dueDates))
	for i, due := range dueDates {
		amount := advance.MonthlyDeduction
		if i == len(dueDates)-1 {
			// Sisa pembulatan dibebankan ke cicilan terakhir supaya
			// total jadwal persis sama dengan jumlah kasbon.
			amount = finance.RoundCurrency(advance.Amount - advance.MonthlyDeduction*float64(len(dueDates)-1))
		}
		schedule = append(schedule, models.AdvanceInstallment{
			Number:  i + 1,
			DueDate: due,
			Amount:  amount,
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"advance":  advance,
		"schedule": schedule,
	})
}

// DeleteAdvance godoc
// @Summary Delete Advance
// @Tags Advances
// @Produce json
// @Security BearerAuth
// @Param id path string true "Advance ID"
// @Success 200 {object} models.MessageResponse
// @Failure 404 {object} models.NotFoundErrorResponse
// @Router /advances/{id} [delete]
func (h *AdvanceHandler) DeleteAdvance(c *fiber.Ctx) error {
	idParam := c.Params("id")
	objID, err := primitive.ObjectIDFromHex(idParam)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "format ID kasbon tidak valid"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	result, err := h.advanceRepo.DeleteAdvance(ctx, objID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fmt.Sprintf("gagal menghapus kasbon: %v", err)})
	}
	if result.DeletedCount == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "kasbon tidak ditemukan"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":    "Kasbon berhasil dihapus",
		"advance_id": idParam,
	})
}

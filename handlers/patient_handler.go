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

type PatientHandler struct {
	patientRepo repository.PatientRepository
	paymentRepo repository.PaymentRepository
}

func NewPatientHandler(patientRepo repository.PatientRepository, paymentRepo repository.PaymentRepository) *PatientHandler {
	return &PatientHandler{
		patientRepo: patientRepo,
		paymentRepo: paymentRepo,
	}
}

const dateLayout = "2006-01-02"

// cigaretteCostFor menurunkan biaya rokok harian: override tersimpan
// menang, selain itu tarif standar tipe-nya. Tipe kosong dianggap "none",
// tidak pernah diisi acak.
func cigaretteCostFor(cigaretteType string, override float64) (string, float64) {
	if cigaretteType == "" {
		cigaretteType = finance.CigaretteNone
	}
	if override > 0 {
		return cigaretteType, override
	}
	return cigaretteType, finance.CigaretteCost(cigaretteType)
}

// CreatePatient godoc
// @Summary Create Patient
// @Description Mendaftarkan pasien baru (butuh permission manage_patients)
// @Tags Patients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param patient body models.PatientCreatePayload true "Data pasien"
// @Success 201 {object} models.MessageResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /patients [post]
func (h *PatientHandler) CreatePatient(c *fiber.Ctx) error {
	var payload models.PatientCreatePayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body", "details": err.Error()})
	}

	if errors := util.ValidateStruct(payload); errors != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errors})
	}

	admissionDate, err := time.Parse(dateLayout, payload.AdmissionDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "format admission_date tidak valid"})
	}

	cigaretteType, cigaretteCost := cigaretteCostFor(payload.DailyCigaretteType, payload.DailyCigaretteCost)

	newPatient := &models.Patient{
		Name:               payload.Name,
		PatientType:        payload.PatientType,
		AdmissionDate:      admissionDate,
		DailyCost:          payload.DailyCost,
		DailyCigaretteType: cigaretteType,
		DailyCigaretteCost: cigaretteCost,
		Status:             models.PatientStatusActive,
		TotalPaid:          0,
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	result, err := h.patientRepo.CreatePatient(ctx, newPatient)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fmt.Sprintf("gagal mendaftarkan pasien: %v", err)})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":    "Pasien berhasil didaftarkan",
		"patient_id": result.InsertedID,
	})
}

// GetAllPatients godoc
// @Summary Get All Patients
// @Description Mendapatkan daftar pasien, bisa difilter status (butuh permission view_patients)
// @Tags Patients
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status (active/discharged)"
// @Success 200 {object} object{data=array,total=int}
// @Router /patients [get]
func (h *PatientHandler) GetAllPatients(c *fiber.Ctx) error {
	filter := bson.M{}
	if status := c.Query("status", ""); status != "" {
		filter["status"] = status
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	patients, err := h.patientRepo.GetAllPatients(ctx, filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fmt.Sprintf("gagal mendapatkan pasien: %v", err)})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data":  patients,
		"total": len(patients),
	})
}

// GetPatientByID godoc
// @Summary Get Patient by ID
// @Tags Patients
// @Produce json
// @Security BearerAuth
// @Param id path string true "Patient ID"
// @Success 200 {object} models.Patient
// @Failure 404 {object} models.NotFoundErrorResponse
// @Router /patients/{id} [get]
func (h *PatientHandler) GetPatientByID(c *fiber.Ctx) error {
	objID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "format ID pasien tidak valid"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	patient, err := h.patientRepo.FindPatientByID(ctx, objID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fmt.Sprintf("gagal mendapatkan pasien: %v", err)})
	}
	if patient == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "pasien tidak ditemukan"})
	}

	return c.Status(fiber.StatusOK).JSON(patient)
}

// UpdatePatient godoc
// @Summary Update Patient
// @Description Update data pasien (butuh permission manage_patients)
// @Tags Patients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Patient ID"
// @Param patient body models.PatientUpdatePayload true "Data update pasien"
// @Success 200 {object} models.MessageResponse
// @Failure 404 {object} models.NotFoundErrorResponse
// @Router /patients/{id} [put]
func (h *PatientHandler) UpdatePatient(c *fiber.Ctx) error {
	idParam := c.Params("id")
	objID, err := primitive.ObjectIDFromHex(idParam)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "format ID pasien tidak valid"})
	}

	var payload models.PatientUpdatePayload
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
	if payload.PatientType != "" {
		updateData["patient_type"] = payload.PatientType
	}
	if payload.AdmissionDate != "" {
		admissionDate, err := time.Parse(dateLayout, payload.AdmissionDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "format admission_date tidak valid"})
		}
		updateData["admission_date"] = admissionDate
	}
	if payload.DailyCost != nil {
		updateData["daily_cost"] = *payload.DailyCost
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
	if len(updateData) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "tidak ada data yang diupdate"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	result, err := h.patientRepo.UpdatePatient(ctx, objID, updateData)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fmt.Sprintf("gagal mengupdate pasien: %v", err)})
	}
	if result.MatchedCount == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "pasien tidak ditemukan"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":    "Pasien berhasil diupdate",
		"patient_id": idParam,
	})
}

// DischargePatient godoc
// @Summary Discharge Patient
// @Description Memulangkan pasien dan mengunci tanggal pulang (butuh permission manage_patients)
// @Tags Patients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Patient ID"
// @Param discharge body models.PatientDischargePayload true "Tanggal pulang"
// @Success 200 {object} models.MessageResponse
// @Failure 404 {object} models.NotFoundErrorResponse
// @Router /patients/{id}/discharge [post]
func (h *PatientHandler) DischargePatient(c *fiber.Ctx) error {
	idParam := c.Params("id")
	objID, err := primitive.ObjectIDFromHex(idParam)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "format ID pasien tidak valid"})
	}

	var payload models.PatientDischargePayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body", "details": err.Error()})
	}

	if errors := util.ValidateStruct(payload); errors != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errors})
	}

	dischargeDate, err := time.Parse(dateLayout, payload.DischargeDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "format discharge_date tidak valid"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	result, err := h.patientRepo.UpdatePatient(ctx, objID, bson.M{
		"discharge_date": dischargeDate,
		"status":         models.PatientStatusDischarged,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fmt.Sprintf("gagal memulangkan pasien: %v", err)})
	}
	if result.MatchedCount == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "pasien tidak ditemukan"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":    "Pasien berhasil dipulangkan",
		"patient_id": idParam,
	})
}

// DeletePatient godoc
// @Summary Delete Patient
// @Tags Patients
// @Produce json
// @Security BearerAuth
// @Param id path string true "Patient ID"
// @Success 200 {object} models.MessageResponse
// @Failure 404 {object} models.NotFoundErrorResponse
// @Router /patients/{id} [delete]
func (h *PatientHandler) DeletePatient(c *fiber.Ctx) error {
	idParam := c.Params("id")
	objID, err := primitive.ObjectIDFromHex(idParam)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "format ID pasien tidak valid"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	result, err := h.patientRepo.DeletePatient(ctx, objID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fmt.Sprintf("gagal menghapus pasien: %v", err)})
	}
	if result.DeletedCount == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "pasien tidak ditemukan"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":    "Pasien berhasil dihapus",
		"patient_id": idParam,
	})
}

// GetPatientAccount godoc
// @Summary Get Patient Account Statement
// @Description Rekening pasien: lama rawat, total biaya, total bayar, dan saldo. Saldo dihitung ulang dari daftar pembayaran, bukan dari counter tersimpan (butuh permission view_finance)
// @Tags Patients
// @Produce json
// @Security BearerAuth
// @Param id path string true "Patient ID"
// @Success 200 {object} object{patient=models.Patient,account=finance.AccountStatement}
// @Failure 404 {object} models.NotFoundErrorResponse
// @Router /patients/{id}/account [get]
func (h *PatientHandler) GetPatientAccount(c *fiber.Ctx) error {
	objID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "format ID pasien tidak valid"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	patient, err := h.patientRepo.FindPatientByID(ctx, objID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fmt.Sprintf("gagal mendapatkan pasien: %v", err)})
	}
	if patient == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "pasien tidak ditemukan"})
	}

	payments, err := h.paymentRepo.GetPaymentsByPatient(ctx, objID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fmt.Sprintf("gagal mendapatkan pembayaran pasien: %v", err)})
	}

	amounts := make([]float64, 0, len(payments))
	for _, p := range payments {
		amounts = append(amounts, p.Amount)
	}

	account := finance.PatientAccount(
		patient.AdmissionDate,
		patient.DischargeDate,
		patient.DailyCost,
		patient.DailyCigaretteCost,
		amounts,
		time.Now(),
	)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"patient":  patient,
		"account":  account,
		"payments": payments,
	})
}

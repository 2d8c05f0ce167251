package handlers

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"Sistem-Administrasi-Rehabilitasi/models"
	util "Sistem-Administrasi-Rehabilitasi/pkg/utils"
	"Sistem-Administrasi-Rehabilitasi/repository"
)

type PaymentHandler struct {
	paymentRepo repository.PaymentRepository
	patientRepo repository.PatientRepository
}

func NewPaymentHandler(paymentRepo repository.PaymentRepository, patientRepo repository.PatientRepository) *PaymentHandler {
	return &PaymentHandler{
		paymentRepo: paymentRepo,
		patientRepo: patientRepo,
	}
}

// CreatePayment godoc
// @Summary Create Payment
// @Description Mencatat pembayaran pasien dan menambah total_paid pasien secara atomik (butuh permission manage_finance)
// @Tags Payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payment body models.PaymentCreatePayload true "Data pembayaran"
// @Success 201 {object} object{message=string,payment_id=string,receipt_number=string}
// @Failure 400 {object} models.ErrorResponse
// @Router /payments [post]
func (h *PaymentHandler) CreatePayment(c *fiber.Ctx) error {
	var payload models.PaymentCreatePayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body", "details": err.Error()})
	}

	if errors := util.ValidateStruct(payload); errors != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errors})
	}

	patientID, err := primitive.ObjectIDFromHex(payload.PatientID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "format ID pasien tidak valid"})
	}

	paymentDate, err := time.Parse(dateLayout, payload.PaymentDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "format payment_date tidak valid"})
	}

	newPayment := &models.Payment{
		PatientID:     patientID,
		Amount:        payload.Amount,
		PaymentDate:   paymentDate,
		PaymentMethod: payload.PaymentMethod,
		ReceiptNumber: uuid.NewString(),
		Notes:         payload.Notes,
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	result, err := h.paymentRepo.CreatePayment(ctx, newPayment)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fmt.Sprintf("gagal mencatat pembayaran: %v", err)})
	}

	// Pembayaran tetap sah walaupun pasiennya sudah tidak ada; kegagalan
	// update saldo dicatat sebagai peringatan integritas, bukan error.
	if err := h.patientRepo.ApplyPaymentDelta(ctx, patientID, payload.Amount); err != nil {
		log.Printf("Peringatan integritas: pembayaran %s mereferensikan pasien %s yang gagal diupdate: %v",
			newPayment.ReceiptNumber, payload.PatientID, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":        "Pembayaran berhasil dicatat",
		"payment_id":     result.InsertedID,
		"receipt_number": newPayment.ReceiptNumber,
	})
}

// GetAllPayments godoc
// @Summary Get All Payments
// @Tags Payments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{data=array,total=int}
// @Router /payments [get]
func (h *PaymentHandler) GetAllPayments(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	payments, err := h.paymentRepo.GetAllPayments(ctx, bson.M{})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fmt.Sprintf("gagal mendapatkan pembayaran: %v", err)})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data":  payments,
		"total": len(payments),
	})
}

// GetPaymentsByPatient godoc
// @Summary Get Payments by Patient
// @Tags Payments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Patient ID"
// @Success 200 {object} object{data=array,total=int}
// @Router /patients/{id}/payments [get]
func (h *PaymentHandler) GetPaymentsByPatient(c *fiber.Ctx) error {
	patientID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "format ID pasien tidak valid"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	payments, err := h.paymentRepo.GetPaymentsByPatient(ctx, patientID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fmt.Sprintf("gagal mendapatkan pembayaran pasien: %v", err)})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data":  payments,
		"total": len(payments),
	})
}

// UpdatePayment godoc
// @Summary Update Payment
// @Description Mengubah pembayaran; selisih amount ikut mengoreksi total_paid pasien (butuh permission manage_finance)
// @Tags Payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Payment ID"
// @Param payment body models.PaymentUpdatePayload true "Data update pembayaran"
// @Success 200 {object} models.MessageResponse
// @Failure 404 {object} models.NotFoundErrorResponse
// @Router /payments/{id} [put]
func (h *PaymentHandler) UpdatePayment(c *fiber.Ctx) error {
	idParam := c.Params("id")
	objID, err := primitive.ObjectIDFromHex(idParam)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "format ID pembayaran tidak valid"})
	}

	var payload models.PaymentUpdatePayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body", "details": err.Error()})
	}

	if errors := util.ValidateStruct(payload); errors != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errors})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	existing, err := h.paymentRepo.FindPaymentByID(ctx, objID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fmt.Sprintf("gagal mendapatkan pembayaran: %v", err)})
	}
	if existing == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "pembayaran tidak ditemukan"})
	}

	updateData := bson.M{}
	if payload.Amount != nil {
		updateData["amount"] = *payload.Amount
	}
	if payload.PaymentDate != "" {
		paymentDate, err := time.Parse(dateLayout, payload.PaymentDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "format payment_date tidak valid"})
		}
		updateData["payment_date"] = paymentDate
	}
	if payload.PaymentMethod != "" {
		updateData["payment_method"] = payload.PaymentMethod
	}
	if payload.Notes != "" {
		updateData["notes"] = payload.Notes
	}
	if len(updateData) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "tidak ada data yang diupdate"})
	}

	if _, err := h.paymentRepo.UpdatePayment(ctx, objID, updateData); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fmt.Sprintf("gagal mengupdate pembayaran: %v", err)})
	}

	// total_paid dikoreksi sebesar selisihnya; hasil dijepit minimal 0
	// di sisi storage.
	if payload.Amount != nil && *payload.Amount != existing.Amount {
		delta := *payload.Amount - existing.Amount
		if err := h.patientRepo.ApplyPaymentDelta(ctx, existing.PatientID, delta); err != nil {
			log.Printf("Peringatan integritas: koreksi pembayaran %s gagal diterapkan ke pasien %s: %v",
				idParam, existing.PatientID.Hex(), err)
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":    "Pembayaran berhasil diupdate",
		"payment_id": idParam,
	})
}

// DeletePayment godoc
// @Summary Delete Payment
// @Description Menghapus pembayaran dan mengurangi total_paid pasien (butuh permission manage_finance)
// @Tags Payments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Payment ID"
// @Success 200 {object} models.MessageResponse
// @Failure 404 {object} models.NotFoundErrorResponse
// @Router /payments/{id} [delete]
func (h *PaymentHandler) DeletePayment(c *fiber.Ctx) error {
	idParam := c.Params("id")
	objID, err := primitive.ObjectIDFromHex(idParam)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "format ID pembayaran tidak valid"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	existing, err := h.paymentRepo.FindPaymentByID(ctx, objID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fmt.Sprintf("gagal mendapatkan pembayaran: %v", err)})
	}
	if existing == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "pembayaran tidak ditemukan"})
	}

	if _, err := h.paymentRepo.DeletePayment(ctx, objID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fmt.Sprintf("gagal menghapus pembayaran: %v", err)})
	}

	if err := h.patientRepo.ApplyPaymentDelta(ctx, existing.PatientID, -existing.Amount); err != nil {
		log.Printf("Peringatan integritas: pembatalan pembayaran %s gagal diterapkan ke pasien %s: %v",
			idParam, existing.PatientID.Hex(), err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":    "Pembayaran berhasil dihapus",
		"payment_id": idParam,
	})
}

// GetReceiptQR godoc
// @Summary Get Payment Receipt QR
// @Description Membuat QR Code berisi nomor kuitansi untuk verifikasi di front desk (butuh permission view_finance)
// @Tags Payments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Payment ID"
// @Success 200 {object} object{receipt_number=string,qr_code_image=string}
// @Failure 404 {object} models.NotFoundErrorResponse
// @Router /payments/{id}/receipt-qr [get]
func (h *PaymentHandler) GetReceiptQR(c *fiber.Ctx) error {
	objID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "format ID pembayaran tidak valid"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	payment, err := h.paymentRepo.FindPaymentByID(ctx, objID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fmt.Sprintf("gagal mendapatkan pembayaran: %v", err)})
	}
	if payment == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "pembayaran tidak ditemukan"})
	}

	png, err := qrcode.Encode(payment.ReceiptNumber, qrcode.Medium, 256)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal membuat gambar QR Code."})
	}

	encodedString := base64.StdEncoding.EncodeToString(png)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"receipt_number": payment.ReceiptNumber,
		"qr_code_image":  "data:image/png;base64," + encodedString,
	})
}

package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Sistem-Administrasi-Rehabilitasi/config/middleware"
	"Sistem-Administrasi-Rehabilitasi/models"
	"Sistem-Administrasi-Rehabilitasi/pkg/finance"
	"Sistem-Administrasi-Rehabilitasi/pkg/rbac"
)

func setupPatientApp(patientRepo *fakePatientRepo, paymentRepo *fakePaymentRepo) *fiber.App {
	app := fiber.New()
	h := NewPatientHandler(patientRepo, paymentRepo)
	ph := NewPaymentHandler(paymentRepo, patientRepo)

	group := app.Group("/api/v1/patients", middleware.AuthMiddleware())
	group.Get("/:id", middleware.RequirePermission(rbac.PermViewPatients), h.GetPatientByID)
	group.Get("/:id/account", middleware.RequirePermission(rbac.PermViewFinance), h.GetPatientAccount)
	group.Get("/:id/payments", middleware.RequirePermission(rbac.PermViewFinance), ph.GetPaymentsByPatient)
	return app
}

func TestPatientAccountRequiresFinancePermission(t *testing.T) {
	patientRepo := newFakePatientRepo()
	paymentRepo := newFakePaymentRepo()
	app := setupPatientApp(patientRepo, paymentRepo)
	patient := seedPatient(t, patientRepo)

	t.Run("perawat boleh melihat data pasien", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(http.MethodGet, "/api/v1/patients/"+patient.ID.Hex(), tokenFor(t, rbac.RoleNurse), nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("perawat tanpa view_finance tidak boleh melihat rekening", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(http.MethodGet, "/api/v1/patients/"+patient.ID.Hex()+"/account", tokenFor(t, rbac.RoleNurse), nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})

	t.Run("perawat tanpa view_finance tidak boleh melihat pembayaran", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(http.MethodGet, "/api/v1/patients/"+patient.ID.Hex()+"/payments", tokenFor(t, rbac.RoleNurse), nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})

	t.Run("akuntan boleh melihat rekening", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(http.MethodGet, "/api/v1/patients/"+patient.ID.Hex()+"/account", tokenFor(t, rbac.RoleAccountant), nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})
}

func TestPatientAccountRecomputedFromPayments(t *testing.T) {
	patientRepo := newFakePatientRepo()
	paymentRepo := newFakePaymentRepo()
	app := setupPatientApp(patientRepo, paymentRepo)

	patient := &models.Patient{
		Name:               "Pasien Uji",
		Status:             models.PatientStatusActive,
		AdmissionDate:      time.Now().Add(-71 * time.Hour),
		DailyCost:          100,
		DailyCigaretteCost: 25,
		// Counter tersimpan sengaja nol: saldo wajib dihitung ulang dari
		// daftar pembayaran.
		TotalPaid: 0,
	}
	_, err := patientRepo.CreatePatient(context.Background(), patient)
	require.NoError(t, err)

	for _, amount := range []float64{100, 50} {
		_, err := paymentRepo.CreatePayment(context.Background(), &models.Payment{PatientID: patient.ID, Amount: amount, PaymentMethod: "cash"})
		require.NoError(t, err)
	}

	resp, err := app.Test(jsonRequest(http.MethodGet, "/api/v1/patients/"+patient.ID.Hex()+"/account", tokenFor(t, rbac.RoleAccountant), nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Account finance.AccountStatement `json:"account"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	// 71 jam dirawat dibulatkan ke atas jadi 3 hari.
	assert.Equal(t, 3, body.Account.Days)
	assert.Equal(t, 375.0, body.Account.GrandTotal)
	assert.Equal(t, 150.0, body.Account.TotalPaid)
	assert.Equal(t, 225.0, body.Account.Balance)
	assert.Equal(t, finance.BalanceOwing, body.Account.Status)
}

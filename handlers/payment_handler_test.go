package handlers

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"Sistem-Administrasi-Rehabilitasi/config/middleware"
	"Sistem-Administrasi-Rehabilitasi/models"
	"Sistem-Administrasi-Rehabilitasi/pkg/paseto"
	"Sistem-Administrasi-Rehabilitasi/pkg/rbac"
	"Sistem-Administrasi-Rehabilitasi/repository"
)

func init() {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		panic(err)
	}
	os.Setenv("PASETO_SECRET", base64.URLEncoding.EncodeToString(raw))
}

// fakePatientRepo meniru semantik ApplyPaymentDelta milik Mongo: update
// atomik per dokumen dengan hasil dijepit minimal 0.
type fakePatientRepo struct {
	mu       sync.Mutex
	patients map[primitive.ObjectID]*models.Patient
}

func newFakePatientRepo() *fakePatientRepo {
	return &fakePatientRepo{patients: make(map[primitive.ObjectID]*models.Patient)}
}

func (f *fakePatientRepo) CreatePatient(_ context.Context, patient *models.Patient) (*mongo.InsertOneResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if patient.ID.IsZero() {
		patient.ID = primitive.NewObjectID()
	}
	f.patients[patient.ID] = patient
	return &mongo.InsertOneResult{InsertedID: patient.ID}, nil
}

func (f *fakePatientRepo) FindPatientByID(_ context.Context, id primitive.ObjectID) (*models.Patient, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.patients[id]
	if !ok {
		return nil, nil
	}
	clone := *p
	return &clone, nil
}

func (f *fakePatientRepo) GetAllPatients(_ context.Context, _ bson.M) ([]models.Patient, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Patient, 0, len(f.patients))
	for _, p := range f.patients {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakePatientRepo) GetActivePatients(ctx context.Context) ([]models.Patient, error) {
	all, _ := f.GetAllPatients(ctx, bson.M{})
	out := all[:0]
	for _, p := range all {
		if p.Status == models.PatientStatusActive {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePatientRepo) UpdatePatient(_ context.Context, id primitive.ObjectID, _ bson.M) (*mongo.UpdateResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.patients[id]; !ok {
		return &mongo.UpdateResult{}, nil
	}
	return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

func (f *fakePatientRepo) DeletePatient(_ context.Context, id primitive.ObjectID) (*mongo.DeleteResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.patients[id]; !ok {
		return &mongo.DeleteResult{}, nil
	}
	delete(f.patients, id)
	return &mongo.DeleteResult{DeletedCount: 1}, nil
}

func (f *fakePatientRepo) ApplyPaymentDelta(_ context.Context, id primitive.ObjectID, delta float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.patients[id]
	if !ok {
		return repository.ErrPatientNotFound
	}
	p.TotalPaid += delta
	if p.TotalPaid < 0 {
		p.TotalPaid = 0
	}
	return nil
}

func (f *fakePatientRepo) totalPaid(id primitive.ObjectID) float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.patients[id].TotalPaid
}

type fakePaymentRepo struct {
	mu       sync.Mutex
	payments map[primitive.ObjectID]*models.Payment
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{payments: make(map[primitive.ObjectID]*models.Payment)}
}

func (f *fakePaymentRepo) CreatePayment(_ context.Context, payment *models.Payment) (*mongo.InsertOneResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	payment.ID = primitive.NewObjectID()
	f.payments[payment.ID] = payment
	return &mongo.InsertOneResult{InsertedID: payment.ID}, nil
}

func (f *fakePaymentRepo) FindPaymentByID(_ context.Context, id primitive.ObjectID) (*models.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.payments[id]
	if !ok {
		return nil, nil
	}
	clone := *p
	return &clone, nil
}

func (f *fakePaymentRepo) GetAllPayments(_ context.Context, _ bson.M) ([]models.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Payment, 0, len(f.payments))
	for _, p := range f.payments {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakePaymentRepo) GetPaymentsByPatient(_ context.Context, patientID primitive.ObjectID) ([]models.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Payment
	for _, p := range f.payments {
		if p.PatientID == patientID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakePaymentRepo) UpdatePayment(_ context.Context, id primitive.ObjectID, updateData bson.M) (*mongo.UpdateResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.payments[id]
	if !ok {
		return &mongo.UpdateResult{}, nil
	}
	if amount, ok := updateData["amount"].(float64); ok {
		p.Amount = amount
	}
	return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

func (f *fakePaymentRepo) DeletePayment(_ context.Context, id primitive.ObjectID) (*mongo.DeleteResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.payments[id]; !ok {
		return &mongo.DeleteResult{}, nil
	}
	delete(f.payments, id)
	return &mongo.DeleteResult{DeletedCount: 1}, nil
}

func setupPaymentApp(patientRepo repository.PatientRepository, paymentRepo repository.PaymentRepository) *fiber.App {
	app := fiber.New()
	h := NewPaymentHandler(paymentRepo, patientRepo)

	group := app.Group("/api/v1/payments", middleware.AuthMiddleware())
	group.Get("/", middleware.RequirePermission(rbac.PermViewFinance), h.GetAllPayments)
	group.Post("/", middleware.RequirePermission(rbac.PermManageFinance), h.CreatePayment)
	group.Put("/:id", middleware.RequirePermission(rbac.PermManageFinance), h.UpdatePayment)
	group.Delete("/:id", middleware.RequirePermission(rbac.PermManageFinance), h.DeletePayment)
	return app
}

func tokenFor(t *testing.T, role string) string {
	t.Helper()
	token, err := paseto.GenerateToken(&models.User{
		ID:          primitive.NewObjectID(),
		Username:    role + "-test",
		Role:        role,
		Permissions: rbac.DefaultPermissions(role),
	})
	require.NoError(t, err)
	return token
}

func jsonRequest(method, target, token string, body interface{}) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func seedPatient(t *testing.T, repo *fakePatientRepo) *models.Patient {
	t.Helper()
	patient := &models.Patient{
		Name:   "Pasien Uji",
		Status: models.PatientStatusActive,
	}
	_, err := repo.CreatePatient(context.Background(), patient)
	require.NoError(t, err)
	return patient
}

func TestCreatePaymentIncrementsTotalPaid(t *testing.T) {
	patientRepo := newFakePatientRepo()
	paymentRepo := newFakePaymentRepo()
	app := setupPaymentApp(patientRepo, paymentRepo)
	patient := seedPatient(t, patientRepo)
	token := tokenFor(t, rbac.RoleReceptionist)

	payload := models.PaymentCreatePayload{
		PatientID:     patient.ID.Hex(),
		Amount:        1500,
		PaymentDate:   "2026-08-01",
		PaymentMethod: "cash",
	}
	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/v1/payments/", token, payload))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.NotEmpty(t, body["receipt_number"])

	assert.Equal(t, 1500.0, patientRepo.totalPaid(patient.ID))
}

func TestCreatePaymentMissingPatientStillSucceeds(t *testing.T) {
	patientRepo := newFakePatientRepo()
	paymentRepo := newFakePaymentRepo()
	app := setupPaymentApp(patientRepo, paymentRepo)
	token := tokenFor(t, rbac.RoleReceptionist)

	payload := models.PaymentCreatePayload{
		PatientID:     primitive.NewObjectID().Hex(),
		Amount:        200,
		PaymentDate:   "2026-08-01",
		PaymentMethod: "transfer",
	}
	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/v1/payments/", token, payload))
	require.NoError(t, err)

	// Pasien tidak ada: pembayaran tetap tercatat, hanya saldo yang gagal
	// diupdate dan dicatat sebagai peringatan.
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	payments, err := paymentRepo.GetAllPayments(context.Background(), bson.M{})
	require.NoError(t, err)
	assert.Len(t, payments, 1)
}

func TestCreatePaymentValidation(t *testing.T) {
	patientRepo := newFakePatientRepo()
	app := setupPaymentApp(patientRepo, newFakePaymentRepo())
	patient := seedPatient(t, patientRepo)
	token := tokenFor(t, rbac.RoleReceptionist)

	tests := []struct {
		name    string
		payload models.PaymentCreatePayload
	}{
		{
			name: "amount nol",
			payload: models.PaymentCreatePayload{
				PatientID: patient.ID.Hex(), Amount: 0, PaymentDate: "2026-08-01", PaymentMethod: "cash",
			},
		},
		{
			name: "metode tidak dikenal",
			payload: models.PaymentCreatePayload{
				PatientID: patient.ID.Hex(), Amount: 100, PaymentDate: "2026-08-01", PaymentMethod: "crypto",
			},
		},
		{
			name: "tanggal salah format",
			payload: models.PaymentCreatePayload{
				PatientID: patient.ID.Hex(), Amount: 100, PaymentDate: "01-08-2026", PaymentMethod: "cash",
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := app.Test(jsonRequest(http.MethodPost, "/api/v1/payments/", token, tc.payload))
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		})
	}

	assert.Equal(t, 0.0, patientRepo.totalPaid(patient.ID))
}

func TestUpdatePaymentAppliesDelta(t *testing.T) {
	patientRepo := newFakePatientRepo()
	paymentRepo := newFakePaymentRepo()
	app := setupPaymentApp(patientRepo, paymentRepo)
	patient := seedPatient(t, patientRepo)
	token := tokenFor(t, rbac.RoleReceptionist)

	payment := &models.Payment{PatientID: patient.ID, Amount: 1000, PaymentMethod: "cash"}
	_, err := paymentRepo.CreatePayment(context.Background(), payment)
	require.NoError(t, err)
	require.NoError(t, patientRepo.ApplyPaymentDelta(context.Background(), patient.ID, 1000))

	newAmount := 1300.0
	resp, err := app.Test(jsonRequest(http.MethodPut, "/api/v1/payments/"+payment.ID.Hex(), token, models.PaymentUpdatePayload{Amount: &newAmount}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	assert.Equal(t, 1300.0, patientRepo.totalPaid(patient.ID))
}

func TestDeletePaymentDecrementsAndClamps(t *testing.T) {
	patientRepo := newFakePatientRepo()
	paymentRepo := newFakePaymentRepo()
	app := setupPaymentApp(patientRepo, paymentRepo)
	patient := seedPatient(t, patientRepo)
	token := tokenFor(t, rbac.RoleReceptionist)

	payment := &models.Payment{PatientID: patient.ID, Amount: 500, PaymentMethod: "cash"}
	_, err := paymentRepo.CreatePayment(context.Background(), payment)
	require.NoError(t, err)
	// Saldo sengaja lebih kecil dari amount supaya pengurangan melewati nol.
	require.NoError(t, patientRepo.ApplyPaymentDelta(context.Background(), patient.ID, 300))

	resp, err := app.Test(jsonRequest(http.MethodDelete, "/api/v1/payments/"+payment.ID.Hex(), token, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	assert.Equal(t, 0.0, patientRepo.totalPaid(patient.ID))

	resp, err = app.Test(jsonRequest(http.MethodDelete, "/api/v1/payments/"+payment.ID.Hex(), token, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestPaymentAuthorization(t *testing.T) {
	patientRepo := newFakePatientRepo()
	app := setupPaymentApp(patientRepo, newFakePaymentRepo())
	patient := seedPatient(t, patientRepo)

	payload := models.PaymentCreatePayload{
		PatientID:     patient.ID.Hex(),
		Amount:        100,
		PaymentDate:   "2026-08-01",
		PaymentMethod: "cash",
	}

	t.Run("tanpa token dapat 401", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(http.MethodPost, "/api/v1/payments/", "", payload))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("perawat tanpa manage_finance dapat 403", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(http.MethodPost, "/api/v1/payments/", tokenFor(t, rbac.RoleNurse), payload))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})

	t.Run("admin selalu lolos", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(http.MethodPost, "/api/v1/payments/", tokenFor(t, rbac.RoleAdmin), payload))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	})
}

func TestConcurrentPaymentsDoNotLoseUpdates(t *testing.T) {
	patientRepo := newFakePatientRepo()
	paymentRepo := newFakePaymentRepo()
	app := setupPaymentApp(patientRepo, paymentRepo)
	patient := seedPatient(t, patientRepo)
	token := tokenFor(t, rbac.RoleReceptionist)

	const n = 20
	const amount = 100.0

	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			payload := models.PaymentCreatePayload{
				PatientID:     patient.ID.Hex(),
				Amount:        amount,
				PaymentDate:   "2026-08-01",
				PaymentMethod: "cash",
			}
			resp, err := app.Test(jsonRequest(http.MethodPost, "/api/v1/payments/", token, payload), -1)
			if err != nil {
				errs <- err
				return
			}
			if resp.StatusCode != fiber.StatusCreated {
				errs <- fmt.Errorf("status tidak terduga: %d", resp.StatusCode)
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	assert.Equal(t, float64(n)*amount, patientRepo.totalPaid(patient.ID))
}

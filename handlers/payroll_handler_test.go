package handlers

import (
	"context"
	"encoding/json"
	"net/http"
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
	"Sistem-Administrasi-Rehabilitasi/pkg/rbac"
)

type fakeStaffRepo struct {
	mu    sync.Mutex
	staff map[primitive.ObjectID]*models.Staff
}

func newFakeStaffRepo() *fakeStaffRepo {
	return &fakeStaffRepo{staff: make(map[primitive.ObjectID]*models.Staff)}
}

func (f *fakeStaffRepo) CreateStaff(_ context.Context, staff *models.Staff) (*mongo.InsertOneResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if staff.ID.IsZero() {
		staff.ID = primitive.NewObjectID()
	}
	f.staff[staff.ID] = staff
	return &mongo.InsertOneResult{InsertedID: staff.ID}, nil
}

func (f *fakeStaffRepo) FindStaffByID(_ context.Context, id primitive.ObjectID) (*models.Staff, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.staff[id]
	if !ok {
		return nil, nil
	}
	clone := *s
	return &clone, nil
}

func (f *fakeStaffRepo) GetAllStaff(_ context.Context, _ bson.M) ([]models.Staff, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Staff, 0, len(f.staff))
	for _, s := range f.staff {
		out = append(out, *s)
	}
	return out, nil
}

func (f *fakeStaffRepo) GetActiveStaff(ctx context.Context) ([]models.Staff, error) {
	all, _ := f.GetAllStaff(ctx, bson.M{})
	out := all[:0]
	for _, s := range all {
		if s.IsActive {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeStaffRepo) UpdateStaff(_ context.Context, id primitive.ObjectID, _ bson.M) (*mongo.UpdateResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.staff[id]; !ok {
		return &mongo.UpdateResult{}, nil
	}
	return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

func (f *fakeStaffRepo) DeleteStaff(_ context.Context, id primitive.ObjectID) (*mongo.DeleteResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.staff[id]; !ok {
		return &mongo.DeleteResult{}, nil
	}
	delete(f.staff, id)
	return &mongo.DeleteResult{DeletedCount: 1}, nil
}

type fakePayrollRepo struct {
	mu       sync.Mutex
	payrolls map[primitive.ObjectID]*models.Payroll
}

func newFakePayrollRepo() *fakePayrollRepo {
	return &fakePayrollRepo{payrolls: make(map[primitive.ObjectID]*models.Payroll)}
}

func (f *fakePayrollRepo) CreatePayroll(_ context.Context, payroll *models.Payroll) (*mongo.InsertOneResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if payroll.ID.IsZero() {
		payroll.ID = primitive.NewObjectID()
	}
	f.payrolls[payroll.ID] = payroll
	return &mongo.InsertOneResult{InsertedID: payroll.ID}, nil
}

func (f *fakePayrollRepo) FindPayrollByID(_ context.Context, id primitive.ObjectID) (*models.Payroll, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.payrolls[id]
	if !ok {
		return nil, nil
	}
	clone := *p
	return &clone, nil
}

func (f *fakePayrollRepo) GetAllPayrolls(_ context.Context, _ bson.M) ([]models.Payroll, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Payroll, 0, len(f.payrolls))
	for _, p := range f.payrolls {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakePayrollRepo) GetPayrollsByStaff(_ context.Context, staffID primitive.ObjectID) ([]models.Payroll, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Payroll
	for _, p := range f.payrolls {
		if p.StaffID == staffID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakePayrollRepo) UpdatePayroll(_ context.Context, id primitive.ObjectID, updateData bson.M) (*mongo.UpdateResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.payrolls[id]
	if !ok {
		return &mongo.UpdateResult{}, nil
	}
	if v, ok := updateData["base_salary"].(float64); ok {
		p.BaseSalary = v
	}
	if v, ok := updateData["bonuses"].(float64); ok {
		p.Bonuses = v
	}
	if v, ok := updateData["advances"].(float64); ok {
		p.Advances = v
	}
	if v, ok := updateData["deductions"].(float64); ok {
		p.Deductions = v
	}
	if v, ok := updateData["net_salary"].(float64); ok {
		p.NetSalary = v
	}
	if v, ok := updateData["status"].(string); ok {
		p.Status = v
	}
	return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

func (f *fakePayrollRepo) DeletePayroll(_ context.Context, id primitive.ObjectID) (*mongo.DeleteResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.payrolls[id]; !ok {
		return &mongo.DeleteResult{}, nil
	}
	delete(f.payrolls, id)
	return &mongo.DeleteResult{DeletedCount: 1}, nil
}

func setupPayrollApp(payrollRepo *fakePayrollRepo, staffRepo *fakeStaffRepo) *fiber.App {
	app := fiber.New()
	h := NewPayrollHandler(payrollRepo, staffRepo)

	group := app.Group("/api/v1/payrolls", middleware.AuthMiddleware())
	group.Post("/", middleware.RequirePermission(rbac.PermManagePayroll), h.CreatePayroll)
	group.Put("/:id", middleware.RequirePermission(rbac.PermManagePayroll), h.UpdatePayroll)
	return app
}

func seedStaff(t *testing.T, repo *fakeStaffRepo) *models.Staff {
	t.Helper()
	staff := &models.Staff{
		Name:          "Staf Uji",
		Position:      "Perawat",
		MonthlySalary: 5000,
		IsActive:      true,
	}
	_, err := repo.CreateStaff(context.Background(), staff)
	require.NoError(t, err)
	return staff
}

func floatPtr(v float64) *float64 { return &v }

func TestUpdatePayrollRecomputesNetSalary(t *testing.T) {
	tests := []struct {
		name    string
		payload models.PayrollUpdatePayload
		wantNet float64
	}{
		{"bonuses saja", models.PayrollUpdatePayload{Bonuses: floatPtr(500)}, 5000 + 500 - 300 - 100},
		{"advances saja", models.PayrollUpdatePayload{Advances: floatPtr(1000)}, 5000 + 200 - 1000 - 100},
		{"deductions saja", models.PayrollUpdatePayload{Deductions: floatPtr(250)}, 5000 + 200 - 300 - 250},
		{"base salary saja", models.PayrollUpdatePayload{BaseSalary: floatPtr(6000)}, 6000 + 200 - 300 - 100},
		{
			"semua komponen",
			models.PayrollUpdatePayload{
				BaseSalary: floatPtr(5500),
				Bonuses:    floatPtr(0),
				Advances:   floatPtr(400),
				Deductions: floatPtr(150),
			},
			5500 + 0 - 400 - 150,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			payrollRepo := newFakePayrollRepo()
			staffRepo := newFakeStaffRepo()
			app := setupPayrollApp(payrollRepo, staffRepo)
			staff := seedStaff(t, staffRepo)

			payroll := &models.Payroll{
				StaffID:    staff.ID,
				Month:      "2026-08",
				BaseSalary: 5000,
				Bonuses:    200,
				Advances:   300,
				Deductions: 100,
				NetSalary:  4800,
				Status:     models.PayrollStatusPending,
			}
			_, err := payrollRepo.CreatePayroll(context.Background(), payroll)
			require.NoError(t, err)

			token := tokenFor(t, rbac.RoleAccountant)
			resp, err := app.Test(jsonRequest(http.MethodPut, "/api/v1/payrolls/"+payroll.ID.Hex(), token, tc.payload))
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusOK, resp.StatusCode)

			var body map[string]interface{}
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tc.wantNet, body["net_salary"])

			stored, err := payrollRepo.FindPayrollByID(context.Background(), payroll.ID)
			require.NoError(t, err)
			assert.Equal(t, tc.wantNet, stored.NetSalary)
		})
	}
}

func TestUpdatePayrollStatusOnlyKeepsNetConsistent(t *testing.T) {
	payrollRepo := newFakePayrollRepo()
	staffRepo := newFakeStaffRepo()
	app := setupPayrollApp(payrollRepo, staffRepo)
	staff := seedStaff(t, staffRepo)

	payroll := &models.Payroll{
		StaffID:    staff.ID,
		Month:      "2026-08",
		BaseSalary: 5000,
		Bonuses:    200,
		Advances:   300,
		Deductions: 100,
		NetSalary:  4800,
		Status:     models.PayrollStatusPending,
	}
	_, err := payrollRepo.CreatePayroll(context.Background(), payroll)
	require.NoError(t, err)

	token := tokenFor(t, rbac.RoleAccountant)
	resp, err := app.Test(jsonRequest(http.MethodPut, "/api/v1/payrolls/"+payroll.ID.Hex(), token, models.PayrollUpdatePayload{Status: models.PayrollStatusPaid}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	stored, err := payrollRepo.FindPayrollByID(context.Background(), payroll.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PayrollStatusPaid, stored.Status)
	assert.Equal(t, 4800.0, stored.NetSalary)
}

func TestCreatePayrollUsesStaffSalaryAsDefault(t *testing.T) {
	payrollRepo := newFakePayrollRepo()
	staffRepo := newFakeStaffRepo()
	app := setupPayrollApp(payrollRepo, staffRepo)
	staff := seedStaff(t, staffRepo)

	payload := models.PayrollCreatePayload{
		StaffID: staff.ID.Hex(),
		Month:   "2026-08",
		Bonuses: 100,
	}
	token := tokenFor(t, rbac.RoleAccountant)
	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/v1/payrolls/", token, payload))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, staff.MonthlySalary+100, body["net_salary"])
}

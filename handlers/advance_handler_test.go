package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"testing"
	"time"

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

type fakeAdvanceRepo struct {
	mu       sync.Mutex
	advances map[primitive.ObjectID]*models.Advance
}

func newFakeAdvanceRepo() *fakeAdvanceRepo {
	return &fakeAdvanceRepo{advances: make(map[primitive.ObjectID]*models.Advance)}
}

func (f *fakeAdvanceRepo) CreateAdvance(_ context.Context, advance *models.Advance) (*mongo.InsertOneResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if advance.ID.IsZero() {
		advance.ID = primitive.NewObjectID()
	}
	f.advances[advance.ID] = advance
	return &mongo.InsertOneResult{InsertedID: advance.ID}, nil
}

func (f *fakeAdvanceRepo) FindAdvanceByID(_ context.Context, id primitive.ObjectID) (*models.Advance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.advances[id]
	if !ok {
		return nil, nil
	}
	clone := *a
	return &clone, nil
}

func (f *fakeAdvanceRepo) GetAllAdvances(_ context.Context, _ bson.M) ([]models.Advance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Advance, 0, len(f.advances))
	for _, a := range f.advances {
		out = append(out, *a)
	}
	return out, nil
}

func (f *fakeAdvanceRepo) GetAdvancesByStaff(_ context.Context, staffID primitive.ObjectID) ([]models.Advance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Advance
	for _, a := range f.advances {
		if a.StaffID == staffID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAdvanceRepo) UpdateAdvance(_ context.Context, id primitive.ObjectID, updateData bson.M) (*mongo.UpdateResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.advances[id]
	if !ok {
		return &mongo.UpdateResult{}, nil
	}
	if v, ok := updateData["status"].(string); ok {
		a.Status = v
	}
	if v, ok := updateData["approved_at"].(time.Time); ok {
		a.ApprovedAt = &v
	}
	if v, ok := updateData["remaining_amount"].(float64); ok {
		a.RemainingAmount = v
	}
	return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

func (f *fakeAdvanceRepo) DeleteAdvance(_ context.Context, id primitive.ObjectID) (*mongo.DeleteResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.advances[id]; !ok {
		return &mongo.DeleteResult{}, nil
	}
	delete(f.advances, id)
	return &mongo.DeleteResult{DeletedCount: 1}, nil
}

func setupAdvanceApp(advanceRepo *fakeAdvanceRepo, staffRepo *fakeStaffRepo) *fiber.App {
	app := fiber.New()
	h := NewAdvanceHandler(advanceRepo, staffRepo)

	group := app.Group("/api/v1/advances", middleware.AuthMiddleware())
	group.Post("/", middleware.RequirePermission(rbac.PermManagePayroll), h.CreateAdvance)
	group.Get("/:id/schedule", middleware.RequirePermission(rbac.PermViewPayroll), h.GetAdvanceSchedule)
	group.Put("/:id/status", middleware.RequirePermission(rbac.PermManagePayroll), h.UpdateAdvanceStatus)
	return app
}

func seedAdvance(t *testing.T, repo *fakeAdvanceRepo, amount float64, months int, monthlyDeduction float64) *models.Advance {
	t.Helper()
	advance := &models.Advance{
		StaffID:          primitive.NewObjectID(),
		Amount:           amount,
		RepaymentMonths:  months,
		MonthlyDeduction: monthlyDeduction,
		RemainingAmount:  amount,
		Status:           models.AdvanceStatusPending,
		RequestDate:      time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC),
	}
	_, err := repo.CreateAdvance(context.Background(), advance)
	require.NoError(t, err)
	return advance
}

func TestApproveAdvanceInitializesRemainingAmount(t *testing.T) {
	advanceRepo := newFakeAdvanceRepo()
	app := setupAdvanceApp(advanceRepo, newFakeStaffRepo())
	advance := seedAdvance(t, advanceRepo, 1200, 4, 300)

	// Sisa kasbon sengaja dibuat tidak sinkron sebelum persetujuan.
	advance.RemainingAmount = 900
	token := tokenFor(t, rbac.RoleAccountant)

	resp, err := app.Test(jsonRequest(http.MethodPut, "/api/v1/advances/"+advance.ID.Hex()+"/status", token, models.AdvanceStatusPayload{Status: models.AdvanceStatusApproved}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	stored, err := advanceRepo.FindAdvanceByID(context.Background(), advance.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AdvanceStatusApproved, stored.Status)
	assert.Equal(t, 1200.0, stored.RemainingAmount)
	require.NotNil(t, stored.ApprovedAt)
}

func TestRejectAdvanceLeavesRemainingAmount(t *testing.T) {
	advanceRepo := newFakeAdvanceRepo()
	app := setupAdvanceApp(advanceRepo, newFakeStaffRepo())
	advance := seedAdvance(t, advanceRepo, 1200, 4, 300)
	token := tokenFor(t, rbac.RoleAccountant)

	resp, err := app.Test(jsonRequest(http.MethodPut, "/api/v1/advances/"+advance.ID.Hex()+"/status", token, models.AdvanceStatusPayload{Status: models.AdvanceStatusRejected}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	stored, err := advanceRepo.FindAdvanceByID(context.Background(), advance.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AdvanceStatusRejected, stored.Status)
	assert.Nil(t, stored.ApprovedAt)
}

func TestUpdateAdvanceStatusNotFound(t *testing.T) {
	advanceRepo := newFakeAdvanceRepo()
	app := setupAdvanceApp(advanceRepo, newFakeStaffRepo())
	token := tokenFor(t, rbac.RoleAccountant)

	resp, err := app.Test(jsonRequest(http.MethodPut, "/api/v1/advances/"+primitive.NewObjectID().Hex()+"/status", token, models.AdvanceStatusPayload{Status: models.AdvanceStatusApproved}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestAdvanceScheduleSumsToAmount(t *testing.T) {
	advanceRepo := newFakeAdvanceRepo()
	app := setupAdvanceApp(advanceRepo, newFakeStaffRepo())
	// 1000 / 3 = 333.33; cicilan terakhir menanggung sisa pembulatan.
	advance := seedAdvance(t, advanceRepo, 1000, 3, 333.33)
	token := tokenFor(t, rbac.RoleAccountant)

	resp, err := app.Test(jsonRequest(http.MethodGet, "/api/v1/advances/"+advance.ID.Hex()+"/schedule", token, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Schedule []models.AdvanceInstallment `json:"schedule"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Schedule, 3)

	var sum float64
	for _, inst := range body.Schedule {
		sum += inst.Amount
	}
	assert.InDelta(t, 1000.0, sum, 0.001)
	assert.Equal(t, 333.33, body.Schedule[0].Amount)
	assert.Equal(t, 333.34, body.Schedule[2].Amount)

	// Cicilan pertama jatuh sebulan setelah tanggal pengajuan.
	assert.Equal(t, time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC), body.Schedule[0].DueDate.UTC())
}

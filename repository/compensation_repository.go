package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"Sistem-Administrasi-Rehabilitasi/config"
	"Sistem-Administrasi-Rehabilitasi/models"
)

// CompensationRepository menangani bonus dan potongan satu kali.
// Dua koleksi dipisah di Mongo tapi bentuk operasinya identik.
type CompensationRepository interface {
	CreateBonus(ctx context.Context, bonus *models.Bonus) (*mongo.InsertOneResult, error)
	GetBonusesByStaff(ctx context.Context, staffID primitive.ObjectID) ([]models.Bonus, error)
	DeleteBonus(ctx context.Context, id primitive.ObjectID) (*mongo.DeleteResult, error)
	CreateDeduction(ctx context.Context, deduction *models.Deduction) (*mongo.InsertOneResult, error)
	GetDeductionsByStaff(ctx context.Context, staffID primitive.ObjectID) ([]models.Deduction, error)
	DeleteDeduction(ctx context.Context, id primitive.ObjectID) (*mongo.DeleteResult, error)
}

type compensationRepository struct {
	bonuses    *mongo.Collection
	deductions *mongo.Collection
}

func NewCompensationRepository() CompensationRepository {
	return &compensationRepository{
		bonuses:    config.GetCollection(config.BonusCollection),
		deductions: config.GetCollection(config.DeductionCollection),
	}
}

func (r *compensationRepository) CreateBonus(ctx context.Context, bonus *models.Bonus) (*mongo.InsertOneResult, error) {
	bonus.ID = primitive.NewObjectID()
	bonus.CreatedAt = time.Now()

	result, err := r.bonuses.InsertOne(ctx, bonus)
	if err != nil {
		return nil, fmt.Errorf("gagal membuat bonus: %w", err)
	}
	return result, nil
}

func (r *compensationRepository) GetBonusesByStaff(ctx context.Context, staffID primitive.ObjectID) ([]models.Bonus, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})

	cursor, err := r.bonuses.Find(ctx, bson.M{"staff_id": staffID}, findOptions)
	if err != nil {
		return nil, fmt.Errorf("gagal menemukan bonus: %w", err)
	}
	defer cursor.Close(ctx)

	var bonuses []models.Bonus
	if err = cursor.All(ctx, &bonuses); err != nil {
		return nil, fmt.Errorf("gagal mendecode bonus: %w", err)
	}
	return bonuses, nil
}

func (r *compensationRepository) DeleteBonus(ctx context.Context, id primitive.ObjectID) (*mongo.DeleteResult, error) {
	result, err := r.bonuses.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, fmt.Errorf("gagal menghapus bonus: %w", err)
	}
	return result, nil
}

func (r *compensationRepository) CreateDeduction(ctx context.Context, deduction *models.Deduction) (*mongo.InsertOneResult, error) {
	deduction.ID = primitive.NewObjectID()
	deduction.CreatedAt = time.Now()

	result, err := r.deductions.InsertOne(ctx, deduction)
	if err != nil {
		return nil, fmt.Errorf("gagal membuat potongan: %w", err)
	}
	return result, nil
}

func (r *compensationRepository) GetDeductionsByStaff(ctx context.Context, staffID primitive.ObjectID) ([]models.Deduction, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})

	cursor, err := r.deductions.Find(ctx, bson.M{"staff_id": staffID}, findOptions)
	if err != nil {
		return nil, fmt.Errorf("gagal menemukan potongan: %w", err)
	}
	defer cursor.Close(ctx)

	var deductions []models.Deduction
	if err = cursor.All(ctx, &deductions); err != nil {
		return nil, fmt.Errorf("gagal mendecode potongan: %w", err)
	}
	return deductions, nil
}

func (r *compensationRepository) DeleteDeduction(ctx context.Context, id primitive.ObjectID) (*mongo.DeleteResult, error) {
	result, err := r.deductions.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, fmt.Errorf("gagal menghapus potongan: %w", err)
	}
	return result, nil
}

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

type PayrollRepository interface {
	CreatePayroll(ctx context.Context, payroll *models.Payroll) (*mongo.InsertOneResult, error)
	FindPayrollByID(ctx context.Context, id primitive.ObjectID) (*models.Payroll, error)
	GetAllPayrolls(ctx context.Context, filter bson.M) ([]models.Payroll, error)
	GetPayrollsByStaff(ctx context.Context, staffID primitive.ObjectID) ([]models.Payroll, error)
	UpdatePayroll(ctx context.Context, id primitive.ObjectID, updateData bson.M) (*mongo.UpdateResult, error)
	DeletePayroll(ctx context.Context, id primitive.ObjectID) (*mongo.DeleteResult, error)
}

type payrollRepository struct {
	collection *mongo.Collection
}

func NewPayrollRepository() PayrollRepository {
	return &payrollRepository{
		collection: config.GetCollection(config.PayrollCollection),
	}
}

func (r *payrollRepository) CreatePayroll(ctx context.Context, payroll *models.Payroll) (*mongo.InsertOneResult, error) {
	payroll.ID = primitive.NewObjectID()
	payroll.CreatedAt = time.Now()
	payroll.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, payroll)
	if err != nil {
		return nil, fmt.Errorf("gagal membuat payroll: %w", err)
	}
	return result, nil
}

func (r *payrollRepository) FindPayrollByID(ctx context.Context, id primitive.ObjectID) (*models.Payroll, error) {
	var payroll models.Payroll

	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&payroll)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("gagal menemukan payroll berdasarkan ID: %w", err)
	}
	return &payroll, nil
}

func (r *payrollRepository) GetAllPayrolls(ctx context.Context, filter bson.M) ([]models.Payroll, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "month", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, fmt.Errorf("gagal menemukan payroll: %w", err)
	}
	defer cursor.Close(ctx)

	var payrolls []models.Payroll
	if err = cursor.All(ctx, &payrolls); err != nil {
		return nil, fmt.Errorf("gagal mendecode payroll: %w", err)
	}
	return payrolls, nil
}

func (r *payrollRepository) GetPayrollsByStaff(ctx context.Context, staffID primitive.ObjectID) ([]models.Payroll, error) {
	return r.GetAllPayrolls(ctx, bson.M{"staff_id": staffID})
}

func (r *payrollRepository) UpdatePayroll(ctx context.Context, id primitive.ObjectID, updateData bson.M) (*mongo.UpdateResult, error) {
	updateData["updated_at"] = time.Now()
	update := bson.M{"$set": updateData}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return nil, fmt.Errorf("gagal mengupdate payroll: %w", err)
	}
	return result, nil
}

func (r *payrollRepository) DeletePayroll(ctx context.Context, id primitive.ObjectID) (*mongo.DeleteResult, error) {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, fmt.Errorf("gagal menghapus payroll: %w", err)
	}
	return result, nil
}

package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"Sistem-Administrasi-Rehabilitasi/config"
	"Sistem-Administrasi-Rehabilitasi/models"
)

type StaffRepository interface {
	CreateStaff(ctx context.Context, staff *models.Staff) (*mongo.InsertOneResult, error)
	FindStaffByID(ctx context.Context, id primitive.ObjectID) (*models.Staff, error)
	GetAllStaff(ctx context.Context, filter bson.M) ([]models.Staff, error)
	GetActiveStaff(ctx context.Context) ([]models.Staff, error)
	UpdateStaff(ctx context.Context, id primitive.ObjectID, updateData bson.M) (*mongo.UpdateResult, error)
	DeleteStaff(ctx context.Context, id primitive.ObjectID) (*mongo.DeleteResult, error)
}

type staffRepository struct {
	collection *mongo.Collection
}

func NewStaffRepository() StaffRepository {
	return &staffRepository{
		collection: config.GetCollection(config.StaffCollection),
	}
}

func (r *staffRepository) CreateStaff(ctx context.Context, staff *models.Staff) (*mongo.InsertOneResult, error) {
	staff.ID = primitive.NewObjectID()
	staff.CreatedAt = time.Now()
	staff.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, staff)
	if err != nil {
		return nil, fmt.Errorf("gagal membuat staf: %w", err)
	}
	return result, nil
}

func (r *staffRepository) FindStaffByID(ctx context.Context, id primitive.ObjectID) (*models.Staff, error) {
	var staff models.Staff

	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&staff)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("gagal menemukan staf berdasarkan ID: %w", err)
	}
	return &staff, nil
}

func (r *staffRepository) GetAllStaff(ctx context.Context, filter bson.M) ([]models.Staff, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("gagal menemukan staf: %w", err)
	}
	defer cursor.Close(ctx)

	var staffList []models.Staff
	if err = cursor.All(ctx, &staffList); err != nil {
		return nil, fmt.Errorf("gagal mendecode staf: %w", err)
	}
	return staffList, nil
}

func (r *staffRepository) GetActiveStaff(ctx context.Context) ([]models.Staff, error) {
	return r.GetAllStaff(ctx, bson.M{"is_active": true})
}

func (r *staffRepository) UpdateStaff(ctx context.Context, id primitive.ObjectID, updateData bson.M) (*mongo.UpdateResult, error) {
	updateData["updated_at"] = time.Now()
	update := bson.M{"$set": updateData}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return nil, fmt.Errorf("gagal mengupdate staf: %w", err)
	}
	return result, nil
}

func (r *staffRepository) DeleteStaff(ctx context.Context, id primitive.ObjectID) (*mongo.DeleteResult, error) {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, fmt.Errorf("gagal menghapus staf: %w", err)
	}
	return result, nil
}

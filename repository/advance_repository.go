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

type AdvanceRepository interface {
	CreateAdvance(ctx context.Context, advance *models.Advance) (*mongo.InsertOneResult, error)
	FindAdvanceByID(ctx context.Context, id primitive.ObjectID) (*models.Advance, error)
	GetAllAdvances(ctx context.Context, filter bson.M) ([]models.Advance, error)
	GetAdvancesByStaff(ctx context.Context, staffID primitive.ObjectID) ([]models.Advance, error)
	UpdateAdvance(ctx context.Context, id primitive.ObjectID, updateData bson.M) (*mongo.UpdateResult, error)
	DeleteAdvance(ctx context.Context, id primitive.ObjectID) (*mongo.DeleteResult, error)
}

type advanceRepository struct {
	collection *mongo.Collection
}

func NewAdvanceRepository() AdvanceRepository {
	return &advanceRepository{
		collection: config.GetCollection(config.AdvanceCollection),
	}
}

func (r *advanceRepository) CreateAdvance(ctx context.Context, advance *models.Advance) (*mongo.InsertOneResult, error) {
	advance.ID = primitive.NewObjectID()
	advance.CreatedAt = time.Now()
	advance.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, advance)
	if err != nil {
		return nil, fmt.Errorf("gagal membuat kasbon: %w", err)
	}
	return result, nil
}

func (r *advanceRepository) FindAdvanceByID(ctx context.Context, id primitive.ObjectID) (*models.Advance, error) {
	var advance models.Advance

	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&advance)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("gagal menemukan kasbon berdasarkan ID: %w", err)
	}
	return &advance, nil
}

func (r *advanceRepository) GetAllAdvances(ctx context.Context, filter bson.M) ([]models.Advance, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "request_date", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, fmt.Errorf("gagal menemukan kasbon: %w", err)
	}
	defer cursor.Close(ctx)

	var advances []models.Advance
	if err = cursor.All(ctx, &advances); err != nil {
		return nil, fmt.Errorf("gagal mendecode kasbon: %w", err)
	}
	return advances, nil
}

func (r *advanceRepository) GetAdvancesByStaff(ctx context.Context, staffID primitive.ObjectID) ([]models.Advance, error) {
	return r.GetAllAdvances(ctx, bson.M{"staff_id": staffID})
}

func (r *advanceRepository) UpdateAdvance(ctx context.Context, id primitive.ObjectID, updateData bson.M) (*mongo.UpdateResult, error) {
	updateData["updated_at"] = time.Now()
	update := bson.M{"$set": updateData}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return nil, fmt.Errorf("gagal mengupdate kasbon: %w", err)
	}
	return result, nil
}

func (r *advanceRepository) DeleteAdvance(ctx context.Context, id primitive.ObjectID) (*mongo.DeleteResult, error) {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, fmt.Errorf("gagal menghapus kasbon: %w", err)
	}
	return result, nil
}

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

type GraduateRepository interface {
	CreateGraduate(ctx context.Context, graduate *models.Graduate) (*mongo.InsertOneResult, error)
	FindGraduateByID(ctx context.Context, id primitive.ObjectID) (*models.Graduate, error)
	GetAllGraduates(ctx context.Context, filter bson.M) ([]models.Graduate, error)
	GetActiveGraduates(ctx context.Context) ([]models.Graduate, error)
	UpdateGraduate(ctx context.Context, id primitive.ObjectID, updateData bson.M) (*mongo.UpdateResult, error)
	DeleteGraduate(ctx context.Context, id primitive.ObjectID) (*mongo.DeleteResult, error)
}

type graduateRepository struct {
	collection *mongo.Collection
}

func NewGraduateRepository() GraduateRepository {
	return &graduateRepository{
		collection: config.GetCollection(config.GraduateCollection),
	}
}

func (r *graduateRepository) CreateGraduate(ctx context.Context, graduate *models.Graduate) (*mongo.InsertOneResult, error) {
	graduate.ID = primitive.NewObjectID()
	graduate.CreatedAt = time.Now()
	graduate.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, graduate)
	if err != nil {
		return nil, fmt.Errorf("gagal membuat alumni: %w", err)
	}
	return result, nil
}

func (r *graduateRepository) FindGraduateByID(ctx context.Context, id primitive.ObjectID) (*models.Graduate, error) {
	var graduate models.Graduate

	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&graduate)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("gagal menemukan alumni berdasarkan ID: %w", err)
	}
	return &graduate, nil
}

func (r *graduateRepository) GetAllGraduates(ctx context.Context, filter bson.M) ([]models.Graduate, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("gagal menemukan alumni: %w", err)
	}
	defer cursor.Close(ctx)

	var graduates []models.Graduate
	if err = cursor.All(ctx, &graduates); err != nil {
		return nil, fmt.Errorf("gagal mendecode alumni: %w", err)
	}
	return graduates, nil
}

func (r *graduateRepository) GetActiveGraduates(ctx context.Context) ([]models.Graduate, error) {
	return r.GetAllGraduates(ctx, bson.M{"is_active": true})
}

func (r *graduateRepository) UpdateGraduate(ctx context.Context, id primitive.ObjectID, updateData bson.M) (*mongo.UpdateResult, error) {
	updateData["updated_at"] = time.Now()
	update := bson.M{"$set": updateData}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return nil, fmt.Errorf("gagal mengupdate alumni: %w", err)
	}
	return result, nil
}

func (r *graduateRepository) DeleteGraduate(ctx context.Context, id primitive.ObjectID) (*mongo.DeleteResult, error) {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, fmt.Errorf("gagal menghapus alumni: %w", err)
	}
	return result, nil
}

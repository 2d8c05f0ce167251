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

type PaymentRepository interface {
	CreatePayment(ctx context.Context, payment *models.Payment) (*mongo.InsertOneResult, error)
	FindPaymentByID(ctx context.Context, id primitive.ObjectID) (*models.Payment, error)
	GetAllPayments(ctx context.Context, filter bson.M) ([]models.Payment, error)
	GetPaymentsByPatient(ctx context.Context, patientID primitive.ObjectID) ([]models.Payment, error)
	UpdatePayment(ctx context.Context, id primitive.ObjectID, updateData bson.M) (*mongo.UpdateResult, error)
	DeletePayment(ctx context.Context, id primitive.ObjectID) (*mongo.DeleteResult, error)
}

type paymentRepository struct {
	collection *mongo.Collection
}

func NewPaymentRepository() PaymentRepository {
	return &paymentRepository{
		collection: config.GetCollection(config.PaymentCollection),
	}
}

func (r *paymentRepository) CreatePayment(ctx context.Context, payment *models.Payment) (*mongo.InsertOneResult, error) {
	payment.ID = primitive.NewObjectID()
	payment.CreatedAt = time.Now()
	payment.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, payment)
	if err != nil {
		return nil, fmt.Errorf("gagal membuat pembayaran: %w", err)
	}
	return result, nil
}

func (r *paymentRepository) FindPaymentByID(ctx context.Context, id primitive.ObjectID) (*models.Payment, error) {
	var payment models.Payment

	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&payment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("gagal menemukan pembayaran berdasarkan ID: %w", err)
	}
	return &payment, nil
}

func (r *paymentRepository) GetAllPayments(ctx context.Context, filter bson.M) ([]models.Payment, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "payment_date", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, fmt.Errorf("gagal menemukan pembayaran: %w", err)
	}
	defer cursor.Close(ctx)

	var payments []models.Payment
	if err = cursor.All(ctx, &payments); err != nil {
		return nil, fmt.Errorf("gagal mendecode pembayaran: %w", err)
	}
	return payments, nil
}

func (r *paymentRepository) GetPaymentsByPatient(ctx context.Context, patientID primitive.ObjectID) ([]models.Payment, error) {
	return r.GetAllPayments(ctx, bson.M{"patient_id": patientID})
}

func (r *paymentRepository) UpdatePayment(ctx context.Context, id primitive.ObjectID, updateData bson.M) (*mongo.UpdateResult, error) {
	updateData["updated_at"] = time.Now()
	update := bson.M{"$set": updateData}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return nil, fmt.Errorf("gagal mengupdate pembayaran: %w", err)
	}
	return result, nil
}

func (r *paymentRepository) DeletePayment(ctx context.Context, id primitive.ObjectID) (*mongo.DeleteResult, error) {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, fmt.Errorf("gagal menghapus pembayaran: %w", err)
	}
	return result, nil
}

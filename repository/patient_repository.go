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

// ErrPatientNotFound dikembalikan ApplyPaymentDelta saat pasien yang
// direferensikan pembayaran tidak ada. Caller memperlakukannya sebagai
// peringatan integritas, bukan kegagalan pembayaran.
var ErrPatientNotFound = fmt.Errorf("pasien tidak ditemukan")

type PatientRepository interface {
	CreatePatient(ctx context.Context, patient *models.Patient) (*mongo.InsertOneResult, error)
	FindPatientByID(ctx context.Context, id primitive.ObjectID) (*models.Patient, error)
	GetAllPatients(ctx context.Context, filter bson.M) ([]models.Patient, error)
	GetActivePatients(ctx context.Context) ([]models.Patient, error)
	UpdatePatient(ctx context.Context, id primitive.ObjectID, updateData bson.M) (*mongo.UpdateResult, error)
	DeletePatient(ctx context.Context, id primitive.ObjectID) (*mongo.DeleteResult, error)
	ApplyPaymentDelta(ctx context.Context, id primitive.ObjectID, delta float64) error
}

type patientRepository struct {
	collection *mongo.Collection
}

func NewPatientRepository() PatientRepository {
	return &patientRepository{
		collection: config.GetCollection(config.PatientCollection),
	}
}

func (r *patientRepository) CreatePatient(ctx context.Context, patient *models.Patient) (*mongo.InsertOneResult, error) {
	patient.ID = primitive.NewObjectID()
	patient.CreatedAt = time.Now()
	patient.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, patient)
	if err != nil {
		return nil, fmt.Errorf("gagal membuat pasien: %w", err)
	}
	return result, nil
}

func (r *patientRepository) FindPatientByID(ctx context.Context, id primitive.ObjectID) (*models.Patient, error) {
	var patient models.Patient

	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&patient)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("gagal menemukan pasien berdasarkan ID: %w", err)
	}
	return &patient, nil
}

func (r *patientRepository) GetAllPatients(ctx context.Context, filter bson.M) ([]models.Patient, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("gagal menemukan pasien: %w", err)
	}
	defer cursor.Close(ctx)

	var patients []models.Patient
	if err = cursor.All(ctx, &patients); err != nil {
		return nil, fmt.Errorf("gagal mendecode pasien: %w", err)
	}
	return patients, nil
}

func (r *patientRepository) GetActivePatients(ctx context.Context) ([]models.Patient, error) {
	return r.GetAllPatients(ctx, bson.M{"status": models.PatientStatusActive})
}

func (r *patientRepository) UpdatePatient(ctx context.Context, id primitive.ObjectID, updateData bson.M) (*mongo.UpdateResult, error) {
	updateData["updated_at"] = time.Now()
	update := bson.M{"$set": updateData}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return nil, fmt.Errorf("gagal mengupdate pasien: %w", err)
	}
	return result, nil
}

func (r *patientRepository) DeletePatient(ctx context.Context, id primitive.ObjectID) (*mongo.DeleteResult, error) {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, fmt.Errorf("gagal menghapus pasien: %w", err)
	}
	return result, nil
}

// ApplyPaymentDelta menambah (atau mengurangi) total_paid dalam satu
// update dokumen atomik. Dua posting pembayaran bersamaan untuk pasien
// yang sama tidak boleh saling menimpa, jadi read-modify-write di sisi
// aplikasi dilarang di sini. Hasil dijepit minimal 0.
func (r *patientRepository) ApplyPaymentDelta(ctx context.Context, id primitive.ObjectID, delta float64) error {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "total_paid", Value: bson.D{
				{Key: "$max", Value: bson.A{
					0,
					bson.D{{Key: "$add", Value: bson.A{
						bson.D{{Key: "$ifNull", Value: bson.A{"$total_paid", 0}}},
						delta,
					}}},
				}},
			}},
			{Key: "updated_at", Value: time.Now()},
		}}},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, pipeline)
	if err != nil {
		return fmt.Errorf("gagal mengupdate total_paid pasien: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrPatientNotFound
	}
	return nil
}

package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"Sistem-Administrasi-Rehabilitasi/config"
	"Sistem-Administrasi-Rehabilitasi/models"
)

type SettingsRepository interface {
	GetSettings(ctx context.Context) (*models.Settings, error)
	UpdateSettings(ctx context.Context, updateData bson.M) (*models.Settings, error)
}

type settingsRepository struct {
	collection *mongo.Collection
}

func NewSettingsRepository() SettingsRepository {
	return &settingsRepository{
		collection: config.GetCollection(config.SettingsCollection),
	}
}

// GetSettings mengembalikan dokumen settings tunggal; dokumen default
// dibuat saat belum ada.
func (r *settingsRepository) GetSettings(ctx context.Context) (*models.Settings, error) {
	var settings models.Settings

	err := r.collection.FindOne(ctx, bson.M{}).Decode(&settings)
	if err == nil {
		return &settings, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, fmt.Errorf("gagal membaca settings: %w", err)
	}

	settings = models.Settings{
		FacilityName:      "Pusat Rehabilitasi",
		Currency:          "TRY",
		DefaultDailyCost:  500,
		HalfPackDailyCost: 25,
		FullPackDailyCost: 50,
		UpdatedAt:         time.Now(),
	}
	if _, err := r.collection.InsertOne(ctx, settings); err != nil {
		return nil, fmt.Errorf("gagal membuat settings default: %w", err)
	}
	return &settings, nil
}

func (r *settingsRepository) UpdateSettings(ctx context.Context, updateData bson.M) (*models.Settings, error) {
	updateData["updated_at"] = time.Now()

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var settings models.Settings
	err := r.collection.FindOneAndUpdate(ctx, bson.M{}, bson.M{"$set": updateData}, opts).Decode(&settings)
	if err != nil {
		return nil, fmt.Errorf("gagal mengupdate settings: %w", err)
	}
	return &settings, nil
}

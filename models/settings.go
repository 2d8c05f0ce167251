package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Settings adalah dokumen tunggal konfigurasi fasilitas.
type Settings struct {
	ID                primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	FacilityName      string             `json:"facility_name" bson:"facility_name,omitempty"`
	Currency          string             `json:"currency" bson:"currency,omitempty"`
	DefaultDailyCost  float64            `json:"default_daily_cost" bson:"default_daily_cost"`
	HalfPackDailyCost float64            `json:"half_pack_daily_cost" bson:"half_pack_daily_cost"`
	FullPackDailyCost float64            `json:"full_pack_daily_cost" bson:"full_pack_daily_cost"`
	UpdatedAt         time.Time          `json:"updated_at" bson:"updated_at,omitempty"`
}

type SettingsUpdatePayload struct {
	FacilityName      string   `json:"facility_name,omitempty" validate:"omitempty,min=3,max=100"`
	Currency          string   `json:"currency,omitempty" validate:"omitempty,len=3"`
	DefaultDailyCost  *float64 `json:"default_daily_cost,omitempty" validate:"omitempty,min=0"`
	HalfPackDailyCost *float64 `json:"half_pack_daily_cost,omitempty" validate:"omitempty,min=0"`
	FullPackDailyCost *float64 `json:"full_pack_daily_cost,omitempty" validate:"omitempty,min=0"`
}

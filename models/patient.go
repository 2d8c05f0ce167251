package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	PatientStatusActive     = "active"
	PatientStatusDischarged = "discharged"
)

type Patient struct {
	ID                 primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name               string             `json:"name" bson:"name,omitempty"`
	PatientType        string             `json:"patient_type" bson:"patient_type,omitempty"`
	AdmissionDate      time.Time          `json:"admission_date" bson:"admission_date,omitempty"`
	DischargeDate      *time.Time         `json:"discharge_date,omitempty" bson:"discharge_date,omitempty"`
	DailyCost          float64            `json:"daily_cost" bson:"daily_cost,omitempty"`
	DailyCigaretteType string             `json:"daily_cigarette_type" bson:"daily_cigarette_type,omitempty"`
	DailyCigaretteCost float64            `json:"daily_cigarette_cost" bson:"daily_cigarette_cost,omitempty"`
	Status             string             `json:"status" bson:"status,omitempty"`
	// TotalPaid adalah counter denormalisasi, dijaga lewat $inc atomik
	// setiap kali pembayaran dibuat/diubah/dihapus.
	TotalPaid float64   `json:"total_paid" bson:"total_paid"`
	CreatedAt time.Time `json:"created_at" bson:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at,omitempty"`
}

type PatientCreatePayload struct {
	Name               string  `json:"name" validate:"required,min=3,max=100"`
	PatientType        string  `json:"patient_type" validate:"omitempty,max=50"`
	AdmissionDate      string  `json:"admission_date" validate:"required,datetime=2006-01-02"`
	DailyCost          float64 `json:"daily_cost" validate:"min=0"`
	DailyCigaretteType string  `json:"daily_cigarette_type" validate:"omitempty,oneof=none half_pack full_pack"`
	// Override biaya rokok per-pasien; 0 berarti pakai tarif standar.
	DailyCigaretteCost float64 `json:"daily_cigarette_cost" validate:"omitempty,min=0"`
}

type PatientUpdatePayload struct {
	Name               string   `json:"name,omitempty" validate:"omitempty,min=3,max=100"`
	PatientType        string   `json:"patient_type,omitempty" validate:"omitempty,max=50"`
	AdmissionDate      string   `json:"admission_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	DailyCost          *float64 `json:"daily_cost,omitempty" validate:"omitempty,min=0"`
	DailyCigaretteType string   `json:"daily_cigarette_type,omitempty" validate:"omitempty,oneof=none half_pack full_pack"`
	DailyCigaretteCost *float64 `json:"daily_cigarette_cost,omitempty" validate:"omitempty,min=0"`
}

type PatientDischargePayload struct {
	DischargeDate string `json:"discharge_date" validate:"required,datetime=2006-01-02"`
}

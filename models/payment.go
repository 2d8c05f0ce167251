package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Payment struct {
	ID            primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	PatientID     primitive.ObjectID `json:"patient_id" bson:"patient_id,omitempty"`
	Amount        float64            `json:"amount" bson:"amount,omitempty"`
	PaymentDate   time.Time          `json:"payment_date" bson:"payment_date,omitempty"`
	PaymentMethod string             `json:"payment_method" bson:"payment_method,omitempty"`
	ReceiptNumber string             `json:"receipt_number" bson:"receipt_number,omitempty"`
	Notes         string             `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt     time.Time          `json:"created_at" bson:"created_at,omitempty"`
	UpdatedAt     time.Time          `json:"updated_at" bson:"updated_at,omitempty"`
}

type PaymentCreatePayload struct {
	PatientID     string  `json:"patient_id" validate:"required"`
	Amount        float64 `json:"amount" validate:"required,gt=0"`
	PaymentDate   string  `json:"payment_date" validate:"required,datetime=2006-01-02"`
	PaymentMethod string  `json:"payment_method" validate:"required,oneof=cash card transfer check"`
	Notes         string  `json:"notes" validate:"omitempty,max=255"`
}

type PaymentUpdatePayload struct {
	Amount        *float64 `json:"amount,omitempty" validate:"omitempty,gt=0"`
	PaymentDate   string   `json:"payment_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	PaymentMethod string   `json:"payment_method,omitempty" validate:"omitempty,oneof=cash card transfer check"`
	Notes         string   `json:"notes,omitempty" validate:"omitempty,max=255"`
}

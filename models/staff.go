package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Staff struct {
	ID                 primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name               string             `json:"name" bson:"name,omitempty"`
	Position           string             `json:"position" bson:"position,omitempty"`
	MonthlySalary      float64            `json:"monthly_salary" bson:"monthly_salary,omitempty"`
	DailyCigaretteType string             `json:"daily_cigarette_type" bson:"daily_cigarette_type,omitempty"`
	DailyCigaretteCost float64            `json:"daily_cigarette_cost" bson:"daily_cigarette_cost,omitempty"`
	IsActive           bool               `json:"is_active" bson:"is_active"`
	CreatedAt          time.Time          `json:"created_at" bson:"created_at,omitempty"`
	UpdatedAt          time.Time          `json:"updated_at" bson:"updated_at,omitempty"`
}

type StaffCreatePayload struct {
	Name               string  `json:"name" validate:"required,min=3,max=100"`
	Position           string  `json:"position" validate:"omitempty,max=100"`
	MonthlySalary      float64 `json:"monthly_salary" validate:"min=0"`
	DailyCigaretteType string  `json:"daily_cigarette_type" validate:"omitempty,oneof=none half_pack full_pack"`
	DailyCigaretteCost float64 `json:"daily_cigarette_cost" validate:"omitempty,min=0"`
}

type StaffUpdatePayload struct {
	Name               string   `json:"name,omitempty" validate:"omitempty,min=3,max=100"`
	Position           string   `json:"position,omitempty" validate:"omitempty,max=100"`
	MonthlySalary      *float64 `json:"monthly_salary,omitempty" validate:"omitempty,min=0"`
	DailyCigaretteType string   `json:"daily_cigarette_type,omitempty" validate:"omitempty,oneof=none half_pack full_pack"`
	DailyCigaretteCost *float64 `json:"daily_cigarette_cost,omitempty" validate:"omitempty,min=0"`
	IsActive           *bool    `json:"is_active,omitempty"`
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	PayrollStatusPending   = "pending"
	PayrollStatusPaid      = "paid"
	PayrollStatusCancelled = "cancelled"
)

type Payroll struct {
	ID         primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	StaffID    primitive.ObjectID `json:"staff_id" bson:"staff_id,omitempty"`
	Month      string             `json:"month" bson:"month,omitempty"`
	BaseSalary float64            `json:"base_salary" bson:"base_salary,omitempty"`
	Bonuses    float64            `json:"bonuses" bson:"bonuses"`
	Advances   float64            `json:"advances" bson:"advances"`
	Deductions float64            `json:"deductions" bson:"deductions"`
	// NetSalary selalu hasil turunan base + bonuses - advances - deductions,
	// dihitung ulang setiap kali salah satu komponennya berubah.
	NetSalary float64    `json:"net_salary" bson:"net_salary"`
	Status    string     `json:"status" bson:"status,omitempty"`
	PaidAt    *time.Time `json:"paid_at,omitempty" bson:"paid_at,omitempty"`
	Notes     string     `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt time.Time  `json:"created_at" bson:"created_at,omitempty"`
	UpdatedAt time.Time  `json:"updated_at" bson:"updated_at,omitempty"`
}

type PayrollCreatePayload struct {
	StaffID    string  `json:"staff_id" validate:"required"`
	Month      string  `json:"month" validate:"required,datetime=2006-01"`
	BaseSalary float64 `json:"base_salary" validate:"min=0"`
	Bonuses    float64 `json:"bonuses" validate:"min=0"`
	Advances   float64 `json:"advances" validate:"min=0"`
	Deductions float64 `json:"deductions" validate:"min=0"`
	Notes      string  `json:"notes" validate:"omitempty,max=255"`
}

type PayrollUpdatePayload struct {
	BaseSalary *float64 `json:"base_salary,omitempty" validate:"omitempty,min=0"`
	Bonuses    *float64 `json:"bonuses,omitempty" validate:"omitempty,min=0"`
	Advances   *float64 `json:"advances,omitempty" validate:"omitempty,min=0"`
	Deductions *float64 `json:"deductions,omitempty" validate:"omitempty,min=0"`
	Status     string   `json:"status,omitempty" validate:"omitempty,oneof=pending paid cancelled"`
	Notes      string   `json:"notes,omitempty" validate:"omitempty,max=255"`
}

// Bonus dan Deduction adalah catatan kompensasi satu kali untuk staf.
type Bonus struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	StaffID     primitive.ObjectID `json:"staff_id" bson:"staff_id,omitempty"`
	Amount      float64            `json:"amount" bson:"amount,omitempty"`
	Date        time.Time          `json:"date" bson:"date,omitempty"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at,omitempty"`
}

type Deduction struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	StaffID     primitive.ObjectID `json:"staff_id" bson:"staff_id,omitempty"`
	Amount      float64            `json:"amount" bson:"amount,omitempty"`
	Date        time.Time          `json:"date" bson:"date,omitempty"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at,omitempty"`
}

type CompensationCreatePayload struct {
	StaffID     string  `json:"staff_id" validate:"required"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	Date        string  `json:"date" validate:"required,datetime=2006-01-02"`
	Description string  `json:"description" validate:"omitempty,max=255"`
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	AdvanceStatusPending  = "pending"
	AdvanceStatusApproved = "approved"
	AdvanceStatusRejected = "rejected"
)

type Advance struct {
	ID              primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	StaffID         primitive.ObjectID `json:"staff_id" bson:"staff_id,omitempty"`
	Amount          float64            `json:"amount" bson:"amount,omitempty"`
	RepaymentMonths int                `json:"repayment_months" bson:"repayment_months,omitempty"`
	// MonthlyDeduction diturunkan dari amount / repayment_months dan
	// dibulatkan ke satuan mata uang terkecil.
	MonthlyDeduction float64    `json:"monthly_deduction" bson:"monthly_deduction"`
	RemainingAmount  float64    `json:"remaining_amount" bson:"remaining_amount"`
	Status           string     `json:"status" bson:"status,omitempty"`
	RequestDate      time.Time  `json:"request_date" bson:"request_date,omitempty"`
	ApprovedAt       *time.Time `json:"approved_at,omitempty" bson:"approved_at,omitempty"`
	Notes            string     `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt        time.Time  `json:"created_at" bson:"created_at,omitempty"`
	UpdatedAt        time.Time  `json:"updated_at" bson:"updated_at,omitempty"`
}

type AdvanceCreatePayload struct {
	StaffID         string  `json:"staff_id" validate:"required"`
	Amount          float64 `json:"amount" validate:"required,gt=0"`
	RepaymentMonths int     `json:"repayment_months" validate:"required,min=1,max=24"`
	RequestDate     string  `json:"request_date" validate:"required,datetime=2006-01-02"`
	Notes           string  `json:"notes" validate:"omitempty,max=255"`
}

type AdvanceStatusPayload struct {
	Status string `json:"status" validate:"required,oneof=pending approved rejected"`
}

// AdvanceInstallment adalah satu baris jadwal cicilan hasil ekspansi RRULE.
type AdvanceInstallment struct {
	Number  int       `json:"number"`
	DueDate time.Time `json:"due_date"`
	Amount  float64   `json:"amount"`
}

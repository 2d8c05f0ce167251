package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Username    string             `json:"username" bson:"username,omitempty"`
	Name        string             `json:"name" bson:"name,omitempty"`
	Password    string             `json:"password,omitempty" bson:"password,omitempty"`
	Role        string             `json:"role" bson:"role,omitempty"`
	Permissions []string           `json:"permissions" bson:"permissions,omitempty"`
	IsActive    bool               `json:"is_active" bson:"is_active"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at,omitempty"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at,omitempty"`
}

type UserRegisterPayload struct {
	Username string `json:"username" validate:"required,min=3,max=50,alphanum"`
	Name     string `json:"name" validate:"required,min=3,max=100"`
	Password string `json:"password" validate:"required,min=8,max=50,hasuppercase"`
	Role     string `json:"role" validate:"required,oneof=admin doctor nurse receptionist accountant"`
	// Kosong berarti pakai permission default dari tabel role.
	Permissions []string `json:"permissions" validate:"omitempty,dive,min=1"`
}

type UserLoginPayload struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type UserUpdatePayload struct {
	Name        string   `json:"name,omitempty" validate:"omitempty,min=3,max=100"`
	Role        string   `json:"role,omitempty" validate:"omitempty,oneof=admin doctor nurse receptionist accountant"`
	Permissions []string `json:"permissions,omitempty" validate:"omitempty,dive,min=1"`
	IsActive    *bool    `json:"is_active,omitempty"`
}

type ChangePasswordPayload struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8,max=50,hasuppercase"`
}

// Claims adalah identitas caller hasil validasi token, disimpan di locals.
type Claims struct {
	UserID      primitive.ObjectID `json:"user_id"`
	Username    string             `json:"username"`
	Role        string             `json:"role"`
	Permissions []string           `json:"permissions"`
}

// internal/domain/models/position.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TeacherPosition is a job title a teacher can hold (a teacher may hold
// several). Positions have an independent lifecycle; teachers reference
// them by id.
//
// Code is unique among non-deleted positions (partial unique index).
// Name is unique among non-deleted positions case-insensitively; NameCI
// holds the folded form used for that check.
type TeacherPosition struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Code        string             `bson:"code" json:"code"`
	Name        string             `bson:"name" json:"name"`
	NameCI      string             `bson:"name_ci" json:"-"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	IsActive    bool               `bson:"is_active" json:"isActive"`
	IsDeleted   bool               `bson:"is_deleted" json:"isDeleted"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

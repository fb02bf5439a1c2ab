// internal/domain/models/teacher.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Degree is an academic degree embedded on a Teacher. Degrees have no
// independent identity; they live and die with the teacher document.
type Degree struct {
	Type        string `bson:"type" json:"type"`
	School      string `bson:"school" json:"school"`
	Major       string `bson:"major" json:"major"`
	Year        int    `bson:"year" json:"year"`
	IsGraduated bool   `bson:"is_graduated" json:"isGraduated"`
}

// Teacher is the employment record for a user with role TEACHER.
//
// UserID references the backing user by id only; there is no cascade in
// either direction, so a deleted user leaves the teacher with a dangling
// reference (roster reads null the user out rather than fail).
//
// Invariant: at most one non-deleted teacher per UserID, backed by a
// partial unique index on user_id. Code is generated, never client
// supplied, and unique among non-deleted teachers.
type Teacher struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"userId"`
	Code      string             `bson:"code" json:"code"`
	IsActive  bool               `bson:"is_active" json:"isActive"`
	IsDeleted bool               `bson:"is_deleted" json:"isDeleted"`
	StartDate time.Time          `bson:"start_date" json:"startDate"`
	EndDate   *time.Time         `bson:"end_date,omitempty" json:"endDate,omitempty"`

	// Ordered references into teacher_positions. Validated at write
	// time; not enforced by the storage engine.
	PositionIDs []primitive.ObjectID `bson:"teacher_positions_id" json:"teacherPositionsId"`

	Degrees []Degree `bson:"degrees" json:"degrees"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

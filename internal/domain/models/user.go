// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles. Every user carries exactly one.
const (
	RoleStudent = "STUDENT"
	RoleTeacher = "TEACHER"
	RoleAdmin   = "ADMIN"
)

// ValidRole reports whether role is one of the three known roles.
func ValidRole(role string) bool {
	switch role {
	case RoleStudent, RoleTeacher, RoleAdmin:
		return true
	}
	return false
}

// User represents a person record: students, teachers, and admins.
//
// Email and Identity are each unique among non-deleted users; both
// uniqueness rules are backed by partial unique indexes (see
// system/indexes). Email is stored lowercased.
//
// Users are never physically removed. IsDeleted marks logical deletion
// and every store read filters on it.
type User struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Email       string             `bson:"email" json:"email"`
	PhoneNumber string             `bson:"phone_number" json:"phoneNumber"`
	Address     string             `bson:"address" json:"address"`
	Identity    string             `bson:"identity" json:"identity"` // national ID
	DOB         time.Time          `bson:"dob" json:"dob"`
	Role        string             `bson:"role" json:"role"` // STUDENT | TEACHER | ADMIN
	IsDeleted   bool               `bson:"is_deleted" json:"isDeleted"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

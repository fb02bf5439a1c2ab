// Package teacherroster assembles the joined teacher view: each teacher
// document joined with its backing user and its positions.
//
// The join is a left join with null on miss. A soft-deleted (or missing)
// user nulls the userId field out; a soft-deleted position becomes a
// null entry at its slot in the teacherPositionsId array, preserving the
// stored order. Partial data is acceptable by contract — only the
// teacher document itself gates a not-found.
package teacherroster

import (
	"context"
	"time"

	"github.com/dalemusser/teacherhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// UserRef is the slice of user fields embedded in a roster row.
type UserRef struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Email       string             `bson:"email" json:"email"`
	PhoneNumber string             `bson:"phone_number" json:"phoneNumber"`
	Address     string             `bson:"address" json:"address"`
	Identity    string             `bson:"identity" json:"identity"`
	DOB         time.Time          `bson:"dob" json:"dob"`
}

// PositionRef is the slice of position fields embedded in a roster row.
type PositionRef struct {
	ID   primitive.ObjectID `bson:"_id" json:"id"`
	Name string             `bson:"name" json:"name"`
	Code string             `bson:"code" json:"code"`
}

// Row is one joined teacher record.
type Row struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	User      *UserRef           `bson:"user" json:"userId"` // nil when the backing user is deleted
	Code      string             `bson:"code" json:"code"`
	IsActive  bool               `bson:"is_active" json:"isActive"`
	StartDate time.Time          `bson:"start_date" json:"startDate"`
	EndDate   *time.Time         `bson:"end_date,omitempty" json:"endDate,omitempty"`
	Positions []*PositionRef     `bson:"positions" json:"teacherPositionsId"`
	Degrees   []models.Degree    `bson:"degrees" json:"degrees"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`
}

// joinStages are the lookup/projection stages shared by List and GetByID.
func joinStages() mongo.Pipeline {
	return mongo.Pipeline{
		// Pull in the backing user; unwind keeps the row when there is
		// no match so the $cond below can null the field out.
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "users",
			"localField":   "user_id",
			"foreignField": "_id",
			"as":           "user",
		}}},
		bson.D{{Key: "$unwind", Value: bson.M{
			"path":                       "$user",
			"preserveNullAndEmptyArrays": true,
		}}},
		// A deleted or missing user becomes null rather than dropping
		// the teacher from the result.
		bson.D{{Key: "$addFields", Value: bson.M{
			"user": bson.M{"$cond": bson.A{
				bson.M{"$eq": bson.A{"$user.is_deleted", false}},
				bson.M{
					"_id":          "$user._id",
					"name":         "$user.name",
					"email":        "$user.email",
					"phone_number": "$user.phone_number",
					"address":      "$user.address",
					"identity":     "$user.identity",
					"dob":          "$user.dob",
				},
				nil,
			}},
		}}},
		// Resolve positions, then rebuild the array in stored order with
		// null at the slot of any deleted or missing position.
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "teacher_positions",
			"localField":   "teacher_positions_id",
			"foreignField": "_id",
			"as":           "position_docs",
		}}},
		bson.D{{Key: "$addFields", Value: bson.M{
			"positions": bson.M{"$map": bson.M{
				"input": "$teacher_positions_id",
				"as":    "pid",
				"in": bson.M{"$let": bson.M{
					"vars": bson.M{
						"doc": bson.M{"$arrayElemAt": bson.A{
							bson.M{"$filter": bson.M{
								"input": "$position_docs",
								"as":    "d",
								"cond": bson.M{"$and": bson.A{
									bson.M{"$eq": bson.A{"$$d._id", "$$pid"}},
									bson.M{"$eq": bson.A{"$$d.is_deleted", false}},
								}},
							}},
							0,
						}},
					},
					"in": bson.M{"$cond": bson.A{
						bson.M{"$gt": bson.A{"$$doc", nil}},
						bson.M{
							"_id":  "$$doc._id",
							"name": "$$doc.name",
							"code": "$$doc.code",
						},
						nil,
					}},
				}},
			}},
		}}},
		bson.D{{Key: "$project", Value: bson.M{
			"user":       1,
			"code":       1,
			"is_active":  1,
			"start_date": 1,
			"end_date":   1,
			"positions":  1,
			"degrees":    1,
			"created_at": 1,
			"updated_at": 1,
		}}},
	}
}

// List returns one page of joined teacher rows sorted by creation time
// descending, plus the total count of live teachers.
func List(ctx context.Context, db *mongo.Database, page, limit int) ([]Row, int64, error) {
	c := db.Collection("teachers")

	total, err := c.CountDocuments(ctx, bson.M{"is_deleted": false})
	if err != nil {
		return nil, 0, err
	}

	pipe := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"is_deleted": false}}},
		bson.D{{Key: "$sort", Value: bson.D{
			{Key: "created_at", Value: -1},
			{Key: "_id", Value: -1},
		}}},
		bson.D{{Key: "$skip", Value: int64(page-1) * int64(limit)}},
		bson.D{{Key: "$limit", Value: int64(limit)}},
	}
	pipe = append(pipe, joinStages()...)

	cur, err := c.Aggregate(ctx, pipe)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	rows := []Row{}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// GetByID returns the joined view of one live teacher. Returns
// mongo.ErrNoDocuments when the teacher itself is absent or deleted;
// missing joined records do not cause a miss.
func GetByID(ctx context.Context, db *mongo.Database, id primitive.ObjectID) (*Row, error) {
	pipe := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"_id": id, "is_deleted": false}}},
	}
	pipe = append(pipe, joinStages()...)

	cur, err := db.Collection("teachers").Aggregate(ctx, pipe)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []Row
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, mongo.ErrNoDocuments
	}
	return &rows[0], nil
}

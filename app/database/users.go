package database

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/milavdabgar/npni-flutter/app/models"
)

func GetUserByEmail(ctx context.Context, db *mongo.Database, email string) (*models.User, error) {
	user := &models.User{}
	err := db.Collection(UsersCollection).FindOne(ctx, bson.M{"email": email}).Decode(user)
	if err != nil {
		// Team logins arrive with whatever casing the team typed; emails
		// are stored as authored, so retry with the lowercased form.
		lower := strings.ToLower(email)
		if lower != email {
			err = db.Collection(UsersCollection).FindOne(ctx, bson.M{"email": lower}).Decode(user)
		}
	}
	if err != nil {
		return nil, wrapErr(err)
	}
	return user, nil
}

func GetUserByID(ctx context.Context, db *mongo.Database, id primitive.ObjectID) (*models.User, error) {
	user := &models.User{}
	err := db.Collection(UsersCollection).FindOne(ctx, bson.M{"_id": id}).Decode(user)
	if err != nil {
		return nil, wrapErr(err)
	}
	return user, nil
}

func CreateUser(ctx context.Context, db *mongo.Database, user *models.User) error {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	res, err := db.Collection(UsersCollection).InsertOne(ctx, user)
	if err != nil {
		return wrapErr(err)
	}
	user.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// InsertUsers inserts the given users in order, stopping at the first
// failure. Ordered inserts matter during import: a partial account set
// would leave some teams without a login.
func InsertUsers(ctx context.Context, db *mongo.Database, users []models.User) error {
	if len(users) == 0 {
		return nil
	}
	docs := make([]interface{}, len(users))
	now := time.Now()
	for i := range users {
		users[i].CreatedAt = now
		users[i].UpdatedAt = now
		docs[i] = users[i]
	}
	_, err := db.Collection(UsersCollection).InsertMany(ctx, docs)
	return wrapErr(err)
}

// DeleteUsersByRole removes every account with the given role. The import
// uses this to clear team accounts while leaving admin and jury untouched.
func DeleteUsersByRole(ctx context.Context, db *mongo.Database, role string) error {
	_, err := db.Collection(UsersCollection).DeleteMany(ctx, bson.M{"role": role})
	return wrapErr(err)
}

package store

import (
	"context"

	"github.com/bookcourier/backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (db *DB) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := db.Users().FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// RoleByEmail returns the stored role for an email, or "" when no user
// document exists. Called once per role-gated request so role changes take
// effect on the next request.
func (db *DB) RoleByEmail(ctx context.Context, email string) (string, error) {
	u, err := db.UserByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if u == nil {
		return "", nil
	}
	return u.Role, nil
}

func (db *DB) CreateUser(ctx context.Context, user *models.User) (primitive.ObjectID, error) {
	res, err := db.Users().InsertOne(ctx, user)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

// ListUsersExcept returns every user except the one with the given email.
func (db *DB) ListUsersExcept(ctx context.Context, email string) ([]models.User, error) {
	filter := bson.M{"email": bson.M{"$ne": email}}
	cur, err := db.Users().Find(ctx, filter, options.Find().SetSort(bson.M{"createdAt": 1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	users := []models.User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateProfile sets the name and photo for the user with the given email.
func (db *DB) UpdateProfile(ctx context.Context, email, name, photo string) (*mongo.UpdateResult, error) {
	update := bson.M{"$set": bson.M{"name": name, "photo": photo}}
	return db.Users().UpdateOne(ctx, bson.M{"email": email}, update)
}

// UpdateUserRole sets the role on the user document with the given id.
func (db *DB) UpdateUserRole(ctx context.Context, id primitive.ObjectID, role string) (*mongo.UpdateResult, error) {
	return db.Users().UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"role": role}})
}

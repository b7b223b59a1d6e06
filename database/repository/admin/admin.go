package adminRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"coolrentals/database"
	"coolrentals/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrDuplicateEmail is returned when an admin with the same email already exists.
var ErrDuplicateEmail = errors.New("admin email already registered")

// AdminRepository defines data access for back-office accounts.
type AdminRepository interface {
	// GetByEmail returns database.ErrNotFound when no admin has the email.
	GetByEmail(ctx context.Context, email string) (*models.Admin, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Admin, error)
	Create(ctx context.Context, admin *models.Admin) error
}

// MongoAdminRepo implements AdminRepository using MongoDB.
type MongoAdminRepo struct {
	coll *mongo.Collection
}

// NewMongoAdminRepo creates the repository; the unique email index is required.
func NewMongoAdminRepo() (AdminRepository, error) {
	repo := &MongoAdminRepo{coll: database.DB().Collection("admins")}
	err := database.EnsureIndexes(repo.coll,
		mongo.IndexModel{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	)
	if err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *MongoAdminRepo) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	ctx, cancel := database.WithTimeout(ctx, database.ReadTimeout)
	defer cancel()

	var admin models.Admin
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&admin); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, database.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch admin with email %s: %w", email, err)
	}
	return &admin, nil
}

func (r *MongoAdminRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Admin, error) {
	return database.FindByID[models.Admin](ctx, r.coll, id)
}

func (r *MongoAdminRepo) Create(ctx context.Context, admin *models.Admin) error {
	now := time.Now().UTC()
	admin.ID = primitive.NewObjectID()
	admin.CreatedAt = now
	admin.UpdatedAt = now
	if _, err := database.InsertOne(ctx, r.coll, admin); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

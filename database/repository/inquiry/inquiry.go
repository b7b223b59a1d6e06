package inquiryRepo

import (
	"context"
	"time"

	"coolrentals/database"
	"coolrentals/database/query"
	"coolrentals/models"
	"coolrentals/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// RentalInquiryRepository defines data access for rental inquiries.
type RentalInquiryRepository interface {
	Create(ctx context.Context, inquiry *models.RentalInquiry) error
	Find(ctx context.Context, q query.Query) ([]models.RentalInquiry, error)
	Count(ctx context.Context, f query.Filter) (int64, error)
	// SetStatus returns database.ErrNotFound when the inquiry does not exist.
	SetStatus(ctx context.Context, id primitive.ObjectID, status models.InquiryStatus) (*models.RentalInquiry, error)
}

type mongoInquiryRepo struct {
	coll *mongo.Collection
}

// NewMongoInquiryRepo returns a RentalInquiryRepository backed by MongoDB.
func NewMongoInquiryRepo() RentalInquiryRepository {
	repo := &mongoInquiryRepo{coll: database.DB().Collection("rental_inquiries")}
	err := database.EnsureIndexes(repo.coll,
		mongo.IndexModel{Keys: bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}},
		mongo.IndexModel{Keys: bson.D{{Key: "unitId", Value: 1}}},
	)
	if err != nil {
		utils.GetLogger().Warn("rental inquiry indexes not created", zap.Error(err))
	}
	return repo
}

func (r *mongoInquiryRepo) Create(ctx context.Context, inquiry *models.RentalInquiry) error {
	now := time.Now().UTC()
	inquiry.ID = primitive.NewObjectID()
	inquiry.CreatedAt = now
	inquiry.UpdatedAt = now
	_, err := database.InsertOne(ctx, r.coll, inquiry)
	return err
}

func (r *mongoInquiryRepo) Find(ctx context.Context, q query.Query) ([]models.RentalInquiry, error) {
	return database.FindMany[models.RentalInquiry](ctx, r.coll, q)
}

func (r *mongoInquiryRepo) Count(ctx context.Context, f query.Filter) (int64, error) {
	return database.CountMatching(ctx, r.coll, f)
}

func (r *mongoInquiryRepo) SetStatus(ctx context.Context, id primitive.ObjectID, status models.InquiryStatus) (*models.RentalInquiry, error) {
	return database.SetFields[models.RentalInquiry](ctx, r.coll, id, bson.M{
		"status":    status,
		"updatedAt": time.Now().UTC(),
	})
}

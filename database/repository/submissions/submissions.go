package submissionsRepo

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

// LeadRepository stores callback requests.
type LeadRepository interface {
	Create(ctx context.Context, lead *models.Lead) error
	Find(ctx context.Context, q query.Query) ([]models.Lead, error)
}

// VendorRepository stores vendor listing requests.
type VendorRepository interface {
	Create(ctx context.Context, listing *models.VendorListing) error
	Find(ctx context.Context, q query.Query) ([]models.VendorListing, error)
}

// ContactRepository stores contact-form submissions.
type ContactRepository interface {
	Create(ctx context.Context, contact *models.Contact) error
	Find(ctx context.Context, q query.Query) ([]models.Contact, error)
}

func collection(name string) *mongo.Collection {
	coll := database.DB().Collection(name)
	err := database.EnsureIndexes(coll, mongo.IndexModel{Keys: bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}})
	if err != nil {
		utils.GetLogger().Warn("indexes not created", zap.String("collection", name), zap.Error(err))
	}
	return coll
}

func stamp() (primitive.ObjectID, time.Time) {
	return primitive.NewObjectID(), time.Now().UTC()
}

type mongoLeadRepo struct{ coll *mongo.Collection }

func NewMongoLeadRepo() LeadRepository {
	return &mongoLeadRepo{coll: collection("leads")}
}

func (r *mongoLeadRepo) Create(ctx context.Context, lead *models.Lead) error {
	id, now := stamp()
	lead.ID, lead.CreatedAt, lead.UpdatedAt = id, now, now
	_, err := database.InsertOne(ctx, r.coll, lead)
	return err
}

func (r *mongoLeadRepo) Find(ctx context.Context, q query.Query) ([]models.Lead, error) {
	return database.FindMany[models.Lead](ctx, r.coll, q)
}

type mongoVendorRepo struct{ coll *mongo.Collection }

func NewMongoVendorRepo() VendorRepository {
	return &mongoVendorRepo{coll: collection("vendor_listings")}
}

func (r *mongoVendorRepo) Create(ctx context.Context, listing *models.VendorListing) error {
	id, now := stamp()
	listing.ID, listing.CreatedAt, listing.UpdatedAt = id, now, now
	_, err := database.InsertOne(ctx, r.coll, listing)
	return err
}

func (r *mongoVendorRepo) Find(ctx context.Context, q query.Query) ([]models.VendorListing, error) {
	return database.FindMany[models.VendorListing](ctx, r.coll, q)
}

type mongoContactRepo struct{ coll *mongo.Collection }

func NewMongoContactRepo() ContactRepository {
	return &mongoContactRepo{coll: collection("contacts")}
}

func (r *mongoContactRepo) Create(ctx context.Context, contact *models.Contact) error {
	id, now := stamp()
	contact.ID, contact.CreatedAt, contact.UpdatedAt = id, now, now
	_, err := database.InsertOne(ctx, r.coll, contact)
	return err
}

func (r *mongoContactRepo) Find(ctx context.Context, q query.Query) ([]models.Contact, error) {
	return database.FindMany[models.Contact](ctx, r.coll, q)
}

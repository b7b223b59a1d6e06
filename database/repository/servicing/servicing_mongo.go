package servicingRepo

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

var newestIndex = mongo.IndexModel{Keys: bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}}

func ensureIndexes(coll *mongo.Collection, extra ...mongo.IndexModel) {
	if err := database.EnsureIndexes(coll, append([]mongo.IndexModel{newestIndex}, extra...)...); err != nil {
		utils.GetLogger().Warn("indexes not created", zap.String("collection", coll.Name()), zap.Error(err))
	}
}

// --- Services ---

type mongoServiceRepo struct {
	coll *mongo.Collection
}

// NewMongoServiceRepo returns a ServiceRepository backed by MongoDB.
func NewMongoServiceRepo() ServiceRepository {
	repo := &mongoServiceRepo{coll: database.DB().Collection("services")}
	ensureIndexes(repo.coll)
	return repo
}

func (r *mongoServiceRepo) Find(ctx context.Context, q query.Query) ([]models.Service, error) {
	return database.FindMany[models.Service](ctx, r.coll, q)
}

func (r *mongoServiceRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Service, error) {
	return database.FindByID[models.Service](ctx, r.coll, id)
}

func (r *mongoServiceRepo) Create(ctx context.Context, service *models.Service) error {
	now := time.Now().UTC()
	service.ID = primitive.NewObjectID()
	service.CreatedAt = now
	service.UpdatedAt = now
	_, err := database.InsertOne(ctx, r.coll, service)
	return err
}

func (r *mongoServiceRepo) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.Service, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	for k, v := range fields {
		set[k] = v
	}
	return database.SetFields[models.Service](ctx, r.coll, id, set)
}

func (r *mongoServiceRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	return database.DeleteByID(ctx, r.coll, id)
}

// --- Bookings ---

type mongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo returns a BookingRepository backed by MongoDB.
func NewMongoBookingRepo() BookingRepository {
	repo := &mongoBookingRepo{coll: database.DB().Collection("service_bookings")}
	ensureIndexes(repo.coll, mongo.IndexModel{Keys: bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}}})
	return repo
}

func (r *mongoBookingRepo) Create(ctx context.Context, booking *models.ServiceBooking) error {
	now := time.Now().UTC()
	booking.ID = primitive.NewObjectID()
	booking.CreatedAt = now
	booking.UpdatedAt = now
	_, err := database.InsertOne(ctx, r.coll, booking)
	return err
}

func (r *mongoBookingRepo) Find(ctx context.Context, q query.Query) ([]models.ServiceBooking, error) {
	return database.FindMany[models.ServiceBooking](ctx, r.coll, q)
}

func (r *mongoBookingRepo) Count(ctx context.Context, f query.Filter) (int64, error) {
	return database.CountMatching(ctx, r.coll, f)
}

func (r *mongoBookingRepo) SetStatus(ctx context.Context, id primitive.ObjectID, status models.InquiryStatus) (*models.ServiceBooking, error) {
	return database.SetFields[models.ServiceBooking](ctx, r.coll, id, bson.M{"status": status, "updatedAt": time.Now().UTC()})
}

// --- Repair requests ---

type mongoRequestRepo struct {
	coll *mongo.Collection
}

// NewMongoRequestRepo returns a RequestRepository backed by MongoDB.
func NewMongoRequestRepo() RequestRepository {
	repo := &mongoRequestRepo{coll: database.DB().Collection("service_requests")}
	ensureIndexes(repo.coll)
	return repo
}

func (r *mongoRequestRepo) Create(ctx context.Context, request *models.ServiceRequest) error {
	now := time.Now().UTC()
	request.ID = primitive.NewObjectID()
	request.CreatedAt = now
	request.UpdatedAt = now
	if request.Images == nil {
		request.Images = []string{}
	}
	_, err := database.InsertOne(ctx, r.coll, request)
	return err
}

func (r *mongoRequestRepo) Find(ctx context.Context, q query.Query) ([]models.ServiceRequest, error) {
	return database.FindMany[models.ServiceRequest](ctx, r.coll, q)
}

func (r *mongoRequestRepo) SetStatus(ctx context.Context, id primitive.ObjectID, status models.ServiceRequestStatus) (*models.ServiceRequest, error) {
	return database.SetFields[models.ServiceRequest](ctx, r.coll, id, bson.M{"status": status, "updatedAt": time.Now().UTC()})
}

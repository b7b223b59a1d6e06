package unitRepo

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

const collectionName = "units"

// MongoUnitRepo implements UnitRepository using MongoDB.
type MongoUnitRepo struct {
	coll *mongo.Collection
}

// NewMongoUnitRepo creates the repository and makes sure the search indexes exist.
func NewMongoUnitRepo() UnitRepository {
	repo := &MongoUnitRepo{coll: database.DB().Collection(collectionName)}
	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Warn("unit indexes not created", zap.Error(err))
	}
	return repo
}

func (r *MongoUnitRepo) ensureIndexes() error {
	return database.EnsureIndexes(r.coll,
		mongo.IndexModel{Keys: bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}},
		mongo.IndexModel{Keys: bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}}},
		mongo.IndexModel{Keys: bson.D{{Key: "type", Value: 1}}},
		mongo.IndexModel{Keys: bson.D{{Key: "capacity", Value: 1}}},
	)
}

func (r *MongoUnitRepo) Find(ctx context.Context, q query.Query) ([]models.Unit, error) {
	return database.FindMany[models.Unit](ctx, r.coll, q)
}

func (r *MongoUnitRepo) Count(ctx context.Context, f query.Filter) (int64, error) {
	return database.CountMatching(ctx, r.coll, f)
}

func (r *MongoUnitRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Unit, error) {
	return database.FindByID[models.Unit](ctx, r.coll, id)
}

// Create inserts a new unit and stamps its id and timestamps.
func (r *MongoUnitRepo) Create(ctx context.Context, unit *models.Unit) error {
	now := time.Now().UTC()
	unit.ID = primitive.NewObjectID()
	unit.CreatedAt = now
	unit.UpdatedAt = now
	if unit.Images == nil {
		unit.Images = []string{}
	}
	_, err := database.InsertOne(ctx, r.coll, unit)
	return err
}

func (r *MongoUnitRepo) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.Unit, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	for k, v := range fields {
		set[k] = v
	}
	return database.SetFields[models.Unit](ctx, r.coll, id, set)
}

func (r *MongoUnitRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	return database.DeleteByID(ctx, r.coll, id)
}

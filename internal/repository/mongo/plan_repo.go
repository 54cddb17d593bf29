package mongo

import (
	"context"
	"errors"
	"time"

	"fitplan/planner-app/internal/domain"
	"fitplan/planner-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const planCollectionName = "plans"

// mongoPlanRepository implements repository.PlanRepository
type mongoPlanRepository struct {
	collection *mongo.Collection
}

// NewMongoPlanRepository creates a new Plan repository.
func NewMongoPlanRepository(db *mongo.Database) repository.PlanRepository {
	return &mongoPlanRepository{
		collection: db.Collection(planCollectionName),
	}
}

// Create inserts a new plan.
func (r *mongoPlanRepository) Create(ctx context.Context, plan *domain.Plan) (primitive.ObjectID, error) {
	if plan.OwnerID == primitive.NilObjectID || plan.Name == "" {
		return primitive.NilObjectID, errors.New("plan requires ownerId and name")
	}
	plan.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	plan.CreatedAt = now
	plan.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, plan)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted plan ID")
	}
	return insertedID, nil
}

// GetByID retrieves a single plan by its ID.
func (r *mongoPlanRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Plan, error) {
	var plan domain.Plan
	filter := bson.M{"_id": id}
	err := r.collection.FindOne(ctx, filter).Decode(&plan)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &plan, nil
}

// GetByOwnerID retrieves all plans belonging to the owner, newest first.
func (r *mongoPlanRepository) GetByOwnerID(ctx context.Context, ownerID primitive.ObjectID) ([]domain.Plan, error) {
	var plans []domain.Plan
	filter := bson.M{"ownerId": ownerID}
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &plans); err != nil {
		return nil, err
	}
	// Return empty slice if no plans found (not an error)
	return plans, nil
}

// HasCurrent reports whether the owner already has a current plan.
func (r *mongoPlanRepository) HasCurrent(ctx context.Context, ownerID primitive.ObjectID) (bool, error) {
	filter := bson.M{"ownerId": ownerID, "isCurrent": true}
	count, err := r.collection.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// UpdateName renames a plan, enforcing ownership via the filter.
func (r *mongoPlanRepository) UpdateName(ctx context.Context, planID, ownerID primitive.ObjectID, name string) error {
	if planID == primitive.NilObjectID || name == "" {
		return errors.New("plan ID and name are required for rename")
	}
	filter := bson.M{"_id": planID, "ownerId": ownerID}
	update := bson.M{"$set": bson.M{"name": name, "updatedAt": time.Now().UTC()}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// SetCurrent marks the given plan current and clears the flag on every other
// plan of the owner. Both updates run inside one transaction so the
// "at most one current plan" invariant holds no matter the prior state.
func (r *mongoPlanRepository) SetCurrent(ctx context.Context, planID, ownerID primitive.ObjectID) error {
	if planID == primitive.NilObjectID || ownerID == primitive.NilObjectID {
		return errors.New("plan ID and owner ID are required")
	}

	session, err := r.collection.Database().Client().StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	now := time.Now().UTC()
	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		clearFilter := bson.M{
			"ownerId":   ownerID,
			"isCurrent": true,
			"_id":       bson.M{"$ne": planID},
		}
		clearUpdate := bson.M{"$set": bson.M{"isCurrent": false, "updatedAt": now}}
		if _, err := r.collection.UpdateMany(sc, clearFilter, clearUpdate); err != nil {
			return nil, err
		}

		setFilter := bson.M{"_id": planID, "ownerId": ownerID}
		setUpdate := bson.M{"$set": bson.M{"isCurrent": true, "updatedAt": now}}
		result, err := r.collection.UpdateOne(sc, setFilter, setUpdate)
		if err != nil {
			return nil, err
		}
		if result.MatchedCount == 0 {
			return nil, repository.ErrNotFound
		}
		return nil, nil
	})
	return err
}

// SetCurrentDay updates the current-day marker on a plan.
func (r *mongoPlanRepository) SetCurrentDay(ctx context.Context, planID, ownerID primitive.ObjectID, dayOrder int) error {
	filter := bson.M{"_id": planID, "ownerId": ownerID}
	update := bson.M{"$set": bson.M{"currentDayOrder": dayOrder, "updatedAt": time.Now().UTC()}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsurePlanIndexes creates necessary indexes. Call during startup.
func EnsurePlanIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "ownerId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
		{
			// Quickly find the current plan for an owner
			Keys:    bson.D{{Key: "ownerId", Value: 1}, {Key: "isCurrent", Value: 1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}

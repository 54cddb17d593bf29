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

const assignmentCollectionName = "assignments"

// mongoAssignmentRepository implements repository.AssignmentRepository
type mongoAssignmentRepository struct {
	collection *mongo.Collection
}

// NewMongoAssignmentRepository creates a new Assignment repository.
func NewMongoAssignmentRepository(db *mongo.Database) repository.AssignmentRepository {
	return &mongoAssignmentRepository{
		collection: db.Collection(assignmentCollectionName),
	}
}

// assignmentSortOrder is the ordering contract: days ascending, then the
// within-day creation timestamp ascending.
var assignmentSortOrder = bson.D{
	{Key: "dayOrder", Value: 1},
	{Key: "createdAt", Value: 1},
}

// GetByPlanAndWeek retrieves all assignment rows of one (plan, week) scope
// in display order.
func (r *mongoAssignmentRepository) GetByPlanAndWeek(ctx context.Context, planID primitive.ObjectID, weekNumber int) ([]domain.Assignment, error) {
	filter := bson.M{"planId": planID, "weekNumber": weekNumber}
	return r.find(ctx, filter)
}

// GetByPlanID retrieves all assignment rows of a plan across weeks.
func (r *mongoAssignmentRepository) GetByPlanID(ctx context.Context, planID primitive.ObjectID) ([]domain.Assignment, error) {
	filter := bson.M{"planId": planID}
	return r.find(ctx, filter)
}

func (r *mongoAssignmentRepository) find(ctx context.Context, filter bson.M) ([]domain.Assignment, error) {
	var assignments []domain.Assignment
	findOptions := options.Find().SetSort(assignmentSortOrder)

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &assignments); err != nil {
		return nil, err
	}
	return assignments, nil
}

// ReplaceForPlanWeek swaps the full assignment set of one (plan, week) scope
// inside a single transaction. Either the old rows or the new rows survive a
// failure, never a mix of both.
func (r *mongoAssignmentRepository) ReplaceForPlanWeek(ctx context.Context, planID primitive.ObjectID, weekNumber int, rows []domain.Assignment) error {
	if planID == primitive.NilObjectID {
		return errors.New("plan ID is required to replace assignments")
	}

	session, err := r.collection.Database().Client().StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		filter := bson.M{"planId": planID, "weekNumber": weekNumber}
		if _, err := r.collection.DeleteMany(sc, filter); err != nil {
			return nil, err
		}
		if len(rows) == 0 {
			return nil, nil
		}

		// Stagger createdAt so the within-day ordering of the inserted rows
		// is unambiguous.
		base := time.Now().UTC()
		docs := make([]interface{}, len(rows))
		for i := range rows {
			rows[i].ID = primitive.NewObjectID()
			rows[i].PlanID = planID
			rows[i].WeekNumber = weekNumber
			rows[i].CreatedAt = base.Add(time.Duration(i) * time.Millisecond)
			docs[i] = rows[i]
		}
		if _, err := r.collection.InsertMany(sc, docs); err != nil {
			return nil, err
		}
		return nil, nil
	})
	return err
}

// EnsureAssignmentIndexes creates necessary indexes. Call during startup.
func EnsureAssignmentIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// Main query pattern: all rows of a (plan, week) in display order
			Keys: bson.D{
				{Key: "planId", Value: 1},
				{Key: "weekNumber", Value: 1},
				{Key: "dayOrder", Value: 1},
				{Key: "createdAt", Value: 1},
			},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "ownerId", Value: 1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}

package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/milavdabgar/npni-flutter/app/models"
)

func GetEvaluationsByProject(ctx context.Context, db *mongo.Database, projectID primitive.ObjectID) ([]models.Evaluation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := db.Collection(EvaluationsCollection).Find(ctx, bson.M{"projectId": projectID}, opts)
	if err != nil {
		return nil, wrapErr(err)
	}
	defer cur.Close(ctx)

	var evaluations []models.Evaluation
	if err := cur.All(ctx, &evaluations); err != nil {
		return nil, wrapErr(err)
	}
	return evaluations, nil
}

// ListEvaluations returns every evaluation, newest first. Project read
// endpoints use this to join scores onto all projects in one query.
func ListEvaluations(ctx context.Context, db *mongo.Database) ([]models.Evaluation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := db.Collection(EvaluationsCollection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, wrapErr(err)
	}
	defer cur.Close(ctx)

	var evaluations []models.Evaluation
	if err := cur.All(ctx, &evaluations); err != nil {
		return nil, wrapErr(err)
	}
	return evaluations, nil
}

// AttachEvaluations joins evaluations onto their projects, preserving the
// given evaluation order. Every project ends up with a non-nil slice so
// clients always see an array.
func AttachEvaluations(projects []models.Project, evaluations []models.Evaluation) {
	byProject := make(map[primitive.ObjectID][]models.Evaluation, len(projects))
	for _, evaluation := range evaluations {
		byProject[evaluation.ProjectID] = append(byProject[evaluation.ProjectID], evaluation)
	}
	for i := range projects {
		if evals, ok := byProject[projects[i].ID]; ok {
			projects[i].Evaluations = evals
		} else {
			projects[i].Evaluations = []models.Evaluation{}
		}
	}
}

func GetEvaluationByID(ctx context.Context, db *mongo.Database, id primitive.ObjectID) (*models.Evaluation, error) {
	evaluation := &models.Evaluation{}
	err := db.Collection(EvaluationsCollection).FindOne(ctx, bson.M{"_id": id}).Decode(evaluation)
	if err != nil {
		return nil, wrapErr(err)
	}
	return evaluation, nil
}

// CreateEvaluation inserts a new evaluation. The unique index on
// (projectId, juryId, round) rejects a second submission for the same
// triple, so uniqueness is a single conditional write with no race window.
func CreateEvaluation(ctx context.Context, db *mongo.Database, evaluation *models.Evaluation) error {
	now := time.Now()
	evaluation.CreatedAt = now
	evaluation.UpdatedAt = now
	res, err := db.Collection(EvaluationsCollection).InsertOne(ctx, evaluation)
	if err != nil {
		return wrapErr(err)
	}
	evaluation.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// LockEvaluation marks an evaluation as finalized. Locking is one-way:
// nothing in the application ever sets isLocked back to false.
func LockEvaluation(ctx context.Context, db *mongo.Database, id primitive.ObjectID) (*models.Evaluation, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	evaluation := &models.Evaluation{}
	err := db.Collection(EvaluationsCollection).
		FindOneAndUpdate(ctx,
			bson.M{"_id": id},
			bson.M{"$set": bson.M{"isLocked": true, "updatedAt": time.Now()}},
			opts).
		Decode(evaluation)
	if err != nil {
		return nil, wrapErr(err)
	}
	return evaluation, nil
}

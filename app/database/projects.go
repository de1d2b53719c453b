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

func ListProjects(ctx context.Context, db *mongo.Database) ([]models.Project, error) {
	opts := options.Find().SetSort(bson.D{{Key: "teamId", Value: 1}})
	cur, err := db.Collection(ProjectsCollection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, wrapErr(err)
	}
	defer cur.Close(ctx)

	var projects []models.Project
	if err := cur.All(ctx, &projects); err != nil {
		return nil, wrapErr(err)
	}
	return projects, nil
}

func GetProjectByID(ctx context.Context, db *mongo.Database, id primitive.ObjectID) (*models.Project, error) {
	project := &models.Project{}
	err := db.Collection(ProjectsCollection).FindOne(ctx, bson.M{"_id": id}).Decode(project)
	if err != nil {
		return nil, wrapErr(err)
	}
	return project, nil
}

// GetProjectByTeamID resolves a team account to its project: the account's
// email is the project's team ID.
func GetProjectByTeamID(ctx context.Context, db *mongo.Database, teamID string) (*models.Project, error) {
	project := &models.Project{}
	err := db.Collection(ProjectsCollection).FindOne(ctx, bson.M{"teamId": teamID}).Decode(project)
	if err != nil {
		return nil, wrapErr(err)
	}
	return project, nil
}

func CreateProject(ctx context.Context, db *mongo.Database, project *models.Project) error {
	now := time.Now()
	project.CreatedAt = now
	project.UpdatedAt = now
	res, err := db.Collection(ProjectsCollection).InsertOne(ctx, project)
	if err != nil {
		return wrapErr(err)
	}
	project.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// UpdateProject applies a partial update ($set) and returns the updated
// document. Admin edits and venue assignment both go through here.
func UpdateProject(ctx context.Context, db *mongo.Database, id primitive.ObjectID, fields bson.M) (*models.Project, error) {
	fields["updatedAt"] = time.Now()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	project := &models.Project{}
	err := db.Collection(ProjectsCollection).
		FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, opts).
		Decode(project)
	if err != nil {
		return nil, wrapErr(err)
	}
	return project, nil
}

func DeleteProject(ctx context.Context, db *mongo.Database, id primitive.ObjectID) error {
	res, err := db.Collection(ProjectsCollection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return wrapErr(err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func DeleteAllProjects(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(ProjectsCollection).DeleteMany(ctx, bson.M{})
	return wrapErr(err)
}

// InsertProjects inserts the given projects in order, stopping at the
// first failure.
func InsertProjects(ctx context.Context, db *mongo.Database, projects []models.Project) error {
	if len(projects) == 0 {
		return nil
	}
	docs := make([]interface{}, len(projects))
	now := time.Now()
	for i := range projects {
		projects[i].CreatedAt = now
		projects[i].UpdatedAt = now
		docs[i] = projects[i]
	}
	_, err := db.Collection(ProjectsCollection).InsertMany(ctx, docs)
	return wrapErr(err)
}

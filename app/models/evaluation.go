package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Evaluation is one jury member's score for one project in one round.
// At most one evaluation may exist per (project, jury, round); the
// evaluations collection enforces this with a unique compound index.
type Evaluation struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProjectID primitive.ObjectID `bson:"projectId" json:"project_id"`
	JuryID    primitive.ObjectID `bson:"juryId" json:"jury_id"`
	JuryName  string             `bson:"juryName,omitempty" json:"jury_name,omitempty"`
	Marks     int                `bson:"marks" json:"marks" validate:"min=0,max=100"`
	Comment   string             `bson:"comment" json:"comment"`
	Round     int                `bson:"round" json:"round" validate:"min=1,max=2"`
	IsLocked  bool               `bson:"isLocked" json:"is_locked"`
	CreatedAt time.Time          `bson:"createdAt" json:"created_at"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updated_at"`
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Project represents one participating team's project. TeamID follows the
// PREFIX-NNN format and doubles as the team account's login email.
type Project struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TeamID           string             `bson:"teamId" json:"team_id" validate:"required"`
	Title            string             `bson:"title" json:"title" validate:"required"`
	Description      string             `bson:"description" json:"description"`
	PresentationType string             `bson:"presentationType" json:"presentation_type"`
	Institution      string             `bson:"institution" json:"institution"`
	Semester         string             `bson:"semester" json:"semester"`
	Branch           string             `bson:"branch" json:"branch"`
	TeamMembers      []string           `bson:"teamMembers" json:"team_members"`
	MentorName       string             `bson:"mentorName" json:"mentor_name"`
	ContactNumber    string             `bson:"contactNumber" json:"contact_number"`
	Location         string             `bson:"location,omitempty" json:"location,omitempty"`
	CreatedAt        time.Time          `bson:"createdAt" json:"created_at"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updated_at"`
	// Evaluations are stored in their own collection and joined onto
	// read responses; teams see their scores through this field.
	Evaluations []Evaluation `bson:"-" json:"evaluations"`
}

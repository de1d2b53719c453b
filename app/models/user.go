package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles. Team accounts are generated by the CSV import; admin and
// jury accounts are created through the register endpoint or the seed tool.
const (
	RoleAdmin = "admin"
	RoleJury  = "jury"
	RoleTeam  = "team"
)

// User represents a login account. For team accounts the email equals the
// project's team ID, which is how a team login resolves to its project.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email     string             `bson:"email" json:"email" validate:"required"`
	Password  string             `bson:"password" json:"-" validate:"required"`
	Role      string             `bson:"role" json:"role" validate:"required,oneof=admin jury team"`
	Name      string             `bson:"name" json:"name" validate:"required"`
	CreatedAt time.Time          `bson:"createdAt" json:"created_at"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updated_at"`
}

package content

import "go.mongodb.org/mongo-driver/bson/primitive"

// Display collections for the site. These are pass-through documents:
// the server stores and serves them, nothing more.

type Announcement struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Date        string             `bson:"date,omitempty" json:"date,omitempty"`
}

type Banner struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Image       string             `bson:"image" json:"image"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
}

// Teacher is a staff profile, unrelated to user records and roles.
type Teacher struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name    string             `bson:"name" json:"name"`
	Role    string             `bson:"role" json:"role"`
	Image   string             `bson:"image" json:"image"`
	Details string             `bson:"details" json:"details"`
}

// Partial updates; nil fields are left untouched.

type BannerUpdate struct {
	Image       *string
	Title       *string
	Description *string
}

type TeacherUpdate struct {
	Name    *string
	Role    *string
	Image   *string
	Details *string
}

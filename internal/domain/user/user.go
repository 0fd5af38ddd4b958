package user

import (
	"encoding/json"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StatusRequested is the only status value the upsert path interprets.
// Every other status string is stored verbatim and ignored.
const StatusRequested = "Requested"

// Record is a stored user document. Users are open documents: any field
// the client sends beyond the named ones is kept in Extra and persisted
// verbatim.
type Record struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	Email       string             `bson:"email" json:"email"`
	DisplayName string             `bson:"displayName" json:"displayName"`
	Role        string             `bson:"role,omitempty" json:"role,omitempty"`
	Status      string             `bson:"status,omitempty" json:"status,omitempty"`
	Timestamp   int64              `bson:"timestamp,omitempty" json:"timestamp,omitempty"`
	Extra       map[string]any     `bson:",inline" json:"-"`
}

// MarshalJSON flattens Extra back into the document so responses carry
// the full stored record, not just the named fields.
func (r Record) MarshalJSON() ([]byte, error) {
	doc := make(map[string]any, len(r.Extra)+6)

	for k, v := range r.Extra {
		doc[k] = v
	}

	if !r.ID.IsZero() {
		doc["_id"] = r.ID.Hex()
	}

	doc["email"] = r.Email
	doc["displayName"] = r.DisplayName

	if r.Role != "" {
		doc["role"] = r.Role
	}
	if r.Status != "" {
		doc["status"] = r.Status
	}
	if r.Timestamp != 0 {
		doc["timestamp"] = r.Timestamp
	}

	return json.Marshal(doc)
}

// Profile is an inbound user document for the upsert path. Email and
// DisplayName together form the match key; Extra carries whatever else
// the client sent.
type Profile struct {
	Email       string
	DisplayName string
	Status      string
	Extra       map[string]any
}

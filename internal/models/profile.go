package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Profile is the 1:1 extension of a User. Experience and education entries are
// embedded sub-records ordered most-recent-first; mutations rewrite the whole
// document (see repository.ProfileRepository).
type Profile struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID         primitive.ObjectID `bson:"user" json:"user"`
	Status         string             `bson:"status,omitempty" json:"status,omitempty"`
	Skills         []string           `bson:"skills,omitempty" json:"skills,omitempty"`
	Company        string             `bson:"company,omitempty" json:"company,omitempty"`
	Location       string             `bson:"location,omitempty" json:"location,omitempty"`
	Website        string             `bson:"website,omitempty" json:"website,omitempty"`
	Bio            string             `bson:"bio,omitempty" json:"bio,omitempty"`
	GithubUsername string             `bson:"githubusername,omitempty" json:"githubusername,omitempty"`
	Social         Social             `bson:"social,omitempty" json:"social,omitempty"`
	Experience     []Experience       `bson:"experience" json:"experience"`
	Education      []Education        `bson:"education" json:"education"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`

	// Owner is the denormalized name/avatar of the owning user, populated at
	// read time for listings. Never persisted on the profile document.
	Owner *ProfileOwner `bson:"-" json:"owner,omitempty"`
}

// ProfileOwner carries the populated owner fields on profile responses.
type ProfileOwner struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// Social holds the optional social-network links of a profile.
type Social struct {
	Youtube  string `bson:"youtube,omitempty" json:"youtube,omitempty"`
	Facebook string `bson:"facebook,omitempty" json:"facebook,omitempty"`
	Twitter  string `bson:"twitter,omitempty" json:"twitter,omitempty"`
	Linkedin string `bson:"linkedin,omitempty" json:"linkedin,omitempty"`
}

// Experience is a work-history sub-record. A nil To with Current set means the
// position is ongoing.
type Experience struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Company     string             `bson:"company" json:"company"`
	Location    string             `bson:"location,omitempty" json:"location,omitempty"`
	From        time.Time          `bson:"from" json:"from"`
	To          *time.Time         `bson:"to,omitempty" json:"to,omitempty"`
	Current     bool               `bson:"current" json:"current"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
}

// Education is a schooling sub-record with the same lifecycle as Experience.
type Education struct {
	ID           primitive.ObjectID `bson:"_id" json:"id"`
	School       string             `bson:"school" json:"school"`
	Degree       string             `bson:"degree" json:"degree"`
	FieldOfStudy string             `bson:"fieldofstudy" json:"fieldofstudy"`
	From         time.Time          `bson:"from" json:"from"`
	To           *time.Time         `bson:"to,omitempty" json:"to,omitempty"`
	Current      bool               `bson:"current" json:"current"`
	Description  string             `bson:"description,omitempty" json:"description,omitempty"`
}

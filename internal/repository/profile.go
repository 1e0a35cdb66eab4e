package repository

import (
	"context"
	"errors"
	"time"

	"devconnect/internal/database"
	"devconnect/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ProfileRepository defines persistence operations for profiles.
//
// Sub-list mutations (experience, education) go through Replace: the caller
// splices the in-memory document and the whole profile is written back. Two
// concurrent splices against the same profile race and the last write wins;
// this lost-update window is accepted behavior, not a bug to paper over.
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Profile, error)
	List(ctx context.Context) ([]*models.Profile, error)
	Upsert(ctx context.Context, userID primitive.ObjectID, fields bson.M) (*models.Profile, error)
	Replace(ctx context.Context, profile *models.Profile) error
	DeleteByUserID(ctx context.Context, userID primitive.ObjectID) error
}

type profileRepository struct {
	col   *mongo.Collection
	users *mongo.Collection
}

// NewProfileRepository returns a new ProfileRepository implementation.
func NewProfileRepository(db *mongo.Database) ProfileRepository {
	return &profileRepository{
		col:   db.Collection(database.ProfilesCollection),
		users: db.Collection(database.UsersCollection),
	}
}

// GetByUserID returns (nil, nil) when the user has no profile; the upsert
// path needs to distinguish absence from failure.
func (r *profileRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Profile, error) {
	var profile models.Profile
	if err := r.col.FindOne(ctx, bson.M{"user": userID}).Decode(&profile); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	if err := r.attachOwners(ctx, []*models.Profile{&profile}); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) List(ctx context.Context) ([]*models.Profile, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	defer cur.Close(ctx)

	var profiles []*models.Profile
	if err := cur.All(ctx, &profiles); err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := r.attachOwners(ctx, profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

// Upsert applies fields as a partial $set keyed by owner, creating the
// profile when absent. Absent fields are never written, so defaults survive.
func (r *profileRepository) Upsert(ctx context.Context, userID primitive.ObjectID, fields bson.M) (*models.Profile, error) {
	update := bson.M{
		"$set": fields,
		"$setOnInsert": bson.M{
			"user":       userID,
			"experience": []models.Experience{},
			"education":  []models.Education{},
			"created_at": time.Now(),
		},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var profile models.Profile
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"user": userID}, update, opts).Decode(&profile); err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := r.attachOwners(ctx, []*models.Profile{&profile}); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) Replace(ctx context.Context, profile *models.Profile) error {
	if _, err := r.col.ReplaceOne(ctx, bson.M{"_id": profile.ID}, profile); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *profileRepository) DeleteByUserID(ctx context.Context, userID primitive.ObjectID) error {
	if _, err := r.col.DeleteOne(ctx, bson.M{"user": userID}); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// attachOwners populates the denormalized owner name/avatar on profile
// responses, the equivalent of the legacy populate('user', ['name','avatar']).
func (r *profileRepository) attachOwners(ctx context.Context, profiles []*models.Profile) error {
	if len(profiles) == 0 {
		return nil
	}

	ids := make([]primitive.ObjectID, 0, len(profiles))
	for _, p := range profiles {
		ids = append(ids, p.UserID)
	}

	cur, err := r.users.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return models.NewInternalError(err)
	}
	defer cur.Close(ctx)

	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return models.NewInternalError(err)
	}

	byID := make(map[primitive.ObjectID]*models.User, len(users))
	for i := range users {
		byID[users[i].ID] = &users[i]
	}
	for _, p := range profiles {
		if u, ok := byID[p.UserID]; ok {
			p.Owner = &models.ProfileOwner{Name: u.Name, Avatar: u.Avatar}
		}
	}
	return nil
}

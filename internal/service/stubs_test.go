package service

import (
	"context"
	"testing"

	"devconnect/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Function-field stubs let each test override only the calls it cares about.

type userRepoStub struct {
	createFn     func(ctx context.Context, user *models.User) error
	getByIDFn    func(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	getByEmailFn func(ctx context.Context, email string) (*models.User, error)
	deleteFn     func(ctx context.Context, id primitive.ObjectID) error
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}

func (s *userRepoStub) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}

func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}

func (s *userRepoStub) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.deleteFn(ctx, id)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		createFn:     func(context.Context, *models.User) error { return nil },
		getByIDFn:    func(context.Context, primitive.ObjectID) (*models.User, error) { return nil, nil },
		getByEmailFn: func(context.Context, string) (*models.User, error) { return nil, nil },
		deleteFn:     func(context.Context, primitive.ObjectID) error { return nil },
	}
}

type profileRepoStub struct {
	getByUserIDFn    func(ctx context.Context, userID primitive.ObjectID) (*models.Profile, error)
	listFn           func(ctx context.Context) ([]*models.Profile, error)
	upsertFn         func(ctx context.Context, userID primitive.ObjectID, fields bson.M) (*models.Profile, error)
	replaceFn        func(ctx context.Context, profile *models.Profile) error
	deleteByUserIDFn func(ctx context.Context, userID primitive.ObjectID) error
}

func (s *profileRepoStub) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Profile, error) {
	return s.getByUserIDFn(ctx, userID)
}

func (s *profileRepoStub) List(ctx context.Context) ([]*models.Profile, error) {
	return s.listFn(ctx)
}

func (s *profileRepoStub) Upsert(ctx context.Context, userID primitive.ObjectID, fields bson.M) (*models.Profile, error) {
	return s.upsertFn(ctx, userID, fields)
}

func (s *profileRepoStub) Replace(ctx context.Context, profile *models.Profile) error {
	return s.replaceFn(ctx, profile)
}

func (s *profileRepoStub) DeleteByUserID(ctx context.Context, userID primitive.ObjectID) error {
	return s.deleteByUserIDFn(ctx, userID)
}

func noopProfileRepo() *profileRepoStub {
	return &profileRepoStub{
		getByUserIDFn: func(context.Context, primitive.ObjectID) (*models.Profile, error) { return nil, nil },
		listFn:        func(context.Context) ([]*models.Profile, error) { return nil, nil },
		upsertFn: func(_ context.Context, userID primitive.ObjectID, _ bson.M) (*models.Profile, error) {
			return &models.Profile{UserID: userID}, nil
		},
		replaceFn:        func(context.Context, *models.Profile) error { return nil },
		deleteByUserIDFn: func(context.Context, primitive.ObjectID) error { return nil },
	}
}

type postRepoStub struct {
	createFn         func(ctx context.Context, post *models.Post) error
	getByIDFn        func(ctx context.Context, id primitive.ObjectID) (*models.Post, error)
	listFn           func(ctx context.Context) ([]*models.Post, error)
	replaceFn        func(ctx context.Context, post *models.Post) error
	deleteFn         func(ctx context.Context, id primitive.ObjectID) error
	deleteByAuthorFn func(ctx context.Context, userID primitive.ObjectID) error
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}

func (s *postRepoStub) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}

func (s *postRepoStub) List(ctx context.Context) ([]*models.Post, error) {
	return s.listFn(ctx)
}

func (s *postRepoStub) Replace(ctx context.Context, post *models.Post) error {
	return s.replaceFn(ctx, post)
}

func (s *postRepoStub) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.deleteFn(ctx, id)
}

func (s *postRepoStub) DeleteByAuthor(ctx context.Context, userID primitive.ObjectID) error {
	return s.deleteByAuthorFn(ctx, userID)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn: func(context.Context, *models.Post) error { return nil },
		getByIDFn: func(context.Context, primitive.ObjectID) (*models.Post, error) {
			return nil, models.NewNotFoundError("Post")
		},
		listFn:           func(context.Context) ([]*models.Post, error) { return nil, nil },
		replaceFn:        func(context.Context, *models.Post) error { return nil },
		deleteFn:         func(context.Context, primitive.ObjectID) error { return nil },
		deleteByAuthorFn: func(context.Context, primitive.ObjectID) error { return nil },
	}
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, code, appErr.Code)
}

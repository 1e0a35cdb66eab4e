package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"devconnect/internal/config"
	"devconnect/internal/middleware"
	"devconnect/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// memStore is an in-memory stand-in for the three Mongo collections, shared by
// the repo fakes below so cross-collection flows (cascade deletes, owner
// lookups) behave like the real thing.
type memStore struct {
	users    map[primitive.ObjectID]*models.User
	profiles map[primitive.ObjectID]*models.Profile // keyed by profile id
	posts    map[primitive.ObjectID]*models.Post
}

func newMemStore() *memStore {
	return &memStore{
		users:    make(map[primitive.ObjectID]*models.User),
		profiles: make(map[primitive.ObjectID]*models.Profile),
		posts:    make(map[primitive.ObjectID]*models.Post),
	}
}

type memUserRepo struct{ s *memStore }

func (r *memUserRepo) Create(_ context.Context, user *models.User) error {
	for _, u := range r.s.users {
		if u.Email == user.Email {
			return models.NewValidationError("This email is already taken.")
		}
	}
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()
	r.s.users[user.ID] = user
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	if u, ok := r.s.users[id]; ok {
		return u, nil
	}
	return nil, models.NewNotFoundError("User")
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	delete(r.s.users, id)
	return nil
}

type memProfileRepo struct{ s *memStore }

func (r *memProfileRepo) GetByUserID(_ context.Context, userID primitive.ObjectID) (*models.Profile, error) {
	for _, p := range r.s.profiles {
		if p.UserID == userID {
			return p, nil
		}
	}
	return nil, nil
}

func (r *memProfileRepo) List(_ context.Context) ([]*models.Profile, error) {
	out := make([]*models.Profile, 0, len(r.s.profiles))
	for _, p := range r.s.profiles {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memProfileRepo) Upsert(ctx context.Context, userID primitive.ObjectID, fields bson.M) (*models.Profile, error) {
	profile, _ := r.GetByUserID(ctx, userID)
	if profile == nil {
		profile = &models.Profile{
			ID:         primitive.NewObjectID(),
			UserID:     userID,
			Experience: []models.Experience{},
			Education:  []models.Education{},
			CreatedAt:  time.Now(),
		}
		r.s.profiles[profile.ID] = profile
	}
	for key, v := range fields {
		switch key {
		case "status":
			profile.Status = v.(string)
		case "company":
			profile.Company = v.(string)
		case "location":
			profile.Location = v.(string)
		case "website":
			profile.Website = v.(string)
		case "bio":
			profile.Bio = v.(string)
		case "githubusername":
			profile.GithubUsername = v.(string)
		case "skills":
			profile.Skills = v.([]string)
		case "social.youtube":
			profile.Social.Youtube = v.(string)
		case "social.facebook":
			profile.Social.Facebook = v.(string)
		case "social.twitter":
			profile.Social.Twitter = v.(string)
		case "social.linkedin":
			profile.Social.Linkedin = v.(string)
		}
	}
	return profile, nil
}

func (r *memProfileRepo) Replace(_ context.Context, profile *models.Profile) error {
	r.s.profiles[profile.ID] = profile
	return nil
}

func (r *memProfileRepo) DeleteByUserID(_ context.Context, userID primitive.ObjectID) error {
	for id, p := range r.s.profiles {
		if p.UserID == userID {
			delete(r.s.profiles, id)
		}
	}
	return nil
}

type memPostRepo struct{ s *memStore }

func (r *memPostRepo) Create(_ context.Context, post *models.Post) error {
	post.ID = primitive.NewObjectID()
	post.CreatedAt = time.Now()
	if post.Likes == nil {
		post.Likes = []models.Like{}
	}
	if post.Comments == nil {
		post.Comments = []models.Comment{}
	}
	r.s.posts[post.ID] = post
	return nil
}

func (r *memPostRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.Post, error) {
	if p, ok := r.s.posts[id]; ok {
		return p, nil
	}
	return nil, models.NewNotFoundError("Post")
}

func (r *memPostRepo) List(_ context.Context) ([]*models.Post, error) {
	out := make([]*models.Post, 0, len(r.s.posts))
	for _, p := range r.s.posts {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memPostRepo) Replace(_ context.Context, post *models.Post) error {
	r.s.posts[post.ID] = post
	return nil
}

func (r *memPostRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	delete(r.s.posts, id)
	return nil
}

func (r *memPostRepo) DeleteByAuthor(_ context.Context, userID primitive.ObjectID) error {
	for id, p := range r.s.posts {
		if p.UserID == userID {
			delete(r.s.posts, id)
		}
	}
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		Port:          "5000",
		JWTSecret:     strings.Repeat("t", 32),
		TokenTTLHours: 1,
		MongoURI:      "mongodb://unused",
		DBName:        "test",
		Env:           "test",
	}
}

// newTestApp wires a Fiber app over the in-memory store with real routes and
// real auth middleware.
func newTestApp(t *testing.T) (*fiber.App, *Server, *memStore) {
	t.Helper()

	cfg := testConfig()
	srv := NewServerWithDeps(cfg, nil, nil)
	store := newMemStore()
	srv.SetRepos(&memUserRepo{s: store}, &memProfileRepo{s: store}, &memPostRepo{s: store})

	app := fiber.New()
	srv.SetupRoutes(app)
	return app, srv, store
}

// seedUser creates a user directly in the store and returns it with a valid
// token for the account.
func seedUser(t *testing.T, srv *Server, store *memStore, name, email string) (*models.User, string) {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		ID:        primitive.NewObjectID(),
		Name:      name,
		Email:     email,
		Password:  string(hashed),
		Avatar:    "https://www.gravatar.com/avatar/test",
		CreatedAt: time.Now(),
	}
	store.users[user.ID] = user

	token, err := srv.Issuer().Issue(user.ID)
	require.NoError(t, err)
	return user, token
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(middleware.TokenHeader, token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()

	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func firstErrorMsg(t *testing.T, resp *http.Response) string {
	t.Helper()
	body := decodeBody[models.ErrorResponse](t, resp)
	require.NotEmpty(t, body.Errors)
	return body.Errors[0].Msg
}

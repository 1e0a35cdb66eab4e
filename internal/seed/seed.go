// Package seed creates demo data for development environments. It drives the
// real service layer so seeded documents obey the same rules as API writes.
package seed

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"devconnect/internal/models"
	"devconnect/internal/repository"
	"devconnect/internal/service"

	"github.com/brianvoe/gofakeit/v6"
)

// Options controls how much data the seeder creates.
type Options struct {
	Users        int
	PostsPerUser int
	Seed         int64 // 0 means non-deterministic
}

// Seeder populates the database with plausible users, profiles and posts.
type Seeder struct {
	factory *Factory
	rng     *rand.Rand
	opts    Options
}

// New returns a Seeder over the given services.
func New(users repository.UserRepository, userSvc *service.UserService, profileSvc *service.ProfileService, postSvc *service.PostService, opts Options) *Seeder {
	if opts.Users <= 0 {
		opts.Users = 10
	}
	if opts.PostsPerUser <= 0 {
		opts.PostsPerUser = 3
	}
	src := opts.Seed
	if src == 0 {
		src = time.Now().UnixNano()
	}
	gofakeit.Seed(src)

	return &Seeder{
		factory: NewFactory(users, userSvc, profileSvc, postSvc),
		rng:     rand.New(rand.NewSource(src)),
		opts:    opts,
	}
}

// Run creates the demo dataset: users with profiles, posts, and a mesh of
// likes and comments across users.
func (s *Seeder) Run(ctx context.Context) error {
	users := make([]*models.User, 0, s.opts.Users)
	for i := 0; i < s.opts.Users; i++ {
		user, err := s.factory.CreateUser(ctx)
		if err != nil {
			return fmt.Errorf("seed user %d: %w", i, err)
		}
		if _, err := s.factory.CreateProfile(ctx, user); err != nil {
			return fmt.Errorf("seed profile for %s: %w", user.Email, err)
		}
		users = append(users, user)
	}

	var posts []*models.Post
	for _, user := range users {
		for i := 0; i < s.opts.PostsPerUser; i++ {
			post, err := s.factory.CreatePost(ctx, user)
			if err != nil {
				return fmt.Errorf("seed post for %s: %w", user.Email, err)
			}
			posts = append(posts, post)
		}
	}

	// Engagement mesh: each user likes and comments on a few random posts.
	for _, user := range users {
		for _, post := range posts {
			if s.rng.Intn(3) != 0 || post.UserID == user.ID {
				continue
			}
			if err := s.factory.LikeAndComment(ctx, user, post); err != nil {
				// AlreadyLiked collisions are expected in the mesh; skip them.
				continue
			}
		}
	}

	log.Printf("Seeded %d users and %d posts", len(users), len(posts))
	return nil
}

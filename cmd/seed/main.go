// Command seed populates the development database with demo data.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"devconnect/internal/auth"
	"devconnect/internal/config"
	"devconnect/internal/database"
	"devconnect/internal/repository"
	"devconnect/internal/seed"
	"devconnect/internal/service"
)

func main() {
	users := flag.Int("users", 10, "number of users to create")
	posts := flag.Int("posts", 3, "posts per user")
	rngSeed := flag.Int64("seed", 0, "deterministic RNG seed (0 = random)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()
	db, err := database.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	defer db.Client().Disconnect(ctx)

	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	postRepo := repository.NewPostRepository(db)

	issuer := auth.NewIssuer(cfg.JWTSecret, time.Duration(cfg.TokenTTLHours)*time.Hour)
	userSvc := service.NewUserService(userRepo, profileRepo, postRepo, issuer)
	profileSvc := service.NewProfileService(profileRepo)
	postSvc := service.NewPostService(postRepo, userRepo)

	seeder := seed.New(userRepo, userSvc, profileSvc, postSvc, seed.Options{
		Users:        *users,
		PostsPerUser: *posts,
		Seed:         *rngSeed,
	})

	if err := seeder.Run(ctx); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}

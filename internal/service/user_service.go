// Package service holds the business rules: credential verification, the
// ownership checks, and the sub-record splice logic that runs before any
// document write.
package service

import (
	"context"
	"crypto/md5"
	"fmt"
	"strings"

	"devconnect/internal/auth"
	"devconnect/internal/middleware"
	"devconnect/internal/models"
	"devconnect/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// UserService implements registration, login and the account-deletion saga.
type UserService struct {
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	postRepo    repository.PostRepository
	issuer      *auth.Issuer
}

// RegisterInput carries the registration fields. Field rules run in the
// handler before this service is reached.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// NewUserService returns a UserService wired to its stores and token issuer.
func NewUserService(
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	postRepo repository.PostRepository,
	issuer *auth.Issuer,
) *UserService {
	return &UserService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		postRepo:    postRepo,
		issuer:      issuer,
	}
}

// Register creates a new account. The email check here is advisory; the
// unique index on users.email is what actually closes the race.
func (s *UserService) Register(ctx context.Context, in RegisterInput) error {
	existing, err := s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return err
	}
	if existing != nil {
		return models.NewValidationError("This email is already taken.")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.NewInternalError(err)
	}

	user := &models.User{
		Name:     in.Name,
		Email:    in.Email,
		Avatar:   GravatarURL(in.Email),
		Password: string(hashed),
	}

	return s.userRepo.Create(ctx, user)
}

// Login verifies credentials and issues a token. Unknown email and wrong
// password return the same error so callers cannot enumerate accounts.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", models.NewInvalidCredentialsError()
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", models.NewInvalidCredentialsError()
	}

	token, err := s.issuer.Issue(user.ID)
	if err != nil {
		return "", models.NewInternalError(err)
	}
	return token, nil
}

// CurrentUser returns the caller's user record (the password hash never
// leaves the model's JSON encoding anyway).
func (s *UserService) CurrentUser(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// DeleteAccount runs the cascade: authored posts, then profile, then user,
// as three independent deletes with no rollback. A failure mid-saga leaves a
// partial cascade; that is logged and accepted. Likes and comments the user
// left on other people's posts are deliberately not touched.
func (s *UserService) DeleteAccount(ctx context.Context, userID primitive.ObjectID) error {
	if err := s.postRepo.DeleteByAuthor(ctx, userID); err != nil {
		return err
	}
	if err := s.profileRepo.DeleteByUserID(ctx, userID); err != nil {
		middleware.Logger.ErrorContext(ctx, "account cascade left orphaned profile",
			"user_id", userID.Hex(), "error", err.Error())
		return err
	}
	if err := s.userRepo.Delete(ctx, userID); err != nil {
		middleware.Logger.ErrorContext(ctx, "account cascade left orphaned user record",
			"user_id", userID.Hex(), "error", err.Error())
		return err
	}
	return nil
}

// GravatarURL derives the avatar URL from the account email the same way the
// legacy app did: 200px, PG-rated, identicon fallback.
func GravatarURL(email string) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	hash := md5.Sum([]byte(normalized))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%x?s=200&r=pg&d=mm", hash)
}

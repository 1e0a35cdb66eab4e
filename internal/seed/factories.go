package seed

import (
	"context"
	"fmt"
	"strings"

	"devconnect/internal/models"
	"devconnect/internal/repository"
	"devconnect/internal/service"

	"github.com/brianvoe/gofakeit/v6"
)

// SeedPassword is the shared plaintext password of every seeded account.
const SeedPassword = "devconnect123"

// Factory builds domain entities through the service layer.
type Factory struct {
	users      repository.UserRepository
	userSvc    *service.UserService
	profileSvc *service.ProfileService
	postSvc    *service.PostService
}

// NewFactory creates a new Factory.
func NewFactory(users repository.UserRepository, userSvc *service.UserService, profileSvc *service.ProfileService, postSvc *service.PostService) *Factory {
	return &Factory{users: users, userSvc: userSvc, profileSvc: profileSvc, postSvc: postSvc}
}

// CreateUser registers a fake account and returns the stored record.
func (f *Factory) CreateUser(ctx context.Context) (*models.User, error) {
	name := gofakeit.Name()
	email := strings.ToLower(fmt.Sprintf("%s.%s@%s",
		gofakeit.LetterN(4), gofakeit.Username(), gofakeit.DomainName()))

	err := f.userSvc.Register(ctx, service.RegisterInput{
		Name:     name,
		Email:    email,
		Password: SeedPassword,
	})
	if err != nil {
		return nil, err
	}
	return f.users.GetByEmail(ctx, email)
}

// CreateProfile upserts a profile with a couple of experience and education
// entries for the given user.
func (f *Factory) CreateProfile(ctx context.Context, user *models.User) (*models.Profile, error) {
	status := gofakeit.JobTitle()
	skills := strings.Join([]string{
		gofakeit.ProgrammingLanguage(),
		gofakeit.ProgrammingLanguage(),
		gofakeit.ProgrammingLanguage(),
	}, ", ")
	company := gofakeit.Company()
	location := gofakeit.City()
	bio := gofakeit.Sentence(12)

	profile, err := f.profileSvc.Upsert(ctx, user.ID, service.UpsertProfileInput{
		Status:   &status,
		Skills:   &skills,
		Company:  &company,
		Location: &location,
		Bio:      &bio,
	})
	if err != nil {
		return nil, err
	}

	from := gofakeit.DateRange(gofakeit.Date().AddDate(-8, 0, 0), gofakeit.Date())
	if _, err := f.profileSvc.AddExperience(ctx, user.ID, service.EntryInput{
		Title:       gofakeit.JobTitle(),
		Company:     gofakeit.Company(),
		Location:    gofakeit.City(),
		From:        from,
		Current:     true,
		Description: gofakeit.Sentence(10),
	}); err != nil {
		return nil, err
	}

	if _, err := f.profileSvc.AddEducation(ctx, user.ID, service.EntryInput{
		School:       gofakeit.Company() + " University",
		Degree:       "BSc",
		FieldOfStudy: "Computer Science",
		From:         from.AddDate(-4, 0, 0),
		Current:      false,
		Description:  gofakeit.Sentence(8),
	}); err != nil {
		return nil, err
	}

	return profile, nil
}

// CreatePost creates one post authored by the user.
func (f *Factory) CreatePost(ctx context.Context, user *models.User) (*models.Post, error) {
	return f.postSvc.Create(ctx, user.ID, gofakeit.Paragraph(1, 3, 8, " "))
}

// LikeAndComment has the user like and comment on the post.
func (f *Factory) LikeAndComment(ctx context.Context, user *models.User, post *models.Post) error {
	if _, err := f.postSvc.Like(ctx, user.ID, post.ID.Hex()); err != nil {
		return err
	}
	_, err := f.postSvc.AddComment(ctx, user.ID, post.ID.Hex(), gofakeit.Sentence(10))
	return err
}

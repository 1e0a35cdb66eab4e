package service

import (
	"context"
	"strings"
	"time"

	"devconnect/internal/models"
	"devconnect/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProfileService implements the profile upsert and the experience/education
// sub-record mutators.
type ProfileService struct {
	profileRepo repository.ProfileRepository
}

// UpsertProfileInput is an explicit partial-update structure: nil pointers
// mean "field absent, leave it alone", never "overwrite with empty".
type UpsertProfileInput struct {
	Status         *string
	Skills         *string // comma-separated, split and trimmed here
	Company        *string
	Location       *string
	Website        *string
	Bio            *string
	GithubUsername *string
	Youtube        *string
	Facebook       *string
	Twitter        *string
	Linkedin       *string
}

// EntryInput carries the fields shared by experience and education entries.
type EntryInput struct {
	Title        string // experience only
	Company      string // experience only
	School       string // education only
	Degree       string // education only
	FieldOfStudy string // education only
	Location     string
	From         time.Time
	To           *time.Time
	Current      bool
	Description  string
}

// NewProfileService returns a ProfileService bound to its store.
func NewProfileService(profileRepo repository.ProfileRepository) *ProfileService {
	return &ProfileService{profileRepo: profileRepo}
}

// Upsert creates or merge-updates the caller's profile from the present
// fields only. Upsert(userID, UpsertProfileInput{}) is a no-op on every
// non-identity field.
func (s *ProfileService) Upsert(ctx context.Context, userID primitive.ObjectID, in UpsertProfileInput) (*models.Profile, error) {
	fields := bson.M{}

	setStr := func(key string, v *string) {
		if v != nil {
			fields[key] = *v
		}
	}
	setStr("status", in.Status)
	setStr("company", in.Company)
	setStr("location", in.Location)
	setStr("website", in.Website)
	setStr("bio", in.Bio)
	setStr("githubusername", in.GithubUsername)
	setStr("social.youtube", in.Youtube)
	setStr("social.facebook", in.Facebook)
	setStr("social.twitter", in.Twitter)
	setStr("social.linkedin", in.Linkedin)

	if in.Skills != nil {
		var skills []string
		for _, s := range strings.Split(*in.Skills, ",") {
			if trimmed := strings.TrimSpace(s); trimmed != "" {
				skills = append(skills, trimmed)
			}
		}
		fields["skills"] = skills
	}

	return s.profileRepo.Upsert(ctx, userID, fields)
}

// Me returns the caller's profile.
func (s *ProfileService) Me(ctx context.Context, userID primitive.ObjectID) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, models.NewNotFoundError("Profile")
	}
	return profile, nil
}

// List returns every profile with owner name/avatar populated.
func (s *ProfileService) List(ctx context.Context) ([]*models.Profile, error) {
	return s.profileRepo.List(ctx)
}

// ByUser returns the profile owned by the given user id. A malformed id is
// indistinguishable from a missing profile, matching the legacy behavior.
func (s *ProfileService) ByUser(ctx context.Context, userIDHex string) (*models.Profile, error) {
	userID, err := primitive.ObjectIDFromHex(userIDHex)
	if err != nil {
		return nil, models.NewNotFoundError("Profile")
	}
	return s.Me(ctx, userID)
}

// AddExperience prepends a new entry; most-recent-first ordering is part of
// the API contract.
func (s *ProfileService) AddExperience(ctx context.Context, userID primitive.ObjectID, in EntryInput) (*models.Profile, error) {
	profile, err := s.Me(ctx, userID)
	if err != nil {
		return nil, err
	}

	entry := models.Experience{
		ID:          primitive.NewObjectID(),
		Title:       in.Title,
		Company:     in.Company,
		Location:    in.Location,
		From:        in.From,
		To:          in.To,
		Current:     in.Current,
		Description: in.Description,
	}
	profile.Experience = append([]models.Experience{entry}, profile.Experience...)

	if err := s.profileRepo.Replace(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// RemoveExperience removes exactly one entry by id from the caller's own
// profile. The parent is looked up by owner reference, so the ownership check
// is structural; a missing id is a NotFound, never a blind splice.
func (s *ProfileService) RemoveExperience(ctx context.Context, userID primitive.ObjectID, entryIDHex string) (*models.Profile, error) {
	profile, err := s.Me(ctx, userID)
	if err != nil {
		return nil, err
	}

	entryID, err := primitive.ObjectIDFromHex(entryIDHex)
	if err != nil {
		return nil, models.NewNotFoundError("Experience entry")
	}

	idx := -1
	for i, e := range profile.Experience {
		if e.ID == entryID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, models.NewNotFoundError("Experience entry")
	}
	profile.Experience = append(profile.Experience[:idx], profile.Experience[idx+1:]...)

	if err := s.profileRepo.Replace(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// AddEducation prepends a new education entry, same contract as AddExperience.
func (s *ProfileService) AddEducation(ctx context.Context, userID primitive.ObjectID, in EntryInput) (*models.Profile, error) {
	profile, err := s.Me(ctx, userID)
	if err != nil {
		return nil, err
	}

	entry := models.Education{
		ID:           primitive.NewObjectID(),
		School:       in.School,
		Degree:       in.Degree,
		FieldOfStudy: in.FieldOfStudy,
		From:         in.From,
		To:           in.To,
		Current:      in.Current,
		Description:  in.Description,
	}
	profile.Education = append([]models.Education{entry}, profile.Education...)

	if err := s.profileRepo.Replace(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// RemoveEducation removes exactly one education entry by id.
func (s *ProfileService) RemoveEducation(ctx context.Context, userID primitive.ObjectID, entryIDHex string) (*models.Profile, error) {
	profile, err := s.Me(ctx, userID)
	if err != nil {
		return nil, err
	}

	entryID, err := primitive.ObjectIDFromHex(entryIDHex)
	if err != nil {
		return nil, models.NewNotFoundError("Education entry")
	}

	idx := -1
	for i, e := range profile.Education {
		if e.ID == entryID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, models.NewNotFoundError("Education entry")
	}
	profile.Education = append(profile.Education[:idx], profile.Education[idx+1:]...)

	if err := s.profileRepo.Replace(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

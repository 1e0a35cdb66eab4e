package server

import (
	"devconnect/internal/cache"
	"devconnect/internal/github"
	"devconnect/internal/models"
	"devconnect/internal/service"
	"devconnect/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// entryRequest is the wire shape for experience and education entries. Dates
// arrive as strings and are parsed here; a nil To with current=true means
// "ongoing".
type entryRequest struct {
	Title        string `json:"title"`
	Company      string `json:"company"`
	School       string `json:"school"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldofstudy"`
	Location     string `json:"location"`
	From         string `json:"from"`
	To           string `json:"to"`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}

func (r *entryRequest) toInput() (service.EntryInput, error) {
	from, err := parseDate(r.From)
	if err != nil {
		return service.EntryInput{}, models.NewValidationError("From date is not a valid date")
	}
	in := service.EntryInput{
		Title:        r.Title,
		Company:      r.Company,
		School:       r.School,
		Degree:       r.Degree,
		FieldOfStudy: r.FieldOfStudy,
		Location:     r.Location,
		From:         from,
		Current:      r.Current,
		Description:  r.Description,
	}
	if r.To != "" {
		to, err := parseDate(r.To)
		if err != nil {
			return service.EntryInput{}, models.NewValidationError("To date is not a valid date")
		}
		in.To = &to
	}
	return in, nil
}

// UpsertProfile handles POST /api/profile
// @Summary Create or merge-update the caller's profile
// @Description Absent fields are left untouched, never overwritten to empty
// @Tags profile
// @Accept json
// @Produce json
// @Success 200 {object} models.Profile
// @Failure 400 {object} models.ErrorResponse
// @Security TokenAuth
// @Router /profile [post]
func (s *Server) UpsertProfile(c *fiber.Ctx) error {
	var req struct {
		Status         *string `json:"status"`
		Skills         *string `json:"skills"`
		Company        *string `json:"company"`
		Location       *string `json:"location"`
		Website        *string `json:"website"`
		Bio            *string `json:"bio"`
		GithubUsername *string `json:"githubusername"`
		Youtube        *string `json:"youtube"`
		Facebook       *string `json:"facebook"`
		Twitter        *string `json:"twitter"`
		Linkedin       *string `json:"linkedin"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	deref := func(v *string) string {
		if v == nil {
			return ""
		}
		return *v
	}
	if err := validation.Run(
		validation.Required("status", deref(req.Status), "Status is required"),
		validation.Required("skills", deref(req.Skills), "Skills is required"),
	); err != nil {
		return models.RespondWithError(c, err)
	}

	profile, err := s.profileService.Upsert(c.UserContext(), currentUserID(c), service.UpsertProfileInput{
		Status:         req.Status,
		Skills:         req.Skills,
		Company:        req.Company,
		Location:       req.Location,
		Website:        req.Website,
		Bio:            req.Bio,
		GithubUsername: req.GithubUsername,
		Youtube:        req.Youtube,
		Facebook:       req.Facebook,
		Twitter:        req.Twitter,
		Linkedin:       req.Linkedin,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(profile)
}

// MyProfile handles GET /api/profile/me
func (s *Server) MyProfile(c *fiber.Ctx) error {
	profile, err := s.profileService.Me(c.UserContext(), currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(profile)
}

// ListProfiles handles GET /api/profile
func (s *Server) ListProfiles(c *fiber.Ctx) error {
	profiles, err := s.profileService.List(c.UserContext())
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(profiles)
}

// ProfileByUser handles GET /api/profile/user/:id
func (s *Server) ProfileByUser(c *fiber.Ctx) error {
	profile, err := s.profileService.ByUser(c.UserContext(), c.Params("id"))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(profile)
}

// DeleteAccount handles DELETE /api/profile
// @Summary Delete the caller's account
// @Description Cascades to the caller's profile and authored posts; likes and
// comments left on other users' posts are kept
// @Tags profile
// @Produce json
// @Success 200 {object} object{msg=string}
// @Security TokenAuth
// @Router /profile [delete]
func (s *Server) DeleteAccount(c *fiber.Ctx) error {
	if err := s.userService.DeleteAccount(c.UserContext(), currentUserID(c)); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{"msg": "User deleted"})
}

// AddExperience handles PUT /api/profile/experience
// @Summary Prepend a work-history entry to the caller's profile
// @Tags profile
// @Accept json
// @Produce json
// @Success 200 {object} models.Profile
// @Failure 400 {object} models.ErrorResponse
// @Security TokenAuth
// @Router /profile/experience [put]
func (s *Server) AddExperience(c *fiber.Ctx) error {
	var req entryRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	if err := validation.Run(
		validation.Required("title", req.Title, "Title is required"),
		validation.Required("company", req.Company, "Company is required"),
		validation.Required("from", req.From, "From date is required"),
	); err != nil {
		return models.RespondWithError(c, err)
	}

	in, err := req.toInput()
	if err != nil {
		return models.RespondWithError(c, err)
	}

	profile, err := s.profileService.AddExperience(c.UserContext(), currentUserID(c), in)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(profile)
}

// RemoveExperience handles DELETE /api/profile/experience/:id
func (s *Server) RemoveExperience(c *fiber.Ctx) error {
	profile, err := s.profileService.RemoveExperience(c.UserContext(), currentUserID(c), c.Params("id"))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(profile)
}

// AddEducation handles PUT /api/profile/education
func (s *Server) AddEducation(c *fiber.Ctx) error {
	var req entryRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	if err := validation.Run(
		validation.Required("school", req.School, "School is required"),
		validation.Required("degree", req.Degree, "Degree is required"),
		validation.Required("fieldofstudy", req.FieldOfStudy, "Field of study is required"),
		validation.Required("from", req.From, "From date is required"),
	); err != nil {
		return models.RespondWithError(c, err)
	}

	in, err := req.toInput()
	if err != nil {
		return models.RespondWithError(c, err)
	}

	profile, err := s.profileService.AddEducation(c.UserContext(), currentUserID(c), in)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(profile)
}

// RemoveEducation handles DELETE /api/profile/education/:id
func (s *Server) RemoveEducation(c *fiber.Ctx) error {
	profile, err := s.profileService.RemoveEducation(c.UserContext(), currentUserID(c), c.Params("id"))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(profile)
}

// GithubRepos handles GET /api/profile/github/:username
// @Summary List a user's five most recent GitHub repositories
// @Description Best-effort passthrough; any upstream failure reads as 404
// @Tags profile
// @Produce json
// @Success 200 {array} github.Repo
// @Failure 404 {object} models.ErrorResponse
// @Router /profile/github/{username} [get]
func (s *Server) GithubRepos(c *fiber.Ctx) error {
	username := c.Params("username")

	var repos []github.Repo
	err := cache.Aside(c.UserContext(), cache.GithubReposKey(username), &repos, cache.GithubTTL, func() error {
		var err error
		repos, err = s.github.Repos(c.UserContext(), username)
		return err
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(repos)
}

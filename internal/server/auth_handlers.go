package server

import (
	"devconnect/internal/models"
	"devconnect/internal/service"
	"devconnect/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// Register handles POST /api/users
// @Summary Register a user
// @Description Create a new account; responds with an opaque success message
// @Tags users
// @Accept json
// @Produce json
// @Param request body object{name=string,email=string,password=string} true "Registration request"
// @Success 200 {object} object{msg=string}
// @Failure 400 {object} models.ErrorResponse
// @Router /users [post]
func (s *Server) Register(c *fiber.Ctx) error {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	if err := validation.Run(
		validation.Required("name", req.Name, "Name is required"),
		validation.Email("email", req.Email, "Please include a valid email"),
		validation.MinLen("password", req.Password, 6, "Please insert a valid password with 6 or more characters"),
	); err != nil {
		return models.RespondWithError(c, err)
	}

	if err := s.userService.Register(c.UserContext(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	}); err != nil {
		return models.RespondWithError(c, err)
	}

	return c.JSON(fiber.Map{"msg": "User registered"})
}

// Login handles POST /api/auth
// @Summary Authenticate and obtain a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body object{email=string,password=string} true "Login credentials"
// @Success 200 {object} object{token=string}
// @Failure 400 {object} models.ErrorResponse
// @Router /auth [post]
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	if err := validation.Run(
		validation.Email("email", req.Email, "Please include a valid email"),
		validation.Required("password", req.Password, "Password is required"),
	); err != nil {
		return models.RespondWithError(c, err)
	}

	token, err := s.userService.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.JSON(fiber.Map{"token": token})
}

// CurrentUser handles GET /api/auth
// @Summary Return the authenticated user's record, minus the password hash
// @Tags auth
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {object} models.ErrorResponse
// @Security TokenAuth
// @Router /auth [get]
func (s *Server) CurrentUser(c *fiber.Ctx) error {
	user, err := s.userService.CurrentUser(c.UserContext(), currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(user)
}

package server

import (
	"devconnect/internal/models"
	"devconnect/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /api/posts
// @Summary Create a post
// @Description The author's name and avatar are snapshotted at creation time
// @Tags posts
// @Accept json
// @Produce json
// @Param request body object{text=string} true "Post body"
// @Success 200 {object} models.Post
// @Failure 400 {object} models.ErrorResponse
// @Security TokenAuth
// @Router /posts [post]
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	if err := validation.Run(
		validation.Required("text", req.Text, "The content is required"),
		validation.MaxLen("text", req.Text, 10000, "Post too long"),
	); err != nil {
		return models.RespondWithError(c, err)
	}

	post, err := s.postService.Create(c.UserContext(), currentUserID(c), req.Text)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(post)
}

// ListPosts handles GET /api/posts
func (s *Server) ListPosts(c *fiber.Ctx) error {
	posts, err := s.postService.List(c.UserContext())
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(posts)
}

// GetPost handles GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	post, err := s.postService.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(post)
}

// DeletePost handles DELETE /api/posts/:id
// @Summary Delete a post (author only)
// @Tags posts
// @Produce json
// @Success 200 {object} object{msg=string}
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security TokenAuth
// @Router /posts/{id} [delete]
func (s *Server) DeletePost(c *fiber.Ctx) error {
	if err := s.postService.Delete(c.UserContext(), currentUserID(c), c.Params("id")); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{"msg": "Post removed"})
}

// LikePost handles PUT /api/posts/like/:id
// @Summary Like a post; liking twice is an explicit error
// @Tags posts
// @Produce json
// @Success 200 {array} models.Like
// @Failure 400 {object} models.ErrorResponse
// @Security TokenAuth
// @Router /posts/like/{id} [put]
func (s *Server) LikePost(c *fiber.Ctx) error {
	likes, err := s.postService.Like(c.UserContext(), currentUserID(c), c.Params("id"))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(likes)
}

// UnlikePost handles PUT /api/posts/unlike/:id
func (s *Server) UnlikePost(c *fiber.Ctx) error {
	likes, err := s.postService.Unlike(c.UserContext(), currentUserID(c), c.Params("id"))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(likes)
}

// AddComment handles POST /api/posts/comments/:id
func (s *Server) AddComment(c *fiber.Ctx) error {
	var req struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	if err := validation.Run(
		validation.Required("text", req.Text, "The content is required"),
		validation.MaxLen("text", req.Text, 10000, "Comment too long"),
	); err != nil {
		return models.RespondWithError(c, err)
	}

	comments, err := s.postService.AddComment(c.UserContext(), currentUserID(c), c.Params("id"), req.Text)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(comments)
}

// DeleteComment handles DELETE /api/posts/comments/:id/:commentId
// @Summary Delete a comment (comment author only)
// @Tags posts
// @Produce json
// @Success 200 {array} models.Comment
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security TokenAuth
// @Router /posts/comments/{id}/{commentId} [delete]
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	comments, err := s.postService.DeleteComment(c.UserContext(), currentUserID(c), c.Params("id"), c.Params("commentId"))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(comments)
}

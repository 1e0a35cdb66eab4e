package service

import (
	"context"
	"time"

	"devconnect/internal/models"
	"devconnect/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// nowFunc is swapped out in tests that assert on timestamps.
var nowFunc = time.Now

// PostService implements post CRUD and the like/comment sub-record mutators.
// Any authenticated user may like or comment on any post; deletion is always
// author-only, with NotFound reported before Forbidden so a missing resource
// and a protected one stay distinguishable.
type PostService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
}

// NewPostService returns a PostService bound to its stores.
func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository) *PostService {
	return &PostService{postRepo: postRepo, userRepo: userRepo}
}

// Create stores a new post with the author's name and avatar snapshotted at
// creation time. The snapshot is never re-synced.
func (s *PostService) Create(ctx context.Context, userID primitive.ObjectID, text string) (*models.Post, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		UserID: userID,
		Text:   text,
		Name:   user.Name,
		Avatar: user.Avatar,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// List returns all posts, newest first.
func (s *PostService) List(ctx context.Context) ([]*models.Post, error) {
	return s.postRepo.List(ctx)
}

// Get returns one post by id. A malformed id reads as NotFound, matching the
// legacy ObjectId-cast behavior.
func (s *PostService) Get(ctx context.Context, postIDHex string) (*models.Post, error) {
	postID, err := primitive.ObjectIDFromHex(postIDHex)
	if err != nil {
		return nil, models.NewNotFoundError("Post")
	}
	return s.postRepo.GetByID(ctx, postID)
}

// Delete removes a post; only its author may do so.
func (s *PostService) Delete(ctx context.Context, userID primitive.ObjectID, postIDHex string) error {
	post, err := s.Get(ctx, postIDHex)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return models.NewForbiddenError("You can only delete your own posts")
	}
	return s.postRepo.Delete(ctx, post.ID)
}

// Like prepends the requester to the likes list. Liking twice is an explicit
// error, not an idempotent no-op.
func (s *PostService) Like(ctx context.Context, userID primitive.ObjectID, postIDHex string) ([]models.Like, error) {
	post, err := s.Get(ctx, postIDHex)
	if err != nil {
		return nil, err
	}

	for _, like := range post.Likes {
		if like.UserID == userID {
			return nil, models.NewAlreadyLikedError()
		}
	}
	post.Likes = append([]models.Like{{UserID: userID}}, post.Likes...)

	if err := s.postRepo.Replace(ctx, post); err != nil {
		return nil, err
	}
	return post.Likes, nil
}

// Unlike removes the requester's like. Unliking a never-liked post is an
// explicit error.
func (s *PostService) Unlike(ctx context.Context, userID primitive.ObjectID, postIDHex string) ([]models.Like, error) {
	post, err := s.Get(ctx, postIDHex)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i, like := range post.Likes {
		if like.UserID == userID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, models.NewNotLikedError()
	}
	post.Likes = append(post.Likes[:idx], post.Likes[idx+1:]...)

	if err := s.postRepo.Replace(ctx, post); err != nil {
		return nil, err
	}
	return post.Likes, nil
}

// AddComment prepends a comment with the commenter's snapshot.
func (s *PostService) AddComment(ctx context.Context, userID primitive.ObjectID, postIDHex, text string) ([]models.Comment, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	post, err := s.Get(ctx, postIDHex)
	if err != nil {
		return nil, err
	}

	comment := models.Comment{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Text:      text,
		Name:      user.Name,
		Avatar:    user.Avatar,
		CreatedAt: nowFunc(),
	}
	post.Comments = append([]models.Comment{comment}, post.Comments...)

	if err := s.postRepo.Replace(ctx, post); err != nil {
		return nil, err
	}
	return post.Comments, nil
}

// DeleteComment removes exactly one comment by its own id; only the comment's
// author may remove it. The splice is located by comment id, never by author
// index.
func (s *PostService) DeleteComment(ctx context.Context, userID primitive.ObjectID, postIDHex, commentIDHex string) ([]models.Comment, error) {
	post, err := s.Get(ctx, postIDHex)
	if err != nil {
		return nil, err
	}

	commentID, err := primitive.ObjectIDFromHex(commentIDHex)
	if err != nil {
		return nil, models.NewNotFoundError("Comment")
	}

	idx := -1
	for i, c := range post.Comments {
		if c.ID == commentID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, models.NewNotFoundError("Comment")
	}
	if post.Comments[idx].UserID != userID {
		return nil, models.NewForbiddenError("You can only delete your own comments")
	}
	post.Comments = append(post.Comments[:idx], post.Comments[idx+1:]...)

	if err := s.postRepo.Replace(ctx, post); err != nil {
		return nil, err
	}
	return post.Comments, nil
}

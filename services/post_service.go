package services

import (
	"errors"
	"fmt"

	"goblog/models"
	"goblog/repositories"

	"gorm.io/gorm"
)

// The PostService interface defines the methods that post services need to implement
type PostService interface {
	ListPosts() ([]models.Post, error)
	GetPost(id uint) (*models.Post, error)
	CreatePost(input *CreatePostInput) (*models.Post, error)
	UpdatePost(id uint, input *UpdatePostInput) (*models.Post, error)
	DeletePost(id uint) error
}

type CreatePostInput struct {
	Title   string  `json:"title"`
	Content *string `json:"content"`
	UserID  uint    `json:"user_id"`
}

// UpdatePostInput carries partial updates. A nil Content leaves the field
// untouched; an explicit empty string clears it.
type UpdatePostInput struct {
	Title   string  `json:"title"`
	Content *string `json:"content"`
}

type postService struct {
	repo  repositories.PostRepository
	users repositories.UserRepository
}

var _ PostService = (*postService)(nil)

// NewPostService creates a new PostService instance
func NewPostService(repo repositories.PostRepository, users repositories.UserRepository) PostService {
	return &postService{repo: repo, users: users}
}

// ListPosts returns all posts newest first with their authors.
func (s *postService) ListPosts() ([]models.Post, error) {
	posts, err := s.repo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("%w: listing posts: %v", ErrInternal, err)
	}
	return posts, nil
}

// GetPost returns a single post with its author.
func (s *postService) GetPost(id uint) (*models.Post, error) {
	post, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("Post not found")
		}
		return nil, fmt.Errorf("%w: retrieving post: %v", ErrInternal, err)
	}
	return post, nil
}

// CreatePost creates a post for an existing user and returns it joined with
// its author.
func (s *postService) CreatePost(input *CreatePostInput) (*models.Post, error) {
	if input.Title == "" || input.UserID == 0 {
		return nil, validationError("Title and user_id are required")
	}

	// The foreign key is the authority; this check just produces a clean
	// message instead of a constraint violation for the common case.
	if _, err := s.users.FindByID(input.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, validationError("User not found")
		}
		return nil, fmt.Errorf("%w: checking post author: %v", ErrInternal, err)
	}

	post := &models.Post{
		Title:   input.Title,
		Content: input.Content,
		UserID:  input.UserID,
	}
	if err := s.repo.Create(post); err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, validationError("User not found")
		}
		return nil, fmt.Errorf("%w: creating post: %v", ErrInternal, err)
	}

	// Re-fetch so the response carries the author relation.
	created, err := s.repo.FindByID(post.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: loading created post: %v", ErrInternal, err)
	}
	return created, nil
}

// UpdatePost applies the provided fields to an existing post.
func (s *postService) UpdatePost(id uint, input *UpdatePostInput) (*models.Post, error) {
	post, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("Post not found")
		}
		return nil, fmt.Errorf("%w: retrieving post for update: %v", ErrInternal, err)
	}

	if input.Title != "" {
		post.Title = input.Title
	}
	if input.Content != nil {
		post.Content = input.Content
	}

	if err := s.repo.Update(post); err != nil {
		return nil, fmt.Errorf("%w: saving post updates: %v", ErrInternal, err)
	}

	updated, err := s.repo.FindByID(post.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: loading updated post: %v", ErrInternal, err)
	}
	return updated, nil
}

// DeletePost removes the post.
func (s *postService) DeletePost(id uint) error {
	err := s.repo.Delete(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundError("Post not found")
		}
		return fmt.Errorf("%w: deleting post: %v", ErrInternal, err)
	}
	return nil
}

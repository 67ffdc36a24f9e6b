package repositories

import (
	"goblog/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostRepository interface defines Post-related database operations
type PostRepository interface {
	Create(post *models.Post) error
	FindByID(id uint) (*models.Post, error)
	Update(post *models.Post) error
	Delete(id uint) error
	FindAll() ([]models.Post, error)
}

// postRepository implements the PostRepository interface
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new PostRepository instance
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// Create creates a new Post
func (r *postRepository) Create(post *models.Post) error {
	result := r.db.Create(post)
	return result.Error
}

// FindByID finds Post by ID with its author loaded
func (r *postRepository) FindByID(id uint) (*models.Post, error) {
	var post models.Post
	result := r.db.Preload("User").First(&post, id)
	if result.Error != nil {
		return nil, result.Error
	}
	return &post, nil
}

// Update updates Post information. Associations are omitted so a preloaded
// author is never written back.
func (r *postRepository) Update(post *models.Post) error {
	result := r.db.Omit(clause.Associations).Save(post)
	return result.Error
}

// Delete deletes Post by ID. Returns gorm.ErrRecordNotFound if no row matched.
func (r *postRepository) Delete(id uint) error {
	result := r.db.Delete(&models.Post{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindAll returns all Posts newest first with authors loaded. Ties on
// created_at keep insertion order.
func (r *postRepository) FindAll() ([]models.Post, error) {
	var posts []models.Post
	result := r.db.Preload("User").Order("created_at DESC, id ASC").Find(&posts)
	if result.Error != nil {
		return nil, result.Error
	}
	return posts, nil
}

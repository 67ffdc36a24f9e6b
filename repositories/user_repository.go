package repositories

import (
	"goblog/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRepository interface defines User-related database operations
type UserRepository interface {
	Create(user *models.User) error
	FindByID(id uint) (*models.User, error)
	FindByIDWithPosts(id uint) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	Update(user *models.User) error
	FindAll() ([]models.User, error)
	DeleteWithPosts(id uint) error
}

// userRepository implements the UserRepository interface
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository instance
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create creates a new User
func (r *userRepository) Create(user *models.User) error {
	result := r.db.Create(user)
	return result.Error
}

// FindByID finds User by ID
func (r *userRepository) FindByID(id uint) (*models.User, error) {
	var user models.User
	result := r.db.First(&user, id)
	if result.Error != nil {
		return nil, result.Error
	}
	return &user, nil
}

// FindByIDWithPosts finds User by ID with its posts loaded
func (r *userRepository) FindByIDWithPosts(id uint) (*models.User, error) {
	var user models.User
	result := r.db.Preload("Posts").First(&user, id)
	if result.Error != nil {
		return nil, result.Error
	}
	return &user, nil
}

// FindByEmail finds User by Email
func (r *userRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	result := r.db.Where("email = ?", email).First(&user)
	if result.Error != nil {
		return nil, result.Error
	}
	return &user, nil
}

// Update updates User information. Associations are omitted so preloaded
// posts are never written back.
func (r *userRepository) Update(user *models.User) error {
	result := r.db.Omit(clause.Associations).Save(user)
	return result.Error
}

// FindAll returns all Users newest first, posts loaded. Ties on created_at
// keep insertion order.
func (r *userRepository) FindAll() ([]models.User, error) {
	var users []models.User
	result := r.db.Preload("Posts").Order("created_at DESC, id ASC").Find(&users)
	if result.Error != nil {
		return nil, result.Error
	}
	return users, nil
}

// DeleteWithPosts deletes a User and all Posts owned by it in one transaction.
// Returns gorm.ErrRecordNotFound if the user does not exist; a partial delete
// never commits.
func (r *userRepository) DeleteWithPosts(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&models.Post{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.User{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

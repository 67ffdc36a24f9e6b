package models

import "time"

// User owns zero or more Posts. The schema itself lives in
// database/migrations; the tags here only cover column mapping.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100" json:"name"`
	Email     string    `gorm:"size:100" json:"email"`
	Password  string    `gorm:"size:255" json:"-"` // Don't expose password hash
	CreatedAt time.Time `json:"created_at"`
	Posts     []Post    `gorm:"foreignKey:UserID" json:"posts,omitempty"`
}

package services

import (
	"testing"
	"time"

	"goblog/models"
	"goblog/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newPostFixture(t *testing.T) (PostService, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	return NewPostService(repositories.NewPostRepository(db), repositories.NewUserRepository(db)), db
}

func createAuthor(t *testing.T, db *gorm.DB, name, email string) *models.User {
	t.Helper()
	user := &models.User{Name: name, Email: email}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestCreatePost_ReturnsAuthor(t *testing.T) {
	svc, db := newPostFixture(t)
	alice := createAuthor(t, db, "Alice", "a@x.com")

	content := "hello world"
	post, err := svc.CreatePost(&CreatePostInput{Title: "Hi", Content: &content, UserID: alice.ID})
	require.NoError(t, err)
	assert.NotZero(t, post.ID)
	assert.Equal(t, "Hi", post.Title)
	require.NotNil(t, post.User)
	assert.Equal(t, "Alice", post.User.Name)
}

func TestCreatePost_Validation(t *testing.T) {
	svc, db := newPostFixture(t)
	alice := createAuthor(t, db, "Alice", "a@x.com")

	_, err := svc.CreatePost(&CreatePostInput{Title: "", UserID: alice.ID})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreatePost(&CreatePostInput{Title: "Hi", UserID: 0})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreatePost_UnknownAuthor(t *testing.T) {
	svc, _ := newPostFixture(t)

	_, err := svc.CreatePost(&CreatePostInput{Title: "Hi", UserID: 9999})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreatePost_ContentIsOptional(t *testing.T) {
	svc, db := newPostFixture(t)
	alice := createAuthor(t, db, "Alice", "a@x.com")

	post, err := svc.CreatePost(&CreatePostInput{Title: "Hi", UserID: alice.ID})
	require.NoError(t, err)
	assert.Nil(t, post.Content)
}

func TestListPosts_NewestFirst(t *testing.T) {
	svc, db := newPostFixture(t)
	alice := createAuthor(t, db, "Alice", "a@x.com")

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	older := models.Post{Title: "Older", UserID: alice.ID, CreatedAt: base}
	newer := models.Post{Title: "Newer", UserID: alice.ID, CreatedAt: base.Add(time.Hour)}
	require.NoError(t, db.Create(&older).Error)
	require.NoError(t, db.Create(&newer).Error)

	posts, err := svc.ListPosts()
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "Newer", posts[0].Title)
	assert.Equal(t, "Older", posts[1].Title)
	require.NotNil(t, posts[0].User)
	assert.Equal(t, "Alice", posts[0].User.Name)
}

func TestGetPost(t *testing.T) {
	svc, db := newPostFixture(t)
	alice := createAuthor(t, db, "Alice", "a@x.com")

	post := models.Post{Title: "Hi", UserID: alice.ID}
	require.NoError(t, db.Create(&post).Error)

	got, err := svc.GetPost(post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hi", got.Title)
	require.NotNil(t, got.User)
	assert.Equal(t, "Alice", got.User.Name)

	_, err = svc.GetPost(9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdatePost(t *testing.T) {
	svc, db := newPostFixture(t)
	alice := createAuthor(t, db, "Alice", "a@x.com")

	content := "original"
	post := models.Post{Title: "Hi", Content: &content, UserID: alice.ID}
	require.NoError(t, db.Create(&post).Error)

	updated, err := svc.UpdatePost(post.ID, &UpdatePostInput{Title: "Hello"})
	require.NoError(t, err)
	assert.Equal(t, "Hello", updated.Title)
	// Nil content leaves the existing value untouched.
	require.NotNil(t, updated.Content)
	assert.Equal(t, "original", *updated.Content)

	cleared := ""
	updated, err = svc.UpdatePost(post.ID, &UpdatePostInput{Content: &cleared})
	require.NoError(t, err)
	require.NotNil(t, updated.Content)
	assert.Empty(t, *updated.Content)

	_, err = svc.UpdatePost(9999, &UpdatePostInput{Title: "Nope"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeletePost(t *testing.T) {
	svc, db := newPostFixture(t)
	alice := createAuthor(t, db, "Alice", "a@x.com")

	post := models.Post{Title: "Hi", UserID: alice.ID}
	require.NoError(t, db.Create(&post).Error)

	require.NoError(t, svc.DeletePost(post.ID))
	_, err := svc.GetPost(post.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	err = svc.DeletePost(9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

package repositories

import (
	"errors"

	"postfeed/app/models"
)

var (
	ErrNotFound = errors.New("record not found")
)

// PostRepository defines the interface for post data access.
//
// Implementations assign strictly increasing IDs on Create and return posts
// from List in insertion order. Returned posts are copies.
type PostRepository interface {
	Create(post *models.Post) error
	GetByID(id int) (*models.Post, error)
	List() ([]*models.Post, error)
	// Mutate applies fn to the stored post under the repository's write lock.
	Mutate(id int, fn func(post *models.Post)) error
	Close() error
}

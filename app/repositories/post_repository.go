package repositories

import (
	"errors"
	"fmt"
	"sync"

	"postfeed/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerPostRepository implements PostRepository on an in-memory Badger
// instance. Nothing is written to disk; the data lives as long as the process.
type BadgerPostRepository struct {
	db    *badger.DB
	mutex sync.RWMutex
}

// NewBadgerPostRepository opens an in-memory Badger DB and wraps it.
func NewBadgerPostRepository() (*BadgerPostRepository, error) {
	opts := badger.DefaultOptions("").
		WithInMemory(true).
		WithLogger(nil).
		WithNumVersionsToKeep(1)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory badger: %w", err)
	}
	return &BadgerPostRepository{db: db}, nil
}

// Create creates a new post
func (r *BadgerPostRepository) Create(post *models.Post) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	return r.db.Update(func(txn *badger.Txn) error {
		// Get next ID
		id, err := getNextID(txn, PostSeqKey)
		if err != nil {
			return err
		}
		post.ID = id

		data, err := marshalEntity(post)
		if err != nil {
			return err
		}
		return txn.Set(postKey(post.ID), data)
	})
}

// GetByID retrieves a post by ID
func (r *BadgerPostRepository) GetByID(id int) (*models.Post, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	var post models.Post
	err := r.db.View(func(txn *badger.Txn) error {
		return readPost(txn, id, &post)
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// List retrieves every post in ID order, which is also insertion order.
func (r *BadgerPostRepository) List() ([]*models.Post, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	posts := []*models.Post{}
	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(PostKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var post models.Post
			err := it.Item().Value(func(val []byte) error {
				return unmarshalEntity(val, &post)
			})
			if err != nil {
				return fmt.Errorf("failed to unmarshal post: %w", err)
			}
			posts = append(posts, &post)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// Mutate loads the post, applies fn and writes it back in one transaction.
func (r *BadgerPostRepository) Mutate(id int, fn func(post *models.Post)) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	return r.db.Update(func(txn *badger.Txn) error {
		var post models.Post
		if err := readPost(txn, id, &post); err != nil {
			return err
		}
		fn(&post)

		data, err := marshalEntity(&post)
		if err != nil {
			return err
		}
		return txn.Set(postKey(id), data)
	})
}

// Close releases the Badger instance and everything stored in it.
func (r *BadgerPostRepository) Close() error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.db.Close()
}

func readPost(txn *badger.Txn, id int, post *models.Post) error {
	item, err := txn.Get(postKey(id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return item.Value(func(val []byte) error {
		return unmarshalEntity(val, post)
	})
}

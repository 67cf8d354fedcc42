package repositories

import (
	"sync"

	"postfeed/app/models"
)

// MemoryPostRepository keeps posts in process memory for a single session.
type MemoryPostRepository struct {
	posts  []*models.Post
	index  map[int]*models.Post
	nextID int
	mutex  sync.RWMutex
}

// NewMemoryPostRepository creates an empty MemoryPostRepository
func NewMemoryPostRepository() *MemoryPostRepository {
	return &MemoryPostRepository{
		index:  make(map[int]*models.Post),
		nextID: 1,
	}
}

func (m *MemoryPostRepository) Create(post *models.Post) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	post.ID = m.nextID
	m.nextID++
	stored := post.Clone()
	m.posts = append(m.posts, stored)
	m.index[stored.ID] = stored
	return nil
}

func (m *MemoryPostRepository) GetByID(id int) (*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	post, exists := m.index[id]
	if !exists {
		return nil, ErrNotFound
	}
	return post.Clone(), nil
}

func (m *MemoryPostRepository) List() ([]*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	posts := make([]*models.Post, 0, len(m.posts))
	for _, post := range m.posts {
		posts = append(posts, post.Clone())
	}
	return posts, nil
}

func (m *MemoryPostRepository) Mutate(id int, fn func(post *models.Post)) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	post, exists := m.index[id]
	if !exists {
		return ErrNotFound
	}
	fn(post)
	return nil
}

// Close drops every post. The repository is not usable afterwards.
func (m *MemoryPostRepository) Close() error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.posts = nil
	m.index = make(map[int]*models.Post)
	return nil
}

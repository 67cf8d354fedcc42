package repositories

import (
	"sync"
	"testing"

	"postfeed/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backends(t *testing.T) map[string]PostRepository {
	badgerRepo, err := NewBadgerPostRepository()
	require.NoError(t, err)
	memoryRepo := NewMemoryPostRepository()
	t.Cleanup(func() {
		badgerRepo.Close()
		memoryRepo.Close()
	})
	return map[string]PostRepository{
		"memory": memoryRepo,
		"badger": badgerRepo,
	}
}

func newPost(title string) *models.Post {
	post := &models.Post{Title: title, Content: "content of " + title, Tags: []string{"go"}}
	post.BeforeCreate()
	return post
}

func TestPostRepository(t *testing.T) {
	for name, repo := range backends(t) {
		repo := repo
		t.Run(name, func(t *testing.T) {
			t.Run("create assigns increasing ids", func(t *testing.T) {
				var last int
				for i := 0; i < 5; i++ {
					post := newPost("Post")
					require.NoError(t, repo.Create(post))
					assert.Greater(t, post.ID, last)
					last = post.ID
				}
			})

			t.Run("get post", func(t *testing.T) {
				post := newPost("Lookup")
				require.NoError(t, repo.Create(post))

				got, err := repo.GetByID(post.ID)
				require.NoError(t, err)
				assert.Equal(t, "Lookup", got.Title)
				assert.Equal(t, []string{"go"}, got.Tags)
			})

			t.Run("get missing post", func(t *testing.T) {
				_, err := repo.GetByID(9999)
				assert.ErrorIs(t, err, ErrNotFound)
			})

			t.Run("list keeps insertion order", func(t *testing.T) {
				posts, err := repo.List()
				require.NoError(t, err)
				require.Len(t, posts, 6)
				for i := 1; i < len(posts); i++ {
					assert.Less(t, posts[i-1].ID, posts[i].ID)
				}
				assert.Equal(t, "Lookup", posts[5].Title)
			})

			t.Run("mutate updates stored post", func(t *testing.T) {
				require.NoError(t, repo.Mutate(1, func(p *models.Post) { p.Upvotes += 2 }))
				got, err := repo.GetByID(1)
				require.NoError(t, err)
				assert.Equal(t, 2, got.Upvotes)
			})

			t.Run("mutate missing post", func(t *testing.T) {
				called := false
				err := repo.Mutate(9999, func(p *models.Post) { called = true })
				assert.ErrorIs(t, err, ErrNotFound)
				assert.False(t, called)
			})

			t.Run("returned posts are copies", func(t *testing.T) {
				got, err := repo.GetByID(1)
				require.NoError(t, err)
				got.Upvotes = 100
				got.Tags[0] = "changed"

				again, err := repo.GetByID(1)
				require.NoError(t, err)
				assert.Equal(t, 2, again.Upvotes)
				assert.Equal(t, "go", again.Tags[0])
			})
		})
	}
}

func TestPostRepositoryConcurrentMutations(t *testing.T) {
	for name, repo := range backends(t) {
		repo := repo
		t.Run(name, func(t *testing.T) {
			post := newPost("Busy")
			require.NoError(t, repo.Create(post))

			var wg sync.WaitGroup
			for i := 0; i < 4; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for j := 0; j < 25; j++ {
						assert.NoError(t, repo.Mutate(post.ID, func(p *models.Post) { p.Upvotes++ }))
					}
				}()
			}
			wg.Wait()

			got, err := repo.GetByID(post.ID)
			require.NoError(t, err)
			assert.Equal(t, 100, got.Upvotes)
		})
	}
}

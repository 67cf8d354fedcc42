// Package seed fills a fresh feed with demo posts. Everything goes through
// the store's own operations, so seeded posts obey the same rules as posts
// created by users.
package seed

import (
	"fmt"
	"strings"

	"postfeed/app/models"
	"postfeed/app/services"

	"github.com/brianvoe/gofakeit/v6"
)

// demoPost is a post plus the reactions it should carry after seeding.
type demoPost struct {
	input     models.PostInput
	upvotes   int
	downvotes int
}

var demoPosts = []demoPost{
	{
		input: models.PostInput{
			Title:   "First Post",
			Content: "This is the first discussion post.",
			Author:  "Alice",
			Tags:    "tech, ai",
		},
		upvotes:   10,
		downvotes: 2,
	},
	{
		input: models.PostInput{
			Title:   "Second Post",
			Content: "Exploring new frameworks.",
			Author:  "Bob",
			Tags:    "webdev, react",
		},
		upvotes: 5,
	},
}

// Demo creates the two starter posts a new session shows.
func Demo(store *services.PostStore) ([]*models.Post, error) {
	posts := make([]*models.Post, 0, len(demoPosts))
	for _, d := range demoPosts {
		post, err := apply(store, d)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

// Fake creates n posts with generated text, authors, tags and votes.
// The same seed always yields the same posts.
func Fake(store *services.PostStore, n int, seed int64) ([]*models.Post, error) {
	faker := gofakeit.New(seed)
	posts := make([]*models.Post, 0, n)
	for i := 0; i < n; i++ {
		tags := make([]string, faker.Number(0, 3))
		for j := range tags {
			tags[j] = faker.HackerNoun()
		}
		d := demoPost{
			input: models.PostInput{
				Title:   faker.Sentence(5),
				Content: faker.Paragraph(1, 3, 12, " "),
				Author:  faker.Username(),
				Tags:    strings.Join(tags, ","),
			},
			upvotes:   faker.Number(0, 25),
			downvotes: faker.Number(0, 8),
		}
		post, err := apply(store, d)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

func apply(store *services.PostStore, d demoPost) (*models.Post, error) {
	post, err := store.Create(d.input)
	if err != nil {
		return nil, fmt.Errorf("seed %q: %w", d.input.Title, err)
	}
	for i := 0; i < d.upvotes; i++ {
		if err := store.Upvote(post.ID); err != nil {
			return nil, fmt.Errorf("seed %q: %w", d.input.Title, err)
		}
	}
	for i := 0; i < d.downvotes; i++ {
		if err := store.Downvote(post.ID); err != nil {
			return nil, fmt.Errorf("seed %q: %w", d.input.Title, err)
		}
	}
	return store.Get(post.ID)
}
